// Copyright © 2023-2026 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package align

// complementTable maps a base to its complement; A<->T, C<->G, N->N,
// case-insensitive, indexed directly by byte value like a 256-entry LUT.
var complementTable [256]byte

func init() {
	for i := range complementTable {
		complementTable[i] = 'N'
	}
	complementTable['A'], complementTable['a'] = 'T', 'T'
	complementTable['T'], complementTable['t'] = 'A', 'A'
	complementTable['C'], complementTable['c'] = 'G', 'G'
	complementTable['G'], complementTable['g'] = 'C', 'C'
	complementTable['N'], complementTable['n'] = 'N', 'N'
}

// rcBuffer holds the reverse-complement and reversed-only views of one
// strand of the current read, reused across reads so filling it never
// allocates.
type rcBuffer struct {
	rc       []byte // reverse-complement of bases
	reversed []byte // bases reversed, not complemented
	rcQual   []byte // quality reversed to match rc
}

func newRCBuffer(maxReadSize int) *rcBuffer {
	return &rcBuffer{
		rc:       make([]byte, maxReadSize),
		reversed: make([]byte, maxReadSize),
		rcQual:   make([]byte, maxReadSize),
	}
}

// fill materializes the reverse-complement, the plain reversal and the
// reversed quality string for bases/quality, truncating its backing slices
// to len(bases) without reallocating.
func (b *rcBuffer) fill(bases, quality []byte) {
	n := len(bases)
	b.rc = b.rc[:n]
	b.reversed = b.reversed[:n]
	b.rcQual = b.rcQual[:n]
	for i := 0; i < n; i++ {
		j := n - 1 - i
		b.rc[i] = complementTable[bases[j]]
		b.reversed[i] = bases[j]
		b.rcQual[i] = quality[j]
	}
}
