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

// Direction is which strand a candidate or result was found on.
type Direction uint8

const (
	Forward Direction = iota
	ReverseComplement
)

func (d Direction) String() string {
	if d == ReverseComplement {
		return "rc"
	}
	return "forward"
}

// Read is one sequenced read, borrowed by the Aligner for the duration of
// one AlignRead call. Bases and Quality must be the same length.
type Read struct {
	Bases   []byte
	Quality []byte

	FrontClip int
	BackClip  int
}

// effectiveLength is the read length after any soft clips already applied
// by the caller.
func (r *Read) effectiveLength() int {
	n := len(r.Bases) - r.FrontClip - r.BackClip
	if n < 0 {
		return 0
	}
	return n
}

// countNs reports how many N bases (case-insensitive) the read contains.
func countNs(bases []byte) int {
	n := 0
	for _, b := range bases {
		if b == 'N' || b == 'n' {
			n++
		}
	}
	return n
}
