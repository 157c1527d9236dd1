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

// seedUsedBitmap marks which read offsets have already contributed a seed
// lookup this read, one bit per offset.
type seedUsedBitmap struct {
	bits []uint64
}

func newSeedUsedBitmap(maxReadSize int) *seedUsedBitmap {
	return &seedUsedBitmap{bits: make([]uint64, (maxReadSize+63)/64+1)}
}

func (s *seedUsedBitmap) test(offset int) bool {
	return s.bits[offset/64]&(1<<uint(offset%64)) != 0
}

func (s *seedUsedBitmap) set(offset int) {
	s.bits[offset/64] |= 1 << uint(offset%64)
}

func (s *seedUsedBitmap) resetAll() {
	for i := range s.bits {
		s.bits[i] = 0
	}
}
