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

// hitsPerContigCounts is the optional per-contig secondary-alignment
// budget. Like the candidate hash table, it is epoch-guarded: a count
// whose stored epoch doesn't match the current one is treated as zero
// rather than physically cleared.
type hitsPerContigCounts struct {
	counts []int32
	epochs []int32
	epoch  int32
}

func newHitsPerContigCounts(numContigs int) *hitsPerContigCounts {
	return &hitsPerContigCounts{
		counts: make([]int32, numContigs),
		epochs: make([]int32, numContigs),
	}
}

func (c *hitsPerContigCounts) reset() {
	c.epoch++
}

// increment bumps contigIdx's count (resetting it first if stale) and
// returns the new value.
func (c *hitsPerContigCounts) increment(contigIdx int) int32 {
	if c.epochs[contigIdx] != c.epoch {
		c.counts[contigIdx] = 0
		c.epochs[contigIdx] = c.epoch
	}
	c.counts[contigIdx]++
	return c.counts[contigIdx]
}
