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

import "math"

// maxMAPQ is the clipping ceiling spec.md §4.6 mandates.
const maxMAPQ = 70

// computeMAPQ derives a mapping-quality estimate from the best candidate's
// match probability and the summed probability of every candidate
// considered: -10*log10(1 - best/all), clipped to [0, maxMAPQ].
func computeMAPQ(best, all float64) int {
	if all <= 0 {
		return 0
	}
	ratio := best / all
	if ratio >= 1 {
		return maxMAPQ
	}
	if ratio < 0 {
		ratio = 0
	}
	mapq := -10 * math.Log10(1-ratio)
	if mapq > maxMAPQ {
		return maxMAPQ
	}
	if mapq < 0 {
		return 0
	}
	return int(mapq + 0.5)
}
