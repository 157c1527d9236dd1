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

package scorer

import "math"

// pointer records which of the three DP moves produced a cell's score,
// the same three-way pointer alphabet lexicmap/index/align/nw.go uses for
// its own Needleman-Wunsch traceback.
type lvPointer uint8

const (
	lvNone lvPointer = iota
	lvDiag
	lvUp
	lvLeft
)

// LandauVishkin is a banded bounded-edit-distance scorer: the DP only
// fills cells within `scoreLimit` of the main diagonal, giving it the
// O(k*m) behavior the real Landau-Vishkin automaton achieves, without
// requiring the k-difference-automaton representation itself.
//
// It reuses one score/pointer matrix across calls (sized to the largest
// request seen so far), the same pooled-buffer idiom
// lexicmap/index/align/nw.go's Aligner uses for its score/pointer slices.
type LandauVishkin struct {
	scores   []int
	pointers []lvPointer
}

// NewLandauVishkin returns a scorer with buffers pre-sized for reads up to
// maxReadSize and windows up to maxWindow, so the hot path never grows
// them.
func NewLandauVishkin(maxReadSize, maxWindow int) *LandauVishkin {
	n := (maxReadSize + 1) * (maxWindow + 1)
	return &LandauVishkin{
		scores:   make([]int, n),
		pointers: make([]lvPointer, n),
	}
}

const infScore = math.MaxInt32 / 2

func (lv *LandauVishkin) ensure(n int) {
	if n > len(lv.scores) {
		grow := n - len(lv.scores)
		for i := 0; i < grow; i++ {
			lv.scores = append(lv.scores, 0)
			lv.pointers = append(lv.pointers, 0)
		}
	}
}

// Score bounds the edit distance between read and reference to
// scoreLimit, using a diagonal band of half-width scoreLimit. It returns
// ok=false when no alignment within scoreLimit exists in the supplied
// window.
func (lv *LandauVishkin) Score(read, quality, reference []byte, scoreLimit, seedOffset int) (Result, bool) {
	n := len(read)
	m := len(reference)
	if scoreLimit < 0 || n == 0 || m == 0 {
		return Result{}, false
	}

	band := scoreLimit
	w := m + 1
	lv.ensure((n + 1) * w)
	scores := lv.scores
	pointers := lv.pointers

	idx := func(i, j int) int { return i*w + j }

	lo := func(i int) int {
		v := i - band
		if v < 0 {
			return 0
		}
		return v
	}
	hi := func(i int) int {
		v := i + band
		if v > m {
			return m
		}
		return v
	}

	// Row 0 is free: the read may start anywhere in the padded window, so
	// skipping leading reference bases costs nothing (a fitting alignment,
	// not a global one).
	for j := 0; j <= hi(0); j++ {
		scores[idx(0, j)] = 0
		pointers[idx(0, j)] = lvNone
	}
	for i := 1; i <= n; i++ {
		l, h := lo(i), hi(i)
		if l > 0 {
			scores[idx(i, l-1)] = infScore
		}
		for j := l; j <= h; j++ {
			if j == 0 {
				scores[idx(i, 0)] = i
				pointers[idx(i, 0)] = lvUp
				continue
			}

			best := infScore
			var p lvPointer

			diagCost := 1
			if read[i-1] == reference[j-1] || reference[j-1] == 'N' || read[i-1] == 'N' {
				diagCost = 0
			}
			if j-1 >= lo(i-1) && j-1 <= hi(i-1) {
				if c := scores[idx(i-1, j-1)] + diagCost; c < best {
					best, p = c, lvDiag
				}
			}
			if j >= lo(i-1) && j <= hi(i-1) {
				if c := scores[idx(i-1, j)] + 1; c < best {
					best, p = c, lvUp
				}
			}
			if j-1 >= l {
				if c := scores[idx(i, j-1)] + 1; c < best {
					best, p = c, lvLeft
				}
			}
			scores[idx(i, j)] = best
			pointers[idx(i, j)] = p
		}
	}

	// Pick the best end column on row n within the band: the reference
	// window is sized with slack so the true end need not be column m.
	l, h := lo(n), hi(n)
	bestJ := -1
	bestScore := scoreLimit + 1
	for j := l; j <= h; j++ {
		if s := scores[idx(n, j)]; s < bestScore {
			bestScore, bestJ = s, j
		}
	}
	if bestJ < 0 {
		return Result{}, false
	}

	// Traceback to find the starting column (for the location offset)
	// and to compute the match probability from per-base qualities. Row 0
	// is free, so the traceback stops the moment it reaches i == 0 instead
	// of charging (and weighting matchProb for) the remaining leading
	// reference skip.
	i, j := n, bestJ
	matchProb := 1.0
	var lastIndel byte // 0, 'U' (gap in reference) or 'L' (gap in read)
	for i > 0 {
		switch pointers[idx(i, j)] {
		case lvDiag:
			if read[i-1] == reference[j-1] {
				matchProb *= 1 - phredToProb(quality[i-1])
			} else {
				matchProb *= phredToProb(quality[i-1]) * SNPProb
			}
			lastIndel = 0
			i--
			j--
		case lvUp:
			if lastIndel == 'U' {
				matchProb *= GapExtendProb
			} else {
				matchProb *= GapOpenProb
			}
			lastIndel = 'U'
			i--
		case lvLeft:
			if lastIndel == 'L' {
				matchProb *= GapExtendProb
			} else {
				matchProb *= GapOpenProb
			}
			lastIndel = 'L'
			j--
		default:
			i, j = 0, 0
		}
	}

	return Result{
		EditDistance:     bestScore,
		LocationOffset:   j,
		MatchProbability: matchProb,
	}, true
}
