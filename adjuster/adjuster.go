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

// Package adjuster implements the AlignmentAdjuster collaborator: the
// post-scoring step that folds a scorer's proposed location offset into an
// absolute genome location and clamps its leading/trailing clip counts to
// the bases actually available before the next contig boundary.
package adjuster

import "snapalign/scorer"

// Adjuster clamps clip proposals against the genome's padding-bases-between-
// contigs constant, so a candidate near a contig edge never reports clipping
// that would reach into, or past, the neighboring contig.
type Adjuster struct {
	paddingBases int64
}

// New returns an Adjuster using paddingBases as the bound on how far a
// clip may extend past a candidate's own contig (mirrors genome.PaddingBases).
func New(paddingBases int64) *Adjuster {
	return &Adjuster{paddingBases: paddingBases}
}

// Adjust takes a scorer.Result for a candidate anchored at rawLocation and
// returns the absolute genome location (rawLocation shifted by the
// scorer's LocationOffset) along with clip counts clamped so they never
// exceed the bases available before the previous/next contig boundary.
// distanceToPrevContigEnd and distanceToNextContigStart are the number of
// bases between rawLocation and the edges of its own contig; either may be
// arbitrarily large when the candidate sits well inside its contig.
func (a *Adjuster) Adjust(rawLocation int64, result scorer.Result, distanceToPrevContigEnd, distanceToNextContigStart int64) (location int64, clippedBefore, clippedAfter int) {
	location = rawLocation + int64(result.LocationOffset)
	clippedBefore = result.BasesClippedBefore
	clippedAfter = result.BasesClippedAfter

	maxBefore := distanceToPrevContigEnd + a.paddingBases
	if maxBefore < 0 {
		maxBefore = 0
	}
	if int64(clippedBefore) > maxBefore {
		clippedBefore = int(maxBefore)
	}

	maxAfter := distanceToNextContigStart + a.paddingBases
	if maxAfter < 0 {
		maxAfter = 0
	}
	if int64(clippedAfter) > maxAfter {
		clippedAfter = int(maxAfter)
	}

	return location, clippedBefore, clippedAfter
}
