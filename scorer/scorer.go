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

// Package scorer implements the "Scorer" collaborator of the aligner core:
// the Landau-Vishkin bounded edit-distance back-end, the vectorized
// affine-gap back-end, and a Hamming (substitution-only) back-end.
package scorer

import "math"

// Priors used to turn an alignment's edit operations into a match
// probability. They are fixed priors, not derived from the read's own
// quality string beyond the per-base error rate; kept as package vars
// (rather than consts) so a caller can recalibrate them, the way SNAP's
// MAPQ parameters are tunable compile-time constants.
var (
	SNPProb        = 0.001
	GapOpenProb    = 0.001
	GapExtendProb  = 0.5
)

// Result is the outcome of scoring one candidate location against the
// read, in the shape both back-ends (and Hamming) populate.
type Result struct {
	EditDistance        int     // edit-distance estimate; meaningful only when Score returns ok
	LocationOffset       int     // shift to apply to the candidate's genome location (leading indels)
	BasesClippedBefore   int
	BasesClippedAfter    int
	MatchProbability     float64
	AGScore              int  // affine-gap score; only meaningful when UsedAffineGap
	UsedAffineGap        bool
}

// UnusedScore is the sentinel for "never scored", matching BaseAligner's
// UnusedScoreValue (0xffff in the original).
const UnusedScore = 0xffff

// Scorer computes an alignment of read (with its per-base qualities)
// against a reference window, subject to a score limit used for early
// termination. ok is false when no alignment within scoreLimit was found
// (or the read and window cannot be scored); the Result is then the zero
// value.
type Scorer interface {
	Score(read, quality, reference []byte, scoreLimit int, seedOffset int) (Result, bool)
}

// phredToProb converts a Phred+33-style raw quality byte (already
// de-based, i.e. 0 means Q0) into a base-call error probability.
func phredToProb(q byte) float64 {
	if q > 60 {
		q = 60
	}
	return math.Pow(10, -float64(q)/10)
}
