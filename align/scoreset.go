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

// scoreSet tracks the best-scoring alignment observed so far and the sum
// of match probabilities across every scored candidate. One instance
// tracks all alignments; a second, parallel instance tracks non-ALT
// alignments only, for ALT-awareness.
type scoreSet struct {
	bestScore                   int
	bestAGScore                 int
	bestScoreGenomeLocation     int64
	bestScoreOrigGenomeLocation int64
	direction                   Direction
	basesClippedBefore          int
	basesClippedAfter           int
	matchProbabilityForBest     float64
	usedAffineGapScoring        bool

	probabilityOfAllCandidates float64

	haveBest bool

	lastLocation int64
	lastDir      Direction
	lastProb     float64
	haveLast     bool
}

func newScoreSet(maxK int) scoreSet {
	return scoreSet{bestScore: maxK + 1}
}

func (s *scoreSet) reset(maxK int) {
	*s = scoreSet{bestScore: maxK + 1}
}

// updateProbabilitiesForNearbyMatch folds loc/matchProb into the running
// probability sum, first backing out the previous candidate's
// contribution if it sits within maxMergeDist of loc on the same strand --
// this is the "nearby match" double-counting fix-up for indel neighbors.
func (s *scoreSet) updateProbabilitiesForNearbyMatch(loc int64, dir Direction, matchProb float64, maxMergeDist int64) {
	if s.haveLast && dir == s.lastDir {
		delta := loc - s.lastLocation
		if delta < 0 {
			delta = -delta
		}
		if delta <= maxMergeDist {
			s.probabilityOfAllCandidates -= s.lastProb
			if s.probabilityOfAllCandidates < 0 {
				s.probabilityOfAllCandidates = 0
			}
		}
	}
	s.probabilityOfAllCandidates += matchProb
	s.lastLocation, s.lastDir, s.lastProb, s.haveLast = loc, dir, matchProb, true
}

// updateBestScore considers one freshly scored candidate as a replacement
// for the current best, per the §4.5 tie-break: higher match probability,
// then lower edit distance, then (affine-gap candidates only) higher
// affine-gap score. It reports whether the candidate became the new best.
func (s *scoreSet) updateBestScore(loc int64, dir Direction, editDistance, agScore int, matchProb float64, clipBefore, clipAfter int, usedAG bool) bool {
	if !s.haveBest {
		s.set(loc, dir, editDistance, agScore, matchProb, clipBefore, clipAfter, usedAG)
		return true
	}

	better := false
	switch {
	case matchProb > s.matchProbabilityForBest:
		better = true
	case matchProb < s.matchProbabilityForBest:
		better = false
	case editDistance < s.bestScore:
		better = true
	case editDistance > s.bestScore:
		better = false
	case usedAG && s.usedAffineGapScoring && agScore > s.bestAGScore:
		better = true
	}

	if better {
		s.set(loc, dir, editDistance, agScore, matchProb, clipBefore, clipAfter, usedAG)
	}
	return better
}

func (s *scoreSet) set(loc int64, dir Direction, editDistance, agScore int, matchProb float64, clipBefore, clipAfter int, usedAG bool) {
	s.haveBest = true
	s.bestScore = editDistance
	s.bestAGScore = agScore
	s.bestScoreGenomeLocation = loc
	s.bestScoreOrigGenomeLocation = loc
	s.direction = dir
	s.basesClippedBefore = clipBefore
	s.basesClippedAfter = clipAfter
	s.matchProbabilityForBest = matchProb
	s.usedAffineGapScoring = usedAG
}
