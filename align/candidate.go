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

import "math/bits"

// unscoredCandidate is the sentinel score for a candidate position that a
// seed has voted for but that scoring has not yet visited.
const unscoredCandidate = 0xffff

// maxElementWidth bounds HashTableElement's bitmask width; maxMergeDist
// must never exceed it.
const maxElementWidth = 64

// candidate is a tentative alignment position within one HashTableElement,
// addressed by its bit offset from the element's base location.
type candidate struct {
	score              int
	seedOffset         int
	matchProbability   float64
	origGenomeLocation int64
}

// HashTableElement groups up to maxMergeDist consecutive genome positions,
// in one direction, under a single weight and score bound. It lives in the
// candidate table's fixed-size element pool; its bucket-chain and
// weight-list links are pointers into that pool, which is never
// reallocated, so they stay valid across the per-read epoch reset.
type HashTableElement struct {
	next *HashTableElement // bucket chain

	weightNext, weightPrev *HashTableElement // weight-bucket doubly linked list
	weight                 int
	inWeightList           bool

	baseLocation     int64
	candidatesUsed   uint64
	candidatesScored uint64
	candidates       [maxElementWidth]candidate

	// lowestPossibleScore is seedsPlaced-in-this-table minus this element's
	// weight at the time it last changed: every seed placed that didn't
	// vote for this location is a lower bound on its true edit distance.
	// drainElement elides a candidate once this exceeds the current
	// scoreLimit, since the bound can only grow as more seeds land.
	lowestPossibleScore int
	bestScore           int
	bestAGScore         int

	bestScoreGenomeLocation     int64
	bestScoreOrigGenomeLocation int64
	matchProbabilityForBestScore float64
	usedAffineGapScoring         bool
	basesClippedBefore           int
	basesClippedAfter            int

	direction                 Direction
	allExtantCandidatesScored bool

	epoch int
}

// bitFor returns the bit offset of loc within this element, given the
// element's baseLocation and the configured maxMergeDist.
func bitFor(loc, baseLocation int64) int {
	return int(loc - baseLocation)
}

// baseLocationFor floors loc to the start of its maxMergeDist-wide bucket.
func baseLocationFor(loc int64, maxMergeDist int) int64 {
	md := int64(maxMergeDist)
	q := loc / md
	if loc%md < 0 {
		q--
	}
	return q * md
}

// nextUnscoredBit returns the lowest set bit present in candidatesUsed but
// absent from candidatesScored, or -1 when none remain.
func (e *HashTableElement) nextUnscoredBit() int {
	remaining := e.candidatesUsed &^ e.candidatesScored
	if remaining == 0 {
		return -1
	}
	return bits.TrailingZeros64(remaining)
}

func (e *HashTableElement) markScored(bit int) {
	e.candidatesScored |= 1 << uint(bit)
}

func (e *HashTableElement) hasUnscored() bool {
	return e.candidatesUsed&^e.candidatesScored != 0
}
