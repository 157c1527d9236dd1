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

import "fmt"

// hashTableAnchor is a bucket head. It belongs to the table's current
// epoch only when epoch matches; otherwise the bucket is logically empty
// without ever having been zeroed.
type hashTableAnchor struct {
	element *HashTableElement
	epoch   int
}

// candidateTable is the per-direction, epoch-reset hash table over
// HashTableElements. Its element pool and anchor arrays are sized once at
// construction and never grow afterward.
type candidateTable struct {
	anchors      []hashTableAnchor
	tableMask    uint64 // tableSize - 1; tableSize is a power of two
	maxMergeDist int

	pool     []HashTableElement
	poolUsed int

	weights          weightLists
	epoch            int
	direction        Direction
	seedsPlaced      int // seeds placed into this table this read, feeding lowestPossibleScore
}

func newCandidateTable(poolSize int, maxMergeDist int, dir Direction) *candidateTable {
	tableSize := nextPowerOfTwo(2 * poolSize)
	if tableSize < 16 {
		tableSize = 16
	}
	return &candidateTable{
		anchors:      make([]hashTableAnchor, tableSize),
		tableMask:    uint64(tableSize - 1),
		maxMergeDist: maxMergeDist,
		pool:         make([]HashTableElement, poolSize),
		weights:      newWeightLists(poolSize),
		direction:    dir,
	}
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// reset bumps the epoch, logically invalidating every anchor and element,
// and rewinds the pool allocator, without zeroing any backing memory.
func (t *candidateTable) reset() {
	t.epoch++
	t.poolUsed = 0
	t.seedsPlaced = 0
	t.weights.reset()
}

// recordSeedPlaced counts one more seed placed into this direction's table,
// whether or not it produced any hits. Every existing element's
// lowestPossibleScore bound -- seedsPlaced minus the votes it actually
// received -- grows as seeds that don't support it keep landing.
func (t *candidateTable) recordSeedPlaced() {
	t.seedsPlaced++
}

func (t *candidateTable) hash(key int64) uint64 {
	return (uint64(key) * 131) & t.tableMask
}

// findElement returns the element owning loc in the current epoch, or nil.
func (t *candidateTable) findElement(loc int64) *HashTableElement {
	base := baseLocationFor(loc, t.maxMergeDist)
	h := t.hash(base)
	anchor := &t.anchors[h]
	if anchor.epoch != t.epoch {
		return nil
	}
	for e := anchor.element; e != nil; e = e.next {
		if e.epoch == t.epoch && e.baseLocation == base {
			return e
		}
	}
	return nil
}

// findCandidate locates (or would locate) loc's element and bit, and
// reports whether that bit is already marked used.
func (t *candidateTable) findCandidate(loc int64) (elem *HashTableElement, bit int, present bool) {
	base := baseLocationFor(loc, t.maxMergeDist)
	bit = bitFor(loc, base)
	elem = t.findElement(loc)
	if elem == nil {
		return nil, bit, false
	}
	return elem, bit, elem.candidatesUsed&(1<<uint(bit)) != 0
}

// allocateNewCandidate records a seed vote for loc: if no element owns
// loc's bucket yet in this epoch, one is popped from the pool and linked
// into both the hash bucket chain and the weight-1 bucket; otherwise the
// existing element's weight is incremented. It returns the owning element
// and the origin candidate's bit. The caller is expected to have already
// called recordSeedPlaced for this seed, so the element's lowestPossibleScore
// is computed against an up to date seedsPlaced count.
func (t *candidateTable) allocateNewCandidate(loc int64, seedOffset int) (*HashTableElement, int, error) {
	elem, bit, present := t.findCandidate(loc)
	if present {
		t.incrementWeight(elem)
		return elem, bit, nil
	}
	if elem != nil {
		// Element exists (another position in the bucket already scored
		// or voted), but this particular bit is new.
		elem.candidatesUsed |= 1 << uint(bit)
		elem.candidates[bit] = candidate{score: unscoredCandidate, seedOffset: seedOffset, origGenomeLocation: loc}
		t.incrementWeight(elem)
		return elem, bit, nil
	}

	if t.poolUsed >= len(t.pool) {
		return nil, 0, fmt.Errorf("align: element pool exhausted (size %d); raise MaxHitsToConsider/MaxSeedsToUse budget", len(t.pool))
	}
	e := &t.pool[t.poolUsed]
	t.poolUsed++
	base := baseLocationFor(loc, t.maxMergeDist)
	*e = HashTableElement{
		baseLocation: base,
		direction:    t.direction,
		epoch:        t.epoch,
		weight:       0,
	}
	e.candidatesUsed = 1 << uint(bit)
	e.candidates[bit] = candidate{score: unscoredCandidate, seedOffset: seedOffset, origGenomeLocation: loc}

	h := t.hash(base)
	anchor := &t.anchors[h]
	if anchor.epoch == t.epoch {
		e.next = anchor.element
	} else {
		e.next = nil
	}
	anchor.element = e
	anchor.epoch = t.epoch

	t.weights.insert(e, 1)
	e.lowestPossibleScore = t.seedsPlaced - e.weight
	return e, bit, nil
}

// incrementWeight unlinks e from its current weight bucket (if any -- an
// element already popped for scoring may have since been delisted) and
// relinks it one bucket higher, re-queuing it for another scoring pass.
func (t *candidateTable) incrementWeight(e *HashTableElement) {
	t.weights.remove(e)
	t.weights.insert(e, e.weight+1)
	e.lowestPossibleScore = t.seedsPlaced - e.weight
}
