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

// weightLists maintains one doubly linked list of HashTableElements per
// weight value, giving O(1) "pop highest weight" without a heap. The
// number of lists is bounded by the element pool size plus one, since no
// element can receive more seed votes than the pool has room for.
type weightLists struct {
	heads   []*HashTableElement
	highest int
}

func newWeightLists(maxWeight int) weightLists {
	return weightLists{heads: make([]*HashTableElement, maxWeight+2)}
}

func (w *weightLists) reset() {
	for i := range w.heads {
		w.heads[i] = nil
	}
	w.highest = 0
}

// insert links e at the front of the bucket for weight, growing the
// tracked highest-used bucket if needed. e.weight is set to weight.
func (w *weightLists) insert(e *HashTableElement, weight int) {
	if weight >= len(w.heads) {
		weight = len(w.heads) - 1
	}
	e.weight = weight
	e.weightPrev = nil
	e.weightNext = w.heads[weight]
	if e.weightNext != nil {
		e.weightNext.weightPrev = e
	}
	w.heads[weight] = e
	e.inWeightList = true
	if weight > w.highest {
		w.highest = weight
	}
}

// remove unlinks e from its current weight bucket, if it is linked into
// one; a no-op otherwise (an element popped for scoring is no longer
// linked until a later seed vote re-queues it via incrementWeight).
func (w *weightLists) remove(e *HashTableElement) {
	if !e.inWeightList {
		return
	}
	if e.weightPrev != nil {
		e.weightPrev.weightNext = e.weightNext
	} else {
		w.heads[e.weight] = e.weightNext
	}
	if e.weightNext != nil {
		e.weightNext.weightPrev = e.weightPrev
	}
	e.weightNext, e.weightPrev = nil, nil
	e.inWeightList = false
}

// popHighest removes and returns the head of the highest nonempty bucket
// at or above minWeight, descending w.highest as buckets empty out. It
// returns nil once no bucket at or above minWeight holds an element.
func (w *weightLists) popHighest(minWeight int) *HashTableElement {
	for w.highest >= minWeight {
		if e := w.heads[w.highest]; e != nil {
			w.remove(e)
			return e
		}
		w.highest--
	}
	return nil
}
