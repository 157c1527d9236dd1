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

import "testing"

func TestAllocateNewCandidateAndFind(t *testing.T) {
	table := newCandidateTable(16, 48, Forward)
	table.reset()

	e, bit, err := table.allocateNewCandidate(1000, 3)
	if err != nil {
		t.Fatal(err)
	}
	if e == nil {
		t.Fatal("expected an element")
	}
	if got := e.baseLocation + int64(bit); got != 1000 {
		t.Errorf("expected location 1000, got %d", got)
	}
	if e.weight != 1 {
		t.Errorf("expected weight 1 after first vote, got %d", e.weight)
	}

	// A second vote for the same exact location increments weight.
	e2, _, err := table.allocateNewCandidate(1000, 3)
	if err != nil {
		t.Fatal(err)
	}
	if e2 != e {
		t.Fatal("expected the same element for a repeated vote")
	}
	if e.weight != 2 {
		t.Errorf("expected weight 2 after second vote, got %d", e.weight)
	}

	// A nearby location within the same maxMergeDist bucket sets another bit
	// but shares the element.
	e3, bit3, err := table.allocateNewCandidate(1001, 4)
	if err != nil {
		t.Fatal(err)
	}
	if e3 != e {
		t.Fatal("expected 1001 to land in the same bucket as 1000")
	}
	if bit3 == bit {
		t.Error("expected a different bit for a different location")
	}
}

func TestEpochResetInvalidatesOldElements(t *testing.T) {
	table := newCandidateTable(16, 48, Forward)
	table.reset()
	table.allocateNewCandidate(2000, 0)
	if table.findElement(2000) == nil {
		t.Fatal("expected to find the element before reset")
	}

	table.reset()
	if table.findElement(2000) != nil {
		t.Error("expected the old element to be invisible after an epoch reset")
	}
}

func TestPoolExhaustionIsAnError(t *testing.T) {
	table := newCandidateTable(1, 48, Forward)
	table.reset()
	if _, _, err := table.allocateNewCandidate(0, 0); err != nil {
		t.Fatal(err)
	}
	if _, _, err := table.allocateNewCandidate(10000, 0); err == nil {
		t.Error("expected pool exhaustion to surface as an error")
	}
}

func TestWeightListsPopHighest(t *testing.T) {
	w := newWeightLists(8)
	a := &HashTableElement{}
	b := &HashTableElement{}
	w.insert(a, 2)
	w.insert(b, 5)

	got := w.popHighest(0)
	if got != b {
		t.Error("expected the weight-5 element to pop before the weight-2 one")
	}
	got = w.popHighest(0)
	if got != a {
		t.Error("expected the weight-2 element next")
	}
	if w.popHighest(0) != nil {
		t.Error("expected no elements left")
	}
}
