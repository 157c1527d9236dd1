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

package adjuster

import (
	"testing"

	"snapalign/scorer"
)

func TestAdjustFoldsLocationOffset(t *testing.T) {
	a := New(500)
	result := scorer.Result{LocationOffset: 3, BasesClippedBefore: 2, BasesClippedAfter: 1}

	loc, before, after := a.Adjust(1000, result, 10000, 10000)
	if loc != 1003 {
		t.Errorf("expected location 1003, got %d", loc)
	}
	if before != 2 || after != 1 {
		t.Errorf("expected clips unchanged (2,1) deep inside a contig, got (%d,%d)", before, after)
	}
}

func TestAdjustClampsAtContigEdge(t *testing.T) {
	a := New(500)
	result := scorer.Result{BasesClippedBefore: 10, BasesClippedAfter: 10}

	// Only 3 bases before the previous contig's end, plus 500 bases of
	// padding: clip is clamped to 503, well above the proposed 10, so it
	// passes through unchanged here...
	loc, before, after := a.Adjust(2000, result, 3, 3)
	if loc != 2000 {
		t.Errorf("expected location unchanged, got %d", loc)
	}
	if before != 10 || after != 10 {
		t.Errorf("expected (10,10) since padding covers it, got (%d,%d)", before, after)
	}

	// ...but with no padding at all, a proposed clip bigger than the
	// distance to the contig edge must be clamped down to that distance.
	a2 := New(0)
	_, before2, after2 := a2.Adjust(2000, result, 3, 4)
	if before2 != 3 {
		t.Errorf("expected clippedBefore clamped to 3, got %d", before2)
	}
	if after2 != 4 {
		t.Errorf("expected clippedAfter clamped to 4, got %d", after2)
	}
}
