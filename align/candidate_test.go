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

func TestBaseLocationForFloorsToBucket(t *testing.T) {
	if got := baseLocationFor(100, 48); got != 96 {
		t.Errorf("baseLocationFor(100, 48) = %d, want 96", got)
	}
	if got := baseLocationFor(95, 48); got != 48 {
		t.Errorf("baseLocationFor(95, 48) = %d, want 48", got)
	}
	if got := baseLocationFor(0, 48); got != 0 {
		t.Errorf("baseLocationFor(0, 48) = %d, want 0", got)
	}
}

func TestBitForRoundTrips(t *testing.T) {
	base := baseLocationFor(1037, 48)
	bit := bitFor(1037, base)
	if base+int64(bit) != 1037 {
		t.Errorf("base %d + bit %d != original location 1037", base, bit)
	}
}

func TestNextUnscoredBitAndMarkScored(t *testing.T) {
	e := &HashTableElement{}
	e.candidatesUsed = 1<<0 | 1<<3 | 1<<5

	bit := e.nextUnscoredBit()
	if bit != 0 {
		t.Fatalf("expected bit 0 first, got %d", bit)
	}
	e.markScored(bit)

	bit = e.nextUnscoredBit()
	if bit != 3 {
		t.Fatalf("expected bit 3 next, got %d", bit)
	}
	e.markScored(bit)

	bit = e.nextUnscoredBit()
	if bit != 5 {
		t.Fatalf("expected bit 5 next, got %d", bit)
	}
	e.markScored(bit)

	if e.nextUnscoredBit() != -1 {
		t.Error("expected no unscored bits left")
	}
	if e.hasUnscored() {
		t.Error("expected hasUnscored false once every bit is scored")
	}
}
