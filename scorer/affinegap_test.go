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

import "testing"

func flatQual(n int, q byte) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = q
	}
	return out
}

func TestAffineGapExactMatch(t *testing.T) {
	ag := NewAffineGap(DefaultAffineGapPenalties)
	read := []byte("ACGTACGTAC")
	ref := []byte("ACGTACGTAC")
	res, ok := ag.Score(read, flatQual(len(read), 30), ref, 5, 0)
	if !ok {
		t.Fatal("expected a scorable alignment")
	}
	if res.EditDistance != 0 {
		t.Errorf("expected 0 edit distance, got %d", res.EditDistance)
	}
	if res.AGScore != len(read)*DefaultAffineGapPenalties.MatchReward {
		t.Errorf("expected agScore %d, got %d", len(read)*DefaultAffineGapPenalties.MatchReward, res.AGScore)
	}
	if !res.UsedAffineGap {
		t.Error("expected UsedAffineGap to be set")
	}
}

func TestAffineGapWithInsertion(t *testing.T) {
	ag := NewAffineGap(DefaultAffineGapPenalties)
	read := []byte("ACGTTTACGTAC")
	ref := []byte("ACGTACGTACGTACGT")
	res, ok := ag.Score(read, flatQual(len(read), 30), ref, 6, 0)
	if !ok {
		t.Fatal("expected a scorable alignment within the limit")
	}
	if res.EditDistance == 0 {
		t.Error("expected a nonzero edit distance for an inserted run")
	}
}

func TestAffineGapRejectsBeyondLimit(t *testing.T) {
	ag := NewAffineGap(DefaultAffineGapPenalties)
	read := []byte("TTTTTTTTTT")
	ref := []byte("ACGTACGTAC")
	_, ok := ag.Score(read, flatQual(len(read), 30), ref, 1, 0)
	if ok {
		t.Error("expected the scorer to reject an alignment far beyond the score limit")
	}
}

func TestAffineGapClipsLeadingMismatchRun(t *testing.T) {
	ag := NewAffineGap(DefaultAffineGapPenalties)
	// A single leading mismatch costs 4 (SubPenalty); the five-prime bonus
	// of 10 makes clipping it worthwhile.
	read := []byte("TCGTACGTAC")
	ref := []byte("ACGTACGTAC")
	res, ok := ag.Score(read, flatQual(len(read), 30), ref, 5, 0)
	if !ok {
		t.Fatal("expected a scorable alignment")
	}
	if res.BasesClippedBefore != 1 {
		t.Errorf("expected 1 leading base clipped, got %d", res.BasesClippedBefore)
	}
}
