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

import "snapalign/genome"

// Status classifies how AlignRead's search concluded.
type Status int

const (
	NotFound Status = iota
	SingleHit
	MultipleHits
)

func (s Status) String() string {
	switch s {
	case SingleHit:
		return "SingleHit"
	case MultipleHits:
		return "MultipleHits"
	default:
		return "NotFound"
	}
}

// SingleAlignmentResult is one reported alignment: the primary, the first
// ALT alignment, or one secondary.
type SingleAlignmentResult struct {
	Status        Status
	Location      int64
	Direction     Direction
	EditDistance  int
	AGScore       int
	UsedAffineGap bool
	MAPQ          int
	Contig        *genome.Contig
	ClippedBefore int
	ClippedAfter  int
}

// AlignResult is everything AlignRead returns for one read.
type AlignResult struct {
	Primary       SingleAlignmentResult
	FirstALT      *SingleAlignmentResult
	Secondary     []SingleAlignmentResult
	HadRoomForAll bool
	PopularSeedsSkipped int

	// AllSeedsChecked is the original's checkedAllSeeds() contract: true
	// iff every seed offset was placed (discovery ran to completion
	// rather than exiting early on the lowest-possible-score bound or
	// StopOnFirstHit) and none of them was skipped for popularity.
	AllSeedsChecked bool
}
