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

// Stats is the opaque counter sink AlignRead reports into; the core only
// ever increments these, never reads them back.
type Stats interface {
	TooManyNs()
	TooLong()
	PopularSeedSkipped()
	FirstPassSeedNotSkipped()
	HitCountAtExtraSearchDepth(depth int)
	CandidateScored()
	LVScoreAfterBestFound()
}

// NopStats discards every counter; it is the default when a caller
// doesn't care about instrumentation.
type NopStats struct{}

func (NopStats) TooManyNs()                        {}
func (NopStats) TooLong()                           {}
func (NopStats) PopularSeedSkipped()                {}
func (NopStats) FirstPassSeedNotSkipped()           {}
func (NopStats) HitCountAtExtraSearchDepth(int)     {}
func (NopStats) CandidateScored()                   {}
func (NopStats) LVScoreAfterBestFound()             {}

// CountingStats is a simple in-process implementation of Stats, useful in
// tests and single-threaded batch runs (the aligner itself is never
// shared across goroutines, so no synchronization is needed here).
type CountingStats struct {
	TooManyNsCount            int64
	TooLongCount               int64
	PopularSeedsSkippedCount   int64
	FirstPassSeedsNotSkipped   int64
	HitCountByExtraSearchDepth []int64
	CandidatesScoredCount      int64
	LVScoresAfterBestFoundCount int64
}

func NewCountingStats() *CountingStats {
	return &CountingStats{HitCountByExtraSearchDepth: make([]int64, 8)}
}

func (s *CountingStats) TooManyNs()              { s.TooManyNsCount++ }
func (s *CountingStats) TooLong()                 { s.TooLongCount++ }
func (s *CountingStats) PopularSeedSkipped()      { s.PopularSeedsSkippedCount++ }
func (s *CountingStats) FirstPassSeedNotSkipped()  { s.FirstPassSeedsNotSkipped++ }
func (s *CountingStats) CandidateScored()          { s.CandidatesScoredCount++ }
func (s *CountingStats) LVScoreAfterBestFound()    { s.LVScoresAfterBestFoundCount++ }
func (s *CountingStats) HitCountAtExtraSearchDepth(depth int) {
	if depth < 0 {
		return
	}
	for len(s.HitCountByExtraSearchDepth) <= depth {
		s.HitCountByExtraSearchDepth = append(s.HitCountByExtraSearchDepth, 0)
	}
	s.HitCountByExtraSearchDepth[depth]++
}
