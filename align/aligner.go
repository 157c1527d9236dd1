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

import (
	"fmt"

	"snapalign/adjuster"
	"snapalign/genome"
	"snapalign/genomeindex"
	"snapalign/scorer"
)

// seedRoundSize is how many seed offsets one discovery round places before
// the scoring loop gets a chance to drain what's been admitted so far.
const seedRoundSize = 8

// Aligner is a single-threaded, reusable single-read aligner. One Aligner
// must not be shared across goroutines; callers wanting parallel alignment
// construct one Aligner per worker, sharing the read-only Genome and Index.
type Aligner struct {
	g     *genome.Genome
	idx   *genomeindex.Index
	opts  Options
	stats Stats

	tables  [2]*candidateTable
	bitmap  *seedUsedBitmap
	fwdRC   *rcBuffer
	maxSeeds int

	lv      *scorer.LandauVishkin
	ag      *scorer.AffineGap
	hamming scorer.Hamming
	adj     *adjuster.Adjuster

	contigCounts *hitsPerContigCounts
}

// NewAligner constructs an Aligner with every pool sized from opts, g and
// idx. AlignRead reuses these pools; it still makes small per-read
// allocations for the seed offsets and the result bookkeeping.
func NewAligner(g *genome.Genome, idx *genomeindex.Index, opts Options, stats Stats) (*Aligner, error) {
	if opts.MaxMergeDist <= 0 || opts.MaxMergeDist > maxElementWidth || opts.MaxMergeDist%2 != 0 {
		return nil, fmt.Errorf("align: MaxMergeDist must be even and in (0, %d], got %d", maxElementWidth, opts.MaxMergeDist)
	}
	if stats == nil {
		stats = NopStats{}
	}

	seedLen := int(idx.SeedLength())
	maxSeeds := opts.MaxSeedsToUse
	if maxSeeds <= 0 {
		maxSeeds = int(float64(opts.MaxReadSize) / float64(seedLen) * opts.MaxSeedCoverage)
	}
	if maxSeeds <= 0 {
		maxSeeds = 1
	}

	poolSize := maxSeeds * opts.MaxHitsToConsider
	if poolSize <= 0 {
		poolSize = 16
	}

	a := &Aligner{
		g:        g,
		idx:      idx,
		opts:     opts,
		stats:    stats,
		bitmap:   newSeedUsedBitmap(opts.MaxReadSize),
		fwdRC:    newRCBuffer(opts.MaxReadSize),
		maxSeeds: maxSeeds,
		lv:       scorer.NewLandauVishkin(opts.MaxReadSize, opts.MaxK*2+4),
		ag:       scorer.NewAffineGap(scorer.DefaultAffineGapPenalties),
		adj:      adjuster.New(genome.PaddingBases),
	}
	a.tables[Forward] = newCandidateTable(poolSize, opts.MaxMergeDist, Forward)
	a.tables[ReverseComplement] = newCandidateTable(poolSize, opts.MaxMergeDist, ReverseComplement)
	if opts.MaxSecondaryAlignmentsPerContig >= 0 {
		a.contigCounts = newHitsPerContigCounts(len(g.Contigs()))
	}
	return a, nil
}

// AlignRead aligns one read, returning its primary alignment plus any
// secondary and ALT results spec.md's result finalizer selects.
func (a *Aligner) AlignRead(read *Read) (AlignResult, error) {
	bases := read.Bases[read.FrontClip : len(read.Bases)-read.BackClip]
	quality := read.Quality[read.FrontClip : len(read.Quality)-read.BackClip]

	if len(bases) == 0 || len(bases) > a.opts.MaxReadSize {
		a.stats.TooLong()
		return AlignResult{Primary: SingleAlignmentResult{Status: NotFound}, HadRoomForAll: true}, nil
	}
	if countNs(bases) > a.opts.MaxNs {
		a.stats.TooManyNs()
		return AlignResult{Primary: SingleAlignmentResult{Status: NotFound}, HadRoomForAll: true}, nil
	}

	a.tables[Forward].reset()
	a.tables[ReverseComplement].reset()
	a.bitmap.resetAll()
	a.fwdRC.fill(bases, quality)

	seedLen := int(a.idx.SeedLength())
	maxSeeds := a.maxSeeds
	if a.opts.MaxSeedsToUse <= 0 {
		if n := int(float64(len(bases)) / float64(seedLen) * a.opts.MaxSeedCoverage); n > 0 && n < maxSeeds {
			maxSeeds = n
		}
	}
	if n := len(bases) - seedLen + 1; n > 0 && n < maxSeeds {
		maxSeeds = n
	}
	offsets := spreadSeedOffsets(len(bases), seedLen, maxSeeds)

	ctx := &scoringContext{
		g:            a.g,
		lv:           a.lv,
		ag:           a.ag,
		hamming:      a.hamming,
		adj:          a.adj,
		opts:         &a.opts,
		stats:        a.stats,
		all:          &scoreSet{bestScore: a.opts.MaxK + 1},
		nonALT:       &scoreSet{bestScore: a.opts.MaxK + 1},
		hadRoomAll:   true,
		contigCounts: a.contigCounts,
	}

	var lowestPossibleScore [2]int
	popularSeedsSkipped := 0

	placed := 0
	for placed < len(offsets) {
		end := placed + seedRoundSize
		if end > len(offsets) {
			end = len(offsets)
		}
		n, round, err := runDiscoveryRound(bases, a.fwdRC.rc, a.idx, seedLen, a.tables, a.bitmap, offsets, placed, end, &a.opts, a.stats, &lowestPossibleScore)
		if err != nil {
			return AlignResult{}, err
		}
		placed += n
		popularSeedsSkipped += round.popularSeedsSkipped

		runScoringPass(a.tables, bases, quality, a.fwdRC.rc, a.fwdRC.rcQual, ctx, a.opts.MinWeightToCheck)

		limit0 := scoreLimitFor(&a.opts, ctx.all, ctx.nonALT, false)
		limit1 := limit0
		if placed >= len(offsets)/2 && lowestPossibleScore[Forward] > limit0 && lowestPossibleScore[ReverseComplement] > limit1 {
			break
		}
		if a.opts.StopOnFirstHit && ctx.all.haveBest {
			break
		}
	}

	// Final drain: anything left above the weight floor gets scored even
	// if discovery stopped early. Skipped when StopOnFirstHit already
	// broke out of the loop, so no candidate is scored after the first hit.
	if !a.opts.StopOnFirstHit || !ctx.all.haveBest {
		runScoringPass(a.tables, bases, quality, a.fwdRC.rc, a.fwdRC.rcQual, ctx, a.opts.MinWeightToCheck)
	}

	if a.opts.UseAffineGap && !a.opts.UseHamming {
		rescoreAffineGap(bases, quality, a.fwdRC.rc, a.fwdRC.rcQual, ctx)
	}

	result := finalize(ctx.all, ctx.nonALT, ctx.secondary, ctx.hadRoomAll, a.g, &a.opts, a.contigCounts)
	result.PopularSeedsSkipped = popularSeedsSkipped
	result.AllSeedsChecked = placed == len(offsets) && popularSeedsSkipped == 0
	return result, nil
}
