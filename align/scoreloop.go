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
	"snapalign/adjuster"
	"snapalign/genome"
	"snapalign/scorer"
)

// deferredCandidate is a location captured during the Landau-Vishkin pass
// for a possible affine-gap rescore, per spec.md §4.5's "affine-gap
// deferral".
type deferredCandidate struct {
	location int64
	dir      Direction
	editDist int
}

// maxDeferredCandidates bounds the affine-gap rescore list to the "short
// list" spec.md describes, so a high-coverage read can't blow up the
// second pass.
const maxDeferredCandidates = 64

// scoreLimitFor computes scoreLimit(forALT) = min(maxK, best+extraSearchDepth),
// using the non-ALT ScoreSet when altAwareness is enabled and the caller
// isn't scoring for the ALT track.
func scoreLimitFor(opts *Options, all, nonALT *scoreSet, forALT bool) int {
	best := all.bestScore
	if opts.AltAwareness && !forALT {
		best = nonALT.bestScore
	}
	limit := best + opts.ExtraSearchDepth
	if limit > opts.MaxK {
		limit = opts.MaxK
	}
	return limit
}

// contigDistances reports how many bases separate loc from the start and
// end of its own contig, for Adjuster's edge-clamping.
func contigDistances(g *genome.Genome, loc int64, readLen int) (toStart, toEnd int64) {
	c := g.ContigAt(loc)
	if c == nil {
		return 0, 0
	}
	toStart = loc - c.BeginningLocation
	toEnd = c.End() - (loc + int64(readLen))
	return toStart, toEnd
}

// scoringContext bundles the collaborators and running trackers the
// scoring loop threads through every candidate it visits.
type scoringContext struct {
	g           *genome.Genome
	lv          scorer.Scorer
	ag          scorer.Scorer
	hamming     scorer.Scorer
	adj         *adjuster.Adjuster
	opts        *Options
	stats       Stats
	all         *scoreSet
	nonALT      *scoreSet
	secondary   []SingleAlignmentResult
	hadRoomAll  bool
	contigCounts *hitsPerContigCounts
	deferred    []deferredCandidate
}

// scoreCandidate runs one scorer over one candidate location and, if
// within the limit, folds it into the running ScoreSets and secondary
// buffer. useAG selects the affine-gap back-end instead of Landau-Vishkin.
func (ctx *scoringContext) scoreCandidate(bases, quality []byte, loc int64, dir Direction, seedOffset int, forALT bool, useAG bool) {
	limit := scoreLimitFor(ctx.opts, ctx.all, ctx.nonALT, forALT)
	if limit < 0 {
		return
	}

	slack := limit
	if slack < 2 {
		slack = 2
	}
	refStart := loc - int64(slack)
	if refStart < 0 {
		refStart = 0
	}
	ref := ctx.g.Bases(refStart, len(bases)+2*slack)
	if len(ref) < len(bases) {
		return
	}

	var sc scorer.Scorer = ctx.lv
	scoreRef := ref
	switch {
	case ctx.opts.UseHamming:
		// Hamming compares from offset 0 of its window, so it gets the
		// window starting at the candidate location itself.
		sc = ctx.hamming
		if off := int(loc - refStart); off <= len(ref) {
			scoreRef = ref[off:]
		}
	case useAG:
		sc = ctx.ag
	}

	res, ok := sc.Score(bases, quality, scoreRef, limit, seedOffset)
	ctx.stats.CandidateScored()
	if !ok {
		return
	}
	if ctx.opts.UseHamming {
		res.LocationOffset = slack
	}

	depth := res.EditDistance - ctx.all.bestScore
	if depth < 0 {
		depth = 0
	}
	ctx.stats.HitCountAtExtraSearchDepth(depth)
	if ctx.all.haveBest {
		ctx.stats.LVScoreAfterBestFound()
	}

	anchorLoc := loc - int64(slack) + int64(res.LocationOffset)
	toStart, toEnd := contigDistances(ctx.g, anchorLoc, len(bases))
	adjLoc, clipBefore, clipAfter := anchorLoc, res.BasesClippedBefore, res.BasesClippedAfter
	if !ctx.opts.IgnoreAlignmentAdjustmentsForOm {
		adjLoc, clipBefore, clipAfter = ctx.adj.Adjust(anchorLoc, res, toStart, toEnd)
	}

	maxMergeDist := int64(ctx.opts.MaxMergeDist)
	ctx.all.updateProbabilitiesForNearbyMatch(adjLoc, dir, res.MatchProbability, maxMergeDist)
	ctx.all.updateBestScore(adjLoc, dir, res.EditDistance, res.AGScore, res.MatchProbability, clipBefore, clipAfter, res.UsedAffineGap)

	contig := ctx.g.ContigAt(adjLoc)
	isALT := contig != nil && contig.IsALT
	if !isALT {
		ctx.nonALT.updateProbabilitiesForNearbyMatch(adjLoc, dir, res.MatchProbability, maxMergeDist)
		ctx.nonALT.updateBestScore(adjLoc, dir, res.EditDistance, res.AGScore, res.MatchProbability, clipBefore, clipAfter, res.UsedAffineGap)
	}

	if ctx.opts.MaxEditDistanceForSecondaryResults >= 0 && res.EditDistance <= ctx.all.bestScore+ctx.opts.MaxEditDistanceForSecondaryResults {
		if len(ctx.secondary) < ctx.opts.MaxSecondaryResults {
			ctx.secondary = append(ctx.secondary, SingleAlignmentResult{
				Location:      adjLoc,
				Direction:     dir,
				EditDistance:  res.EditDistance,
				AGScore:       res.AGScore,
				UsedAffineGap: res.UsedAffineGap,
				Contig:        contig,
				ClippedBefore: clipBefore,
				ClippedAfter:  clipAfter,
			})
		} else {
			ctx.hadRoomAll = false
		}
	}

	if !useAG && ctx.opts.UseAffineGap && res.EditDistance <= ctx.all.bestScore+ctx.opts.ExtraSearchDepth {
		if len(ctx.deferred) < maxDeferredCandidates {
			ctx.deferred = append(ctx.deferred, deferredCandidate{location: loc, dir: dir, editDist: res.EditDistance})
		}
	}
}

// drainElement scores every not-yet-scored bit of e, in lowest-bit-first
// order, against the supplied strand's bases/quality. A bit is elided
// (marked scored without ever calling the scorer) once e.lowestPossibleScore
// exceeds the current scoreLimit for its contig: the bound can only grow as
// more seeds land, so once out of reach it stays out of reach for the rest
// of this read. With StopOnFirstHit, nothing more is scored once a hit has
// been recorded.
func (ctx *scoringContext) drainElement(e *HashTableElement, fwdBases, fwdQual, rcBases, rcQual []byte) {
	for {
		if ctx.opts.StopOnFirstHit && ctx.all.haveBest {
			return
		}
		bit := e.nextUnscoredBit()
		if bit < 0 {
			break
		}
		c := &e.candidates[bit]
		loc := e.baseLocation + int64(bit)
		e.markScored(bit)

		bases, quality := fwdBases, fwdQual
		if e.direction == ReverseComplement {
			bases, quality = rcBases, rcQual
		}
		contig := ctx.g.ContigAt(loc)
		forALT := contig != nil && contig.IsALT
		if e.lowestPossibleScore > scoreLimitFor(ctx.opts, ctx.all, ctx.nonALT, forALT) {
			continue
		}
		ctx.scoreCandidate(bases, quality, loc, e.direction, c.seedOffset, forALT, false)
	}
}

// runScoringPass drains both direction tables' weight lists down to
// minWeightToCheck, scoring every admitted element with Landau-Vishkin.
func runScoringPass(tables [2]*candidateTable, fwdBases, fwdQual, rcBases, rcQual []byte, ctx *scoringContext, minWeightToCheck int) {
	for dir := 0; dir < 2; dir++ {
		t := tables[dir]
		for {
			e := t.weights.popHighest(minWeightToCheck)
			if e == nil {
				break
			}
			ctx.drainElement(e, fwdBases, fwdQual, rcBases, rcQual)
		}
	}
}

// rescoreAffineGap re-scores every deferred candidate with the
// vectorized affine-gap back-end, per spec.md §4.5's second pass.
func rescoreAffineGap(fwdBases, fwdQual, rcBases, rcQual []byte, ctx *scoringContext) {
	for _, d := range ctx.deferred {
		bases, quality := fwdBases, fwdQual
		if d.dir == ReverseComplement {
			bases, quality = rcBases, rcQual
		}
		contig := ctx.g.ContigAt(d.location)
		forALT := contig != nil && contig.IsALT
		ctx.scoreCandidate(bases, quality, d.location, d.dir, 0, forALT, true)
	}
}
