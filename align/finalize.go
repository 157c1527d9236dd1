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

// resultFrom packages a ScoreSet's current best into a SingleAlignmentResult.
func resultFrom(s *scoreSet, g *genome.Genome, status Status) SingleAlignmentResult {
	return SingleAlignmentResult{
		Status:        status,
		Location:      s.bestScoreGenomeLocation,
		Direction:     s.direction,
		EditDistance:  s.bestScore,
		AGScore:       s.bestAGScore,
		UsedAffineGap: s.usedAffineGapScoring,
		Contig:        g.ContigAt(s.bestScoreGenomeLocation),
		ClippedBefore: s.basesClippedBefore,
		ClippedAfter:  s.basesClippedAfter,
	}
}

// withinGap reports whether candidate is within gap of best, in the
// scorer-specific space spec.md §9's second open question leaves
// unspecified: edit-distance space (lower is better) when neither side
// used affine-gap scoring, affine-gap-score space (higher is better,
// comparison direction inverted) otherwise.
func withinGap(best, candidate *scoreSet, gap int) bool {
	if best.usedAffineGapScoring || candidate.usedAffineGapScoring {
		return best.bestAGScore-candidate.bestAGScore <= gap
	}
	return candidate.bestScore-best.bestScore <= gap
}

// finalize implements spec.md §4.7: primary/ALT decision, secondary
// filtering/dedup/per-contig cap, and MAPQ.
func finalize(all, nonALT *scoreSet, secondary []SingleAlignmentResult, hadRoomForAll bool, g *genome.Genome, opts *Options, contigCounts *hitsPerContigCounts) AlignResult {
	if !all.haveBest {
		return AlignResult{Primary: SingleAlignmentResult{Status: NotFound}, HadRoomForAll: true}
	}

	bestContig := g.ContigAt(all.bestScoreGenomeLocation)
	bestIsALT := bestContig != nil && bestContig.IsALT

	var primarySet, altSet *scoreSet
	var haveALT bool

	if !bestIsALT {
		primarySet = all
	} else if nonALT.haveBest && withinGap(all, nonALT, opts.MaxScoreGapToPreferNonAltAlignment) {
		primarySet = nonALT
		altSet = all
		haveALT = true
	} else {
		primarySet = all
		if nonALT.haveBest && withinGap(all, nonALT, opts.MaxScoreGapToPreferNonAltAlignment) {
			altSet = nonALT
			haveALT = true
		}
	}

	filtered := filterSecondary(secondary, primarySet, opts, contigCounts)

	status := SingleHit
	if len(filtered) > 0 {
		status = MultipleHits
	}

	result := AlignResult{
		Primary:             resultFrom(primarySet, g, status),
		Secondary:           filtered,
		HadRoomForAll:       hadRoomForAll && len(filtered) == len(secondary),
		PopularSeedsSkipped: 0,
	}
	result.Primary.MAPQ = computeMAPQ(primarySet.matchProbabilityForBest, all.probabilityOfAllCandidates)

	if haveALT && opts.EmitALTAlignments {
		alt := resultFrom(altSet, g, SingleHit)
		result.FirstALT = &alt
	}

	return result
}

// filterSecondary keeps secondaries within maxEditDistanceForSecondaryResults
// of the (possibly updated) primary bestScore, deduplicates by (location,
// direction) within maxMergeDist, and caps per-contig when configured.
func filterSecondary(secondary []SingleAlignmentResult, primary *scoreSet, opts *Options, contigCounts *hitsPerContigCounts) []SingleAlignmentResult {
	if opts.MaxEditDistanceForSecondaryResults < 0 {
		return nil
	}
	limit := primary.bestScore + opts.MaxEditDistanceForSecondaryResults
	maxMergeDist := int64(opts.MaxMergeDist)

	out := make([]SingleAlignmentResult, 0, len(secondary))
	if contigCounts != nil {
		contigCounts.reset()
	}

dedup:
	for _, s := range secondary {
		if s.EditDistance > limit {
			continue
		}
		if s.Location == primary.bestScoreGenomeLocation && s.Direction == primary.direction {
			continue
		}
		for _, kept := range out {
			if kept.Direction != s.Direction {
				continue
			}
			d := kept.Location - s.Location
			if d < 0 {
				d = -d
			}
			if d <= maxMergeDist {
				continue dedup
			}
		}
		if opts.MaxSecondaryAlignmentsPerContig >= 0 && contigCounts != nil && s.Contig != nil {
			if int(contigCounts.increment(s.Contig.Index)) > opts.MaxSecondaryAlignmentsPerContig {
				continue
			}
		}
		out = append(out, s)
		if len(out) >= opts.MaxSecondaryResults {
			break
		}
	}
	return out
}
