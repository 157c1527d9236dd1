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

// Package align implements the single-read seed-and-extend alignment core:
// seed discovery against a genome index, incremental scoring against an
// epoch-reset candidate hash table, and MAPQ-calibrated result finalization.
package align

// Options configures one Aligner. All sizing fields are consumed at
// construction time; Aligner allocates its pools once and never grows them
// on the per-read hot path.
type Options struct {
	MaxHitsToConsider int // popularity cap per seed
	MaxK              int // hard ceiling on reported edit distance
	MaxReadSize       int // buffer sizing
	MaxNs             int // reads with more Ns than this are rejected

	MaxSeedsToUse   int     // absolute seed budget; 0 means derive from MaxSeedCoverage
	MaxSeedCoverage float64 // readLen / seedLen * coverage, used when MaxSeedsToUse == 0

	MinWeightToCheck int // scoring admission threshold on element weight
	ExtraSearchDepth int // added to bestScore to admit near-best candidates

	MaxMergeDist int // bucket width; must be even and <= 64

	UseAffineGap                       bool
	UseHamming                         bool // ungapped scoring only, for adapter-trimmed reads known to carry no indels
	AltAwareness                       bool
	EmitALTAlignments                  bool
	MaxScoreGapToPreferNonAltAlignment int

	MaxSecondaryAlignmentsPerContig int // negative = unlimited
	MaxEditDistanceForSecondaryResults int // negative disables secondary capture
	MaxSecondaryResults                int

	ExplorePopularSeeds bool
	StopOnFirstHit      bool

	IgnoreAlignmentAdjustmentsForOm bool

	// Prefetch mirrors the original's process-wide doAlignerPrefetch flag,
	// demoted to per-Aligner configuration per spec.md §9. When set, the
	// seed loop issues a PrefetchHint to the GenomeIndex before every
	// lookup.
	Prefetch bool

	DisabledOptimizations DisabledOptimizations
}

// DisabledOptimizations coarsely disables pruning heuristics, for testing
// against a naive baseline.
type DisabledOptimizations struct {
	NoTruncatedSeedSpreading bool
	NoWeightBucketPruning    bool
	NoNearbyProbabilityFixup bool
}

// DefaultOptions mirrors SNAP's short-read defaults: maxMergeDist=48,
// affine-gap enabled as the precise second pass, ALT-awareness on with a
// one-point preference gap.
var DefaultOptions = Options{
	MaxHitsToConsider:                  300,
	MaxK:                               14,
	MaxReadSize:                        512,
	MaxNs:                              10,
	MaxSeedCoverage:                    4.0,
	MinWeightToCheck:                   1,
	ExtraSearchDepth:                   2,
	MaxMergeDist:                       48,
	UseAffineGap:                       true,
	AltAwareness:                       true,
	EmitALTAlignments:                  true,
	MaxScoreGapToPreferNonAltAlignment: 1,
	MaxSecondaryAlignmentsPerContig:    -1,
	MaxEditDistanceForSecondaryResults: -1,
	MaxSecondaryResults:                16,
}
