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
	"github.com/shenwei356/lexichash/iterator"

	"snapalign/genomeindex"
)

// spreadSeedOffsets picks up to maxSeeds read offsets approximately evenly
// spaced across [0, readLen-seedLen], the spreading schedule spec.md §4.4
// calls for. Offsets are deduplicated by construction (monotonic, integer
// rounding can only repeat a value when maxSeeds exceeds the usable range,
// which is already clamped away).
func spreadSeedOffsets(readLen, seedLen, maxSeeds int) []int {
	if seedLen <= 0 || readLen < seedLen || maxSeeds <= 0 {
		return nil
	}
	usable := readLen - seedLen + 1
	if maxSeeds > usable {
		maxSeeds = usable
	}
	offsets := make([]int, 0, maxSeeds)
	if maxSeeds == 1 {
		return append(offsets, 0)
	}
	step := float64(usable-1) / float64(maxSeeds-1)
	last := -1
	for i := 0; i < maxSeeds; i++ {
		o := int(float64(i)*step + 0.5)
		if o == last {
			continue
		}
		offsets = append(offsets, o)
		last = o
	}
	return offsets
}

// kmerAtOffset extracts the seedLen-base k-mer starting at offset using
// the same iterator lexicmap/cmd/lib-seq_compare.go and
// genomeindex.Build walk with, so read-derived seeds and indexed genome
// k-mers share one encoding. ok is false over an N or a too-short window.
func kmerAtOffset(bases []byte, offset, seedLen int) (kmer uint64, ok bool) {
	if offset < 0 || offset+seedLen > len(bases) {
		return 0, false
	}
	iter, err := iterator.NewKmerIterator(bases[offset:offset+seedLen], seedLen)
	if err != nil {
		return 0, false
	}
	kmer, ok, _ = iter.NextPositiveKmer()
	return kmer, ok
}

// seedRoundResult carries the seed-popularity bookkeeping a discovery round
// produced; the per-direction lower bound is updated through
// runDiscoveryRound's lowestPossibleScore argument instead.
type seedRoundResult struct {
	popularSeedsSkipped      int
	firstPassSeedsNotSkipped int
}

// applySeed looks up one direction's k-mer and admits its hits into the
// candidate table, returning the number of hits admitted and whether the
// seed was popular.
func applySeed(idx *genomeindex.Index, table *candidateTable, kmer uint64, seedOffset int, opts *Options, stats Stats) (admitted int, popular bool, err error) {
	if opts.Prefetch {
		idx.PrefetchHint(kmer)
	}
	hits, tooPopular := idx.Lookup(kmer, opts.MaxHitsToConsider)
	table.recordSeedPlaced()
	if tooPopular {
		stats.PopularSeedSkipped()
		if !opts.ExplorePopularSeeds {
			return 0, true, nil
		}
		if len(hits) > opts.MaxHitsToConsider {
			hits = hits[:opts.MaxHitsToConsider]
		}
	}
	for _, loc := range hits {
		genomeLoc := loc - int64(seedOffset)
		if _, _, err := table.allocateNewCandidate(genomeLoc, seedOffset); err != nil {
			return admitted, tooPopular, err
		}
		admitted++
	}
	return admitted, tooPopular, nil
}

// runDiscoveryRound places every offset in offsets[start:end] as a seed in
// both directions, admitting hits into tables[Forward]/tables[ReverseComplement].
// lowestPossibleScore[dir] is incremented by one for every seed that failed
// to vote in that direction -- the admissible lower bound spec.md §4.4
// uses for the global termination predicate.
func runDiscoveryRound(
	fwdBases []byte, rcBases []byte,
	idx *genomeindex.Index, seedLen int,
	tables [2]*candidateTable,
	bitmap *seedUsedBitmap,
	offsets []int, start, end int,
	opts *Options, stats Stats,
	lowestPossibleScore *[2]int,
) (seedsPlaced int, result seedRoundResult, err error) {
	for i := start; i < end && i < len(offsets); i++ {
		offset := offsets[i]
		if bitmap.test(offset) {
			continue
		}
		bitmap.set(offset)
		seedsPlaced++

		fwdKmer, fwdOK := kmerAtOffset(fwdBases, offset, seedLen)
		votedFwd := false
		if fwdOK {
			admitted, popular, aerr := applySeed(idx, tables[Forward], fwdKmer, offset, opts, stats)
			if aerr != nil {
				return seedsPlaced, result, aerr
			}
			if popular {
				result.popularSeedsSkipped++
			} else {
				result.firstPassSeedsNotSkipped++
				stats.FirstPassSeedNotSkipped()
			}
			votedFwd = admitted > 0
		}
		if !votedFwd {
			lowestPossibleScore[Forward]++
		}

		rcOffset := len(rcBases) - seedLen - offset
		rcKmer, rcOK := kmerAtOffset(rcBases, rcOffset, seedLen)
		votedRC := false
		if rcOK && rcOffset >= 0 {
			admitted, popular, aerr := applySeed(idx, tables[ReverseComplement], rcKmer, rcOffset, opts, stats)
			if aerr != nil {
				return seedsPlaced, result, aerr
			}
			if popular {
				result.popularSeedsSkipped++
			} else {
				result.firstPassSeedsNotSkipped++
				stats.FirstPassSeedNotSkipped()
			}
			votedRC = admitted > 0
		}
		if !votedRC {
			lowestPossibleScore[ReverseComplement]++
		}
	}
	return seedsPlaced, result, nil
}
