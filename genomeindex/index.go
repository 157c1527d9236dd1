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

// Package genomeindex is the "GenomeIndex" collaborator of the aligner
// core: an exact k-mer hash index over a reference genome, built once and
// shared read-only across aligner instances.
package genomeindex

import (
	"github.com/shenwei356/lexichash/iterator"

	"snapalign/genome"
)

// Index is a seed-length-S k-mer hash index into a genome. Lookups return
// either the hit list for a k-mer or a "too popular" signal, matching the
// GenomeIndex contract consumed by the aligner core.
type Index struct {
	seedLen uint8
	table   map[uint64][]int64
}

// Build constructs an Index over g by enumerating every positive-strand
// k-mer of length seedLen, in the same iterator idiom
// lexicmap/cmd/lib-seq_compare.go uses for its own k-mer walk.
func Build(g *genome.Genome, seedLen uint8) (*Index, error) {
	idx := &Index{
		seedLen: seedLen,
		table:   make(map[uint64][]int64, 1<<20),
	}

	for _, c := range g.Contigs() {
		seq := g.Bases(c.BeginningLocation, int(c.Length))

		iter, err := iterator.NewKmerIterator(seq, int(seedLen))
		if err != nil {
			continue // contig shorter than the seed length: no seeds from it
		}

		var kmer uint64
		var ok bool
		for {
			kmer, ok, _ = iter.NextPositiveKmer()
			if !ok {
				break
			}
			loc := c.BeginningLocation + int64(iter.Index())
			idx.table[kmer] = append(idx.table[kmer], loc)
		}
	}

	return idx, nil
}

// SeedLength returns the index's fixed k-mer length S.
func (idx *Index) SeedLength() uint8 {
	return idx.seedLen
}

// Lookup returns the hit locations for kmer. tooPopular is true when the hit
// count exceeds maxHitsToConsider; the full (untruncated) hit list is still
// returned in that case so a caller honoring ExplorePopularSeeds can truncate
// it itself. This mirrors the GenomeIndex/BaseAligner split in spec.md §4.4,
// where popularity admission control lives in the seed loop, not the index.
func (idx *Index) Lookup(kmer uint64, maxHitsToConsider int) (hits []int64, tooPopular bool) {
	hits, ok := idx.table[kmer]
	if !ok {
		return nil, false
	}
	if len(hits) > maxHitsToConsider {
		return hits, true
	}
	return hits, false
}

// PrefetchHint is a no-op default satisfying the optional prefetch contract
// (spec.md §9's doAlignerPrefetch); a production index backed by an
// on-disk k-mer table could issue a real madvise/prefetch here.
func (idx *Index) PrefetchHint(kmer uint64) {}
