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
	"strings"
	"testing"

	"snapalign/genome"
	"snapalign/genomeindex"
)

const testSeedLen = 8

func flatQuality(n int, q byte) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = q
	}
	return out
}

func revcomp(s string) string {
	comp := map[byte]byte{'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A'}
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		b[len(s)-1-i] = comp[s[i]]
	}
	return string(b)
}

func buildTestIndex(t *testing.T, names []string, seqs []string, altFlags []bool) (*genome.Genome, *genomeindex.Index) {
	t.Helper()
	byteSeqs := make([][]byte, len(seqs))
	for i, s := range seqs {
		byteSeqs[i] = []byte(s)
	}
	g, err := genome.New(names, byteSeqs, altFlags)
	if err != nil {
		t.Fatalf("genome.New: %v", err)
	}
	idx, err := genomeindex.Build(g, testSeedLen)
	if err != nil {
		t.Fatalf("genomeindex.Build: %v", err)
	}
	return g, idx
}

func newTestAligner(t *testing.T, g *genome.Genome, idx *genomeindex.Index, tweak func(*Options)) *Aligner {
	t.Helper()
	opts := DefaultOptions
	opts.MaxReadSize = 256
	if tweak != nil {
		tweak(&opts)
	}
	a, err := NewAligner(g, idx, opts, nil)
	if err != nil {
		t.Fatalf("NewAligner: %v", err)
	}
	return a
}

// S1: an exact, uniquely-placed read aligns with EditDistance 0.
func TestAlignExactMatchUnique(t *testing.T) {
	flankL := "TGCATGACCTGACTGGTATTCGGACTTGCAATGG"
	flankR := "CACTGTAGCTTGAACCGGTTACCTGATCGATCA"
	read := "ACGTACGTACGTACGT"
	seq := flankL + read + flankR

	g, idx := buildTestIndex(t, []string{"chr1"}, []string{seq}, nil)
	a := newTestAligner(t, g, idx, nil)

	wantLoc := g.Contigs()[0].BeginningLocation + int64(len(flankL))

	result, err := a.AlignRead(&Read{Bases: []byte(read), Quality: flatQuality(len(read), 30)})
	if err != nil {
		t.Fatal(err)
	}
	if result.Primary.Status != SingleHit {
		t.Fatalf("expected SingleHit, got %s", result.Primary.Status)
	}
	if result.Primary.EditDistance != 0 {
		t.Errorf("expected EditDistance 0, got %d", result.Primary.EditDistance)
	}
	if result.Primary.Direction != Forward {
		t.Errorf("expected Forward, got %s", result.Primary.Direction)
	}
	if result.Primary.Location != wantLoc {
		t.Errorf("expected location %d, got %d", wantLoc, result.Primary.Location)
	}
}

// S2: a single substitution still yields a unique hit at EditDistance 1.
func TestAlignSingleMismatch(t *testing.T) {
	flankL := "TGCATGACCTGACTGGTATTCGGACTTGCAATGG"
	flankR := "CACTGTAGCTTGAACCGGTTACCTGATCGATCA"
	ref := "ACGTACGTACGTACGT"
	read := "ACGTACGAACGTACGT" // base 7 (0-based) flipped T->A

	seq := flankL + ref + flankR
	g, idx := buildTestIndex(t, []string{"chr1"}, []string{seq}, nil)
	a := newTestAligner(t, g, idx, nil)

	result, err := a.AlignRead(&Read{Bases: []byte(read), Quality: flatQuality(len(read), 30)})
	if err != nil {
		t.Fatal(err)
	}
	if result.Primary.Status != SingleHit {
		t.Fatalf("expected SingleHit, got %s", result.Primary.Status)
	}
	if result.Primary.EditDistance != 1 {
		t.Errorf("expected EditDistance 1, got %d", result.Primary.EditDistance)
	}
}

// S3: a read matching only the reverse-complement strand is reported with
// Direction == ReverseComplement.
func TestAlignReverseComplementOnly(t *testing.T) {
	flankL := "TGCATGACCTGACTGGTATTCGGACTTGCAATGG"
	flankR := "CACTGTAGCTTGAACCGGTTACCTGATCGATCA"
	forwardSeq := "ACTGGACTTTCAGGTA"
	read := revcomp(forwardSeq)

	seq := flankL + forwardSeq + flankR
	g, idx := buildTestIndex(t, []string{"chr1"}, []string{seq}, nil)
	a := newTestAligner(t, g, idx, nil)

	result, err := a.AlignRead(&Read{Bases: []byte(read), Quality: flatQuality(len(read), 30)})
	if err != nil {
		t.Fatal(err)
	}
	if result.Primary.Status != SingleHit {
		t.Fatalf("expected SingleHit, got %s", result.Primary.Status)
	}
	if result.Primary.Direction != ReverseComplement {
		t.Errorf("expected ReverseComplement, got %s", result.Primary.Direction)
	}
	if result.Primary.EditDistance != 0 {
		t.Errorf("expected EditDistance 0, got %d", result.Primary.EditDistance)
	}
}

// S4: every seed of a highly repetitive read is popular and skipped, so
// the read is reported NotFound with PopularSeedsSkipped > 0.
func TestAlignPopularSeedsSkipped(t *testing.T) {
	seq := strings.Repeat("AC", 1000)
	read := strings.Repeat("AC", 8) // 16bp, entirely "AC"-periodic

	g, idx := buildTestIndex(t, []string{"chr1"}, []string{seq}, nil)
	a := newTestAligner(t, g, idx, func(o *Options) {
		o.MaxHitsToConsider = 50
	})

	result, err := a.AlignRead(&Read{Bases: []byte(read), Quality: flatQuality(len(read), 30)})
	if err != nil {
		t.Fatal(err)
	}
	if result.Primary.Status != NotFound {
		t.Fatalf("expected NotFound, got %s", result.Primary.Status)
	}
	if result.PopularSeedsSkipped == 0 {
		t.Error("expected PopularSeedsSkipped > 0")
	}
}

// S5: an ALT contig carrying the same locus as its primary assembly
// counterpart is demoted to FirstALT, not reported as Primary.
func TestAlignALTDemotion(t *testing.T) {
	flankPrimary := "TGCATGACCTGACTGGTATTCGGACTTGCAATGG"
	flankAlt := "GGTTCAAGTTCCAGGTAACCTTGGAATCCGTTAA"
	locus := "ACGTTGCATCGATGCATTAGGCATGACTGACTG"

	// Declared primary-contig-first so its candidate is discovered (and
	// voted for) before the ALT contig's, making the ALT one the last
	// to be re-inserted at each weight level and so the first popped --
	// see weightLists.insert: the most recently touched element heads its
	// bucket. That ordering is what lets the ALT contig become the
	// ScoreSet-wide "best overall" in this test, exercising the
	// bestIsALT branch of finalize.
	names := []string{"chr1", "chr1_alt"}
	seqs := []string{flankPrimary + locus, flankAlt + locus}
	altFlags := []bool{false, true}

	g, idx := buildTestIndex(t, names, seqs, altFlags)
	a := newTestAligner(t, g, idx, nil)

	read := locus[:20]
	result, err := a.AlignRead(&Read{Bases: []byte(read), Quality: flatQuality(len(read), 30)})
	if err != nil {
		t.Fatal(err)
	}
	if result.Primary.Status == NotFound {
		t.Fatal("expected a hit")
	}
	if result.Primary.Contig == nil || result.Primary.Contig.IsALT {
		t.Errorf("expected the primary result on the non-ALT contig, got %+v", result.Primary.Contig)
	}
	if result.FirstALT == nil {
		t.Fatal("expected a FirstALT result")
	}
	if !result.FirstALT.Contig.IsALT {
		t.Error("expected FirstALT to be on the ALT contig")
	}
}

// Determinism: aligning the same read twice against the same Aligner
// produces identical results.
func TestAlignDeterministic(t *testing.T) {
	flankL := "TGCATGACCTGACTGGTATTCGGACTTGCAATGG"
	flankR := "CACTGTAGCTTGAACCGGTTACCTGATCGATCA"
	read := "ACGTACGTACGTACGT"
	seq := flankL + read + flankR

	g, idx := buildTestIndex(t, []string{"chr1"}, []string{seq}, nil)
	a := newTestAligner(t, g, idx, nil)

	r1, err := a.AlignRead(&Read{Bases: []byte(read), Quality: flatQuality(len(read), 30)})
	if err != nil {
		t.Fatal(err)
	}
	r2, err := a.AlignRead(&Read{Bases: []byte(read), Quality: flatQuality(len(read), 30)})
	if err != nil {
		t.Fatal(err)
	}
	if r1.Primary != r2.Primary {
		t.Errorf("expected identical results across runs, got %+v vs %+v", r1.Primary, r2.Primary)
	}
}

// A read containing more than MaxNs ambiguous bases is rejected outright.
func TestAlignTooManyNs(t *testing.T) {
	flankL := "TGCATGACCTGACTGGTATTCGGACTTGCAATGG"
	flankR := "CACTGTAGCTTGAACCGGTTACCTGATCGATCA"
	seq := flankL + "ACGTACGTACGTACGT" + flankR

	g, idx := buildTestIndex(t, []string{"chr1"}, []string{seq}, nil)
	a := newTestAligner(t, g, idx, func(o *Options) { o.MaxNs = 2 })

	read := []byte("NNNNACGTACGTACGT")
	result, err := a.AlignRead(&Read{Bases: read, Quality: flatQuality(len(read), 30)})
	if err != nil {
		t.Fatal(err)
	}
	if result.Primary.Status != NotFound {
		t.Errorf("expected NotFound for an over-N read, got %s", result.Primary.Status)
	}
}
