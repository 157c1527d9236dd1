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

package genomeindex

import (
	"bytes"
	"testing"

	"github.com/shenwei356/lexichash/iterator"

	"snapalign/genome"
)

func TestIndexWriteToReadFromRoundTrip(t *testing.T) {
	g, err := genome.New([]string{"chr1"}, [][]byte{[]byte("ACGTACGTACGTACGTTTTT")}, nil)
	if err != nil {
		t.Fatal(err)
	}
	idx, err := Build(g, 8)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if _, err := idx.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}

	got, err := ReadFrom(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.SeedLength() != idx.SeedLength() {
		t.Errorf("expected seed length %d, got %d", idx.SeedLength(), got.SeedLength())
	}

	iter, err := iterator.NewKmerIterator(g.Bases(g.Contigs()[0].BeginningLocation, 8), 8)
	if err != nil {
		t.Fatal(err)
	}
	kmer, ok, _ := iter.NextPositiveKmer()
	if !ok {
		t.Fatal("expected a scorable kmer from the test contig's first window")
	}
	wantHits, wantPopular := idx.Lookup(kmer, 100)
	gotHits, gotPopular := got.Lookup(kmer, 100)
	if wantPopular != gotPopular || len(wantHits) != len(gotHits) {
		t.Fatalf("lookup mismatch after round-trip: want %v/%v, got %v/%v", wantHits, wantPopular, gotHits, gotPopular)
	}
	for i := range wantHits {
		if wantHits[i] != gotHits[i] {
			t.Errorf("hit %d: want %d, got %d", i, wantHits[i], gotHits[i])
		}
	}
}
