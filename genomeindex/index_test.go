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
	"testing"

	"snapalign/genome"
)

func TestBuildAndLookup(t *testing.T) {
	g, err := genome.New([]string{"chr1"}, [][]byte{[]byte("ACGTACGTACGTACGT")}, nil)
	if err != nil {
		t.Fatal(err)
	}

	idx, err := Build(g, 8)
	if err != nil {
		t.Fatal(err)
	}

	// "ACGTACGT" appears at offsets 0, 4 and 8 of chr1's bases within the contig.
	c := g.Contigs()[0]
	iter, err := kmerAt(g, c.BeginningLocation, 8)
	if err != nil {
		t.Fatal(err)
	}

	hits, tooPopular := idx.Lookup(iter, 10)
	if tooPopular {
		t.Fatal("unexpectedly too popular")
	}
	if len(hits) != 3 {
		t.Fatalf("expected 3 hits for a repeated 8-mer, got %d", len(hits))
	}
}

func TestLookupTooPopular(t *testing.T) {
	g, err := genome.New([]string{"chr1"}, [][]byte{[]byte("ACACACACACACACAC")}, nil)
	if err != nil {
		t.Fatal(err)
	}

	idx, err := Build(g, 4)
	if err != nil {
		t.Fatal(err)
	}

	c := g.Contigs()[0]
	kmer, err := kmerAt(g, c.BeginningLocation, 4)
	if err != nil {
		t.Fatal(err)
	}

	_, tooPopular := idx.Lookup(kmer, 2)
	if !tooPopular {
		t.Error("expected the highly repeated k-mer to be flagged too popular")
	}
}

// kmerAt encodes the seedLen-base k-mer at a genome location, reusing the
// same 2-bit packing NewKmerIterator uses internally (A=0,C=1,G=2,T=3).
func kmerAt(g *genome.Genome, loc int64, seedLen int) (uint64, error) {
	bases := g.Bases(loc, seedLen)
	var code uint64
	for _, b := range bases {
		var v uint64
		switch b {
		case 'A', 'a':
			v = 0
		case 'C', 'c':
			v = 1
		case 'G', 'g':
			v = 2
		case 'T', 't':
			v = 3
		}
		code = code<<2 | v
	}
	return code, nil
}
