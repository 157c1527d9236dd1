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

package genome

import (
	"bytes"
	"testing"
)

func TestGenomeWriteToReadFromRoundTrip(t *testing.T) {
	g, err := New(
		[]string{"chr1", "chr1_alt"},
		[][]byte{[]byte("ACGTACGTACGTACGT"), []byte("TTTTGGGGCCCCAAAA")},
		[]bool{false, true},
	)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if _, err := g.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}

	got, err := ReadFrom(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if got.Size() != g.Size() {
		t.Fatalf("expected size %d, got %d", g.Size(), got.Size())
	}
	if !bytes.Equal(got.Bases(0, int(got.Size())), g.Bases(0, int(g.Size()))) {
		t.Error("expected identical concatenated bases after round-trip")
	}

	gotContigs := got.Contigs()
	wantContigs := g.Contigs()
	if len(gotContigs) != len(wantContigs) {
		t.Fatalf("expected %d contigs, got %d", len(wantContigs), len(gotContigs))
	}
	for i := range wantContigs {
		if gotContigs[i] != wantContigs[i] {
			t.Errorf("contig %d: expected %+v, got %+v", i, wantContigs[i], gotContigs[i])
		}
	}
}

func TestGenomeReadFromRejectsBadMagic(t *testing.T) {
	if _, err := ReadFrom(bytes.NewReader([]byte("not a genome file at all"))); err == nil {
		t.Error("expected an error for a file with the wrong magic bytes")
	}
}
