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

// Package genome is the "Genome" collaborator of the aligner core: a
// concatenated, padded reference sequence partitioned into contigs.
package genome

import "fmt"

// PaddingBases is the number of filler bases inserted between two contigs
// in the concatenated sequence. It bounds how far a clipping adjustment at
// a contig edge may extend past that edge: into the padding, never into
// the neighboring contig.
const PaddingBases = 500

// Contig is one named sequence in the reference, at a known offset in the
// concatenated genome.
type Contig struct {
	Name              string
	BeginningLocation int64
	Length            int64
	IsALT             bool
	Index             int
}

// End returns the exclusive end offset of the contig.
func (c *Contig) End() int64 {
	return c.BeginningLocation + c.Length
}

// Genome is a read-only, concatenated reference sequence. It is shared
// across aligner instances; nothing on the alignment hot path mutates it.
type Genome struct {
	bases   []byte // concatenated bases, contigs separated by 'N' padding
	contigs []Contig
}

// New builds a Genome from named sequences, concatenating them with
// PaddingBases of 'N' between each and padding the ends, mirroring the
// layout SNAP's GenomeIndex builds its FASTA-derived reference into.
func New(names []string, seqs [][]byte, altFlags []bool) (*Genome, error) {
	if len(names) != len(seqs) || (altFlags != nil && len(altFlags) != len(names)) {
		return nil, fmt.Errorf("genome: mismatched names/seqs/altFlags lengths")
	}

	g := &Genome{
		contigs: make([]Contig, len(names)),
	}

	total := PaddingBases
	for _, s := range seqs {
		total += len(s) + PaddingBases
	}
	g.bases = make([]byte, 0, total)
	for i := 0; i < PaddingBases; i++ {
		g.bases = append(g.bases, 'N')
	}

	for i, s := range seqs {
		isAlt := false
		if altFlags != nil {
			isAlt = altFlags[i]
		}
		g.contigs[i] = Contig{
			Name:              names[i],
			BeginningLocation: int64(len(g.bases)),
			Length:            int64(len(s)),
			IsALT:             isAlt,
			Index:             i,
		}
		g.bases = append(g.bases, s...)
		for j := 0; j < PaddingBases; j++ {
			g.bases = append(g.bases, 'N')
		}
	}

	return g, nil
}

// Size returns the length of the concatenated, padded genome.
func (g *Genome) Size() int64 {
	return int64(len(g.bases))
}

// Bases returns a read-only view of `length` bases starting at `location`.
// It returns a shorter (possibly empty) slice if the request runs past the
// end of the genome, so callers must bounds-check the returned length
// themselves instead of this call erroring.
func (g *Genome) Bases(location int64, length int) []byte {
	if location < 0 || location >= int64(len(g.bases)) || length <= 0 {
		return nil
	}
	end := location + int64(length)
	if end > int64(len(g.bases)) {
		end = int64(len(g.bases))
	}
	return g.bases[location:end]
}

// ContigAt returns the contig owning `location`, or nil if it falls in
// padding or out of range.
func (g *Genome) ContigAt(location int64) *Contig {
	// Linear scan is fine here: the core calls this once per scored
	// candidate, not per base, and real genomes have few hundred contigs.
	for i := range g.contigs {
		c := &g.contigs[i]
		if location >= c.BeginningLocation && location < c.End() {
			return c
		}
	}
	return nil
}

// Contigs returns all contigs in genome order.
func (g *Genome) Contigs() []Contig {
	return g.contigs
}

// ContigIndexAt returns the index into Contigs() of the contig owning
// location, or -1 if none.
func (g *Genome) ContigIndexAt(location int64) int {
	for i := range g.contigs {
		c := &g.contigs[i]
		if location >= c.BeginningLocation && location < c.End() {
			return i
		}
	}
	return -1
}
