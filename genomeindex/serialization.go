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
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"snapalign/genome"
)

var magic = [8]byte{'s', 'n', 'p', 'k', 'i', 'd', 'x', ' '}

const mainVersion uint8 = 0
const minorVersion uint8 = 1

// WriteTo serializes the index: magic, versions, seed length, then every
// (kmer, hit count, hit locations) tuple. Map iteration order is
// unspecified, which is fine: a rebuilt Index answers Lookup identically
// regardless of bucket order.
func (idx *Index) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64

	n, err := bw.Write(magic[:])
	written += int64(n)
	if err != nil {
		return written, err
	}
	if err := bw.WriteByte(mainVersion); err != nil {
		return written, err
	}
	written++
	if err := bw.WriteByte(minorVersion); err != nil {
		return written, err
	}
	written++
	if err := bw.WriteByte(idx.seedLen); err != nil {
		return written, err
	}
	written++

	if err := binary.Write(bw, binary.LittleEndian, uint64(len(idx.table))); err != nil {
		return written, err
	}
	written += 8

	for kmer, hits := range idx.table {
		if err := binary.Write(bw, binary.LittleEndian, kmer); err != nil {
			return written, err
		}
		written += 8
		if err := binary.Write(bw, binary.LittleEndian, uint64(len(hits))); err != nil {
			return written, err
		}
		written += 8

		var buf [16]byte
		for i := 0; i < len(hits); i += 2 {
			v2 := uint64(0)
			if i+1 < len(hits) {
				v2 = uint64(hits[i+1])
			}
			ctrl, n := putLocPair(buf[:], uint64(hits[i]), v2)
			if err := bw.WriteByte(ctrl); err != nil {
				return written, err
			}
			written++
			if _, err := bw.Write(buf[:n]); err != nil {
				return written, err
			}
			written += int64(n)
		}
	}

	return written, bw.Flush()
}

// Save writes the index to a new file at path.
func (idx *Index) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = idx.WriteTo(f)
	return err
}

// ReadFrom deserializes an Index previously written by WriteTo/Save.
func ReadFrom(r io.Reader) (*Index, error) {
	br := bufio.NewReader(r)

	var gotMagic [8]byte
	if _, err := io.ReadFull(br, gotMagic[:]); err != nil {
		return nil, err
	}
	if gotMagic != magic {
		return nil, genome.ErrInvalidFileFormat
	}
	mv, err := br.ReadByte()
	if err != nil {
		return nil, err
	}
	if _, err := br.ReadByte(); err != nil {
		return nil, err
	}
	if mv != mainVersion {
		return nil, genome.ErrVersionMismatch
	}

	seedLen, err := br.ReadByte()
	if err != nil {
		return nil, err
	}

	var nKmers uint64
	if err := binary.Read(br, binary.LittleEndian, &nKmers); err != nil {
		return nil, err
	}

	idx := &Index{
		seedLen: seedLen,
		table:   make(map[uint64][]int64, nKmers),
	}
	for i := uint64(0); i < nKmers; i++ {
		var kmer uint64
		if err := binary.Read(br, binary.LittleEndian, &kmer); err != nil {
			return nil, err
		}
		var nHits uint64
		if err := binary.Read(br, binary.LittleEndian, &nHits); err != nil {
			return nil, err
		}
		hits := make([]int64, nHits)
		var buf [16]byte
		for j := 0; j < len(hits); j += 2 {
			ctrl, err := br.ReadByte()
			if err != nil {
				return nil, err
			}
			n := int(ctrl>>3&7+ctrl&7) + 2
			if _, err := io.ReadFull(br, buf[:n]); err != nil {
				return nil, err
			}
			v1, v2, _ := getLocPair(ctrl, buf[:n])
			hits[j] = int64(v1)
			if j+1 < len(hits) {
				hits[j+1] = int64(v2)
			}
		}
		idx.table[kmer] = hits
	}

	return idx, nil
}

// Load reads an Index from the file at path.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadFrom(f)
}
