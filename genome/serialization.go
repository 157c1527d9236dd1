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
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"os"
)

// magic identifies a snapalign genome file; mainVersion/minorVersion follow
// lexicmap/index/serialization.go's compatibility-check convention.
var magic = [8]byte{'s', 'n', 'p', 'g', 'n', 'o', 'm', 'e'}

const mainVersion uint8 = 0
const minorVersion uint8 = 1

// ErrInvalidFileFormat means the file's magic bytes don't match.
var ErrInvalidFileFormat = errors.New("genome: invalid binary format")

// ErrVersionMismatch means the file was written by an incompatible version.
var ErrVersionMismatch = errors.New("genome: version mismatch")

// WriteTo serializes the genome to w: magic, versions, then each contig's
// name, length, ALT flag, followed by the concatenated padded base string.
func (g *Genome) WriteTo(w io.Writer) (int64, error) {
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

	if err := binary.Write(bw, binary.LittleEndian, uint64(len(g.contigs))); err != nil {
		return written, err
	}
	written += 8

	for _, c := range g.contigs {
		if err := binary.Write(bw, binary.LittleEndian, uint64(len(c.Name))); err != nil {
			return written, err
		}
		written += 8
		if _, err := bw.WriteString(c.Name); err != nil {
			return written, err
		}
		written += int64(len(c.Name))

		if err := binary.Write(bw, binary.LittleEndian, c.BeginningLocation); err != nil {
			return written, err
		}
		written += 8
		if err := binary.Write(bw, binary.LittleEndian, c.Length); err != nil {
			return written, err
		}
		written += 8

		var altByte byte
		if c.IsALT {
			altByte = 1
		}
		if err := bw.WriteByte(altByte); err != nil {
			return written, err
		}
		written++
	}

	if err := binary.Write(bw, binary.LittleEndian, uint64(len(g.bases))); err != nil {
		return written, err
	}
	written += 8
	n, err = bw.Write(g.bases)
	written += int64(n)
	if err != nil {
		return written, err
	}

	return written, bw.Flush()
}

// Save writes the genome to a new file at path.
func (g *Genome) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = g.WriteTo(f)
	return err
}

// ReadFrom deserializes a Genome previously written by WriteTo/Save.
func ReadFrom(r io.Reader) (*Genome, error) {
	br := bufio.NewReader(r)

	var gotMagic [8]byte
	if _, err := io.ReadFull(br, gotMagic[:]); err != nil {
		return nil, err
	}
	if gotMagic != magic {
		return nil, ErrInvalidFileFormat
	}

	mv, err := br.ReadByte()
	if err != nil {
		return nil, err
	}
	if _, err := br.ReadByte(); err != nil { // minor version: forward-compatible, not checked
		return nil, err
	}
	if mv != mainVersion {
		return nil, ErrVersionMismatch
	}

	var nContigs uint64
	if err := binary.Read(br, binary.LittleEndian, &nContigs); err != nil {
		return nil, err
	}

	g := &Genome{contigs: make([]Contig, nContigs)}
	for i := range g.contigs {
		var nameLen uint64
		if err := binary.Read(br, binary.LittleEndian, &nameLen); err != nil {
			return nil, err
		}
		name := make([]byte, nameLen)
		if _, err := io.ReadFull(br, name); err != nil {
			return nil, err
		}

		var begin, length int64
		if err := binary.Read(br, binary.LittleEndian, &begin); err != nil {
			return nil, err
		}
		if err := binary.Read(br, binary.LittleEndian, &length); err != nil {
			return nil, err
		}
		altByte, err := br.ReadByte()
		if err != nil {
			return nil, err
		}

		g.contigs[i] = Contig{
			Name:              string(name),
			BeginningLocation: begin,
			Length:            length,
			IsALT:             altByte == 1,
			Index:             i,
		}
	}

	var baseLen uint64
	if err := binary.Read(br, binary.LittleEndian, &baseLen); err != nil {
		return nil, err
	}
	g.bases = make([]byte, baseLen)
	if _, err := io.ReadFull(br, g.bases); err != nil {
		return nil, err
	}

	return g, nil
}

// Load reads a Genome from the file at path.
func Load(path string) (*Genome, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadFrom(f)
}
