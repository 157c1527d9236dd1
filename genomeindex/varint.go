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

// Control-byte-packed variable-length encoding of genome locations, adapted
// from lexicmap/cmd/util's varint-GB encoder: two uint64s share one control
// byte (3 bits per value, the minimal byte length of each), followed by
// their significant bytes. Hit lists are dominated by small, clustered
// genome offsets, so most pairs pack into far fewer than 16 bytes.

var locOffsets = [8]uint8{56, 48, 40, 32, 24, 16, 8, 0}

// byteLength returns the minimum number of bytes needed to hold v.
func byteLength(v uint64) uint8 {
	switch {
	case v < 1<<8:
		return 1
	case v < 1<<16:
		return 2
	case v < 1<<24:
		return 3
	case v < 1<<32:
		return 4
	case v < 1<<40:
		return 5
	case v < 1<<48:
		return 6
	case v < 1<<56:
		return 7
	default:
		return 8
	}
}

// putLocPair packs v1, v2 into buf (which must have capacity >= 16),
// returning the control byte and the number of bytes written.
func putLocPair(buf []byte, v1, v2 uint64) (ctrl byte, n int) {
	b1 := byteLength(v1)
	ctrl = byte(b1 - 1)
	for _, off := range locOffsets[8-b1:] {
		buf[n] = byte(v1 >> off)
		n++
	}

	b2 := byteLength(v2)
	ctrl = ctrl<<3 | byte(b2-1)
	for _, off := range locOffsets[8-b2:] {
		buf[n] = byte(v2 >> off)
		n++
	}
	return ctrl, n
}

// getLocPair unpacks a control-byte-tagged pair from buf.
func getLocPair(ctrl byte, buf []byte) (v1, v2 uint64, n int) {
	b1 := int((ctrl>>3)&7) + 1
	b2 := int(ctrl&7) + 1
	for i := 0; i < b1; i++ {
		v1 = v1<<8 | uint64(buf[n])
		n++
	}
	for i := 0; i < b2; i++ {
		v2 = v2<<8 | uint64(buf[n])
		n++
	}
	return v1, v2, n
}
