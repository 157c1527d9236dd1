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

package scorer

// Hamming is a substitution-only scorer for the `useHamming` path the
// original BaseAligner.AlignRead exposes for callers that know their
// reads carry no indels (e.g. adapter-trimmed amplicon reads). It aligns
// the read ungapped against the reference window starting at offset 0.
type Hamming struct{}

// Score counts mismatches between read and the first len(read) bases of
// reference; it never proposes a location offset or clipping.
func (Hamming) Score(read, quality, reference []byte, scoreLimit, seedOffset int) (Result, bool) {
	n := len(read)
	if n == 0 || len(reference) < n {
		return Result{}, false
	}

	mismatches := 0
	matchProb := 1.0
	for i := 0; i < n; i++ {
		if read[i] == reference[i] || reference[i] == 'N' || read[i] == 'N' {
			matchProb *= 1 - phredToProb(quality[i])
			continue
		}
		mismatches++
		matchProb *= phredToProb(quality[i]) * SNPProb
		if mismatches > scoreLimit {
			return Result{}, false
		}
	}

	return Result{
		EditDistance:     mismatches,
		MatchProbability: matchProb,
	}, true
}
