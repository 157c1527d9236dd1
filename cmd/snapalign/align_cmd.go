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

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seqio/fastx"
	"github.com/spf13/cobra"

	"snapalign/align"
	"snapalign/genome"
	"snapalign/genomeindex"
)

var alignCmd = &cobra.Command{
	Use:   "align",
	Short: "Align FASTQ/FASTA reads against a snapalign index",
	Long: `align loads the genome and k-mer index built by the index
command, then maps every read in the given FASTQ/FASTA files against it,
writing one tab-separated record per read: read ID, status, contig,
position, strand, edit distance, MAPQ.`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		idxDir := getFlagPath(cmd, "index")
		outFile := getFlagPath(cmd, "out-file")
		maxK := getFlagInt(cmd, "max-k")
		useHamming := getFlagBool(cmd, "hamming")
		stopOnFirstHit := getFlagBool(cmd, "stop-on-first-hit")
		seedCoverage := getFlagFloat64(cmd, "seed-coverage")

		if len(args) == 0 {
			checkError(errors.New("align: at least one read file is required"))
		}

		g, err := genome.Load(filepath.Join(idxDir, "genome.bin"))
		checkError(errors.Wrap(err, "align: loading genome"))
		idx, err := genomeindex.Load(filepath.Join(idxDir, "kmers.bin"))
		checkError(errors.Wrap(err, "align: loading k-mer index"))

		alignOpts := align.DefaultOptions
		if maxK >= 0 {
			alignOpts.MaxK = maxK
		}
		alignOpts.UseHamming = useHamming
		alignOpts.StopOnFirstHit = stopOnFirstHit
		if seedCoverage > 0 {
			alignOpts.MaxSeedCoverage = seedCoverage
		}

		var out io.Writer = os.Stdout
		if outFile != "" && outFile != "-" {
			f, err := os.Create(outFile)
			checkError(errors.Wrap(err, "align: creating output file"))
			defer f.Close()
			out = f
		}
		bw := bufio.NewWriter(out)
		defer bw.Flush()

		// One Aligner per worker slot: Aligner is not safe to share across
		// goroutines, but its pools are expensive enough to build that a
		// fresh one per read would dominate runtime. aligners is a
		// fixed-capacity pool, refilled by the worker that just finished
		// with it, mirroring the Aligner's own pool-reuse convention.
		aligners := make(chan *align.Aligner, opt.NumCPUs)
		for i := 0; i < opt.NumCPUs; i++ {
			a, err := align.NewAligner(g, idx, alignOpts, align.NopStats{})
			checkError(errors.Wrap(err, "align: constructing aligner"))
			aligners <- a
		}

		var mu sync.Mutex
		var wg sync.WaitGroup

		for _, file := range args {
			reader, err := fastx.NewReader(nil, file, "")
			checkError(errors.Wrapf(err, "align: opening %s", file))

			for {
				record, err := reader.Read()
				if err != nil {
					if err == io.EOF {
						break
					}
					checkError(errors.Wrapf(err, "align: reading %s", file))
					break
				}

				id := string(record.ID)
				bases := append([]byte(nil), record.Seq.Seq...)
				quality := phredQuality(record.Seq.Qual, len(bases))

				a := <-aligners
				wg.Add(1)
				go func(a *align.Aligner, id string, bases, quality []byte) {
					defer func() {
						aligners <- a
						wg.Done()
					}()

					result, err := a.AlignRead(&align.Read{Bases: bases, Quality: quality})
					if err != nil {
						checkError(err)
					}

					line := formatResult(id, result)
					mu.Lock()
					bw.WriteString(line)
					mu.Unlock()
				}(a, id, bases, quality)
			}
		}
		wg.Wait()
	},
}

// phredQuality converts a FASTQ Phred+33 quality string into the raw
// [0,60]-scaled bytes scorer.phredToProb expects, defaulting to Q30 when
// the record carries no quality string (plain FASTA input).
func phredQuality(qual []byte, n int) []byte {
	out := make([]byte, n)
	if len(qual) != n {
		for i := range out {
			out[i] = 30
		}
		return out
	}
	for i, q := range qual {
		v := int(q) - 33
		if v < 0 {
			v = 0
		}
		if v > 60 {
			v = 60
		}
		out[i] = byte(v)
	}
	return out
}

func formatResult(id string, result align.AlignResult) string {
	p := result.Primary
	if p.Status == align.NotFound {
		return fmt.Sprintf("%s\t%s\t*\t0\t*\t*\t0\n", id, p.Status)
	}
	contigName := "*"
	if p.Contig != nil {
		contigName = p.Contig.Name
	}
	return fmt.Sprintf("%s\t%s\t%s\t%d\t%s\t%d\t%d\n",
		id, p.Status, contigName, p.Location-contigOffset(p), p.Direction, p.EditDistance, p.MAPQ)
}

func contigOffset(p align.SingleAlignmentResult) int64 {
	if p.Contig == nil {
		return 0
	}
	return p.Contig.BeginningLocation
}

func init() {
	rootCmd.AddCommand(alignCmd)

	alignCmd.Flags().StringP("index", "i", "snapalign.idx", "index directory built by `snapalign index`")
	alignCmd.Flags().StringP("out-file", "o", "-", "output file (\"-\" for stdout)")
	alignCmd.Flags().Int("max-k", -1, "override the default max edit distance (-1 keeps the default)")
	alignCmd.Flags().Bool("hamming", false, "use ungapped (substitution-only) scoring")
	alignCmd.Flags().Bool("stop-on-first-hit", false, "stop seeding as soon as any alignment is found")
	alignCmd.Flags().Float64("seed-coverage", 0, "override the default seed coverage factor (0 keeps the default)")
}
