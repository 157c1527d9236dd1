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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/iafan/cwalk"
	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seqio/fastx"
	"github.com/shenwei356/util/pathutil"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"snapalign/genome"
	"snapalign/genomeindex"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build a genome index from FASTA references",
	Long: `index concatenates one or more FASTA files into a padded
reference genome and builds an exact k-mer hash index over it, the two
files the align command loads to map reads.`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		outDir := getFlagPath(cmd, "out-dir")
		seedLen := getFlagInt(cmd, "seed-len")
		altPattern := getFlagString(cmd, "alt-name-substr")

		if len(args) == 0 {
			checkError(errors.New("index: at least one FASTA file or directory is required"))
		}
		if seedLen < 4 || seedLen > 32 {
			checkError(errors.New("index: --seed-len must be in [4, 32]"))
		}

		makeOutDir(outDir, getFlagBool(cmd, "force"))

		args, err := expandFASTAArgs(args, opt.NumCPUs)
		checkError(errors.Wrap(err, "index: expanding input paths"))

		var names []string
		var seqs [][]byte
		var altFlags []bool

		var bar *mpb.Bar
		var pbs *mpb.Progress
		if opt.Verbose {
			pbs = mpb.New(mpb.WithWidth(40), mpb.WithOutput(os.Stderr))
			bar = pbs.AddBar(int64(len(args)),
				mpb.PrependDecorators(
					decor.Name("reading FASTA files: ", decor.WC{W: len("reading FASTA files: "), C: decor.DindentRight}),
					decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
				),
				mpb.AppendDecorators(
					decor.Name("ETA: ", decor.WC{W: len("ETA: ")}),
					decor.EwmaETA(decor.ET_STYLE_GO, 10),
					decor.OnComplete(decor.Name(""), ". done"),
				),
			)
		}

		for _, file := range args {
			start := time.Now()
			reader, err := fastx.NewReader(nil, file, "")
			checkError(errors.Wrapf(err, "opening %s", file))

			for {
				record, err := reader.Read()
				if err != nil {
					if err == io.EOF {
						break
					}
					checkError(errors.Wrapf(err, "reading %s", file))
					break
				}
				name := string(record.ID)
				seq := make([]byte, len(record.Seq.Seq))
				copy(seq, record.Seq.Seq)

				names = append(names, name)
				seqs = append(seqs, seq)
				altFlags = append(altFlags, altPattern != "" && strings.Contains(name, altPattern))
			}

			if opt.Verbose {
				bar.Increment()
				bar.EwmaIncrBy(1, time.Since(start))
			}
		}
		if opt.Verbose {
			pbs.Wait()
		}

		g, err := genome.New(names, seqs, altFlags)
		checkError(errors.Wrap(err, "index: building genome"))

		idx, err := genomeindex.Build(g, uint8(seedLen))
		checkError(errors.Wrap(err, "index: building k-mer index"))

		checkError(g.Save(filepath.Join(outDir, "genome.bin")))
		checkError(idx.Save(filepath.Join(outDir, "kmers.bin")))
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)

	indexCmd.Flags().StringP("out-dir", "o", "snapalign.idx", "output index directory")
	indexCmd.Flags().IntP("seed-len", "k", 20, "k-mer seed length")
	indexCmd.Flags().String("alt-name-substr", "_alt", "mark a contig as an ALT haplotype when its name contains this substring (empty disables ALT marking)")
	indexCmd.Flags().BoolP("force", "f", false, "overwrite a non-empty --out-dir")
}

// fastaSuffixes mirrors the extensions lexicmap/cmd's getFileListFromDir
// recognizes, including the gzip/bz2/xz-compressed forms xopen.Open
// transparently decompresses.
var fastaSuffixes = []string{
	".fasta", ".fa", ".fna", ".fasta.gz", ".fa.gz", ".fna.gz",
	".fasta.bz2", ".fa.bz2", ".fna.bz2", ".fasta.xz", ".fa.xz", ".fna.xz",
}

// expandFASTAArgs replaces every directory in args with the FASTA files
// found by recursively (and concurrently) walking it, adapted from
// lexicmap/cmd/util.go's getFileListFromDir. Plain file arguments pass
// through unchanged so `snapalign index ref1.fa ref2.fa` keeps working.
func expandFASTAArgs(args []string, threads int) ([]string, error) {
	var out []string
	for _, a := range args {
		info, err := os.Stat(a)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, a)
			continue
		}

		if threads < 1 {
			threads = 1
		}
		cwalk.NumWorkers = threads

		var mu sync.Mutex
		err = cwalk.WalkWithSymlinks(a, func(relPath string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() {
				return nil
			}
			lower := strings.ToLower(relPath)
			for _, suf := range fastaSuffixes {
				if strings.HasSuffix(lower, suf) {
					mu.Lock()
					out = append(out, filepath.Join(a, relPath))
					mu.Unlock()
					break
				}
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "walking %s", a)
		}
	}
	return out, nil
}

// makeOutDir creates outDir, clearing it first if it already exists and
// isn't empty and force is set; adapted from lexicmap/cmd's own
// makeOutDir, which refuses silently-clobbering a populated output
// directory unless the caller opts in.
func makeOutDir(outDir string, force bool) {
	existed, err := pathutil.DirExists(outDir)
	checkError(errors.Wrap(err, outDir))
	if existed {
		empty, err := pathutil.IsEmpty(outDir)
		checkError(errors.Wrap(err, outDir))
		if !empty {
			if !force {
				checkError(fmt.Errorf("out-dir not empty: %s, use --force to overwrite", outDir))
			}
			checkError(os.RemoveAll(outDir))
		} else {
			checkError(os.RemoveAll(outDir))
		}
	}
	checkError(os.MkdirAll(outDir, 0777))
}
