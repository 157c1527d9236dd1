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

// Command snapalign is a seed-and-extend short-read aligner: `index` builds
// a genome index from FASTA references, `align` maps FASTQ reads against it.
package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/twotwotwo/sorts"
)

var rootCmd = &cobra.Command{
	Use:   "snapalign",
	Short: "A seed-and-extend short-read aligner",
	Long: `snapalign maps short reads against a reference genome using a
seed-and-extend strategy: exact k-mer seeds locate candidate genome
positions, Landau-Vishkin and affine-gap scorers extend them into full
alignments, and a probabilistic model derives a MAPQ confidence score.`,
	SilenceUsage: true,
}

// Execute runs the root command, exiting the process on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntP("threads", "j", 0, "number of CPUs to use (0 for all cores)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")
}

// Options carries the global flags every subcommand reads.
type Options struct {
	NumCPUs int
	Verbose bool
}

func getOptions(cmd *cobra.Command) *Options {
	threads := getFlagNonNegativeInt(cmd, "threads")
	if threads == 0 {
		threads = runtime.NumCPU()
	}
	sorts.MaxProcs = threads
	runtime.GOMAXPROCS(threads)

	return &Options{
		NumCPUs: threads,
		Verbose: !getFlagBool(cmd, "quiet"),
	}
}

func getFlagNonNegativeInt(cmd *cobra.Command, flag string) int {
	v, err := cmd.Flags().GetInt(flag)
	checkError(err)
	if v < 0 {
		checkError(fmt.Errorf("value of flag --%s should be >= 0", flag))
	}
	return v
}

func getFlagBool(cmd *cobra.Command, flag string) bool {
	v, err := cmd.Flags().GetBool(flag)
	checkError(err)
	return v
}

func getFlagString(cmd *cobra.Command, flag string) string {
	v, err := cmd.Flags().GetString(flag)
	checkError(err)
	return v
}

// getFlagPath reads a path-valued flag and expands a leading "~" against
// the user's home directory, matching lexicmap/cmd's own handling of its
// --out-dir/--index path flags.
func getFlagPath(cmd *cobra.Command, flag string) string {
	v := getFlagString(cmd, flag)
	expanded, err := homedir.Expand(v)
	checkError(errors.Wrapf(err, "expanding --%s", flag))
	return expanded
}

func getFlagInt(cmd *cobra.Command, flag string) int {
	v, err := cmd.Flags().GetInt(flag)
	checkError(err)
	return v
}

func getFlagFloat64(cmd *cobra.Command, flag string) float64 {
	v, err := cmd.Flags().GetFloat64(flag)
	checkError(err)
	return v
}

// checkError logs a fatal error and exits, the convention every
// lexicmap/cmd file calls into.
func checkError(err error) {
	if err != nil {
		log.Fatalf("%s", errors.Cause(err))
	}
}
