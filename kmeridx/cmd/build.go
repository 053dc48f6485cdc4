// Copyright © 2024 The kmeridx Authors
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

package cmd

import (
	"fmt"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/kmeridx/kmeridx"
)

var buildCmd = &cobra.Command{
	Use:   "build <fasta_file> <index_file> <sequence_length>",
	Short: "build a k-mer prefix frequency index from a FASTA/Q file",
	Long: `build a k-mer prefix frequency index from a FASTA/Q file

Reads every record in fasta_file, slides a window of every length from
1 to sequence_length across each sequence, and increments one counter
per accepted window (windows containing an IUPAC ambiguity code are
dropped) into a flat, memory-mapped counter array written to
index_file.
`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)

		fastaFile := requireFile(args[0])
		indexFile := expandPath(args[1])
		k := parsePositiveInt("sequence_length", args[2])

		store, err := kmeridx.CreateStore(indexFile, k)
		checkError(err)
		defer store.Close()

		src := kmeridx.FastxSource{Path: fastaFile}

		log.Infof("building index (k=%d) from %s -> %s", k, fastaFile, indexFile)
		log.Infof("using %d worker(s)", opt.NumCPUs)

		start := time.Now()
		var lastLog time.Time
		stats, err := kmeridx.Build(store, src, opt.NumCPUs, func(done, total int) {
			if opt.Verbose && time.Since(lastLog) > time.Second {
				log.Infof("work items processed: %s / %s", humanize.Comma(int64(done)), humanize.Comma(int64(total)))
				lastLog = time.Now()
			}
		})
		checkError(err)

		checkError(store.Flush())

		log.Infof("done in %s", time.Since(start).Round(time.Millisecond))
		log.Infof("records: %s, windows kept: %s, windows rejected: %s",
			humanize.Comma(int64(stats.Records)),
			humanize.Comma(int64(stats.Windows)),
			humanize.Comma(int64(stats.Rejected)))
		fmt.Printf("wrote index: %s\n", indexFile)
	},
}

func init() {
	RootCmd.AddCommand(buildCmd)
}
