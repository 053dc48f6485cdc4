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
	"image/png"
	"os"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/kmeridx/kmeridx"
)

const visualizeOutFile = "out.png"

var visualizeCmd = &cobra.Command{
	Use:   "visualize <index_file> <sequence_length> <side_length>",
	Short: "render a circular density visualization of an index",
	Long: `render a circular density visualization of an index

Sweeps every pixel of a side_length x side_length image, sums the
counters covering that pixel's angular and radial slice of the index,
and writes an 8-bit grayscale PNG to out.png in the current directory.
`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)

		indexFile := requireFile(args[0])
		k := parsePositiveInt("sequence_length", args[1])
		side := parsePositiveInt("side_length", args[2])

		store, err := kmeridx.OpenStore(indexFile)
		checkError(err)
		defer store.Close()

		if k != store.K() {
			checkError(kmeridx.ErrDimensionMismatch)
		}

		log.Infof("sweeping %dx%d image over %s (k=%d) with %d worker(s)", side, side, indexFile, k, opt.NumCPUs)

		start := time.Now()
		var lastLog time.Time
		result, err := kmeridx.RunQuery(store, side, side, opt.NumCPUs, func(done, total int) {
			if opt.Verbose && time.Since(lastLog) > time.Second {
				log.Infof("pixels swept: %s / %s", humanize.Comma(int64(done)), humanize.Comma(int64(total)))
				lastLog = time.Now()
			}
		})
		checkError(err)

		img := kmeridx.Luminance(result)

		out, err := os.Create(visualizeOutFile)
		checkError(err)
		defer out.Close()
		checkError(png.Encode(out, img))

		log.Infof("done in %s", time.Since(start).Round(time.Millisecond))
		fmt.Printf("wrote image: %s\n", visualizeOutFile)
	},
}

func init() {
	RootCmd.AddCommand(visualizeCmd)
}
