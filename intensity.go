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

package kmeridx

import (
	"image"
	"image/color"
	"math"
)

func colorOf(intensity float64) color.Gray {
	if intensity < 0 {
		intensity = 0
	}
	if intensity > 1 {
		intensity = 1
	}
	return color.Gray{Y: uint8(intensity*255 + 0.5)}
}

// Luminance converts a QueryResult into an 8-bit grayscale image: each
// pixel's normalized intensity is (sum / max_per_L[L])^(1/4), scaled to
// [0,255]. The double-square-root compresses highlights; it is a fixed
// presentation choice (spec.md §4.4), not a tunable. The returned
// *image.Gray is exactly the width x height intensity buffer spec.md
// §1 describes the grayscale encoder as accepting.
func Luminance(r *QueryResult) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, r.Width, r.Height))
	K := len(r.MaxPerL) - 1
	R := r.Width
	if r.Height < R {
		R = r.Height
	}
	R /= 2

	for h := 0; h < r.Height; h++ {
		for w := 0; w < r.Width; w++ {
			sum := r.Counts[h*r.Width+w]
			x := r.Width/2 - w
			y := r.Height/2 - h
			L := pixelL(x, y, R, K)

			max := r.MaxPerL[L]
			var intensity float64
			if max > 0 {
				intensity = math.Pow(float64(sum)/float64(max), 0.25)
			}
			img.SetGray(w, h, colorOf(intensity))
		}
	}
	return img
}
