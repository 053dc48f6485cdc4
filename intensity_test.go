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

import "testing"

func TestColorOfClamps(t *testing.T) {
	if got := colorOf(-1).Y; got != 0 {
		t.Errorf("colorOf(-1) = %d, want 0", got)
	}
	if got := colorOf(2).Y; got != 255 {
		t.Errorf("colorOf(2) = %d, want 255", got)
	}
	if got := colorOf(1).Y; got != 255 {
		t.Errorf("colorOf(1) = %d, want 255", got)
	}
	if got := colorOf(0).Y; got != 0 {
		t.Errorf("colorOf(0) = %d, want 0", got)
	}
}

func TestLuminanceProducesRequestedDimensions(t *testing.T) {
	const W, H = 6, 4
	result := &QueryResult{
		Width:   W,
		Height:  H,
		Counts:  make([]uint64, W*H),
		MaxPerL: []uint64{0, 10, 10, 10},
	}
	for i := range result.Counts {
		result.Counts[i] = uint64(i)
	}
	img := Luminance(result)
	bounds := img.Bounds()
	if bounds.Dx() != W || bounds.Dy() != H {
		t.Fatalf("Luminance image dims = %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), W, H)
	}
}
