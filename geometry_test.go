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
	"math"
	"testing"
)

func TestThetaAxisSpecialCases(t *testing.T) {
	if got := theta(0, 1); math.Abs(got-math.Pi/2) > 1e-9 {
		t.Errorf("theta(0,1) = %v, want pi/2", got)
	}
	if got := theta(0, -1); math.Abs(got-3*math.Pi/2) > 1e-9 {
		t.Errorf("theta(0,-1) = %v, want 3*pi/2", got)
	}
}

func TestPointIndexRangeAtOrigin(t *testing.T) {
	p2 := Point{X: 0, Y: 0, L: 2}
	gte, lt := p2.IndexRange()
	if gte != 4 || lt != 8 {
		t.Errorf("Point(0,0,L=2).IndexRange() = (%d,%d), want (4,8)", gte, lt)
	}

	p3 := Point{X: 0, Y: 0, L: 3}
	gte, lt = p3.IndexRange()
	if gte != 20 || lt != 36 {
		t.Errorf("Point(0,0,L=3).IndexRange() = (%d,%d), want (20,36)", gte, lt)
	}
}

func TestPointIndexRangeWithinTier(t *testing.T) {
	for _, L := range []int{1, 2, 3, 4, 5} {
		for x := -3; x <= 3; x++ {
			for y := -3; y <= 3; y++ {
				p := Point{X: x, Y: y, L: L}
				gte, lt := p.IndexRange()
				if lt <= gte {
					t.Fatalf("Point(%d,%d,L=%d).IndexRange() = (%d,%d), want lt > gte", x, y, L, gte, lt)
				}
				if gte < Base(L) || lt > Base(L)+TierSize(L) {
					t.Errorf("Point(%d,%d,L=%d).IndexRange() = (%d,%d), out of tier bounds [%d,%d)",
						x, y, L, gte, lt, Base(L), Base(L)+TierSize(L))
				}
			}
		}
	}
}

func TestMakePointsCoversEveryPixel(t *testing.T) {
	const W, H, K = 17, 13, 4
	points := MakePoints(W, H, K)
	if len(points) != W*H {
		t.Fatalf("MakePoints returned %d points, want %d", len(points), W*H)
	}
	seen := make(map[[2]int]bool, W*H)
	for _, p := range points {
		seen[[2]int{p.W, p.H}] = true
		if p.L < 1 || p.L > K {
			t.Errorf("point (%d,%d) has out-of-range L=%d", p.W, p.H, p.L)
		}
	}
	if len(seen) != W*H {
		t.Errorf("MakePoints covered %d distinct pixels, want %d", len(seen), W*H)
	}
}

func TestMakePointsSortedByTier(t *testing.T) {
	points := MakePoints(9, 9, 3)
	for i := 1; i < len(points); i++ {
		if points[i].L < points[i-1].L {
			t.Fatalf("points not sorted by tier at index %d: L=%d after L=%d", i, points[i].L, points[i-1].L)
		}
	}
}
