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

	"github.com/twotwotwo/sorts"
)

// Point is a pixel plus its derived k-mer tier and angular/index
// coverage. W,H are image-space coordinates; X,Y are centered on the
// image midpoint.
type Point struct {
	W, H int
	X, Y int
	L    int // sequence length (tier) this pixel renders
}

// pixelL derives a pixel's tier from its distance to the image center:
// pixels near the center render short prefixes, pixels near the edge
// render long, fine-detail prefixes. R = min(width,height)/2.
func pixelL(x, y, R, K int) int {
	if R == 0 {
		return 1
	}
	rSquared := float64(x*x + y*y)
	p := rSquared / float64(R*R)
	if p > 1 {
		p = 1
	}
	L := int(p*float64(K-1)) + 1
	if L < 1 {
		L = 1
	}
	if L > K {
		L = K
	}
	return L
}

// MakePoints enumerates every pixel of a width x height image, derives
// each one's tier, and returns them sorted primarily by L and
// secondarily by (gte, lt) so that a QueryEngine worker walking the
// sorted list sees a monotonic, same-tier walk over the index space as
// long as possible. Large side lengths sort millions of pixels, so the
// sort uses the teacher's own parallel-sort dependency rather than the
// standard library's single-threaded sort.Sort.
func MakePoints(width, height, K int) []Point {
	points := make([]Point, 0, width*height)
	R := width
	if height < R {
		R = height
	}
	R /= 2
	for w := 0; w < width; w++ {
		for h := 0; h < height; h++ {
			x := width/2 - w
			y := height/2 - h
			points = append(points, Point{
				W: w, H: h,
				X: x, Y: y,
				L: pixelL(x, y, R, K),
			})
		}
	}
	sortPoints(points)
	return points
}

type pointSlice []Point

func (p pointSlice) Len() int      { return len(p) }
func (p pointSlice) Swap(i, j int) { p[i], p[j] = p[j], p[i] }
func (p pointSlice) Less(i, j int) bool {
	if p[i].L != p[j].L {
		return p[i].L < p[j].L
	}
	gi, li := p[i].IndexRange()
	gj, lj := p[j].IndexRange()
	if gi != gj {
		return gi < gj
	}
	return li < lj
}

func sortPoints(points []Point) {
	sorts.Quicksort(pointSlice(points))
}

// theta normalizes atan2(y, x) into [0, 2*pi), with the axis-aligned
// special cases spec.md calls out landing on exact pi/2, 3*pi/2.
func theta(x, y int) float64 {
	var t float64
	switch {
	case x == 0 && y > 0:
		t = math.Pi / 2
	case x == 0 && y < 0:
		t = 3 * math.Pi / 2
	default:
		t = math.Atan2(float64(y), float64(x))
		if t < 0 {
			t += 2 * math.Pi
		}
	}
	return t
}

// thetaDelta returns the (start, width) of the shorter arc between t1
// and t2, choosing whichever of the clockwise/counterclockwise
// directions is smaller.
func thetaDelta(t1, t2 float64) (float64, float64) {
	ccw := t2 - t1
	if ccw < 0 {
		ccw += 2 * math.Pi
	}
	cw := t1 - t2
	if cw < 0 {
		cw += 2 * math.Pi
	}
	if cw < ccw {
		return t2, cw
	}
	return t1, ccw
}

// Thetas computes the pixel's angular coverage (theta_lo, theta_hi) as
// the maximum pairwise arc distance over the angles of its four
// corners (origin corner excluded when present), taken over both
// senses of travel.
func (p Point) Thetas() (lo, hi float64) {
	type corner struct{ x, y int }
	corners := []corner{{p.X, p.Y}, {p.X + 1, p.Y}, {p.X, p.Y + 1}, {p.X + 1, p.Y + 1}}
	thetas := make([]float64, 0, 4)
	for _, c := range corners {
		if c.x == 0 && c.y == 0 {
			continue
		}
		thetas = append(thetas, theta(c.x, c.y))
	}
	var bestStart, bestWidth float64
	for i := range thetas {
		for j := range thetas {
			if i == j {
				continue
			}
			start, width := thetaDelta(thetas[i], thetas[j])
			if width > bestWidth {
				bestStart, bestWidth = start, width
			}
		}
	}
	return bestStart, bestStart + bestWidth
}

// indexAt maps an angle theta at tier L to its flat counter index:
// base(L) + floor(theta/(2*pi) * 4^L).
func indexAt(theta float64, L int) uint64 {
	base := Base(L)
	max := TierSize(L)
	percentage := theta / (2 * math.Pi)
	addr := uint64(percentage * float64(max))
	return base + addr
}

// IndexRange returns the pixel's half-open counter-index range
// [gte, lt), always covering at least one counter.
func (p Point) IndexRange() (gte, lt uint64) {
	lo, hi := p.Thetas()
	gte = indexAt(lo, p.L)
	lt = indexAt(hi, p.L)
	if lt == gte {
		lt++
	}
	return gte, lt
}

// SeqRange returns the k-mer strings bounding the pixel's index range.
func (p Point) SeqRange() (lo, hi string, err error) {
	gte, lt := p.IndexRange()
	lo, err = IndexToSeq(gte)
	if err != nil {
		return "", "", err
	}
	hi, err = IndexToSeq(lt)
	if err != nil {
		return "", "", err
	}
	return lo, hi, nil
}
