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

// Accumulator holds a running [lo, hi) window and its sum over a Store,
// and advances incrementally from query to query rather than rescanning
// each range from scratch. Zero value is a valid, empty [0,0) window.
type Accumulator struct {
	lo, hi uint64
	sum    uint64
	L      int // not set by Reset or SumTo; callers track tier changes themselves
}

// Reset zeroes the accumulator back to an empty window at position p,
// used whenever the tier changes between consecutive queries (counts
// in different tiers are not additive, so the running sum cannot
// survive a tier change).
func (a *Accumulator) Reset(p uint64) {
	a.lo, a.hi, a.sum = p, p, 0
}

// SumTo advances the accumulator to [gte, lt) and returns the sum over
// that range. Moving from the previous window to this one reads exactly
// |lo1-lo0| + |hi1-hi0| counters: hi is walked to lt first, then lo is
// walked to gte, each one counter at a time, adding on the way out and
// subtracting on the way in (or the reverse, if the window is shrinking).
func (a *Accumulator) SumTo(s Store, gte, lt uint64) (uint64, error) {
	for a.hi < lt {
		c, err := s.Get(a.hi)
		if err != nil {
			return 0, err
		}
		a.sum += c
		a.hi++
	}
	for a.hi > lt {
		a.hi--
		c, err := s.Get(a.hi)
		if err != nil {
			return 0, err
		}
		a.sum -= c
	}
	for a.lo < gte {
		c, err := s.Get(a.lo)
		if err != nil {
			return 0, err
		}
		a.sum -= c
		a.lo++
	}
	for a.lo > gte {
		a.lo--
		c, err := s.Get(a.lo)
		if err != nil {
			return 0, err
		}
		a.sum += c
	}
	return a.sum, nil
}
