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

import "errors"

// ErrBadAlphabet means a byte outside A/C/G/T (case-insensitive) reached
// the address layer. The ambiguity filter upstream should have dropped
// it; seeing this means the filter has a bug.
var ErrBadAlphabet = errors.New("kmeridx: letter outside A/C/G/T")

// ErrRangeOOB means an index or range fell outside the store's bounds.
var ErrRangeOOB = errors.New("kmeridx: index out of range")

// ErrCrossTier means a range_sum query spanned more than one tier.
// Counts in different tiers are not additive; this is a programming
// error, never a consequence of well-formed input.
var ErrCrossTier = errors.New("kmeridx: range crosses tier boundary")

// ErrDimensionMismatch means visualize's requested sequence length does
// not match the K implied by the index file's byte length.
var ErrDimensionMismatch = errors.New("kmeridx: sequence length does not match index file")

// ErrKOverflow means K is out of the supported range (1..MaxK), chosen
// so ByteLength(K) never overflows int64.
var ErrKOverflow = errors.New("kmeridx: K must be in 1..29")
