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

// isACGT reports whether b is A/C/G/T, case-insensitive.
func isACGT(b byte) bool {
	switch b {
	case 'A', 'a', 'C', 'c', 'G', 'g', 'T', 't':
		return true
	default:
		return false
	}
}

// CleanWindow reports whether every byte of window, case-folded, is one
// of a/c/g/t. Any IUPAC ambiguity code (n/m/r/y/w/k/b/s, or any other
// non-ACGT byte) disqualifies the whole window: it is dropped as a
// unit, never partially counted.
func CleanWindow(window []byte) bool {
	for _, b := range window {
		if !isACGT(b) {
			return false
		}
	}
	return true
}
