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

// Package kmeridx builds and queries a tiered frequency index of DNA
// k-mers: for every prefix length L from 1 to some maximum K, the
// occurrence count of each of the 4^L possible L-length A/C/G/T
// strings seen as a sliding window over a genome.
package kmeridx

// MaxK is the largest supported maximum k-mer length. Bounded so that
// ByteLength(MaxK) (8 * sum_{i=1}^{MaxK} 4^i) never overflows int64;
// MaxK=30 already does (≈1.23e19 bytes vs. int64's ≈9.22e18 max).
const MaxK = 29

// Base returns the number of counters occupied by tiers 1..L-1, i.e.
// the offset of tier L's first counter.
//
//	Base(1) = 0
//	Base(2) = 4
//	Base(3) = 20
//	Base(4) = 84
//	Base(L+1) = Base(L) + 4^L
func Base(L int) uint64 {
	var base uint64
	var tier uint64 = 1
	for i := 1; i < L; i++ {
		tier *= 4
		base += tier
	}
	return base
}

// TierSize returns 4^L, the number of distinct L-length k-mers.
func TierSize(L int) uint64 {
	var tier uint64 = 1
	for i := 0; i < L; i++ {
		tier *= 4
	}
	return tier
}

// NumCounters returns N(K), the total number of counters a store built
// with maximum length K holds: sum_{L=1..K} 4^L.
func NumCounters(K int) uint64 {
	return Base(K + 1)
}

// ByteLength returns the on-disk size, in bytes, of a store built with
// maximum length K: 8 * N(K).
func ByteLength(K int) int64 {
	return int64(NumCounters(K)) * 8
}

// KFromByteLength infers K from a store's on-disk byte length, the
// inverse of ByteLength. It returns false if the length does not
// correspond to any K in 1..MaxK.
func KFromByteLength(n int64) (int, bool) {
	if n <= 0 || n%8 != 0 {
		return 0, false
	}
	counters := uint64(n / 8)
	for K := 1; K <= MaxK; K++ {
		if NumCounters(K) == counters {
			return K, true
		}
		if NumCounters(K) > counters {
			return 0, false
		}
	}
	return 0, false
}

// encodeLetter maps a nucleotide letter to its 2-bit code:
// A/a->00, C/c->01, G/g->10, T/t->11. Any other byte is ErrBadAlphabet;
// IUPAC ambiguity codes are filtered upstream (see filter.go) and
// should never reach this layer.
func encodeLetter(b byte) (uint64, error) {
	switch b {
	case 'A', 'a':
		return 0, nil
	case 'C', 'c':
		return 1, nil
	case 'G', 'g':
		return 2, nil
	case 'T', 't':
		return 3, nil
	default:
		return 0, ErrBadAlphabet
	}
}

var decodeLetter = [4]byte{'a', 'c', 'g', 't'}

// SeqToAddr packs a k-mer's letters, most significant 2 bits first,
// into its base-4 address in [0, 4^len(s)).
func SeqToAddr(s string) (uint64, error) {
	var addr uint64
	for i := 0; i < len(s); i++ {
		code, err := encodeLetter(s[i])
		if err != nil {
			return 0, err
		}
		addr = addr<<2 | code
	}
	return addr, nil
}

// SeqToIndex returns the flat counter index of k-mer s: Base(len(s)) + addr(s).
func SeqToIndex(s string) (uint64, error) {
	if s == "" {
		return 0, ErrBadAlphabet
	}
	addr, err := SeqToAddr(s)
	if err != nil {
		return 0, err
	}
	return Base(len(s)) + addr, nil
}

// IndexToSeq is the inverse of SeqToIndex: it finds the tier L
// containing idx by walking Base(L) thresholds, then unpacks the
// address 2 bits at a time, most-significant-first.
func IndexToSeq(idx uint64) (string, error) {
	L := 1
	offset := uint64(0)
	for L <= MaxK {
		size := TierSize(L)
		if idx < offset+size {
			break
		}
		offset += size
		L++
	}
	if L > MaxK {
		return "", ErrRangeOOB
	}
	addr := idx - offset
	return addrToSeq(addr, L), nil
}

func addrToSeq(addr uint64, L int) string {
	buf := make([]byte, L)
	for i := L - 1; i >= 0; i-- {
		buf[i] = decodeLetter[addr&0b11]
		addr >>= 2
	}
	return string(buf)
}

// TierOf returns the tier L containing counter index idx.
func TierOf(idx uint64) (int, error) {
	L := 1
	offset := uint64(0)
	for L <= MaxK {
		size := TierSize(L)
		if idx < offset+size {
			return L, nil
		}
		offset += size
		L++
	}
	return 0, ErrRangeOOB
}
