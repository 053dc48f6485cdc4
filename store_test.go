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
	"os"
	"path/filepath"
	"testing"
)

func TestCreateStoreByteLength(t *testing.T) {
	for _, K := range []int{1, 2, 3, 8} {
		path := filepath.Join(t.TempDir(), "idx.bin")
		s, err := CreateStore(path, K)
		if err != nil {
			t.Fatalf("CreateStore K=%d: %v", K, err)
		}
		if s.K() != K {
			t.Errorf("K() = %d, want %d", s.K(), K)
		}
		if err := s.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}

		opened, err := OpenStore(path)
		if err != nil {
			t.Fatalf("OpenStore: %v", err)
		}
		if opened.K() != K {
			t.Errorf("OpenStore K() = %d, want %d", opened.K(), K)
		}
		opened.Close()
	}
}

func TestIncrementAndGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idx.bin")
	s, err := CreateStore(path, 3)
	if err != nil {
		t.Fatalf("CreateStore: %v", err)
	}
	defer s.Close()

	for i := 0; i < 5; i++ {
		if err := s.IncrementSeq("ac"); err != nil {
			t.Fatalf("IncrementSeq: %v", err)
		}
	}
	c, err := s.GetSeq("ac")
	if err != nil {
		t.Fatalf("GetSeq: %v", err)
	}
	if c != 5 {
		t.Errorf("GetSeq(ac) = %d, want 5", c)
	}

	other, err := s.GetSeq("gt")
	if err != nil {
		t.Fatalf("GetSeq: %v", err)
	}
	if other != 0 {
		t.Errorf("GetSeq(gt) = %d, want 0", other)
	}
}

func TestRangeSumMatchesIncrements(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idx.bin")
	s, err := CreateStore(path, 2)
	if err != nil {
		t.Fatalf("CreateStore: %v", err)
	}
	defer s.Close()

	for _, seq := range []string{"aa", "ac", "ac", "gt"} {
		if err := s.IncrementSeq(seq); err != nil {
			t.Fatalf("IncrementSeq(%s): %v", seq, err)
		}
	}

	sum, err := RangeSum(s, Base(2), Base(2)+TierSize(2))
	if err != nil {
		t.Fatalf("RangeSum: %v", err)
	}
	if sum != 4 {
		t.Errorf("RangeSum over tier 2 = %d, want 4", sum)
	}
}

func TestRangeSumCrossTierRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idx.bin")
	s, err := CreateStore(path, 3)
	if err != nil {
		t.Fatalf("CreateStore: %v", err)
	}
	defer s.Close()

	_, err = RangeSum(s, Base(2), Base(3)+1)
	if err != ErrCrossTier {
		t.Errorf("RangeSum crossing tiers: err = %v, want ErrCrossTier", err)
	}
}

func TestOpenStoreRejectsBadSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idx.bin")
	s, err := CreateStore(path, 2)
	if err != nil {
		t.Fatalf("CreateStore: %v", err)
	}
	s.Close()

	// Truncate to a byte length that maps to no K.
	if err := os.Truncate(path, ByteLength(2)-3); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	if _, err := OpenStore(path); err == nil {
		t.Fatalf("OpenStore over malformed file: want error, got nil")
	}
}
