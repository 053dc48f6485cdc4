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
	"path/filepath"
	"testing"
)

// memRecords is an in-memory RecordSource/RecordStream over a fixed set
// of (id, sequence) pairs, standing in for the FASTA/Q file an actual
// RecordSource would read.
type memRecords struct {
	seqs map[string][]byte
	ids  []string
}

func newMemRecords(pairs map[string]string) *memRecords {
	seqs := make(map[string][]byte, len(pairs))
	ids := make([]string, 0, len(pairs))
	for id, s := range pairs {
		seqs[id] = []byte(s)
		ids = append(ids, id)
	}
	return &memRecords{seqs: seqs, ids: ids}
}

func (m *memRecords) List() ([]RecordMeta, error) {
	metas := make([]RecordMeta, 0, len(m.ids))
	for _, id := range m.ids {
		metas = append(metas, RecordMeta{ID: id, Len: len(m.seqs[id])})
	}
	return metas, nil
}

func (m *memRecords) Open() (RecordStream, error) {
	return &memStream{src: m}, nil
}

type memStream struct{ src *memRecords }

func (s *memStream) Seek(id string) ([]byte, error) {
	seq, ok := s.src.seqs[id]
	if !ok {
		return nil, ErrBadAlphabet
	}
	return seq, nil
}

func (s *memStream) Close() error { return nil }

func TestBuildCountsAllWindowLengths(t *testing.T) {
	const K = 3
	path := filepath.Join(t.TempDir(), "idx.bin")
	store, err := CreateStore(path, K)
	if err != nil {
		t.Fatalf("CreateStore: %v", err)
	}
	defer store.Close()

	src := newMemRecords(map[string]string{"chr1": "ACGT"})
	stats, err := Build(store, src, 2, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if stats.Records != 1 {
		t.Errorf("Records = %d, want 1", stats.Records)
	}
	// 4 windows of length 1, 3 of length 2, 2 of length 3: 9 total.
	if stats.Windows != 9 {
		t.Errorf("Windows = %d, want 9", stats.Windows)
	}

	for _, mer := range []string{"a", "c", "g", "t", "ac", "cg", "gt", "acg", "cgt"} {
		c, err := store.GetSeq(mer)
		if err != nil {
			t.Fatalf("GetSeq(%s): %v", mer, err)
		}
		if c != 1 {
			t.Errorf("GetSeq(%s) = %d, want 1", mer, c)
		}
	}
}

func TestBuildRejectsAmbiguousWindows(t *testing.T) {
	const K = 2
	path := filepath.Join(t.TempDir(), "idx.bin")
	store, err := CreateStore(path, K)
	if err != nil {
		t.Fatalf("CreateStore: %v", err)
	}
	defer store.Close()

	src := newMemRecords(map[string]string{"chr1": "ACNT"})
	stats, err := Build(store, src, 1, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// length-1 windows: A,C,N,T -> N rejected, 3 kept.
	// length-2 windows: AC,CN,NT -> CN and NT rejected, 1 kept.
	if stats.Windows != 4 {
		t.Errorf("Windows = %d, want 4", stats.Windows)
	}
	if stats.Rejected != 3 {
		t.Errorf("Rejected = %d, want 3", stats.Rejected)
	}
}

func TestBuildIsOrderIndependent(t *testing.T) {
	const K = 2
	pairs := map[string]string{
		"a": "ACGTACGT",
		"b": "GGGCCCTT",
		"c": "TTAACCGG",
	}

	results := make([]map[string]uint64, 0, 3)
	for i := 0; i < 3; i++ {
		path := filepath.Join(t.TempDir(), "idx.bin")
		store, err := CreateStore(path, K)
		if err != nil {
			t.Fatalf("CreateStore: %v", err)
		}
		src := newMemRecords(pairs)
		workers := i + 1
		if _, err := Build(store, src, workers, nil); err != nil {
			t.Fatalf("Build workers=%d: %v", workers, err)
		}

		counts := make(map[string]uint64)
		for _, mer := range []string{"a", "c", "g", "t", "ac", "cg", "gt", "gg", "cc", "tt", "aa"} {
			c, err := store.GetSeq(mer)
			if err != nil {
				t.Fatalf("GetSeq(%s): %v", mer, err)
			}
			counts[mer] = c
		}
		store.Close()
		results = append(results, counts)
	}

	for mer, want := range results[0] {
		for i := 1; i < len(results); i++ {
			if results[i][mer] != want {
				t.Errorf("mer %s: worker-count run %d got %d, want %d (run 0)", mer, i, results[i][mer], want)
			}
		}
	}
}
