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
	"unsafe"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
)

// Store is the read side shared by WritableStore and ReadOnlyStore: a
// flat array of 4^1+4^2+...+4^K 64-bit counters, addressed by the
// base-4 packed index of a k-mer (see address.go).
type Store interface {
	K() int
	Get(idx uint64) (uint64, error)
	GetSeq(s string) (uint64, error)
}

// WritableStore holds exclusive ownership of a file-backed mapping,
// created at a fixed size for a declared maximum k-mer length. Only
// one writer may hold a WritableStore for a given path at a time
// (spec: no concurrent writers).
type WritableStore struct {
	f   *os.File
	mm  mmap.MMap
	buf []uint64
	k   int
}

// ReadOnlyStore is a shared, cheaply-duplicable read-only view of an
// existing index file. Each handle (the original and every Clone) owns
// its own mapping of the same immutable bytes.
type ReadOnlyStore struct {
	f    *os.File
	mm   mmap.MMap
	buf  []uint64
	k    int
	path string
}

func asUint64Slice(b []byte) []uint64 {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Slice((*uint64)(unsafe.Pointer(&b[0])), len(b)/8)
}

// CreateStore allocates a fresh file of byte length 8*N(K), zero-filled
// by the OS on truncation, and maps it read-write. A file already at
// path is truncated first, so its previous contents are discarded and
// every counter starts at zero.
func CreateStore(path string, K int) (*WritableStore, error) {
	if K < 1 || K > MaxK {
		return nil, ErrKOverflow
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "create index file")
	}
	size := ByteLength(K)
	if err := f.Truncate(size); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "size index file")
	}
	mm, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "mmap index file")
	}
	return &WritableStore{f: f, mm: mm, buf: asUint64Slice(mm), k: K}, nil
}

// K returns the maximum k-mer length this store was built for.
func (s *WritableStore) K() int { return s.k }

// Get returns the counter at flat index idx.
func (s *WritableStore) Get(idx uint64) (uint64, error) {
	if idx >= uint64(len(s.buf)) {
		return 0, ErrRangeOOB
	}
	return s.buf[idx], nil
}

// GetSeq returns the counter for k-mer s.
func (s *WritableStore) GetSeq(seq string) (uint64, error) {
	idx, err := SeqToIndex(seq)
	if err != nil {
		return 0, err
	}
	return s.Get(idx)
}

// Increment adds 1 to the counter at flat index idx.
func (s *WritableStore) Increment(idx uint64) error {
	if idx >= uint64(len(s.buf)) {
		return ErrRangeOOB
	}
	s.buf[idx]++
	return nil
}

// IncrementSeq adds 1 to the counter for k-mer seq.
func (s *WritableStore) IncrementSeq(seq string) error {
	idx, err := SeqToIndex(seq)
	if err != nil {
		return err
	}
	return s.Increment(idx)
}

// Flush forces dirty pages to disk without closing the mapping.
func (s *WritableStore) Flush() error {
	return errors.Wrap(s.mm.Flush(), "flush index file")
}

// Close unmaps and closes the backing file.
func (s *WritableStore) Close() error {
	if err := s.mm.Unmap(); err != nil {
		s.f.Close()
		return errors.Wrap(err, "unmap index file")
	}
	return errors.Wrap(s.f.Close(), "close index file")
}

// OpenStore opens an existing index file read-only. The file's byte
// length implicitly encodes K (see KFromByteLength).
func OpenStore(path string) (*ReadOnlyStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open index file")
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "stat index file")
	}
	K, ok := KFromByteLength(info.Size())
	if !ok {
		f.Close()
		return nil, errors.Errorf("index file %s has invalid size %d bytes for any supported K", path, info.Size())
	}
	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "mmap index file")
	}
	return &ReadOnlyStore{f: f, mm: mm, buf: asUint64Slice(mm), k: K, path: path}, nil
}

// Clone reopens the same path, returning an independent mapping handle
// that shares no mutable state with the original — the cheap
// duplication spec.md §5 requires so each QueryEngine worker can hold
// its own handle.
func (s *ReadOnlyStore) Clone() (*ReadOnlyStore, error) {
	return OpenStore(s.path)
}

// K returns the maximum k-mer length this store was built for.
func (s *ReadOnlyStore) K() int { return s.k }

// Get returns the counter at flat index idx.
func (s *ReadOnlyStore) Get(idx uint64) (uint64, error) {
	if idx >= uint64(len(s.buf)) {
		return 0, ErrRangeOOB
	}
	return s.buf[idx], nil
}

// GetSeq returns the counter for k-mer s.
func (s *ReadOnlyStore) GetSeq(seq string) (uint64, error) {
	idx, err := SeqToIndex(seq)
	if err != nil {
		return 0, err
	}
	return s.Get(idx)
}

// RangeSum sums counters over the half-open range [gte, lt). The range
// must lie within a single tier: [gte, lt) must be a subset of
// [Base(L), Base(L)+4^L) for some L, since counts in different tiers
// are not additive. A range crossing a tier boundary is a programming
// error (ErrCrossTier), not a data condition.
func RangeSum(s Store, gte, lt uint64) (uint64, error) {
	if lt < gte {
		return 0, ErrRangeOOB
	}
	if lt == gte {
		return 0, nil
	}
	loTier, err := TierOf(gte)
	if err != nil {
		return 0, err
	}
	hiTier, err := TierOf(lt - 1)
	if err != nil {
		return 0, err
	}
	if loTier != hiTier {
		return 0, ErrCrossTier
	}
	var sum uint64
	for i := gte; i < lt; i++ {
		c, err := s.Get(i)
		if err != nil {
			return 0, err
		}
		sum += c
	}
	return sum, nil
}
