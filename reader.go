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
	"io"

	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seqio/fastx"
)

// RecordMeta is the (id, length) pair the Builder's dispatcher needs to
// enumerate the {(record_id, L) : L in 1..=K} work set; it carries no
// sequence bytes.
type RecordMeta struct {
	ID  string
	Len int
}

// RecordSource is the out-of-scope "external Reader" collaborator
// spec.md §1/§4.2 describes: it delivers records as (id, byte-sequence)
// pairs. This module only needs two capabilities from it: a cheap
// listing pass, and independent, reopenable streams so a Builder worker
// can fetch one record's sequence without coordinating with any other
// worker's position in the file (spec.md §5).
type RecordSource interface {
	// List returns every record's id and sequence length; it backs the
	// dispatcher's initial (record_id, L) work queue.
	List() ([]RecordMeta, error)
	// Open returns a fresh stream positioned at the start of the
	// source, ready for a single Seek.
	Open() (RecordStream, error)
}

// RecordStream lets a Builder worker fetch one record's full sequence
// by id. Implementations reopen/rescan rather than support true random
// access, matching spec.md §4.2's "reopens the sequence-record file,
// seeks the requested record" — a worker handling several (record_id,
// L) items opens a fresh RecordStream per item rather than reusing one
// across items, since items for the same record can land on different
// workers or out of file order.
type RecordStream interface {
	Seek(id string) ([]byte, error)
	Close() error
}

// FastxSource is the concrete RecordSource backed by
// github.com/shenwei356/bio/seqio/fastx, the same FASTA/FASTQ reader
// the teacher's count.go uses, opened through xopen so gzip-compressed
// reference genomes work transparently.
type FastxSource struct {
	Path string
}

// List scans the file once, recording each record's id and sequence
// length.
func (s FastxSource) List() ([]RecordMeta, error) {
	r, err := fastx.NewDefaultReader(s.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", s.Path)
	}
	var metas []RecordMeta
	for {
		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrapf(err, "read %s", s.Path)
		}
		metas = append(metas, RecordMeta{ID: string(rec.ID), Len: len(rec.Seq.Seq)})
	}
	return metas, nil
}

// Open returns a fresh sequential stream over the file.
func (s FastxSource) Open() (RecordStream, error) {
	r, err := fastx.NewDefaultReader(s.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", s.Path)
	}
	return &fastxStream{path: s.Path, reader: r}, nil
}

type fastxStream struct {
	path   string
	reader *fastx.Reader
}

// Seek scans forward from the stream's current position until it finds
// id, returning that record's sequence bytes. Because fastx.Reader is
// forward-only, a worker assigned multiple record ids out of file order
// reopens via RecordSource.Open again rather than rewinding.
func (s *fastxStream) Seek(id string) ([]byte, error) {
	for {
		rec, err := s.reader.Read()
		if err != nil {
			if err == io.EOF {
				return nil, errors.Errorf("record %q not found in %s", id, s.path)
			}
			return nil, errors.Wrapf(err, "read %s", s.path)
		}
		if string(rec.ID) == id {
			seq := make([]byte, len(rec.Seq.Seq))
			copy(seq, rec.Seq.Seq)
			return seq, nil
		}
	}
}

func (s *fastxStream) Close() error {
	s.reader.Close()
	return nil
}
