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
	"sync"
	"sync/atomic"
)

// BuildProgress is called periodically as work items finish, wall-clock
// only, no correctness effect.
type BuildProgress func(itemsDone, itemsTotal int)

// BuildStats summarizes one Build run.
type BuildStats struct {
	Records  int
	Windows  int // windows kept after ambiguity filtering
	Rejected int // windows dropped for containing a non-ACGT byte
}

// lengthWork is one dispatcher-issued unit: a single record at a single
// prefix length L, so that the K different lengths of one record can be
// distributed across workers instead of serialized onto whichever
// worker drew that record.
type lengthWork struct {
	id string
	l  int
}

// kmerHit is one sliding window's accepted k-mer, destined for the
// single writer goroutine.
type kmerHit struct {
	seq string
}

// Build runs the parallel ingest pipeline: it lists every record, then
// a dispatcher goroutine feeds one lengthWork item per (record_id, L) pair,
// L in 1..=K, to a worker pool (spec.md §4.2 step 1); each worker
// reopens the record source and seeks the requested record for every
// item it draws, then slides a single-length window across it,
// discarding any window that contains a non-ACGT byte; accepted
// windows are sent as k-mer strings to a single writer goroutine,
// which is the only goroutine touching the WritableStore (spec.md
// §4.2, §5). Because every increment commutes, workers need no
// coordination beyond the writer's channel.
func Build(store *WritableStore, src RecordSource, workers int, progress BuildProgress) (BuildStats, error) {
	if workers < 1 {
		workers = 1
	}
	metas, err := src.List()
	if err != nil {
		return BuildStats{}, err
	}
	K := store.K()

	items := make([]lengthWork, 0, len(metas)*K)
	for _, m := range metas {
		for L := 1; L <= K; L++ {
			items = append(items, lengthWork{id: m.ID, l: L})
		}
	}

	workCh := make(chan lengthWork, workers*2)
	hitCh := make(chan kmerHit, 4096)
	done := make(chan struct{})
	var rejected int64
	var itemsDone int64

	var errOnce sync.Once
	var firstErr error
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			close(done)
		})
	}

	var workerWG sync.WaitGroup
	for i := 0; i < workers; i++ {
		workerWG.Add(1)
		go func() {
			defer workerWG.Done()
			for work := range workCh {
				if err := windowLength(src, work, hitCh, done, &rejected); err != nil {
					fail(err)
					return
				}
				atomic.AddInt64(&itemsDone, 1)
			}
		}()
	}

	go func() {
		defer close(workCh)
		for _, item := range items {
			select {
			case workCh <- item:
			case <-done:
				return
			}
		}
	}()

	go func() {
		workerWG.Wait()
		close(hitCh)
	}()

	var stats BuildStats
	for hit := range hitCh {
		if err := store.IncrementSeq(hit.seq); err != nil {
			fail(err)
			continue
		}
		stats.Windows++
		if progress != nil && stats.Windows%100000 == 0 {
			progress(int(atomic.LoadInt64(&itemsDone)), len(items))
		}
	}

	if firstErr != nil {
		return stats, firstErr
	}

	stats.Records = len(metas)
	stats.Rejected = int(atomic.LoadInt64(&rejected))
	if progress != nil {
		progress(len(items), len(items))
	}
	return stats, nil
}

// windowLength opens a fresh stream onto the record source, seeks the
// requested record, and slides a single-length window of length
// work.l across its sequence, rejecting windows per CleanWindow and
// sending every accepted window's k-mer string to hitCh.
func windowLength(src RecordSource, work lengthWork, hitCh chan<- kmerHit, done <-chan struct{}, rejected *int64) error {
	stream, err := src.Open()
	if err != nil {
		return err
	}
	defer stream.Close()

	sequence, err := stream.Seek(work.id)
	if err != nil {
		return err
	}

	n := len(sequence)
	L := work.l
	if L > n {
		return nil
	}
	for i := 0; i+L <= n; i++ {
		window := sequence[i : i+L]
		if !CleanWindow(window) {
			atomic.AddInt64(rejected, 1)
			continue
		}
		select {
		case hitCh <- kmerHit{seq: string(window)}:
		case <-done:
			return nil
		}
	}
	return nil
}
