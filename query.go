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

import "sync"

// QueryResult is the outcome of the sweep: a W*H intensity-source buffer
// of raw counts and, per tier, the maximum count observed — the two
// inputs the intensity mapping (intensity.go) needs.
type QueryResult struct {
	Width, Height int
	Counts        []uint64 // len Width*Height, indexed h*Width+w
	MaxPerL       []uint64 // len K+1, index 0 unused
}

// pixelSum is one worker's output: a single pixel's range-sum.
type pixelSum struct {
	w, h int
	l    int
	sum  uint64
}

// ProgressFunc is called periodically (wall-clock, no correctness
// effect) as the sweep advances, per spec.md §4.4.
type ProgressFunc func(done, total int)

// RunQuery performs the parallel range-sum sweep described in spec.md
// §4.4: it enumerates every pixel, sorts them by tier then index range,
// partitions the sorted list into workers*8 chunks so neighboring
// chunks touch similar index ranges, and has each worker walk its
// chunks with an incremental Accumulator that resets whenever the tier
// changes between consecutive pixels.
func RunQuery(store *ReadOnlyStore, width, height, workers int, progress ProgressFunc) (*QueryResult, error) {
	if workers < 1 {
		workers = 1
	}
	K := store.K()
	points := MakePoints(width, height, K)

	numChunks := workers * 8
	if numChunks > len(points) {
		numChunks = len(points)
	}
	if numChunks < 1 {
		numChunks = 1
	}
	chunks := splitIntoChunks(points, numChunks)

	chunkCh := make(chan []Point, numChunks)
	resultCh := make(chan pixelSum, 1024)
	done := make(chan struct{})

	var errOnce sync.Once
	var firstErr error
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			close(done)
		})
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			handle, err := store.Clone()
			if err != nil {
				fail(err)
				return
			}
			defer handle.Close()

			for chunk := range chunkCh {
				if err := processChunk(handle, chunk, resultCh, done); err != nil {
					fail(err)
					return
				}
			}
		}()
	}

	go func() {
		defer close(chunkCh)
		for _, c := range chunks {
			select {
			case chunkCh <- c:
			case <-done:
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	result := &QueryResult{
		Width:   width,
		Height:  height,
		Counts:  make([]uint64, width*height),
		MaxPerL: make([]uint64, K+1),
	}

	total := len(points)
	seen := 0
	for ps := range resultCh {
		result.Counts[ps.h*width+ps.w] = ps.sum
		if ps.sum > result.MaxPerL[ps.l] {
			result.MaxPerL[ps.l] = ps.sum
		}
		seen++
		if progress != nil && seen%100000 == 0 {
			progress(seen, total)
		}
	}

	if firstErr != nil {
		return nil, firstErr
	}
	if progress != nil {
		progress(total, total)
	}
	return result, nil
}

// processChunk walks one chunk of (already tier-and-index sorted)
// pixels with a single Accumulator, resetting it whenever the tier
// changes between consecutive pixels — required because the sort's
// primary key is L but does not guarantee a chunk never straddles a
// tier boundary (spec.md §4.4, §9).
func processChunk(store Store, chunk []Point, out chan<- pixelSum, done <-chan struct{}) error {
	var acc Accumulator
	curL := -1
	for _, p := range chunk {
		gte, lt := p.IndexRange()
		if p.L != curL {
			acc.Reset(gte)
			curL = p.L
		}
		sum, err := acc.SumTo(store, gte, lt)
		if err != nil {
			return err
		}
		select {
		case out <- pixelSum{w: p.W, h: p.H, l: p.L, sum: sum}:
		case <-done:
			return nil
		}
	}
	return nil
}

// splitIntoChunks partitions a sorted slice into at most n contiguous
// chunks of ceil(len/n) points each (the last may be shorter).
func splitIntoChunks(points []Point, n int) [][]Point {
	if n < 1 {
		n = 1
	}
	chunks := make([][]Point, 0, n)
	size := (len(points) + n - 1) / n
	if size < 1 {
		size = 1
	}
	for i := 0; i < len(points); i += size {
		end := i + size
		if end > len(points) {
			end = len(points)
		}
		chunks = append(chunks, points[i:end])
	}
	return chunks
}
