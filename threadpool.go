// SPDX-License-Identifier: Apache-2.0
// Source: github.com/krzymod/zopfli

package zopfli

import "sync"

// blockJob is one master block's worth of work handed to the thread
// pool: the byte range to compress and its index (so results can be
// reassembled in order regardless of completion order).
type blockJob struct {
	index      int
	data       []byte
	start, end int
	isLast     bool
}

// blockResult pairs a job's index with its finished bytes, so the
// caller can stitch results back together in submission order after
// collecting them from workers that may finish out of order.
type blockResult struct {
	index int
	bytes []byte
	err   error
}

// runThreaded compresses each job concurrently across opts.NumThreads
// workers and returns results ordered by index. Grounded on
// deflate.c's threading/ZopfliUseThreads intent (parallelize
// independent master blocks) but implemented the Go-idiomatic way: a
// worker pool over channels plus sync.WaitGroup, as
// elliotnunn-BeHierarchic's internal/walk/walk.go does for concurrent
// directory walking, rather than the C original's pthread + busy-poll
// (usleep(100000), is_running flag).
func runThreaded(jobs []blockJob, opts *Options, cache *blockCache) []blockResult {
	results := make([]blockResult, len(jobs))

	workers := opts.NumThreads
	if workers > len(jobs) {
		workers = len(jobs)
	}
	if workers < 1 {
		workers = 1
	}

	jobCh := make(chan blockJob)
	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for job := range jobCh {
				if opts.interrupted.requested() {
					results[job.index] = blockResult{index: job.index, err: ErrAborted}
					continue
				}
				out, err := compressJob(job, opts, cache)
				results[job.index] = blockResult{index: job.index, bytes: out, err: err}
			}
		}()
	}

	for _, j := range jobs {
		jobCh <- j
	}
	close(jobCh)
	wg.Wait()

	return results
}

// compressJob runs one job's range through the blockCache before
// falling back to the normal DeflatePart path, and re-emits from a
// cached token store directly when the cache hits.
func compressJob(job blockJob, opts *Options, cache *blockCache) ([]byte, error) {
	if cache != nil {
		if hit, ok := cache.get(job.data, job.start, job.end); ok {
			w := newBitWriter()
			emitBlock(w, hit.store, 0, hit.store.size(), job.isLast, opts)
			w.align()
			return w.bytes(), nil
		}
	}

	out, err := deflatePart(job.data, job.start, job.end, job.isLast, opts)
	if err != nil {
		return nil, err
	}

	if cache != nil {
		mf := newMatchFinder(job.data, opts, newMatchCache(job.end-job.start, opts.MaxCacheMemory))
		store := optimal(mf, job.start, job.end, opts, opts.interrupted)
		cache.put(job.data, job.start, job.end, subBlockResult{store: store, cost: estimateCost(store, fixedCostModel{})})
	}

	return out, nil
}

// CompressConcurrent splits data into opts.NumThreads roughly equal
// master blocks (or fewer, for small inputs) and compresses them in
// parallel, concatenating the resulting DEFLATE streams. It is the
// multi-threaded sibling of Compress for callers with NumThreads > 1;
// Compress itself stays single-threaded even when NumThreads is set,
// since running the whole input as one block nearly always compresses
// better than splitting purely for parallelism (§5 Concurrency Model).
func CompressConcurrent(data []byte, opts *Options) ([]byte, error) {
	o := normalized(opts)
	if o.NumThreads <= 1 || len(data) < o.NumThreads*minMatch*64 {
		return Compress(data, o)
	}

	chunk := (len(data) + o.NumThreads - 1) / o.NumThreads
	var jobs []blockJob
	for start, idx := 0, 0; start < len(data); start, idx = start+chunk, idx+1 {
		end := start + chunk
		if end > len(data) {
			end = len(data)
		}
		jobs = append(jobs, blockJob{index: idx, data: data, start: start, end: end, isLast: end == len(data)})
	}

	cache := newBlockCache(len(jobs) * 4)
	results := runThreaded(jobs, o, cache)

	var out []byte
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		out = append(out, r.bytes...)
	}
	return out, nil
}
