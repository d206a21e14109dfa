package task

import (
	"context"
	"sync"

	"github.com/san-kum/collidegen/internal/storage"
)

// SampleResult reports the outcome of one sample in a batch. Failed
// samples carry their typed error; nothing is silently degraded.
type SampleResult struct {
	Index int
	Seed  int64
	Meta  *storage.SampleMetadata
	Err   error
}

// Batch fans sample generation out over a bounded worker pool. Each run
// derives its own seed from the base seed, so the batch is reproducible
// no matter how the scheduler interleaves workers.
type Batch struct {
	gen      *Generator
	samples  int
	seedBase int64
	workers  int
}

func NewBatch(gen *Generator, samples int, seedBase int64, workers int) *Batch {
	if workers < 1 {
		workers = 1
	}
	return &Batch{gen: gen, samples: samples, seedBase: seedBase, workers: workers}
}

// Run generates every sample and returns results ordered by index. The
// error is non-nil only when the context is canceled; per-sample failures
// are reported in the results so the caller can count, skip or resample.
func (b *Batch) Run(ctx context.Context) ([]SampleResult, error) {
	results := make([]SampleResult, b.samples)
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < b.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				seed := b.seedBase + int64(idx)
				meta, err := b.gen.WriteSample(ctx, idx, seed)
				results[idx] = SampleResult{Index: idx, Seed: seed, Meta: meta, Err: err}
			}
		}()
	}

	var ctxErr error
feed:
	for i := 0; i < b.samples; i++ {
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return results, ctxErr
}
