// Package batch evaluates many document pairs concurrently and rolls the
// per-document results into a batch summary.
//
// Each comparison is an independent pure computation, so documents are
// fanned out to a worker pool; the final summary is a commutative fold and
// does not depend on completion order.
package batch

import (
	"context"
	"runtime"
	"sync"

	"github.com/baditaflorin/go_ocr_similarity/internal/core/batch"
	"github.com/baditaflorin/go_ocr_similarity/internal/core/domain"
)

// Comparer scores a candidate text against a reference text.
type Comparer interface {
	Compare(ctx context.Context, reference, candidate string) domain.Result
}

// Document is one unit of work: a labeled reference/candidate text pair.
type Document struct {
	ID        string
	Reference string
	Candidate string
}

// DocumentResult pairs a document ID with its comparison outcome. Err is
// reserved for callers recording upstream load failures; Run itself never
// sets it.
type DocumentResult struct {
	ID     string
	Result domain.Result
	Err    error
}

// Runner fans document comparisons out to a worker pool.
type Runner struct {
	comparer Comparer
	workers  int
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers sets the worker count. Zero or negative means NumCPU.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		r.workers = n
	}
}

// NewRunner creates a batch runner over the given comparer.
func NewRunner(comparer Comparer, opts ...Option) *Runner {
	r := &Runner{comparer: comparer}
	for _, opt := range opts {
		opt(r)
	}
	if r.workers <= 0 {
		r.workers = runtime.NumCPU()
	}
	return r
}

// Run compares every document and returns results in input order.
func (r *Runner) Run(ctx context.Context, docs []Document) []DocumentResult {
	results := make([]DocumentResult, len(docs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	workers := r.workers
	if workers > len(docs) {
		workers = len(docs)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				doc := docs[i]
				results[i] = DocumentResult{
					ID:     doc.ID,
					Result: r.comparer.Compare(ctx, doc.Reference, doc.Candidate),
				}
			}
		}()
	}

	for i := range docs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// Summarize aggregates successful document results into a BatchSummary.
// Entries carrying an error are skipped.
func Summarize(results []DocumentResult) domain.BatchSummary {
	scored := make([]domain.Result, 0, len(results))
	for _, dr := range results {
		if dr.Err != nil {
			continue
		}
		scored = append(scored, dr.Result)
	}
	return batch.Summarize(scored)
}
