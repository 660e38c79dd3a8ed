package engine

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/Veraticus/the-budget-must-flow/internal/model"
)

// BatchOptions configures batch categorization behavior.
type BatchOptions struct {
	OnProgress        ProgressFunc // Optional progress callback
	Workers           int          // Number of parallel workers
	ParallelThreshold int          // Batches smaller than this run inline
}

// DefaultBatchOptions returns sensible defaults.
func DefaultBatchOptions() BatchOptions {
	return BatchOptions{
		Workers:           runtime.NumCPU(),
		ParallelThreshold: 256,
	}
}

// BatchCategorizer applies a Classifier to a collection of transactions.
type BatchCategorizer struct {
	classifier Classifier
	opts       BatchOptions
}

// NewBatchCategorizer creates a batch categorizer. Non-positive worker counts
// fall back to the defaults.
func NewBatchCategorizer(classifier Classifier, opts BatchOptions) *BatchCategorizer {
	defaults := DefaultBatchOptions()
	if opts.Workers <= 0 {
		opts.Workers = defaults.Workers
	}
	if opts.ParallelThreshold <= 0 {
		opts.ParallelThreshold = defaults.ParallelThreshold
	}
	return &BatchCategorizer{
		classifier: classifier,
		opts:       opts,
	}
}

// Categorize classifies every transaction, preserving input order. The only
// error it returns is the context's, if cancelled before the batch finishes.
func (b *BatchCategorizer) Categorize(ctx context.Context, txns []model.Transaction) ([]model.CategorizedTransaction, error) {
	startTime := time.Now()
	results := make([]model.CategorizedTransaction, len(txns))

	var err error
	if len(txns) < b.opts.ParallelThreshold || b.opts.Workers == 1 {
		err = b.categorizeInline(ctx, txns, results)
	} else {
		err = b.categorizeParallel(ctx, txns, results)
	}
	if err != nil {
		return nil, err
	}

	slog.Debug("Categorized batch",
		"transactions", len(txns),
		"workers", b.workersFor(len(txns)),
		"duration", time.Since(startTime))

	return results, nil
}

func (b *BatchCategorizer) workersFor(n int) int {
	if n < b.opts.ParallelThreshold {
		return 1
	}
	return b.opts.Workers
}

func (b *BatchCategorizer) categorizeInline(ctx context.Context, txns []model.Transaction, results []model.CategorizedTransaction) error {
	for i, txn := range txns {
		if err := ctx.Err(); err != nil {
			return err
		}
		results[i] = b.classifier.ClassifyTransaction(txn)
		b.reportProgress(i+1, len(txns))
	}
	return nil
}

// categorizeParallel fans indexes out to a fixed pool of workers. Each worker
// writes only to its own result slots, so no locking is needed on results.
func (b *BatchCategorizer) categorizeParallel(ctx context.Context, txns []model.Transaction, results []model.CategorizedTransaction) error {
	workChan := make(chan int, len(txns))
	for i := range txns {
		workChan <- i
	}
	close(workChan)

	doneChan := make(chan struct{}, len(txns))

	var wg sync.WaitGroup
	wg.Add(b.opts.Workers)
	for w := 0; w < b.opts.Workers; w++ {
		go func() {
			defer wg.Done()
			for i := range workChan {
				if ctx.Err() != nil {
					return
				}
				results[i] = b.classifier.ClassifyTransaction(txns[i])
				doneChan <- struct{}{}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(doneChan)
	}()

	done := 0
	for range doneChan {
		done++
		b.reportProgress(done, len(txns))
	}

	if done < len(txns) {
		return ctx.Err()
	}
	return nil
}

func (b *BatchCategorizer) reportProgress(done, total int) {
	if b.opts.OnProgress != nil {
		b.opts.OnProgress(done, total)
	}
}
