package processor

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// BatchResult is one fan-out outcome. Results are returned in input order;
// ID correlates a result with its originating request when callers shuffle
// them further.
type BatchResult struct {
	ID     string
	Input  string
	Output string
	Err    error
}

// ProcessAll runs the processor over every input concurrently and collects
// per-input outcomes. One input's failure does not cancel the others; no
// ordering is guaranteed between in-flight calls, only the result slice is
// ordered. limit bounds concurrency, <= 0 means unbounded.
func ProcessAll(ctx context.Context, p Processor, inputs []string, limit int) []BatchResult {
	results := make([]BatchResult, len(inputs))

	g := new(errgroup.Group)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, input := range inputs {
		i, input := i, input
		results[i] = BatchResult{ID: uuid.NewString(), Input: input}
		g.Go(func() error {
			out, err := p.Process(ctx, input)
			results[i].Output = out
			results[i].Err = err
			return nil
		})
	}

	// Errors are reported per result, never through the group.
	_ = g.Wait()
	return results
}
