// Package worker runs one goroutine per chunk of an index range and joins them.
//
// RunChunked partitions the range with package chunk, starts a fresh goroutine
// for every chunk, and returns only after every goroutine has terminated.
// Nothing is pooled: each call spawns its own workers.
//
// # Basic Usage
//
//	completions, err := worker.RunChunked(ctx, 1000, 4, func(ctx context.Context, c chunk.Chunk) (worker.Completion, error) {
//	    data := make([]float64, c.Size)
//	    // fill data
//	    return worker.DoneWithData(c, data), nil
//	})
//
// # Completion Events
//
// A worker reports either KindDone (no payload) or KindDoneWithData (its
// filled slice). The caller only depends on termination; the payload is
// optional.
//
// # Failure
//
// An error returned by any worker, or a panic inside one, fails the whole run
// after all workers have terminated. Panics are recovered and reported as
// ErrWorkerPanic.
package worker
