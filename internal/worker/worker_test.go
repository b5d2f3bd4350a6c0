package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fillbench/internal/chunk"
)

func fillWithData(_ context.Context, c chunk.Chunk) (Completion, error) {
	data := make([]float64, c.Size)
	for i := range data {
		data[i] = 1
	}
	return DoneWithData(c, data), nil
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "done", KindDone.String())
	assert.Equal(t, "done_with_data", KindDoneWithData.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestRunChunkedWithData(t *testing.T) {
	completions, err := RunChunked(context.Background(), 1000, 4, fillWithData)
	require.NoError(t, err)
	require.Len(t, completions, 4)

	total := 0
	for i, c := range completions {
		assert.Equal(t, i, c.Chunk.Index)
		assert.Equal(t, KindDoneWithData, c.Kind)
		assert.Len(t, c.Data, c.Chunk.Size)
		total += len(c.Data)
	}
	assert.Equal(t, 1000, total)
}

func TestRunChunkedSignalOnly(t *testing.T) {
	completions, err := RunChunked(context.Background(), 10, 3, func(_ context.Context, c chunk.Chunk) (Completion, error) {
		return Done(c), nil
	})
	require.NoError(t, err)
	require.Len(t, completions, 3)
	for _, c := range completions {
		assert.Equal(t, KindDone, c.Kind)
		assert.Nil(t, c.Data)
	}
}

func TestRunChunkedWaitsForAllWorkers(t *testing.T) {
	const numWorkers = 8
	var finished atomic.Int32

	_, err := RunChunked(context.Background(), 800, numWorkers, func(_ context.Context, c chunk.Chunk) (Completion, error) {
		// 後ろのチャンクほど早く終わる
		time.Sleep(time.Duration(numWorkers-c.Index) * 2 * time.Millisecond)
		finished.Add(1)
		return Done(c), nil
	})
	require.NoError(t, err)
	assert.Equal(t, int32(numWorkers), finished.Load())
}

func TestRunChunkedRunsInParallel(t *testing.T) {
	const numWorkers = 4
	var wg sync.WaitGroup
	wg.Add(numWorkers)

	// 全ワーカーが同時に存在しないと抜けられないバリア
	done := make(chan struct{})
	go func() {
		_, _ = RunChunked(context.Background(), 100, numWorkers, func(_ context.Context, c chunk.Chunk) (Completion, error) {
			wg.Done()
			wg.Wait()
			return Done(c), nil
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("workers did not run concurrently")
	}
}

func TestRunChunkedObserver(t *testing.T) {
	var mu sync.Mutex
	seen := map[int]Kind{}

	_, err := RunChunkedWithOptions(context.Background(), 100, 5, fillWithData, Options{
		OnDone: func(c Completion) {
			mu.Lock()
			defer mu.Unlock()
			seen[c.Chunk.Index] = c.Kind
		},
	})
	require.NoError(t, err)
	assert.Len(t, seen, 5)
}

func TestRunChunkedWorkerError(t *testing.T) {
	boom := errors.New("boom")
	var finished atomic.Int32

	completions, err := RunChunked(context.Background(), 100, 4, func(_ context.Context, c chunk.Chunk) (Completion, error) {
		defer finished.Add(1)
		if c.Index == 2 {
			return Completion{}, boom
		}
		return Done(c), nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, completions)
	// 失敗しても全ワーカーの終了を待つ
	assert.Equal(t, int32(4), finished.Load())
}

func TestRunChunkedWorkerPanic(t *testing.T) {
	_, err := RunChunked(context.Background(), 100, 4, func(_ context.Context, c chunk.Chunk) (Completion, error) {
		if c.Index == 0 {
			panic("out of memory")
		}
		return Done(c), nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWorkerPanic)
	assert.Contains(t, err.Error(), "chunk-0")
}

func TestRunChunkedMultipleFailures(t *testing.T) {
	boom := errors.New("boom")
	_, err := RunChunked(context.Background(), 100, 4, func(_ context.Context, c chunk.Chunk) (Completion, error) {
		if c.Index%2 == 0 {
			return Completion{}, boom
		}
		panic("crash")
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, ErrWorkerPanic)
}

func TestRunChunkedReportsEveryFailedChunk(t *testing.T) {
	_, err := RunChunked(context.Background(), 100, 4, func(_ context.Context, c chunk.Chunk) (Completion, error) {
		if c.Index == 1 || c.Index == 3 {
			return Completion{}, errors.New("fill failed")
		}
		return Done(c), nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chunk-1")
	assert.Contains(t, err.Error(), "chunk-3")
	assert.NotContains(t, err.Error(), "chunk-0")
}

func TestRunChunkedInvalidArgs(t *testing.T) {
	_, err := RunChunked(context.Background(), 100, 0, fillWithData)
	assert.ErrorIs(t, err, chunk.ErrInvalidWorkers)

	_, err = RunChunked(context.Background(), -1, 2, fillWithData)
	assert.ErrorIs(t, err, chunk.ErrNegativeSize)
}

func TestRunChunkedZeroSize(t *testing.T) {
	completions, err := RunChunked(context.Background(), 0, 4, fillWithData)
	require.NoError(t, err)
	require.Len(t, completions, 4)
	for _, c := range completions {
		assert.Equal(t, 0, c.Chunk.Size)
		assert.Empty(t, c.Data)
	}
}
