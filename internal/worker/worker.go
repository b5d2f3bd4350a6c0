package worker

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"fillbench/internal/chunk"
	"fillbench/internal/logger"
)

// ErrWorkerPanic はワーカー内でpanicが発生した場合のエラー
var ErrWorkerPanic = errors.New("worker terminated abnormally")

// Kind は完了イベントの種類
type Kind int

const (
	// KindDone はペイロードなしの完了
	KindDone Kind = iota
	// KindDoneWithData は生成した配列付きの完了
	KindDoneWithData
)

func (k Kind) String() string {
	switch k {
	case KindDone:
		return "done"
	case KindDoneWithData:
		return "done_with_data"
	default:
		return "unknown"
	}
}

// Completion はワーカーの完了イベント
type Completion struct {
	Kind  Kind
	Chunk chunk.Chunk
	Data  []float64 // KindDoneWithData の場合のみ
}

// Done はペイロードなしの完了イベントを作成する
func Done(c chunk.Chunk) Completion {
	return Completion{Kind: KindDone, Chunk: c}
}

// DoneWithData は配列付きの完了イベントを作成する
func DoneWithData(c chunk.Chunk, data []float64) Completion {
	return Completion{Kind: KindDoneWithData, Chunk: c, Data: data}
}

// ChunkFunc は1チャンク分の処理
type ChunkFunc func(ctx context.Context, c chunk.Chunk) (Completion, error)

// Observer はワーカー終了時に呼ばれるコールバック
type Observer func(c Completion)

// Options は RunChunked のオプション
type Options struct {
	OnDone Observer
}

// RunChunked は arraySize を numWorkers 個に分割し、チャンクごとにゴルーチンを起動して全終了を待つ
func RunChunked(ctx context.Context, arraySize, numWorkers int, fn ChunkFunc) ([]Completion, error) {
	return RunChunkedWithOptions(ctx, arraySize, numWorkers, fn, Options{})
}

// RunChunkedWithOptions はオプションを指定して RunChunked を実行する
func RunChunkedWithOptions(ctx context.Context, arraySize, numWorkers int, fn ChunkFunc, opts Options) ([]Completion, error) {
	chunks, err := chunk.Split(arraySize, numWorkers)
	if err != nil {
		return nil, err
	}

	completions := make([]Completion, len(chunks))
	errs := make([]error, len(chunks))

	// errgroup.WithContext は使わない: 1つが失敗しても他のワーカーは最後まで走らせる
	var g errgroup.Group
	for _, c := range chunks {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%s: %w: %v", c, ErrWorkerPanic, r)
				}
				errs[c.Index] = err
			}()

			completion, err := fn(ctx, c)
			if err != nil {
				return fmt.Errorf("%s: %w", c, err)
			}
			completion.Chunk = c
			completions[c.Index] = completion

			logger.Debug("worker", "%s terminated (%s)", c, completion.Kind)
			if opts.OnDone != nil {
				opts.OnDone(completion)
			}
			return nil
		})
	}

	// Wait は全ワーカーの終了後に最初の失敗だけを返すので、失敗した全チャンクをまとめて返す
	if err := g.Wait(); err != nil {
		return nil, multierr.Combine(errs...)
	}
	return completions, nil
}
