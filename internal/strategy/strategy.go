package strategy

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"fillbench/internal/chunk"
	"fillbench/internal/logger"
	"fillbench/internal/worker"
)

// ErrFillPanic は逐次生成中にpanicが発生した場合のエラー
var ErrFillPanic = errors.New("sequential fill terminated abnormally")

// Mode はワーカーの完了通知の形式
type Mode string

const (
	// ModeData はワーカーが生成した配列を返す
	ModeData Mode = "data"
	// ModeSignal はワーカーが完了のみ通知する
	ModeSignal Mode = "signal"
)

// Strategy は名前付きのワークロード
type Strategy interface {
	Name() string
	Run(ctx context.Context) error
}

// Fill は長さ n の配列を value で埋めて返す
func Fill(n int, value float64) []float64 {
	arr := make([]float64, n)
	for i := range arr {
		arr[i] = value
	}
	return arr
}

// Sequential は単一ゴルーチンで配列を生成する
type Sequential struct {
	arraySize int
}

// NewSequential は新しい Sequential を作成する
func NewSequential(arraySize int) *Sequential {
	return &Sequential{arraySize: arraySize}
}

// Name は戦略名を返す
func (s *Sequential) Name() string {
	return "Default (no threads)"
}

// Run は配列を生成する
func (s *Sequential) Run(_ context.Context) error {
	_, err := s.Generate()
	return err
}

// Generate は配列を生成して返す。確保失敗などのpanicは ErrFillPanic として返す
func (s *Sequential) Generate() (arr []float64, err error) {
	if s.arraySize < 0 {
		return nil, fmt.Errorf("%w: %d", chunk.ErrNegativeSize, s.arraySize)
	}

	defer func() {
		if r := recover(); r != nil {
			arr = nil
			err = fmt.Errorf("%w: %v", ErrFillPanic, r)
		}
	}()

	value := rand.Float64()
	return Fill(s.arraySize, value), nil
}

// Parallel はチャンクごとにワーカーを起動して配列を生成する
type Parallel struct {
	arraySize  int
	numWorkers int
	mode       Mode
	observer   worker.Observer
}

// NewParallel は新しい Parallel を作成する
func NewParallel(arraySize, numWorkers int, mode Mode) *Parallel {
	if mode == "" {
		mode = ModeData
	}
	return &Parallel{
		arraySize:  arraySize,
		numWorkers: numWorkers,
		mode:       mode,
	}
}

// SetObserver はワーカー完了時のコールバックを設定する
func (p *Parallel) SetObserver(obs worker.Observer) {
	p.observer = obs
}

// Name は戦略名を返す
func (p *Parallel) Name() string {
	return fmt.Sprintf("Threads (%d threads)", p.numWorkers)
}

// Mode は完了通知の形式を返す
func (p *Parallel) Mode() Mode {
	return p.mode
}

// Run は全ワーカーの終了まで待つ
func (p *Parallel) Run(ctx context.Context) error {
	_, err := p.Generate(ctx)
	return err
}

// Generate は全ワーカーの完了イベントを返す
func (p *Parallel) Generate(ctx context.Context) ([]worker.Completion, error) {
	if p.arraySize < 0 {
		return nil, fmt.Errorf("%w: %d", chunk.ErrNegativeSize, p.arraySize)
	}

	logger.Debug("parallel", "Spawning %d workers for %d elements", p.numWorkers, p.arraySize)
	return worker.RunChunkedWithOptions(ctx, p.arraySize, p.numWorkers, p.fillChunk, worker.Options{
		OnDone: p.observer,
	})
}

// fillChunk はワーカー側の処理: 自分の乱数でチャンクサイズ分の配列を埋める
func (p *Parallel) fillChunk(_ context.Context, c chunk.Chunk) (worker.Completion, error) {
	arr := Fill(c.Size, rand.Float64())
	if p.mode == ModeSignal {
		return worker.Done(c), nil
	}
	return worker.DoneWithData(c, arr), nil
}
