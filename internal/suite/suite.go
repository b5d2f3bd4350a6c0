package suite

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"fillbench/internal/events"
	"fillbench/internal/logger"
	"fillbench/internal/runner"
	"fillbench/internal/strategy"
	"fillbench/internal/worker"
)

// ErrAlreadyRunning は実行中に再度Runが呼ばれた場合のエラー
var ErrAlreadyRunning = errors.New("benchmark is already running")

// Engine はベンチマーク実行エンジン
type Engine struct {
	config   Config
	out      io.Writer
	eventBus *events.Bus

	mu      sync.Mutex
	running bool
}

// New は新しいEngineを作成する。out には進捗とレポートが出力される
func New(config Config, out io.Writer) *Engine {
	if out == nil {
		out = io.Discard
	}
	return &Engine{
		config: config,
		out:    out,
	}
}

// SetEventBus はイベントバスを設定する
func (e *Engine) SetEventBus(bus *events.Bus) {
	e.eventBus = bus
}

// Config は設定を返す
func (e *Engine) Config() Config {
	return e.config
}

// Run は逐次生成、並列生成の順に計測し、順位付けしたレポートを返す
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return nil, ErrAlreadyRunning
	}
	e.running = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
	}()

	cfg := e.config
	logger.Info("", "=== Benchmark '%s' started: %d elements, %d trials, %d workers (%s) ===",
		cfg.Name, cfg.ArraySize, cfg.NumTests, cfg.NumThreads, cfg.WorkerMode)

	fmt.Fprintf(e.out, "\t\tGenerating %d elements\n\n", cfg.ArraySize)

	r := runner.New(e.out)
	r.SetEventBus(e.eventBus)

	sequential := strategy.NewSequential(cfg.ArraySize)
	parallel := strategy.NewParallel(cfg.ArraySize, cfg.NumThreads, cfg.WorkerMode)
	parallel.SetObserver(func(c worker.Completion) {
		e.eventBus.Publish(events.NewWorkerDoneEvent(
			parallel.Name(), c.Chunk.Index, c.Chunk.Size, c.Kind == worker.KindDoneWithData))
	})

	// 順序は固定: 逐次生成が先
	var results []runner.Result
	for _, s := range []strategy.Strategy{sequential, parallel} {
		result, err := r.Benchmark(ctx, s.Name(), cfg.NumTests, s.Run)
		if err != nil {
			return nil, fmt.Errorf("benchmark %q failed: %w", s.Name(), err)
		}
		results = append(results, result)
	}

	report := NewReport(cfg, results)
	winner := report.Winner()
	e.eventBus.Publish(events.NewWinnerEvent(winner.Name, winner.AverageTime))
	logger.Info("", "=== Benchmark '%s' completed, winner: %s ===", cfg.Name, winner.Name)

	return report, nil
}

// Rank は平均時間の昇順で安定ソートした結果を返す（同値は挿入順を維持）
func Rank(results []runner.Result) []runner.Result {
	ranked := slices.Clone(results)
	slices.SortStableFunc(ranked, func(a, b runner.Result) int {
		switch {
		case a.AverageTime < b.AverageTime:
			return -1
		case a.AverageTime > b.AverageTime:
			return 1
		default:
			return 0
		}
	})
	return ranked
}
