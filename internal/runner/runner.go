package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"fillbench/internal/events"
	"fillbench/internal/logger"
	"fillbench/internal/metrics"
)

// ErrInvalidTrials はトライアル数が1未満の場合のエラー
var ErrInvalidTrials = errors.New("number of trials must be at least 1")

// Workload は計測対象の処理
type Workload func(ctx context.Context) error

// Result は戦略ごとの計測結果
type Result struct {
	Name        string
	AverageTime float64 // 秒、小数点以下3桁に丸め
	NumTests    int
	Total       time.Duration
	Trials      []time.Duration
}

// Runner はトライアルを実行して時間を計測する
type Runner struct {
	out      io.Writer
	eventBus *events.Bus
	now      func() time.Time
}

// New は新しいRunnerを作成する。out が nil の場合は進捗を出力しない
func New(out io.Writer) *Runner {
	if out == nil {
		out = io.Discard
	}
	return &Runner{
		out: out,
		now: time.Now,
	}
}

// SetEventBus はイベントバスを設定する
func (r *Runner) SetEventBus(bus *events.Bus) {
	r.eventBus = bus
}

// Benchmark は workload を numTests 回実行し、平均所要時間を返す
func (r *Runner) Benchmark(ctx context.Context, name string, numTests int, workload Workload) (Result, error) {
	if numTests < 1 {
		return Result{}, fmt.Errorf("%s: %w (got %d)", name, ErrInvalidTrials, numTests)
	}

	fmt.Fprintf(r.out, "\tBenchmarking %s\n", name)
	r.eventBus.Publish(events.NewBenchmarkStartEvent(name, numTests))
	logger.Debug(name, "Running %d trials", numTests)

	m := metrics.New(numTests)
	for trial := 1; trial <= numTests; trial++ {
		// 実行中のトライアルは中断しない。次のトライアルの前だけ確認する
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("%s: interrupted before trial %d: %w", name, trial, err)
		}

		start := r.now()
		err := workload(ctx)
		elapsed := r.now().Sub(start)
		if err != nil {
			return Result{}, fmt.Errorf("%s: trial %d failed: %w", name, trial, err)
		}

		m.RecordTrial(elapsed)
		fmt.Fprintf(r.out, "Time diff = %s\n", formatSeconds(elapsed.Seconds()))
		r.eventBus.Publish(events.NewTrialCompleteEvent(name, trial, elapsed))
	}

	snap := m.Snapshot()
	average := Round3(snap.Average)
	fmt.Fprintf(r.out, "\tAverage time taken (%d ops): %.3fs\n\n", snap.Count, average)
	r.eventBus.Publish(events.NewBenchmarkCompleteEvent(name, snap.Count, average, snap.Total))
	logger.Debug(name, "Average %.3fs over %d trials", average, snap.Count)

	return Result{
		Name:        name,
		AverageTime: average,
		NumTests:    snap.Count,
		Total:       snap.Total,
		Trials:      snap.Durations,
	}, nil
}

// Round3 は小数点以下3桁に丸める
func Round3(seconds float64) float64 {
	return math.Round(seconds*1000) / 1000
}

// formatSeconds はミリ秒精度の秒数を末尾の0なしで表す
func formatSeconds(seconds float64) string {
	return fmt.Sprintf("%g", Round3(seconds))
}
