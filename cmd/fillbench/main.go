// Package main is the entry point for fillbench.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"fillbench/internal/config"
	"fillbench/internal/events"
	"fillbench/internal/logger"
	"fillbench/internal/suite"
)

func main() {
	defer func() { _ = logger.Default.Sync() }()

	// 失敗してもエラーを出力して通常終了する
	if err := run(os.Stdout); err != nil {
		logger.Error("", "Benchmark failed: %v", err)
	}
}

// run は設定を解決してベンチマークを実行し、レポートを out に出力する
func run(out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("設定エラー: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// シグナルハンドリング（次のトライアル開始前に中断する）
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			logger.Warn("", "中断シグナルを受信、現在のトライアル終了後に停止します")
			cancel()
		case <-ctx.Done():
		}
	}()

	bus := events.NewBus()
	defer func() {
		bus.Close()
		if n := bus.Dropped(); n > 0 {
			logger.Warn("", "%d progress events dropped (subscriber buffer full)", n)
		}
	}()
	go logEvents(bus.Subscribe())

	engine := suite.New(cfg, out)
	engine.SetEventBus(bus)

	report, err := engine.Run(ctx)
	if err != nil {
		return err
	}

	return report.Render(out)
}

// logEvents は進捗イベントをログに流す
func logEvents(ch <-chan events.Event) {
	for ev := range ch {
		switch ev.Type {
		case events.EventBenchmarkStart:
			logger.Info(ev.Strategy, "Started (%d trials)", ev.Data.NumTests)
		case events.EventTrialComplete:
			logger.Debug(ev.Strategy, "Trial %d took %.3fs", ev.Data.Trial, ev.Data.Seconds)
		case events.EventWorkerDone:
			logger.Debug(ev.Strategy, "Worker %d done (%d elements, payload=%v)",
				ev.Data.Chunk, ev.Data.ChunkSize, ev.Data.WithPayload)
		case events.EventBenchmarkComplete:
			logger.Info(ev.Strategy, "Completed: average %.3fs over %d trials (total %.3fs)",
				ev.Data.Seconds, ev.Data.NumTests, ev.Data.TotalSeconds)
		case events.EventWinner:
			logger.Info(ev.Strategy, "Winner with %.3fs", ev.Data.Seconds)
		}
	}
}
