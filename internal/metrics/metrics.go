package metrics

import (
	"sync"
	"time"
)

// Metrics はトライアルごとの所要時間を収集する
type Metrics struct {
	expected int

	mu          sync.Mutex
	total       time.Duration
	averageSecs float64
	durations   []time.Duration
}

// New は予定トライアル数を指定してメトリクスを作成する。0以下は1として扱う
func New(expected int) *Metrics {
	if expected <= 0 {
		expected = 1
	}
	return &Metrics{
		expected:  expected,
		durations: make([]time.Duration, 0, expected),
	}
}

// RecordTrial はトライアルの所要時間を記録する。負の値は0に切り上げる
func (m *Metrics) RecordTrial(d time.Duration) {
	if d < 0 {
		d = 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.total += d
	m.averageSecs += d.Seconds() / float64(m.expected)
	m.durations = append(m.durations, d)
}

// Snapshot はメトリクスのスナップショット
type Snapshot struct {
	Count     int
	Total     time.Duration
	Average   float64 // 秒
	Durations []time.Duration
}

// Snapshot は現在のメトリクスのスナップショットを返す
func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	durations := make([]time.Duration, len(m.durations))
	copy(durations, m.durations)
	return Snapshot{
		Count:     len(durations),
		Total:     m.total,
		Average:   m.averageSecs,
		Durations: durations,
	}
}
