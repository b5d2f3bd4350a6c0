// Package metrics accumulates per-trial wall-clock durations for one strategy.
//
// The mean is accumulated incrementally: each recorded trial adds
// duration/expected to the running average, so after all expected trials
// Average equals the arithmetic mean of the recorded durations. Every
// recorded duration is kept.
//
// # Basic Usage
//
//	m := metrics.New(10) // 10 trials expected
//
//	start := time.Now()
//	// ... run trial ...
//	m.RecordTrial(time.Since(start))
//
//	snap := m.Snapshot()
//	fmt.Printf("Trials: %d, Average: %.3fs\n", snap.Count, snap.Average)
//
// # Thread Safety
//
// All operations are safe for concurrent access.
package metrics
