// Package runner times repeated trials of a workload and reports the mean.
//
//	r := runner.New(os.Stdout)
//	result, err := r.Benchmark(ctx, "Default (no threads)", 10, workload)
//
// Each trial runs to completion before the next one starts. The first failing
// trial aborts the benchmark and its error is returned.
package runner
