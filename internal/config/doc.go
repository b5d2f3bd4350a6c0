// Package config resolves the benchmark configuration.
//
// Values are layered, later sources overriding earlier ones:
//
//  1. suite.DefaultConfig()
//  2. the preset named by FILLBENCH_PRESET
//  3. the YAML or JSON file named by FILLBENCH_CONFIG
//  4. FILLBENCH_ARRAY_SIZE, FILLBENCH_NUM_TESTS, FILLBENCH_NUM_THREADS,
//     FILLBENCH_WORKER_MODE
//
// # File Format
//
//	benchmark:
//	  name: local
//	  array_size: 1000000
//	  num_tests: 5
//	  num_threads: 8
//	  worker_mode: signal
//
// The resolved suite.Config is checked with go-playground/validator.
package config
