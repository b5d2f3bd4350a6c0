package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"fillbench/internal/strategy"
	"fillbench/internal/suite"
)

// EnvPrefix は環境変数のプレフィックス
const EnvPrefix = "FILLBENCH_"

// FileConfig は設定ファイルの構造
type FileConfig struct {
	Benchmark BenchmarkConfig `yaml:"benchmark" json:"benchmark"`
}

// BenchmarkConfig はベンチマーク設定。省略した項目はベースの設定を引き継ぐ
type BenchmarkConfig struct {
	Name       string `yaml:"name" json:"name"`
	ArraySize  *int   `yaml:"array_size" json:"array_size"`
	NumTests   int    `yaml:"num_tests" json:"num_tests"`
	NumThreads int    `yaml:"num_threads" json:"num_threads"`
	WorkerMode string `yaml:"worker_mode" json:"worker_mode"`
}

// EnvConfig は環境変数から読み込む設定
type EnvConfig struct {
	ConfigFile string `env:"CONFIG"`
	Preset     string `env:"PRESET"`
	ArraySize  *int   `env:"ARRAY_SIZE"`
	NumTests   *int   `env:"NUM_TESTS"`
	NumThreads *int   `env:"NUM_THREADS"`
	WorkerMode string `env:"WORKER_MODE"`
}

// LoadFile は設定ファイルを読み込む
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config FileConfig
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}

	return &config, nil
}

// Validate はファイル設定を検証する（問題はまとめて返す）
func (f *FileConfig) Validate() error {
	b := f.Benchmark
	var err error

	if b.ArraySize != nil && *b.ArraySize < 0 {
		err = multierr.Append(err, errors.New("array_size must be non-negative"))
	}
	if b.NumTests < 0 {
		err = multierr.Append(err, errors.New("num_tests must be non-negative"))
	}
	if b.NumThreads < 0 {
		err = multierr.Append(err, errors.New("num_threads must be non-negative"))
	}
	if b.WorkerMode != "" {
		if _, perr := parseMode(b.WorkerMode); perr != nil {
			err = multierr.Append(err, perr)
		}
	}

	return err
}

// Apply はファイル設定を base に上書きする
func (f *FileConfig) Apply(base suite.Config) (suite.Config, error) {
	b := f.Benchmark
	cfg := base

	if b.Name != "" {
		cfg.Name = b.Name
	}
	if b.ArraySize != nil {
		cfg.ArraySize = *b.ArraySize
	}
	if b.NumTests > 0 {
		cfg.NumTests = b.NumTests
	}
	if b.NumThreads > 0 {
		cfg.NumThreads = b.NumThreads
	}
	if b.WorkerMode != "" {
		mode, err := parseMode(b.WorkerMode)
		if err != nil {
			return cfg, err
		}
		cfg.WorkerMode = mode
	}

	return cfg, nil
}

// FromEnv は環境変数を読み込む
func FromEnv() (EnvConfig, error) {
	return parseEnv(env.Options{Prefix: EnvPrefix})
}

func parseEnv(opts env.Options) (EnvConfig, error) {
	var ec EnvConfig
	if err := env.ParseWithOptions(&ec, opts); err != nil {
		return ec, fmt.Errorf("failed to parse environment: %w", err)
	}
	return ec, nil
}

// Apply は環境変数の値を base に上書きする
func (e EnvConfig) Apply(base suite.Config) (suite.Config, error) {
	cfg := base

	if e.ArraySize != nil {
		cfg.ArraySize = *e.ArraySize
	}
	if e.NumTests != nil {
		cfg.NumTests = *e.NumTests
	}
	if e.NumThreads != nil {
		cfg.NumThreads = *e.NumThreads
	}
	if e.WorkerMode != "" {
		mode, err := parseMode(e.WorkerMode)
		if err != nil {
			return cfg, err
		}
		cfg.WorkerMode = mode
	}

	return cfg, nil
}

// Resolve はデフォルト→プリセット→設定ファイル→環境変数の順に設定を組み立てて検証する
func Resolve(ec EnvConfig) (suite.Config, error) {
	cfg := suite.DefaultConfig()

	if ec.Preset != "" {
		preset, ok := suite.GetPreset(ec.Preset)
		if !ok {
			return cfg, fmt.Errorf("unknown preset: %s (available: %v)", ec.Preset, suite.ListPresets())
		}
		cfg = preset
	}

	if ec.ConfigFile != "" {
		fileConfig, err := LoadFile(ec.ConfigFile)
		if err != nil {
			return cfg, err
		}
		if err := fileConfig.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config file: %w", err)
		}
		cfg, err = fileConfig.Apply(cfg)
		if err != nil {
			return cfg, err
		}
	}

	cfg, err := ec.Apply(cfg)
	if err != nil {
		return cfg, err
	}

	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Load は環境変数から設定を解決する
func Load() (suite.Config, error) {
	ec, err := FromEnv()
	if err != nil {
		return suite.Config{}, err
	}
	return Resolve(ec)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate は最終的な設定を検証する
func Validate(cfg suite.Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			var combined error
			for _, fe := range verrs {
				combined = multierr.Append(combined,
					fmt.Errorf("%s: failed %q (value %v)", fe.Field(), fe.Tag()+paramSuffix(fe.Param()), fe.Value()))
			}
			return fmt.Errorf("invalid configuration: %w", combined)
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func paramSuffix(param string) string {
	if param == "" {
		return ""
	}
	return "=" + param
}

// parseMode は完了通知形式をパースする
func parseMode(s string) (strategy.Mode, error) {
	switch strings.ToLower(s) {
	case string(strategy.ModeData):
		return strategy.ModeData, nil
	case string(strategy.ModeSignal):
		return strategy.ModeSignal, nil
	default:
		return "", fmt.Errorf("unknown worker mode: %s (expected data or signal)", s)
	}
}
