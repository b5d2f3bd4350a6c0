package suite

import (
	"slices"

	"github.com/samber/lo"

	"fillbench/internal/strategy"
)

// QuickConfig は動作確認用の小さな設定を返す
func QuickConfig() Config {
	return Config{
		Name:       "quick",
		ArraySize:  1000,
		NumTests:   3,
		NumThreads: 4,
		WorkerMode: strategy.ModeData,
	}
}

// LightConfig は中規模の設定を返す
func LightConfig() Config {
	return Config{
		Name:       "light",
		ArraySize:  1_000_000,
		NumTests:   5,
		NumThreads: 4,
		WorkerMode: strategy.ModeData,
	}
}

// SignalConfig はワーカーが配列を返さない設定を返す
func SignalConfig() Config {
	cfg := DefaultConfig()
	cfg.Name = "signal"
	cfg.WorkerMode = strategy.ModeSignal
	return cfg
}

// presets はプリセット名と設定のマップ
var presets = map[string]func() Config{
	"default": DefaultConfig,
	"quick":   QuickConfig,
	"light":   LightConfig,
	"signal":  SignalConfig,
}

// GetPreset は名前からプリセット設定を取得する
func GetPreset(name string) (Config, bool) {
	fn, ok := presets[name]
	if !ok {
		return Config{}, false
	}
	return fn(), true
}

// ListPresets は利用可能なプリセット名のリストを返す
func ListPresets() []string {
	names := lo.Keys(presets)
	slices.Sort(names)
	return names
}
