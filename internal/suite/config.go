package suite

import (
	"fillbench/internal/strategy"
)

// Config はベンチマークの設定（実行中は変更しない）
type Config struct {
	Name       string        `validate:"required"`
	ArraySize  int           `validate:"gte=0"`
	NumTests   int           `validate:"gte=1"`
	NumThreads int           `validate:"gte=1"`
	WorkerMode strategy.Mode `validate:"oneof=data signal"`
}

// DefaultConfig はデフォルト設定を返す
func DefaultConfig() Config {
	return Config{
		Name:       "default",
		ArraySize:  50_000_000,
		NumTests:   10,
		NumThreads: 4,
		WorkerMode: strategy.ModeData,
	}
}
