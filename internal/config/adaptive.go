package config

import (
	"runtime"
	"time"
)

// ApplyAdaptiveDefaults fills fields left at zero from the host: Workers
// from the CPU count and Seed from the clock. Explicit values are kept.
func ApplyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg
}
