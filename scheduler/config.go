package scheduler

import "batch-transcribe-api/utils"

// Config holds the duration-classification and batching knobs. It is
// built once at startup and passed in; the scheduler itself never reads
// the environment.
type Config struct {
	// ShortMaxSec is the short/long threshold: jobs at or below it are
	// eligible for batching, jobs above it run alone.
	ShortMaxSec float64
	// BatchMaxItems caps the number of short jobs per batch.
	BatchMaxItems int
	// BatchMaxTotalSec caps the summed duration of a batch of shorts.
	BatchMaxTotalSec float64
	// LocalAttentionAfterSec is the max unit duration above which the
	// engine is asked to switch to windowed attention.
	LocalAttentionAfterSec float64
	// AttentionContextWindow is the window size requested with the
	// windowed attention mode.
	AttentionContextWindow int
}

// DefaultConfig matches the production defaults: 10 minute short
// threshold, 16 items / 20 minutes per batch, windowed attention past
// 24 minutes.
func DefaultConfig() Config {
	return Config{
		ShortMaxSec:            600,
		BatchMaxItems:          16,
		BatchMaxTotalSec:       1200,
		LocalAttentionAfterSec: 24 * 60,
		AttentionContextWindow: 256,
	}
}

// ConfigFromEnv reads the batching knobs from the environment, falling
// back to the defaults.
func ConfigFromEnv() Config {
	def := DefaultConfig()
	return Config{
		ShortMaxSec:            float64(utils.GetEnvIntOrDefault("SHORT_MAX_SEC", int(def.ShortMaxSec))),
		BatchMaxItems:          utils.GetEnvIntOrDefault("BATCH_MAX_ITEMS", def.BatchMaxItems),
		BatchMaxTotalSec:       float64(utils.GetEnvIntOrDefault("BATCH_MAX_TOTAL_SEC", int(def.BatchMaxTotalSec))),
		LocalAttentionAfterSec: float64(utils.GetEnvIntOrDefault("LOCAL_ATTENTION_AFTER_SEC", int(def.LocalAttentionAfterSec))),
		AttentionContextWindow: utils.GetEnvIntOrDefault("ATTENTION_CONTEXT_WINDOW", def.AttentionContextWindow),
	}
}
