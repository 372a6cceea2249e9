package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Levisoloai/MediPrepBeta-sub001/internal/funnel"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/llm"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/mastery"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/sourcing"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/variant"
)

// Config is the scheduler's full runtime configuration, assembled from
// MEDIPREP_* environment variables over defaults.
type Config struct {
	// DBPath is the sqlite database location. Empty means the platform
	// default data directory.
	DBPath string

	// RedisAddr enables the remote seen-store when non-empty.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Overrides pins the sourcing-order assignment for specific guides,
	// bypassing the per-learner hash.
	Overrides variant.Overrides

	Selector mastery.Params
	Select   funnel.SelectorConfig
	Sourcing sourcing.Config
	LLM      llm.Config
}

// Default returns the production configuration.
func Default() Config {
	return Config{
		Selector: mastery.DefaultParams(),
		Select:   funnel.DefaultSelectorConfig(),
		Sourcing: sourcing.DefaultConfig(),
		LLM:      llm.DefaultConfig(),
	}
}

// Load reads .env if present, then builds the configuration from the
// environment. Unset variables keep their defaults; malformed numeric
// values are ignored rather than fatal.
func Load() Config {
	_ = godotenv.Load()

	cfg := Default()
	cfg.LLM = llm.ConfigFromEnv()

	if v := os.Getenv("MEDIPREP_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("MEDIPREP_REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("MEDIPREP_REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if n, ok := envInt("MEDIPREP_REDIS_DB"); ok {
		cfg.RedisDB = n
	}
	if v := os.Getenv("MEDIPREP_VARIANT_OVERRIDES"); v != "" {
		if ov, err := variant.ParseOverrides(v); err == nil {
			cfg.Overrides = ov
		}
	}

	if n, ok := envInt("MEDIPREP_BATCH_MIN"); ok && n > 0 {
		cfg.Select.MinTotal = n
	}
	if n, ok := envInt("MEDIPREP_BATCH_MAX"); ok && n > 0 {
		cfg.Select.MaxTotal = n
	}
	if f, ok := envFloat("MEDIPREP_FOCUS_SHARE"); ok && f >= 0 && f <= 1 {
		cfg.Select.FocusShare = f
	}
	if f, ok := envFloat("MEDIPREP_ALPHA_PRIOR"); ok && f > 0 {
		cfg.Selector.AlphaPrior = f
	}
	if f, ok := envFloat("MEDIPREP_BETA_PRIOR"); ok && f > 0 {
		cfg.Selector.BetaPrior = f
	}
	if f, ok := envFloat("MEDIPREP_UNCERTAINTY_WEIGHT"); ok && f >= 0 {
		cfg.Selector.UncertaintyWeight = f
	}

	if n, ok := envInt("MEDIPREP_GEN_ATTEMPTS"); ok && n > 0 {
		cfg.Sourcing.GenAttempts = n
	}
	if v := os.Getenv("MEDIPREP_GEN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Sourcing.GenTimeout = d
		}
	}

	return cfg
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envFloat(key string) (float64, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
