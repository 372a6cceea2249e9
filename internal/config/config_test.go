package config

import (
	"testing"
	"time"

	"github.com/Levisoloai/MediPrepBeta-sub001/internal/variant"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Select.MinTotal != 3 || cfg.Select.MaxTotal != 20 {
		t.Errorf("batch clamp = [%d,%d], want [3,20]", cfg.Select.MinTotal, cfg.Select.MaxTotal)
	}
	if cfg.Selector.AlphaPrior != 1.0 || cfg.Selector.BetaPrior != 1.0 {
		t.Errorf("priors = %v/%v, want 1/1", cfg.Selector.AlphaPrior, cfg.Selector.BetaPrior)
	}
	if cfg.Sourcing.GenAttempts != 3 {
		t.Errorf("gen attempts = %d, want 3", cfg.Sourcing.GenAttempts)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MEDIPREP_BATCH_MIN", "5")
	t.Setenv("MEDIPREP_BATCH_MAX", "10")
	t.Setenv("MEDIPREP_FOCUS_SHARE", "0.8")
	t.Setenv("MEDIPREP_GEN_TIMEOUT", "20s")
	t.Setenv("MEDIPREP_REDIS_ADDR", "localhost:6379")
	t.Setenv("MEDIPREP_DB", "/tmp/test.db")
	t.Setenv("MEDIPREP_VARIANT_OVERRIDES", "guide-1=bank-first")

	cfg := Load()

	if cfg.Select.MinTotal != 5 || cfg.Select.MaxTotal != 10 {
		t.Errorf("batch clamp = [%d,%d], want [5,10]", cfg.Select.MinTotal, cfg.Select.MaxTotal)
	}
	if cfg.Select.FocusShare != 0.8 {
		t.Errorf("focus share = %v, want 0.8", cfg.Select.FocusShare)
	}
	if cfg.Sourcing.GenTimeout != 20*time.Second {
		t.Errorf("gen timeout = %v, want 20s", cfg.Sourcing.GenTimeout)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("redis addr = %q", cfg.RedisAddr)
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("db path = %q", cfg.DBPath)
	}
	if cfg.Overrides["guide-1"] != variant.BankFirst {
		t.Errorf("overrides = %v, want guide-1 pinned to bank-first", cfg.Overrides)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("MEDIPREP_BATCH_MIN", "not-a-number")
	t.Setenv("MEDIPREP_FOCUS_SHARE", "2.5")
	t.Setenv("MEDIPREP_GEN_TIMEOUT", "soon")
	t.Setenv("MEDIPREP_VARIANT_OVERRIDES", "guide-1")

	cfg := Load()

	if cfg.Select.MinTotal != 3 {
		t.Errorf("batch min = %d, want default 3", cfg.Select.MinTotal)
	}
	if cfg.Select.FocusShare != 0.6 {
		t.Errorf("focus share = %v, want default 0.6", cfg.Select.FocusShare)
	}
	if cfg.Sourcing.GenTimeout != 45*time.Second {
		t.Errorf("gen timeout = %v, want default 45s", cfg.Sourcing.GenTimeout)
	}
	if cfg.Overrides != nil {
		t.Errorf("overrides = %v, want nil for malformed input", cfg.Overrides)
	}
}
