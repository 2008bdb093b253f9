package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("VIBEX_TZ", "")
	t.Setenv("VIBEX_CHAT", "")
	t.Setenv("VIBEX_SESSION_GAP", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Timezone != "" || cfg.Chat != "" || cfg.SessionGapMin != 0 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("Location: %v", err)
	}
	if loc != time.Local {
		t.Fatalf("expected local zone by default, got %v", loc)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("VIBEX_TZ", "Europe/Athens")
	t.Setenv("VIBEX_CHAT", "Alice")
	t.Setenv("VIBEX_SESSION_GAP", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Timezone != "Europe/Athens" || cfg.Chat != "Alice" || cfg.SessionGapMin != 30 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("Location: %v", err)
	}
	if loc.String() != "Europe/Athens" {
		t.Fatalf("unexpected zone: %v", loc)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	if err := (&Config{SessionGapMin: -5}).Validate(); err == nil {
		t.Fatalf("expected error for negative gap")
	}
	if err := (&Config{Timezone: "Mars/Olympus"}).Validate(); err == nil {
		t.Fatalf("expected error for unknown timezone")
	}
}
