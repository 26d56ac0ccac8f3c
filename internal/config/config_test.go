package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("unexpected default port %s", cfg.Port)
	}
	if cfg.WeightLike != 3 || cfg.WeightRemix != 5 {
		t.Fatalf("unexpected default weights: like=%v remix=%v", cfg.WeightLike, cfg.WeightRemix)
	}
	if cfg.RecencyBonus != 50 || cfg.RecencyWindow != 24*time.Hour {
		t.Fatalf("unexpected recency defaults: bonus=%v window=%v", cfg.RecencyBonus, cfg.RecencyWindow)
	}
	if cfg.MaxLineageDepth != 64 {
		t.Fatalf("unexpected default lineage depth %d", cfg.MaxLineageDepth)
	}
	if cfg.DefaultRoyaltyPct != 10 {
		t.Fatalf("unexpected default royalty %v", cfg.DefaultRoyaltyPct)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("W_LIKE", "7")
	t.Setenv("RECENCY_WINDOW", "6h")
	t.Setenv("MAX_LINEAGE_DEPTH", "8")
	t.Setenv("DEFAULT_ROYALTY_PCT", "15")

	cfg := Load()

	if cfg.WeightLike != 7 {
		t.Fatalf("W_LIKE override ignored, got %v", cfg.WeightLike)
	}
	if cfg.RecencyWindow != 6*time.Hour {
		t.Fatalf("RECENCY_WINDOW override ignored, got %v", cfg.RecencyWindow)
	}
	if cfg.MaxLineageDepth != 8 {
		t.Fatalf("MAX_LINEAGE_DEPTH override ignored, got %d", cfg.MaxLineageDepth)
	}
	if cfg.DefaultRoyaltyPct != 15 {
		t.Fatalf("DEFAULT_ROYALTY_PCT override ignored, got %v", cfg.DefaultRoyaltyPct)
	}
}

func TestLoadMalformedValuesFallBack(t *testing.T) {
	t.Setenv("W_LIKE", "banana")
	t.Setenv("RECENCY_WINDOW", "soon")

	cfg := Load()

	if cfg.WeightLike != 3 {
		t.Fatalf("malformed W_LIKE should fall back to default, got %v", cfg.WeightLike)
	}
	if cfg.RecencyWindow != 24*time.Hour {
		t.Fatalf("malformed RECENCY_WINDOW should fall back to default, got %v", cfg.RecencyWindow)
	}
}
