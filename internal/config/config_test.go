package config

import "testing"

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.QuotaPerImage != 50 {
		t.Fatalf("expected default quota 50, got %d", cfg.QuotaPerImage)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DECORATION_QUOTA", "25")
	t.Setenv("DB_MAX_OPEN_CONNS", "4")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected port override, got %q", cfg.Port)
	}
	if cfg.QuotaPerImage != 25 {
		t.Fatalf("expected quota override, got %d", cfg.QuotaPerImage)
	}
	if cfg.DBMaxOpenConns != 4 {
		t.Fatalf("expected pool override, got %d", cfg.DBMaxOpenConns)
	}
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("DECORATION_QUOTA", "-5")
	t.Setenv("DB_MAX_IDLE_CONNS", "plenty")

	cfg := Load()
	if cfg.QuotaPerImage != 50 {
		t.Fatalf("expected invalid quota ignored, got %d", cfg.QuotaPerImage)
	}
	if cfg.DBMaxIdleConns != 10 {
		t.Fatalf("expected invalid pool size ignored, got %d", cfg.DBMaxIdleConns)
	}
}
