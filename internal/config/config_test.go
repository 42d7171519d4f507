package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "notifyhub.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("expected default listen addr, got %s", cfg.ListenAddr)
	}
	if cfg.ExtraData {
		t.Fatal("expected extended data storage to be disabled by default")
	}
}

func TestLoadExtraDataFlag(t *testing.T) {
	t.Setenv("DATABASE_URL", "notifyhub.db")
	t.Setenv("NOTIFY_EXTRA_DATA", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cfg.ExtraData {
		t.Fatal("expected extended data storage to be enabled")
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is empty")
	}
}

func TestLoadRejectsDefaultSecretInProd(t *testing.T) {
	t.Setenv("DATABASE_URL", "notifyhub.db")
	t.Setenv("APP_ENV", "prod")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for default JWT secret in prod")
	}
}
