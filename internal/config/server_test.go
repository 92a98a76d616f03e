package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearServerEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "LISTINGS_FILE", "SERVICE_VERSION", "READ_TIMEOUT", "WRITE_TIMEOUT", "RELOAD_DEBOUNCE"} {
		t.Setenv(k, "")
	}
	// keep a stray .env in the package directory from leaking in
	t.Chdir(t.TempDir())
}

func TestLoadServerConfig_Defaults(t *testing.T) {
	clearServerEnv(t)

	cfg, err := LoadServerConfig()
	if err != nil {
		t.Fatalf("LoadServerConfig() error = %v", err)
	}
	if cfg.Port != 4000 || cfg.Addr() != ":4000" {
		t.Errorf("Expected port 4000, got %d (%s)", cfg.Port, cfg.Addr())
	}
	if cfg.ServiceVersion != "0.1.0" {
		t.Errorf("Expected version 0.1.0, got %s", cfg.ServiceVersion)
	}
	if cfg.ReadTimeout != defaultReadTimeout {
		t.Errorf("Expected read timeout %v, got %v", defaultReadTimeout, cfg.ReadTimeout)
	}
}

func TestLoadServerConfig_Env(t *testing.T) {
	clearServerEnv(t)
	listings := filepath.Join(t.TempDir(), "listings.yaml")
	if err := os.WriteFile(listings, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PORT", "8080")
	t.Setenv("LISTINGS_FILE", listings)
	t.Setenv("READ_TIMEOUT", "3s")
	t.Setenv("RELOAD_DEBOUNCE", "not-a-duration")

	cfg, err := LoadServerConfig()
	if err != nil {
		t.Fatalf("LoadServerConfig() error = %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Expected port 8080, got %d", cfg.Port)
	}
	if cfg.ListingsFile != listings {
		t.Errorf("Expected listings file %s, got %s", listings, cfg.ListingsFile)
	}
	if cfg.ReadTimeout != 3*time.Second {
		t.Errorf("Expected read timeout 3s, got %v", cfg.ReadTimeout)
	}
	if cfg.ReloadDebounce != defaultReloadDebounce {
		t.Errorf("Invalid duration should fall back, got %v", cfg.ReloadDebounce)
	}
}

func TestLoadServerConfig_DotEnv(t *testing.T) {
	clearServerEnv(t)
	os.Unsetenv("PORT")
	if err := os.WriteFile(".env", []byte("PORT=4100\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadServerConfig()
	os.Unsetenv("PORT")
	if err != nil {
		t.Fatalf("LoadServerConfig() error = %v", err)
	}
	if cfg.Port != 4100 {
		t.Errorf("Expected port from .env 4100, got %d", cfg.Port)
	}
}

func TestLoadServerConfig_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"bad port":        {"PORT": "http"},
		"port range":      {"PORT": "70000"},
		"missing listing": {"LISTINGS_FILE": "/definitely/not/here.yaml"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			clearServerEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := LoadServerConfig(); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestParseDurationOrDefault(t *testing.T) {
	if got := parseDurationOrDefault("", time.Second); got != time.Second {
		t.Errorf("empty: got %v", got)
	}
	if got := parseDurationOrDefault("250ms", time.Second); got != 250*time.Millisecond {
		t.Errorf("valid: got %v", got)
	}
	if got := parseDurationOrDefault("soon", time.Second); got != time.Second {
		t.Errorf("invalid: got %v", got)
	}
}
