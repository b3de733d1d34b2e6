package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bitsd.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadServerConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
id = " bitsd-a "
addr = "127.0.0.1:9200"
cors_origins = ["http://localhost:5173"]
max_depth = 32
strict_padding = true
`)
	cfg, err := LoadServerConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ID != "bitsd-a" || cfg.Addr != "127.0.0.1:9200" {
		t.Fatalf("unexpected identity: %+v", cfg)
	}
	if len(cfg.CorsOrigins) != 1 || cfg.CorsOrigins[0] != "http://localhost:5173" {
		t.Fatalf("unexpected cors origins: %+v", cfg.CorsOrigins)
	}
	limits := cfg.Limits()
	if limits.MaxDepth != 32 || !limits.StrictPadding {
		t.Fatalf("unexpected limits: %+v", limits)
	}
	if limits.MaxHexDigits != DefaultServerConfig().MaxHexDigits {
		t.Fatalf("expected default max_hex_digits, got %d", limits.MaxHexDigits)
	}
}

func TestLoadServerConfigDefaults(t *testing.T) {
	cfg, err := LoadServerConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ID != "bitsd" || cfg.Addr != ":9160" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadServerConfigRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"blank id":       `id = "  "`,
		"zero depth":     `max_depth = 0`,
		"negative input": `max_hex_digits = -1`,
		"small body":     "max_hex_digits = 100\nmax_body_bytes = 10",
		"bad toml":       `max_depth = "deep"`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadServerConfig(writeConfig(t, content)); err == nil {
				t.Fatalf("expected error for %q", content)
			}
		})
	}
}

func TestLoadServerConfigMissingFile(t *testing.T) {
	_, err := LoadServerConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "config load failed") {
		t.Fatalf("expected load failure, got %v", err)
	}
}
