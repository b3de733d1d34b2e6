package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadRunConfigExample(t *testing.T) {
	cfg, err := loadRunConfig("ex.config.toml")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Source.Dir != "local/inputs" {
		t.Fatalf("unexpected input dir: %q", cfg.Source.Dir)
	}
	if cfg.Source.URL != "https://adventofcode.com/2021/day/%s/input" {
		t.Fatalf("unexpected input url: %q", cfg.Source.URL)
	}
	if cfg.Source.SessionFile != ".advent-session-cookie" {
		t.Fatalf("unexpected session file: %q", cfg.Source.SessionFile)
	}
	if cfg.Source.Timeout != 15*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.Source.Timeout)
	}
	if cfg.Limits.MaxDepth != 128 || cfg.Limits.MaxHexDigits != 65536 || cfg.Limits.StrictPadding {
		t.Fatalf("unexpected limits: %+v", cfg.Limits)
	}
	if cfg.Source.Unlock == nil {
		t.Fatalf("expected event_year to install an unlock check")
	}
	at, err := cfg.Source.Unlock("16")
	if err != nil || !at.Equal(time.Date(2021, time.December, 16, 5, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected unlock time %v err=%v", at, err)
	}
}

func TestLoadRunConfigKeepsDefaults(t *testing.T) {
	cfg, err := loadRunConfig(writeConfig(t, "strict_padding = true\n"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	def := defaultRunConfig()
	if cfg.Source.Dir != def.Source.Dir || cfg.Limits.MaxDepth != def.Limits.MaxDepth {
		t.Fatalf("defaults not preserved: %+v", cfg)
	}
	if !cfg.Limits.StrictPadding {
		t.Fatalf("expected strict padding enabled")
	}
}

func TestLoadRunConfigRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"bad duration": `timeout = "soon"`,
		"zero depth":   `max_depth = 0`,
		"bad digits":   `max_hex_digits = -4`,
		"no name slot": `input_url = "https://example.com/input"`,
		"unknown key":  `max_width = 3`,
		"wrong type":   `max_depth = "deep"`,
		"early year":   `event_year = 1999`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := loadRunConfig(writeConfig(t, content)); err == nil {
				t.Fatalf("expected error for %q", content)
			}
		})
	}
}

func TestRunWithInputFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "16.txt")
	if err := os.WriteFile(path, []byte("C200B40A82\n"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	if err := run(options{input: path}); err != nil {
		t.Fatalf("run: %v", err)
	}

	bad := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(bad, []byte("C200B4"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	if err := run(options{input: bad}); err == nil {
		t.Fatalf("expected truncated input to fail")
	}
}

func TestRunUsesCachedInput(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "16.txt"), []byte("D2FE28\n"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	cfgPath := writeConfig(t, "input_dir = \""+filepath.ToSlash(dir)+"\"\n")
	if err := run(options{config: cfgPath, name: "16", tree: true}); err != nil {
		t.Fatalf("run: %v", err)
	}
}
