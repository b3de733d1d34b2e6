package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/bitsdec/internal/input"
	"github.com/danmuck/bitsdec/internal/protocol"
)

type fileConfig struct {
	InputDir      string `toml:"input_dir"`
	InputURL      string `toml:"input_url"`
	SessionFile   string `toml:"session_file"`
	Timeout       string `toml:"timeout"`
	EventYear     int    `toml:"event_year"`
	MaxDepth      int    `toml:"max_depth"`
	MaxHexDigits  int    `toml:"max_hex_digits"`
	StrictPadding bool   `toml:"strict_padding"`
}

type runConfig struct {
	Source input.Source
	Limits protocol.Limits
}

func defaultRunConfig() runConfig {
	return runConfig{
		Source: input.DefaultSource(),
		Limits: protocol.DefaultLimits(),
	}
}

func loadRunConfig(path string) (runConfig, error) {
	cfg := defaultRunConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return runConfig{}, fmt.Errorf("load bitsctl config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return runConfig{}, fmt.Errorf("load bitsctl config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("input_dir") {
		if dir := strings.TrimSpace(raw.InputDir); dir != "" {
			cfg.Source.Dir = dir
		}
	}

	if meta.IsDefined("input_url") {
		cfg.Source.URL = strings.TrimSpace(raw.InputURL)
		if cfg.Source.URL != "" && !strings.Contains(cfg.Source.URL, "%s") {
			return runConfig{}, fmt.Errorf("parse input_url: %q has no %%s placeholder", cfg.Source.URL)
		}
	}

	if meta.IsDefined("session_file") {
		cfg.Source.SessionFile = strings.TrimSpace(raw.SessionFile)
	}

	if meta.IsDefined("timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Timeout))
		if err != nil {
			return runConfig{}, fmt.Errorf("parse timeout: %w", err)
		}
		cfg.Source.Timeout = d
	}

	if meta.IsDefined("event_year") {
		if raw.EventYear < 2015 {
			return runConfig{}, fmt.Errorf("parse event_year: %d is before the first event", raw.EventYear)
		}
		cfg.Source.Unlock = input.AdventUnlock(raw.EventYear)
	}

	if meta.IsDefined("max_depth") {
		if raw.MaxDepth <= 0 {
			return runConfig{}, fmt.Errorf("parse max_depth: must be positive, got %d", raw.MaxDepth)
		}
		cfg.Limits.MaxDepth = raw.MaxDepth
	}

	if meta.IsDefined("max_hex_digits") {
		if raw.MaxHexDigits <= 0 {
			return runConfig{}, fmt.Errorf("parse max_hex_digits: must be positive, got %d", raw.MaxHexDigits)
		}
		cfg.Limits.MaxHexDigits = raw.MaxHexDigits
	}

	if meta.IsDefined("strict_padding") {
		cfg.Limits.StrictPadding = raw.StrictPadding
	}

	return cfg, nil
}
