package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/danmuck/bitsdec/internal/protocol"
	"github.com/pelletier/go-toml/v2"
)

// ServerConfig configures the bitsd decode service.
type ServerConfig struct {
	ID            string   `toml:"id"`
	Addr          string   `toml:"addr"`
	CorsOrigins   []string `toml:"cors_origins"`
	LogLevel      string   `toml:"log_level"`
	MaxDepth      int      `toml:"max_depth"`
	MaxHexDigits  int      `toml:"max_hex_digits"`
	StrictPadding bool     `toml:"strict_padding"`
	MaxBodyBytes  int64    `toml:"max_body_bytes"`
}

func DefaultServerConfig() ServerConfig {
	limits := protocol.DefaultLimits()
	return ServerConfig{
		ID:           "bitsd",
		Addr:         ":9160",
		MaxDepth:     limits.MaxDepth,
		MaxHexDigits: limits.MaxHexDigits,
		MaxBodyBytes: int64(limits.MaxHexDigits) + 4096,
	}
}

// Limits returns the decode limits the service enforces.
func (c ServerConfig) Limits() protocol.Limits {
	return protocol.Limits{
		MaxDepth:      c.MaxDepth,
		MaxHexDigits:  c.MaxHexDigits,
		StrictPadding: c.StrictPadding,
	}
}

// LoadServerConfig reads path over the defaults; keys absent from the file
// keep their default values.
func LoadServerConfig(path string) (ServerConfig, error) {
	cfg := DefaultServerConfig()
	if err := loadToml(path, &cfg); err != nil {
		return ServerConfig{}, err
	}
	cfg.ID = strings.TrimSpace(cfg.ID)
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	if err := ValidateServerConfig(cfg); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateServerConfig(cfg ServerConfig) error {
	if strings.TrimSpace(cfg.ID) == "" {
		return fmt.Errorf("server config missing id")
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("server config missing addr")
	}
	if cfg.MaxDepth <= 0 {
		return fmt.Errorf("server config max_depth must be positive, got %d", cfg.MaxDepth)
	}
	if cfg.MaxHexDigits <= 0 {
		return fmt.Errorf("server config max_hex_digits must be positive, got %d", cfg.MaxHexDigits)
	}
	if cfg.MaxBodyBytes < int64(cfg.MaxHexDigits) {
		return fmt.Errorf("server config max_body_bytes %d cannot hold max_hex_digits %d", cfg.MaxBodyBytes, cfg.MaxHexDigits)
	}
	return nil
}
