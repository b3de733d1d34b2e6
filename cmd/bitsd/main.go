package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danmuck/bitsdec/internal/config"
	"github.com/danmuck/bitsdec/internal/logging"
	"github.com/danmuck/bitsdec/internal/server"
	"github.com/gin-gonic/gin"
)

func main() {
	path := flag.String("config", "", "path to a bitsd TOML config")
	flag.Parse()

	logging.ConfigureRuntime("bitsd")

	cfg := config.DefaultServerConfig()
	if *path != "" {
		loaded, err := config.LoadServerConfig(*path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bitsd: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	applyLogLevel(cfg)
	gin.SetMode(gin.ReleaseMode)

	if err := server.New(cfg).Serve(); err != nil {
		fmt.Fprintf(os.Stderr, "bitsd: %v\n", err)
		os.Exit(1)
	}
}

// applyLogLevel lets log_level in the config override the env/default level.
func applyLogLevel(cfg config.ServerConfig) {
	if lvl, ok := logging.ParseLevel(cfg.LogLevel); ok {
		logging.SetLevel(lvl)
	}
}
