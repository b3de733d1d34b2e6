package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/danmuck/bitsdec/internal/input"
	"github.com/danmuck/bitsdec/internal/logging"
	"github.com/danmuck/bitsdec/internal/protocol"
	"github.com/danmuck/bitsdec/internal/report"
	"github.com/danmuck/bitsdec/internal/solve"
	"github.com/rs/zerolog/log"
)

type options struct {
	config string
	input  string
	name   string
	tree   bool
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.config, "config", "", "path to a bitsctl TOML config")
	flag.StringVar(&opts.input, "input", "", "hex input file; - reads stdin")
	flag.StringVar(&opts.name, "name", "16", "cached input name when -input is unset")
	flag.BoolVar(&opts.tree, "tree", false, "print the decoded packet tree")
	flag.Parse()
	return opts
}

func main() {
	logging.ConfigureRuntime("bitsctl")
	opts := parseFlags()
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "bitsctl: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg := defaultRunConfig()
	if opts.config != "" {
		loaded, err := loadRunConfig(opts.config)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	start := time.Now()
	text, err := readInput(opts, cfg)
	if err != nil {
		return err
	}
	load := time.Since(start)
	log.Debug().Int("digits", len(text)).Dur("load", load).Msg("input loaded")

	if opts.tree {
		p, err := protocol.Decode(text, cfg.Limits)
		if err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		fmt.Print(protocol.Format(p))
	}

	rep := report.Run(solve.Name, text, load, solve.New(cfg.Limits).Parts()...)
	rep.Total = time.Since(start)
	if err := rep.Write(os.Stdout); err != nil {
		return err
	}
	if rep.Failed() {
		for _, res := range rep.Results {
			if res.Err != nil {
				log.Warn().Str("part", res.Name).Str("kind", protocol.Kind(res.Err)).Err(res.Err).Msg("part failed")
			}
		}
		return fmt.Errorf("one or more parts failed")
	}
	return nil
}

func readInput(opts options, cfg runConfig) (string, error) {
	switch opts.input {
	case "":
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Source.Timeout+time.Second)
		defer cancel()
		return cfg.Source.Load(ctx, opts.name)
	case "-":
		return input.ReadAll(os.Stdin)
	default:
		return input.ReadFile(opts.input)
	}
}
