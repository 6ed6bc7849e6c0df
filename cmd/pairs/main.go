package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/pairs/cmd/pairs/shared"
	"github.com/lox/pairs/internal/config"
	"github.com/lox/pairs/internal/randutil"
)

// version is set by ldflags during build
var version = "dev"

// Command output; replaced in tests
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Globals are flags shared by every command
type Globals struct {
	Config string `help:"Path to HCL config file" default:"${config_file}" type:"path"`
	Debug  bool   `help:"Enable debug logging"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play one narrated game"`
	Simulate SimulateCmd      `cmd:"" help:"Play many games and report statistics"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pairs"),
		kong.Description("Card-pairing game: draw, pair up and race to 20 points"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":     version,
			"config_file": config.DefaultFile,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// load reads the config file and environment, applies command-line player
// overrides, validates the result and builds the logger
func (g *Globals) load(players []string) (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if len(players) > 0 {
		cfg.Players = players
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, shared.SetupLogger(stderr, cfg.Level(), g.Debug), nil
}

// resolveSeed picks the flag seed, then the configured seed, then a fresh
// one from the OS entropy source
func resolveSeed(flag, configured *int64, logger *log.Logger) (int64, error) {
	switch {
	case flag != nil:
		logger.Debug("Using seed from flag", "seed", *flag)
		return *flag, nil
	case configured != nil:
		logger.Debug("Using seed from config", "seed", *configured)
		return *configured, nil
	}

	seed, err := randutil.NewSeed()
	if err != nil {
		return 0, fmt.Errorf("seed from entropy: %w", err)
	}
	logger.Debug("Using random seed", "seed", seed)
	return seed, nil
}
