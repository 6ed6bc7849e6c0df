package main

import (
	"time"

	"github.com/lox/pairs/cmd/pairs/shared"
	"github.com/lox/pairs/internal/simulator"
)

// SimulateCmd plays many games and prints aggregate statistics
type SimulateCmd struct {
	Players     []string      `short:"p" help:"Player names in turn order (comma separated)"`
	Games       int           `short:"n" help:"Number of games to play (default from config)"`
	Seed        *int64        `help:"Seed for the first game; game i uses seed+i (optional)"`
	Concurrency int           `short:"c" help:"Games to play at once (default one per CPU)"`
	Timeout     time.Duration `help:"Per-game timeout (default from config)"`
	Report      string        `help:"Write a JSON report to this file" type:"path"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, logger, err := g.load(c.Players)
	if err != nil {
		return err
	}

	seed, err := resolveSeed(c.Seed, cfg.Seed, logger)
	if err != nil {
		return err
	}

	games := cfg.Games
	if c.Games > 0 {
		games = c.Games
	}
	concurrency := cfg.Concurrency
	if c.Concurrency > 0 {
		concurrency = c.Concurrency
	}
	timeout := cfg.Timeout
	if c.Timeout > 0 {
		timeout = c.Timeout
	}

	logger.Info("Starting simulation", "games", games, "players", len(cfg.Players), "seed", seed)

	ctx, stop := shared.SetupSignalHandler(logger)
	defer stop()

	summary, err := simulator.New(simulator.Config{
		Games:       games,
		Players:     cfg.Players,
		Seed:        seed,
		Concurrency: concurrency,
		Timeout:     timeout,
		Logger:      logger,
	}).Run(ctx)
	if err != nil {
		return err
	}

	simulator.PrintSummary(stdout, summary, cfg.Players)

	if c.Report != "" {
		if err := simulator.WriteReport(c.Report, simulator.NewReport(summary, seed)); err != nil {
			return err
		}
		logger.Info("Wrote report", "path", c.Report)
	}
	return nil
}
