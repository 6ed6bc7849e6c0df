package main

import (
	"fmt"

	"github.com/lox/pairs/cmd/pairs/shared"
	"github.com/lox/pairs/internal/game"
	"github.com/lox/pairs/internal/gameid"
)

// PlayCmd plays a single game, narrating every draw
type PlayCmd struct {
	Players  []string `short:"p" help:"Player names in turn order (comma separated)"`
	Seed     *int64   `help:"Deterministic RNG seed (optional)"`
	NoColor  bool     `help:"Disable colored output"`
	Rounds   bool     `help:"Show scores after every round"`
	ShowSeed bool     `help:"Print the seed with the game header, for replays"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, logger, err := g.load(c.Players)
	if err != nil {
		return err
	}

	seed, err := resolveSeed(c.Seed, cfg.Seed, logger)
	if err != nil {
		return err
	}

	id, err := gameid.Generate()
	if err != nil {
		return err
	}

	engine, err := game.NewEngine(seed, cfg.Players,
		game.WithGameID(id),
		game.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}

	formatter := game.NewEventFormatter(game.FormattingOptions{
		ShowRounds: c.Rounds,
		ShowSeed:   c.ShowSeed,
	})
	engine.EventBus().Subscribe(game.NewNarrator(stdout, formatter, !c.NoColor))

	ctx, stop := shared.SetupSignalHandler(logger)
	defer stop()

	result, err := engine.Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("Game finished",
		"game", result.GameID,
		"seed", result.Seed,
		"outcome", result.Outcome,
		"winner", result.Winner,
		"rounds", result.Rounds,
		"duration", result.Duration)
	return nil
}
