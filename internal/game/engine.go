package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pairs/internal/deck"
	"github.com/lox/pairs/internal/randutil"
)

// WinningScore is the score at which a player wins, checked after each round
const WinningScore = 20

var (
	ErrNoPlayers       = errors.New("at least one player is required")
	ErrEmptyPlayerName = errors.New("player name must not be empty")
	ErrDuplicatePlayer = errors.New("duplicate player name")
	ErrGameComplete    = errors.New("game already complete")
)

// State is the lifecycle state of a game
type State int

const (
	InProgress State = iota
	Complete
)

func (s State) String() string {
	switch s {
	case InProgress:
		return "in progress"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// Outcome describes how a completed game ended
type Outcome int

const (
	// Won means a player reached WinningScore
	Won Outcome = iota + 1
	// NoContest means the pile ran out before anyone reached WinningScore
	NoContest
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case NoContest:
		return "no contest"
	default:
		return "unknown"
	}
}

// Result contains the results of a completed game
type Result struct {
	GameID         string
	Seed           int64
	Outcome        Outcome
	Winner         string // Empty unless Outcome is Won
	WinningScore   int
	Rounds         int
	Scores         []PlayerScore // In roster order
	CardsRemaining int
	Duration       time.Duration
}

// EngineOption configures an Engine during creation.
type EngineOption func(*engineConfig)

type engineConfig struct {
	gameID   string
	pile     *deck.Pile // If provided, used instead of a pile shuffled from the seed
	logger   *log.Logger
	clock    quartz.Clock
	eventBus EventBus
}

// WithGameID sets the ID reported in events and the result
func WithGameID(id string) EngineOption {
	return func(c *engineConfig) { c.gameID = id }
}

// WithPile supplies a prepared draw pile, for scripted games
func WithPile(pile *deck.Pile) EngineOption {
	return func(c *engineConfig) { c.pile = pile }
}

// WithLogger sets the engine's logger. The default discards output.
func WithLogger(logger *log.Logger) EngineOption {
	return func(c *engineConfig) { c.logger = logger }
}

// WithClock sets the clock used for event timestamps and game duration
func WithClock(clock quartz.Clock) EngineOption {
	return func(c *engineConfig) { c.clock = clock }
}

// WithEventBus sets the bus events are published on
func WithEventBus(bus EventBus) EngineOption {
	return func(c *engineConfig) { c.eventBus = bus }
}

// Engine runs one game. It exclusively owns the draw pile and the players
// for the lifetime of the game.
type Engine struct {
	gameID  string
	seed    int64
	players []*Player
	pile    *deck.Pile
	rounds  int
	state   State
	started bool
	start   time.Time
	result  *Result

	logger   *log.Logger
	clock    quartz.Clock
	eventBus EventBus
}

// NewEngine creates a game for the named players, in turn order. The draw
// pile is shuffled from seed unless WithPile is given.
//
// Example usage:
//
//	e, err := game.NewEngine(42, []string{"Benjamin", "Nick"},
//	    game.WithLogger(logger))
//	result, err := e.Run(ctx)
func NewEngine(seed int64, playerNames []string, opts ...EngineOption) (*Engine, error) {
	if len(playerNames) == 0 {
		return nil, ErrNoPlayers
	}

	seen := make(map[string]bool, len(playerNames))
	players := make([]*Player, len(playerNames))
	for i, name := range playerNames {
		if name == "" {
			return nil, fmt.Errorf("player %d: %w", i+1, ErrEmptyPlayerName)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePlayer, name)
		}
		seen[name] = true
		players[i] = NewPlayer(name)
	}

	cfg := &engineConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.pile == nil {
		cfg.pile = deck.Shuffle(randutil.New(seed))
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.clock == nil {
		cfg.clock = quartz.NewReal()
	}
	if cfg.eventBus == nil {
		cfg.eventBus = NewEventBus()
	}

	return &Engine{
		gameID:   cfg.gameID,
		seed:     seed,
		players:  players,
		pile:     cfg.pile,
		state:    InProgress,
		logger:   cfg.logger,
		clock:    cfg.clock,
		eventBus: cfg.eventBus,
	}, nil
}

// EventBus returns the bus for subscribing to game events
func (e *Engine) EventBus() EventBus {
	return e.eventBus
}

// Players returns the players in turn order. The slice is a copy.
func (e *Engine) Players() []*Player {
	players := make([]*Player, len(e.players))
	copy(players, e.players)
	return players
}

// Player returns the named player, or nil
func (e *Engine) Player(name string) *Player {
	for _, p := range e.players {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// CardsRemaining returns the number of cards left in the draw pile
func (e *Engine) CardsRemaining() int {
	return e.pile.CardsRemaining()
}

// Rounds returns the number of completed rounds
func (e *Engine) Rounds() int {
	return e.rounds
}

// State returns the lifecycle state of the game
func (e *Engine) State() State {
	return e.state
}

// Scores returns every player's current score in turn order
func (e *Engine) Scores() []PlayerScore {
	scores := make([]PlayerScore, len(e.players))
	for i, p := range e.players {
		scores[i] = PlayerScore{Name: p.Name(), Score: p.Score()}
	}
	return scores
}

// PlayerTurn has the player draw one card and store it. A card that
// completes a pair is played straight away; an unpaired card stays in hand.
// With an empty pile the turn does nothing.
func (e *Engine) PlayerTurn(p *Player) {
	rank, ok := p.Draw(e.pile)
	if !ok {
		e.logger.Debug("Draw pile empty", "player", p.Name())
		return
	}

	card, ok := p.Store(rank)
	switch {
	case !ok:
		e.logger.Debug("Overstored", "player", p.Name(), "rank", rank)
		e.eventBus.Publish(CardOverstoredEvent{PlayerName: p.Name(), Rank: rank, timestamp: e.clock.Now()})
	case card.IsPaired():
		e.logger.Debug("Paired", "player", p.Name(), "rank", rank)
		e.eventBus.Publish(CardPairedEvent{PlayerName: p.Name(), Rank: rank, timestamp: e.clock.Now()})
		e.play(p, card)
	default:
		e.logger.Debug("Added", "player", p.Name(), "rank", rank)
		e.eventBus.Publish(CardAddedEvent{PlayerName: p.Name(), Rank: rank, timestamp: e.clock.Now()})
	}
}

func (e *Engine) play(p *Player, card deck.StoredCard) {
	if !p.Play(card) {
		return
	}
	score := p.Score()
	e.logger.Debug("Played", "player", p.Name(), "card", card, "score", score)
	e.eventBus.Publish(CardPlayedEvent{PlayerName: p.Name(), Card: card, ScoreAfter: score, timestamp: e.clock.Now()})
}

// PlayRound gives every player exactly one turn, in turn order
func (e *Engine) PlayRound() {
	for _, p := range e.players {
		e.PlayerTurn(p)
	}
	e.rounds++

	e.logger.Debug("Round complete", "round", e.rounds, "remaining", e.pile.CardsRemaining())
	e.eventBus.Publish(RoundCompleteEvent{
		Round:          e.rounds,
		Scores:         e.Scores(),
		CardsRemaining: e.pile.CardsRemaining(),
		timestamp:      e.clock.Now(),
	})
}

// IsAnyPlayerWinning returns true if the best score has reached WinningScore
func (e *Engine) IsAnyPlayerWinning() bool {
	for _, p := range e.players {
		if p.Score() >= WinningScore {
			return true
		}
	}
	return false
}

// WinningPlayer returns the player with the highest score. Ties go to the
// player earliest in turn order.
func (e *Engine) WinningPlayer() *Player {
	var best *Player
	bestScore := 0
	for _, p := range e.players {
		if score := p.Score(); best == nil || score > bestScore {
			best = p
			bestScore = score
		}
	}
	return best
}

// Run plays rounds until a player reaches WinningScore at a round boundary,
// or the pile runs out first, which ends the game as a no contest. The
// context is checked between rounds. A cancelled game can be resumed by
// calling Run again; it continues from the last completed round.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	if e.state == Complete {
		return nil, ErrGameComplete
	}

	if !e.started {
		e.begin()
	} else {
		e.logger.Debug("Resuming game", "game", e.gameID, "rounds", e.rounds)
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("game %s stopped after %d rounds: %w", e.gameID, e.rounds, err)
		}

		e.PlayRound()

		if e.IsAnyPlayerWinning() {
			return e.finish(Won), nil
		}
		if e.pile.IsEmpty() {
			return e.finish(NoContest), nil
		}
	}
}

// begin records the start time and announces the game, once per engine
func (e *Engine) begin() {
	e.started = true
	e.start = e.clock.Now()

	names := make([]string, len(e.players))
	for i, p := range e.players {
		names[i] = p.Name()
	}

	e.logger.Debug("Starting game", "game", e.gameID, "seed", e.seed, "players", len(e.players))
	e.eventBus.Publish(GameStartEvent{
		GameID:    e.gameID,
		Seed:      e.seed,
		Players:   names,
		PileSize:  e.pile.CardsRemaining(),
		timestamp: e.start,
	})
}

func (e *Engine) finish(outcome Outcome) *Result {
	e.state = Complete
	now := e.clock.Now()
	scores := e.Scores()

	result := &Result{
		GameID:         e.gameID,
		Seed:           e.seed,
		Outcome:        outcome,
		Rounds:         e.rounds,
		Scores:         scores,
		CardsRemaining: e.pile.CardsRemaining(),
		Duration:       now.Sub(e.start),
	}

	switch outcome {
	case Won:
		winner := e.WinningPlayer()
		result.Winner = winner.Name()
		result.WinningScore = winner.Score()
		e.logger.Debug("Game won", "game", e.gameID, "winner", winner.Name(), "score", result.WinningScore, "rounds", e.rounds)
		e.eventBus.Publish(GameWonEvent{
			GameID:    e.gameID,
			Winner:    winner.Name(),
			Score:     result.WinningScore,
			Rounds:    e.rounds,
			Scores:    scores,
			timestamp: now,
		})
	case NoContest:
		e.logger.Debug("Draw pile exhausted without a winner", "game", e.gameID, "rounds", e.rounds)
		e.eventBus.Publish(PileExhaustedEvent{Rounds: e.rounds, Scores: scores, timestamp: now})
	}

	e.result = result
	return result
}

// Result returns the result of a completed game, or nil while in progress
func (e *Engine) Result() *Result {
	return e.result
}
