package simulator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pairs/internal/fileutil"
	"github.com/lox/pairs/internal/game"
	"github.com/lox/pairs/internal/gameid"
	"github.com/lox/pairs/internal/statistics"
)

var ErrNoGames = errors.New("at least one game is required")

// Config holds configuration for running simulations
type Config struct {
	Games       int
	Players     []string
	Seed        int64
	Concurrency int           // Games played at once; defaults to GOMAXPROCS
	Timeout     time.Duration // Per game; zero means no limit
	Logger      *log.Logger
	Clock       quartz.Clock
}

// Simulator plays many independent games and aggregates the results
type Simulator struct {
	config Config
}

// Summary is the outcome of a simulation run
type Summary struct {
	Stats   *statistics.Statistics
	Results []*game.Result // In seed order
	Elapsed time.Duration
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Concurrency <= 0 {
		config.Concurrency = runtime.GOMAXPROCS(0)
	}
	return &Simulator{config: config}
}

// Run plays config.Games games with seeds Seed, Seed+1, ... Each game owns
// its own engine and pile. Results are aggregated in seed order, so a run is
// reproducible regardless of concurrency.
func (s *Simulator) Run(ctx context.Context) (*Summary, error) {
	if s.config.Games <= 0 {
		return nil, ErrNoGames
	}

	start := s.config.Clock.Now()
	results := make([]*game.Result, s.config.Games)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Concurrency)

	for i := range s.config.Games {
		seed := s.config.Seed + int64(i)
		g.Go(func() error {
			result, err := s.playGame(gctx, seed)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i+1, seed, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, result := range results {
		stats.Add(toGameResult(result))
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	elapsed := s.config.Clock.Since(start)
	s.config.Logger.Info("Simulation complete",
		"games", stats.Games,
		"no_contests", stats.NoContests,
		"elapsed", elapsed)

	return &Summary{Stats: stats, Results: results, Elapsed: elapsed}, nil
}

// playGame runs a single game with timeout protection
func (s *Simulator) playGame(ctx context.Context, seed int64) (*game.Result, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	id, err := gameid.Generate()
	if err != nil {
		return nil, err
	}

	engine, err := game.NewEngine(seed, s.config.Players,
		game.WithGameID(id),
		game.WithLogger(s.config.Logger.With("seed", seed)),
		game.WithClock(s.config.Clock),
	)
	if err != nil {
		return nil, err
	}

	return engine.Run(ctx)
}

func toGameResult(r *game.Result) statistics.GameResult {
	gr := statistics.GameResult{
		Seed:         r.Seed,
		Winner:       r.Winner,
		WinningScore: r.WinningScore,
		Rounds:       r.Rounds,
		Scores:       make(map[string]int, len(r.Scores)),
	}
	for i, ps := range r.Scores {
		gr.Scores[ps.Name] = ps.Score
		if ps.Name == r.Winner {
			gr.WinnerSeat = i + 1
		}
	}
	return gr
}

// RunSimulation is a convenience function for running a simulation with basic parameters
func RunSimulation(ctx context.Context, games int, players []string, seed int64, logger *log.Logger) (*Summary, error) {
	return New(Config{
		Games:   games,
		Players: players,
		Seed:    seed,
		Logger:  logger,
	}).Run(ctx)
}

// PrintSummary writes a human-readable summary of simulation results
func PrintSummary(w io.Writer, summary *Summary, players []string) {
	stats := summary.Stats

	fmt.Fprintf(w, "\n=== RESULTS ===\n")
	fmt.Fprintf(w, "Games played: %d (%s)\n", stats.Games, summary.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "Decided: %d, no contest: %d (%.1f%%)\n",
		stats.Wins, stats.NoContests, stats.NoContestRate()*100)
	fmt.Fprintf(w, "First seat win rate: %.1f%%\n", stats.SeatWinRate(1)*100)

	fmt.Fprintf(w, "\n=== PLAYERS ===\n")
	for seat, name := range players {
		ps, ok := stats.Players[name]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%d. %s: %d wins (%.1f%%), mean final score %.2f\n",
			seat+1, name, ps.Wins, ps.WinRate()*100, ps.MeanScore())
	}

	fmt.Fprintf(w, "\n=== GAME LENGTH ===\n")
	fmt.Fprintf(w, "Mean: %.2f rounds (std dev %.2f)\n", stats.MeanRounds(), stats.RoundsStdDev())
	fmt.Fprintf(w, "Percentiles: P5=%.1f, P50=%.1f, P95=%.1f\n",
		stats.RoundsPercentile(0.05), stats.MedianRounds(), stats.RoundsPercentile(0.95))

	if stats.Wins > 0 {
		fmt.Fprintf(w, "\n=== WINNING SCORES ===\n")
		fmt.Fprintf(w, "Mean: %.2f, max: %d\n", stats.MeanWinningScore(), stats.MaxWinningScore)
	}
}

// Report is the JSON form of a simulation summary
type Report struct {
	Games            int                    `json:"games"`
	Seed             int64                  `json:"seed"`
	Wins             int                    `json:"wins"`
	NoContests       int                    `json:"no_contests"`
	MeanRounds       float64                `json:"mean_rounds"`
	MedianRounds     float64                `json:"median_rounds"`
	MeanWinningScore float64                `json:"mean_winning_score"`
	FirstSeatWinRate float64                `json:"first_seat_win_rate"`
	Players          map[string]PlayerEntry `json:"players"`
	ElapsedMs        int64                  `json:"elapsed_ms"`
}

// PlayerEntry is one player's line in a Report
type PlayerEntry struct {
	Wins      int     `json:"wins"`
	WinRate   float64 `json:"win_rate"`
	MeanScore float64 `json:"mean_score"`
}

// NewReport builds a report from a summary
func NewReport(summary *Summary, seed int64) Report {
	stats := summary.Stats
	players := make(map[string]PlayerEntry, len(stats.Players))
	for name, ps := range stats.Players {
		players[name] = PlayerEntry{Wins: ps.Wins, WinRate: ps.WinRate(), MeanScore: ps.MeanScore()}
	}

	return Report{
		Games:            stats.Games,
		Seed:             seed,
		Wins:             stats.Wins,
		NoContests:       stats.NoContests,
		MeanRounds:       stats.MeanRounds(),
		MedianRounds:     stats.MedianRounds(),
		MeanWinningScore: stats.MeanWinningScore(),
		FirstSeatWinRate: stats.SeatWinRate(1),
		Players:          players,
		ElapsedMs:        summary.Elapsed.Milliseconds(),
	}
}

// WriteReport writes the report as indented JSON. Readers never observe a
// partially written file.
func WriteReport(filename string, report Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := fileutil.WriteFileAtomic(filename, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", filename, err)
	}
	return nil
}
