package simulator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pairs/internal/game"
)

var players = []string{"Benjamin", "Nick"}

func TestNew(t *testing.T) {
	sim := New(Config{Games: 10, Players: players, Seed: 12345})
	require.NotNil(t, sim)
	assert.Positive(t, sim.config.Concurrency, "concurrency defaults to GOMAXPROCS")
	assert.NotNil(t, sim.config.Logger)
	assert.NotNil(t, sim.config.Clock)
}

func TestRun(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
	sim := New(Config{
		Games:       50,
		Players:     players,
		Seed:        12345,
		Concurrency: 4,
		Timeout:     5 * time.Second,
		Logger:      logger,
	})

	summary, err := sim.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.Results, 50)

	stats := summary.Stats
	require.NoError(t, stats.Validate())
	assert.Equal(t, 50, stats.Games)
	assert.Equal(t, 50, stats.Wins+stats.NoContests)

	for i, r := range summary.Results {
		assert.Equal(t, int64(12345+i), r.Seed, "results are in seed order")
		if r.Outcome == game.Won {
			assert.GreaterOrEqual(t, r.WinningScore, game.WinningScore)
		} else {
			assert.Equal(t, game.NoContest, r.Outcome)
			assert.Empty(t, r.Winner)
		}
	}
}

func TestRunIsReproducible(t *testing.T) {
	run := func(concurrency int) *Summary {
		summary, err := New(Config{Games: 30, Players: players, Seed: 7, Concurrency: concurrency}).Run(context.Background())
		require.NoError(t, err)
		return summary
	}

	serial := run(1)
	parallel := run(8)

	for i := range serial.Results {
		assert.Equal(t, serial.Results[i].Scores, parallel.Results[i].Scores, "game %d", i)
		assert.Equal(t, serial.Results[i].Winner, parallel.Results[i].Winner, "game %d", i)
	}
	assert.Equal(t, serial.Stats.Rounds, parallel.Stats.Rounds)
}

func TestRunNoGames(t *testing.T) {
	_, err := New(Config{Players: players}).Run(context.Background())
	assert.ErrorIs(t, err, ErrNoGames)
}

func TestRunInvalidRoster(t *testing.T) {
	_, err := New(Config{Games: 3, Players: []string{"Nick", "Nick"}}).Run(context.Background())
	assert.ErrorIs(t, err, game.ErrDuplicatePlayer)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{Games: 5, Players: players}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunElapsedFromClock(t *testing.T) {
	clock := quartz.NewMock(t)
	summary, err := New(Config{Games: 3, Players: players, Clock: clock}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), summary.Elapsed)
}

func TestRunSimulation_Convenience(t *testing.T) {
	summary, err := RunSimulation(context.Background(), 4, players, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Stats.Games)
}

func TestPrintSummary(t *testing.T) {
	summary, err := RunSimulation(context.Background(), 20, players, 99, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintSummary(&buf, summary, players)

	out := buf.String()
	assert.Contains(t, out, "Games played: 20")
	assert.Contains(t, out, "1. Benjamin:")
	assert.Contains(t, out, "2. Nick:")
	assert.Contains(t, out, "=== GAME LENGTH ===")
	assert.Contains(t, out, fmt.Sprintf("First seat win rate: %.1f%%", summary.Stats.SeatWinRate(1)*100))
}

func TestWriteReport(t *testing.T) {
	summary, err := RunSimulation(context.Background(), 10, players, 3, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteReport(path, NewReport(summary, 3)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var report Report
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, 10, report.Games)
	assert.Equal(t, int64(3), report.Seed)
	assert.Equal(t, summary.Stats.Wins, report.Wins)
	assert.InDelta(t, summary.Stats.SeatWinRate(1), report.FirstSeatWinRate, 1e-9)
	assert.InDelta(t, float64(report.Players["Benjamin"].Wins)/float64(report.Games), report.FirstSeatWinRate, 1e-9)
	assert.Len(t, report.Players, 2)

	wins := 0
	for _, p := range report.Players {
		wins += p.Wins
	}
	assert.Equal(t, report.Wins, wins)
}

func TestWriteReportBadPath(t *testing.T) {
	err := WriteReport(filepath.Join(t.TempDir(), "missing", "report.json"), Report{})
	assert.Error(t, err)
}
