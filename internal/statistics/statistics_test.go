package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	assert.Equal(t, 0.0, stats.MeanRounds())
	assert.Equal(t, 0.0, stats.RoundsVariance())
	assert.Equal(t, 0.0, stats.RoundsStdDev())
	assert.Equal(t, 0.0, stats.MedianRounds())
	assert.Equal(t, 0.0, stats.RoundsPercentile(0.9))
	assert.Equal(t, 0.0, stats.MeanWinningScore())
	assert.Equal(t, 0.0, stats.NoContestRate())
	assert.Equal(t, 0.0, stats.SeatWinRate(1))
	assert.Error(t, stats.Validate(), "no games is invalid")
}

func TestStatistics_SingleWin(t *testing.T) {
	stats := &Statistics{}
	stats.Add(GameResult{
		Seed:         12345,
		Winner:       "Nick",
		WinnerSeat:   2,
		WinningScore: 22,
		Rounds:       9,
		Scores:       map[string]int{"Benjamin": 14, "Nick": 22},
	})

	require.NoError(t, stats.Validate())
	assert.Equal(t, 1, stats.Games)
	assert.Equal(t, 1, stats.Wins)
	assert.Equal(t, 9.0, stats.MeanRounds())
	assert.Equal(t, 0.0, stats.RoundsVariance())
	assert.Equal(t, 22.0, stats.MeanWinningScore())
	assert.Equal(t, 22, stats.MaxWinningScore)
	assert.Equal(t, 1.0, stats.SeatWinRate(2))
	assert.Equal(t, 0.0, stats.SeatWinRate(1))

	assert.Equal(t, []string{"Benjamin", "Nick"}, stats.PlayerNames())
	assert.Equal(t, 1.0, stats.Players["Nick"].WinRate())
	assert.Equal(t, 0.0, stats.Players["Benjamin"].WinRate())
	assert.Equal(t, 14.0, stats.Players["Benjamin"].MeanScore())
}

func TestStatistics_MultipleGames(t *testing.T) {
	stats := &Statistics{}
	results := []GameResult{
		{Winner: "Benjamin", WinnerSeat: 1, WinningScore: 20, Rounds: 8, Scores: map[string]int{"Benjamin": 20, "Nick": 10}},
		{Winner: "Nick", WinnerSeat: 2, WinningScore: 24, Rounds: 10, Scores: map[string]int{"Benjamin": 6, "Nick": 24}},
		{Rounds: 25, Scores: map[string]int{"Benjamin": 18, "Nick": 16}},
		{Winner: "Benjamin", WinnerSeat: 1, WinningScore: 21, Rounds: 12, Scores: map[string]int{"Benjamin": 21, "Nick": 2}},
	}
	for _, r := range results {
		stats.Add(r)
	}

	require.NoError(t, stats.Validate())
	assert.Equal(t, 4, stats.Games)
	assert.Equal(t, 3, stats.Wins)
	assert.Equal(t, 1, stats.NoContests)
	assert.Equal(t, 0.25, stats.NoContestRate())
	assert.Equal(t, 13.75, stats.MeanRounds())
	assert.Equal(t, 11.0, stats.MedianRounds())
	assert.Equal(t, 25.0, stats.RoundsPercentile(1))
	assert.Equal(t, 8.0, stats.RoundsPercentile(0))
	assert.InDelta(t, 65.0/3.0, stats.MeanWinningScore(), 1e-9)
	assert.Equal(t, 24, stats.MaxWinningScore)
	assert.Equal(t, 0.5, stats.SeatWinRate(1))
	assert.Equal(t, 0.5, stats.Players["Benjamin"].WinRate())
	assert.Equal(t, 0.25, stats.Players["Nick"].WinRate())

	// Sample variance of {8, 10, 25, 12}
	mean := 13.75
	want := (math.Pow(8-mean, 2) + math.Pow(10-mean, 2) + math.Pow(25-mean, 2) + math.Pow(12-mean, 2)) / 3
	assert.InDelta(t, want, stats.RoundsVariance(), 1e-9)
	assert.InDelta(t, math.Sqrt(want), stats.RoundsStdDev(), 1e-9)
}

func TestStatistics_ValidateDetectsMismatch(t *testing.T) {
	stats := &Statistics{}
	stats.Add(GameResult{Winner: "Nick", WinnerSeat: 2, WinningScore: 20, Rounds: 5, Scores: map[string]int{"Nick": 20}})

	stats.NoContests++
	assert.ErrorContains(t, stats.Validate(), "ledger mismatch")

	stats.NoContests--
	stats.Rounds = append(stats.Rounds, 3)
	assert.ErrorContains(t, stats.Validate(), "rounds array length")

	stats.Rounds = stats.Rounds[:1]
	stats.SeatWins[1]++
	assert.ErrorContains(t, stats.Validate(), "seat wins total")
}
