package statistics

import (
	"fmt"
	"math"
	"sort"
)

// GameResult represents the outcome of a single game
type GameResult struct {
	Seed         int64  // RNG seed for this game (for replay)
	Winner       string // Empty for a no contest
	WinnerSeat   int    // Winner's 1-based position in turn order, 0 for a no contest
	WinningScore int
	Rounds       int
	Scores       map[string]int
}

// PlayerStats tracks statistics for one player across games
type PlayerStats struct {
	Games    int
	Wins     int
	SumScore int
}

// WinRate returns the fraction of games the player won
func (p PlayerStats) WinRate() float64 {
	if p.Games == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.Games)
}

// MeanScore returns the player's average final score
func (p PlayerStats) MeanScore() float64 {
	if p.Games == 0 {
		return 0
	}
	return float64(p.SumScore) / float64(p.Games)
}

// Statistics tracks results across many games
type Statistics struct {
	Games      int
	Wins       int // Games that ended with a winner
	NoContests int // Games that ended with the pile exhausted

	SumRounds  int
	SumRounds2 int   // Sum of squares for variance calculation
	Rounds     []int // Store all values for median/percentile calculation

	SumWinningScore int
	MaxWinningScore int

	SeatWins map[int]int // Wins by 1-based seat
	Players  map[string]*PlayerStats
}

// Add incorporates a game result into the statistics
func (s *Statistics) Add(result GameResult) {
	if s.Players == nil {
		s.Players = make(map[string]*PlayerStats)
	}
	if s.SeatWins == nil {
		s.SeatWins = make(map[int]int)
	}

	s.Games++
	s.SumRounds += result.Rounds
	s.SumRounds2 += result.Rounds * result.Rounds
	s.Rounds = append(s.Rounds, result.Rounds)

	if result.Winner == "" {
		s.NoContests++
	} else {
		s.Wins++
		s.SumWinningScore += result.WinningScore
		if result.WinningScore > s.MaxWinningScore {
			s.MaxWinningScore = result.WinningScore
		}
		s.SeatWins[result.WinnerSeat]++
	}

	for name, score := range result.Scores {
		ps, ok := s.Players[name]
		if !ok {
			ps = &PlayerStats{}
			s.Players[name] = ps
		}
		ps.Games++
		ps.SumScore += score
		if name == result.Winner {
			ps.Wins++
		}
	}
}

// MeanRounds returns the average game length in rounds
func (s *Statistics) MeanRounds() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.SumRounds) / float64(s.Games)
}

// RoundsVariance returns the sample variance of game length
func (s *Statistics) RoundsVariance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.MeanRounds()
	return (float64(s.SumRounds2) - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// RoundsStdDev returns the sample standard deviation of game length
func (s *Statistics) RoundsStdDev() float64 {
	return math.Sqrt(s.RoundsVariance())
}

// MedianRounds returns the median game length
func (s *Statistics) MedianRounds() float64 {
	return s.RoundsPercentile(0.5)
}

// RoundsPercentile returns the game length at the given percentile (0.0 to 1.0)
func (s *Statistics) RoundsPercentile(p float64) float64 {
	if len(s.Rounds) == 0 {
		return 0
	}
	sorted := make([]int, len(s.Rounds))
	copy(sorted, s.Rounds)
	sort.Ints(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return float64(sorted[len(sorted)-1])
	}

	weight := index - float64(lower)
	return float64(sorted[lower])*(1-weight) + float64(sorted[upper])*weight
}

// MeanWinningScore returns the average winner's score over decided games
func (s *Statistics) MeanWinningScore() float64 {
	if s.Wins == 0 {
		return 0
	}
	return float64(s.SumWinningScore) / float64(s.Wins)
}

// NoContestRate returns the fraction of games that ended without a winner
func (s *Statistics) NoContestRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.NoContests) / float64(s.Games)
}

// SeatWinRate returns the fraction of all games won from the given seat
func (s *Statistics) SeatWinRate(seat int) float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.SeatWins[seat]) / float64(s.Games)
}

// PlayerNames returns the names of every player seen, sorted
func (s *Statistics) PlayerNames() []string {
	names := make([]string, 0, len(s.Players))
	for name := range s.Players {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate performs consistency checks across the counters
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}

	if s.Wins+s.NoContests != s.Games {
		return fmt.Errorf("ledger mismatch: wins (%d) + no contests (%d) != games (%d)",
			s.Wins, s.NoContests, s.Games)
	}

	if len(s.Rounds) != s.Games {
		return fmt.Errorf("rounds array length (%d) does not match games count (%d)",
			len(s.Rounds), s.Games)
	}

	playerWins := 0
	for name, ps := range s.Players {
		if ps.Wins > ps.Games {
			return fmt.Errorf("player %s won %d of %d games", name, ps.Wins, ps.Games)
		}
		playerWins += ps.Wins
	}
	if playerWins != s.Wins {
		return fmt.Errorf("player wins total (%d) does not match wins (%d)", playerWins, s.Wins)
	}

	seatWins := 0
	for _, n := range s.SeatWins {
		seatWins += n
	}
	if seatWins != s.Wins {
		return fmt.Errorf("seat wins total (%d) does not match wins (%d)", seatWins, s.Wins)
	}

	return nil
}
