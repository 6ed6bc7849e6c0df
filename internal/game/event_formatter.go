package game

import (
	"fmt"
	"strings"
)

// FormattingOptions controls how events are formatted
type FormattingOptions struct {
	ShowRounds bool // Include per-round score lines
	ShowSeed   bool // Include the seed in the game start line (for replays)
}

// EventFormatter renders game events as single human-readable lines
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// Format returns the line for an event, or "" if the event is not shown
// with the current options
func (ef *EventFormatter) Format(event GameEvent) string {
	switch e := event.(type) {
	case GameStartEvent:
		return ef.FormatGameStart(e)
	case CardAddedEvent:
		return fmt.Sprintf("%s added %s to their hand.", e.PlayerName, e.Rank)
	case CardPairedEvent:
		return fmt.Sprintf("%s paired up the %s in their hand.", e.PlayerName, e.Rank)
	case CardOverstoredEvent:
		return fmt.Sprintf("%s overstored the %s in their hand, losing all three cards.", e.PlayerName, e.Rank)
	case CardPlayedEvent:
		return fmt.Sprintf("%s played their %s (+%d, score %d).", e.PlayerName, e.Card, e.Card.Score(), e.ScoreAfter)
	case RoundCompleteEvent:
		if !ef.opts.ShowRounds {
			return ""
		}
		return fmt.Sprintf("Round %d: %s (%d cards left)", e.Round, formatScores(e.Scores), e.CardsRemaining)
	case PileExhaustedEvent:
		return fmt.Sprintf("The draw pile ran out after %d rounds with nobody on %d points: no contest. Final scores: %s",
			e.Rounds, WinningScore, formatScores(e.Scores))
	case GameWonEvent:
		return fmt.Sprintf("%s wins with %d points after %d rounds! Final scores: %s",
			e.Winner, e.Score, e.Rounds, formatScores(e.Scores))
	default:
		return ""
	}
}

// FormatGameStart formats a game start event
func (ef *EventFormatter) FormatGameStart(event GameStartEvent) string {
	line := fmt.Sprintf("Game %s: %s (%d cards)", event.GameID, strings.Join(event.Players, " vs "), event.PileSize)
	if ef.opts.ShowSeed {
		line += fmt.Sprintf(" seed=%d", event.Seed)
	}
	return line
}

func formatScores(scores []PlayerScore) string {
	parts := make([]string, len(scores))
	for i, s := range scores {
		parts[i] = fmt.Sprintf("%s %d", s.Name, s.Score)
	}
	return strings.Join(parts, ", ")
}
