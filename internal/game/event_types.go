package game

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeGameStart      EventType = "game_start"
	EventTypeCardAdded      EventType = "card_added"
	EventTypeCardPaired     EventType = "card_paired"
	EventTypeCardOverstored EventType = "card_overstored"
	EventTypeCardPlayed     EventType = "card_played"
	EventTypeRoundComplete  EventType = "round_complete"
	EventTypePileExhausted  EventType = "pile_exhausted"
	EventTypeGameWon        EventType = "game_won"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}
