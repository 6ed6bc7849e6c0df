package game

import (
	"time"

	"github.com/lox/pairs/internal/deck"
)

// GameEvent represents anything that happens during a game
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// PlayerScore is a player's name paired with their score at a point in time
type PlayerScore struct {
	Name  string
	Score int
}

// GameStartEvent is published before the first round
type GameStartEvent struct {
	GameID    string
	Seed      int64
	Players   []string
	PileSize  int
	timestamp time.Time
}

func (e GameStartEvent) EventType() EventType { return EventTypeGameStart }
func (e GameStartEvent) Timestamp() time.Time { return e.timestamp }

// CardAddedEvent is published when a drawn card is kept unpaired
type CardAddedEvent struct {
	PlayerName string
	Rank       deck.Rank
	timestamp  time.Time
}

func (e CardAddedEvent) EventType() EventType { return EventTypeCardAdded }
func (e CardAddedEvent) Timestamp() time.Time { return e.timestamp }

// CardPairedEvent is published when a drawn card matches one in hand
type CardPairedEvent struct {
	PlayerName string
	Rank       deck.Rank
	timestamp  time.Time
}

func (e CardPairedEvent) EventType() EventType { return EventTypeCardPaired }
func (e CardPairedEvent) Timestamp() time.Time { return e.timestamp }

// CardOverstoredEvent is published when a drawn card lands on a held pair,
// forfeiting all three cards
type CardOverstoredEvent struct {
	PlayerName string
	Rank       deck.Rank
	timestamp  time.Time
}

func (e CardOverstoredEvent) EventType() EventType { return EventTypeCardOverstored }
func (e CardOverstoredEvent) Timestamp() time.Time { return e.timestamp }

// CardPlayedEvent is published when a card moves to a player's played log
type CardPlayedEvent struct {
	PlayerName string
	Card       deck.StoredCard
	ScoreAfter int
	timestamp  time.Time
}

func (e CardPlayedEvent) EventType() EventType { return EventTypeCardPlayed }
func (e CardPlayedEvent) Timestamp() time.Time { return e.timestamp }

// RoundCompleteEvent is published after every player has taken a turn
type RoundCompleteEvent struct {
	Round          int
	Scores         []PlayerScore
	CardsRemaining int
	timestamp      time.Time
}

func (e RoundCompleteEvent) EventType() EventType { return EventTypeRoundComplete }
func (e RoundCompleteEvent) Timestamp() time.Time { return e.timestamp }

// PileExhaustedEvent is published when the pile runs out with nobody at the
// winning score. The game ends with no winner.
type PileExhaustedEvent struct {
	Rounds    int
	Scores    []PlayerScore
	timestamp time.Time
}

func (e PileExhaustedEvent) EventType() EventType { return EventTypePileExhausted }
func (e PileExhaustedEvent) Timestamp() time.Time { return e.timestamp }

// GameWonEvent is the terminal announcement of a winner
type GameWonEvent struct {
	GameID    string
	Winner    string
	Score     int
	Rounds    int
	Scores    []PlayerScore
	timestamp time.Time
}

func (e GameWonEvent) EventType() EventType { return EventTypeGameWon }
func (e GameWonEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to an EventSubscriber
type EventSubscriberFunc func(event GameEvent)

// OnEvent calls f(event)
func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus. Delivery is synchronous,
// in subscription order.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
