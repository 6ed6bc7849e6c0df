package game

import (
	"sort"

	"github.com/lox/pairs/internal/deck"
)

// Player holds one player's hand: cards still in hand, keyed by rank, and
// the append-only log of cards played for points.
type Player struct {
	name string

	unplayed map[deck.Rank]deck.StoredCard
	played   []deck.StoredCard
}

// NewPlayer creates a player with an empty hand
func NewPlayer(name string) *Player {
	return &Player{
		name:     name,
		unplayed: make(map[deck.Rank]deck.StoredCard),
	}
}

// Name returns the player's name, fixed at creation
func (p *Player) Name() string {
	return p.name
}

// Draw takes the top card from the pile
func (p *Player) Draw(pile *deck.Pile) (deck.Rank, bool) {
	return pile.Draw()
}

// Store puts a drawn card into the hand and returns what the hand now holds
// for that rank:
//   - no card of the rank held: the card is kept unpaired
//   - an unpaired card held: the two become a pair
//   - a pair already held: the card is overstored. The pair is removed and
//     neither it nor the incoming card is ever scored; Store returns false.
func (p *Player) Store(rank deck.Rank) (deck.StoredCard, bool) {
	held, ok := p.unplayed[rank]
	switch {
	case ok && held.IsPaired():
		delete(p.unplayed, rank)
		return deck.StoredCard{}, false
	case ok:
		card := deck.NewPaired(rank)
		p.unplayed[rank] = card
		return card, true
	default:
		card := deck.NewUnpaired(rank)
		p.unplayed[rank] = card
		return card, true
	}
}

// Play moves a card from the hand to the played log, where it counts
// toward the score. Returns false, changing nothing, if the card is not
// in hand.
func (p *Player) Play(card deck.StoredCard) bool {
	held, ok := p.unplayed[card.Rank]
	if !ok || held != card {
		return false
	}

	delete(p.unplayed, card.Rank)
	p.played = append(p.played, card)
	return true
}

// Score returns the total of all played cards. Cards in hand do not count.
func (p *Player) Score() int {
	score := 0
	for _, card := range p.played {
		score += card.Score()
	}
	return score
}

// Holds returns true if the exact card is in the player's hand
func (p *Player) Holds(card deck.StoredCard) bool {
	held, ok := p.unplayed[card.Rank]
	return ok && held == card
}

// Unplayed returns the cards in hand ordered by rank
func (p *Player) Unplayed() []deck.StoredCard {
	cards := make([]deck.StoredCard, 0, len(p.unplayed))
	for _, card := range p.unplayed {
		cards = append(cards, card)
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].Rank < cards[j].Rank })
	return cards
}

// Played returns the played cards in the order they were played
func (p *Player) Played() []deck.StoredCard {
	cards := make([]deck.StoredCard, len(p.played))
	copy(cards, p.played)
	return cards
}
