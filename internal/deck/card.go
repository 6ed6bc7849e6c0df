package deck

import (
	"fmt"
	"strconv"
)

// Rank represents a card face value. The numeric value doubles as the base score.
type Rank int

const (
	One   Rank = 1
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Ten   Rank = 10
)

// Ranks lists every rank in the deck, in ascending order
var Ranks = [...]Rank{One, Two, Three, Four, Five, Six, Seven, Ten}

// Valid reports whether r is one of the deck's ranks
func (r Rank) Valid() bool {
	for _, rank := range Ranks {
		if r == rank {
			return true
		}
	}
	return false
}

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case One:
		return "One"
	case Two:
		return "Two"
	case Three:
		return "Three"
	case Four:
		return "Four"
	case Five:
		return "Five"
	case Six:
		return "Six"
	case Seven:
		return "Seven"
	case Ten:
		return "Ten"
	default:
		return "Rank(" + strconv.Itoa(int(r)) + ")"
	}
}

// Kind distinguishes a single held card from a matched pair
type Kind int

const (
	Unpaired Kind = iota
	Paired
)

// String returns the string representation of a kind
func (k Kind) String() string {
	switch k {
	case Unpaired:
		return "unpaired"
	case Paired:
		return "paired"
	default:
		return "unknown"
	}
}

// StoredCard is a card held by a player: either one card of a rank, or two
// cards of the same rank matched into a single unit.
type StoredCard struct {
	Rank Rank
	Kind Kind
}

// NewUnpaired returns a single held card of the given rank
func NewUnpaired(r Rank) StoredCard {
	return StoredCard{Rank: r, Kind: Unpaired}
}

// NewPaired returns a matched pair of the given rank
func NewPaired(r Rank) StoredCard {
	return StoredCard{Rank: r, Kind: Paired}
}

// IsPaired returns true if the card is a matched pair
func (c StoredCard) IsPaired() bool {
	return c.Kind == Paired
}

// Score returns the points the card is worth once played.
// A pair is worth double its rank.
func (c StoredCard) Score() int {
	if c.Kind == Paired {
		return 2 * int(c.Rank)
	}
	return int(c.Rank)
}

// String returns the string representation of a stored card (e.g. "paired Seven")
func (c StoredCard) String() string {
	return fmt.Sprintf("%s %s", c.Kind, c.Rank)
}
