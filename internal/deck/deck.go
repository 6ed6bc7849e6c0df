package deck

import rand "math/rand/v2"

const (
	// Size is the number of cards in a shuffled draw pile
	Size = 50

	// MaxSmallCopies caps how many copies of each rank below Ten the pile holds
	MaxSmallCopies = 7

	// MaxTenCopies caps how many Tens the pile holds
	MaxTenCopies = 1
)

// Capacity returns the maximum number of copies of r a pile may contain
func Capacity(r Rank) int {
	if r == Ten {
		return MaxTenCopies
	}
	return MaxSmallCopies
}

// Pile is a draw pile. Cards are drawn from the end most recently added.
type Pile struct {
	cards []Rank
}

// NewPile creates a pile from ranks in draw order, the last rank being
// the first one drawn
func NewPile(ranks ...Rank) *Pile {
	cards := make([]Rank, len(ranks))
	copy(cards, ranks)
	return &Pile{cards: cards}
}

// Shuffle builds a full pile by rejection sampling: a rank is sampled
// uniformly and kept only while its count is under Capacity.
// The capacities sum to exactly Size, so every rank ends up exhausted.
func Shuffle(rng *rand.Rand) *Pile {
	counts := make(map[Rank]int, len(Ranks))
	cards := make([]Rank, 0, Size)

	for range Size {
		for {
			rank := Ranks[rng.IntN(len(Ranks))]
			if counts[rank] < Capacity(rank) {
				counts[rank]++
				cards = append(cards, rank)
				break
			}
		}
	}

	return &Pile{cards: cards}
}

// Draw removes and returns the top card from the pile
func (p *Pile) Draw() (Rank, bool) {
	if len(p.cards) == 0 {
		return 0, false
	}

	last := len(p.cards) - 1
	card := p.cards[last]
	p.cards = p.cards[:last]
	return card, true
}

// Peek returns the top card without removing it from the pile
func (p *Pile) Peek() (Rank, bool) {
	if len(p.cards) == 0 {
		return 0, false
	}
	return p.cards[len(p.cards)-1], true
}

// CardsRemaining returns the number of cards left in the pile
func (p *Pile) CardsRemaining() int {
	return len(p.cards)
}

// IsEmpty returns true if the pile has no cards left
func (p *Pile) IsEmpty() bool {
	return len(p.cards) == 0
}

// Counts returns how many cards of each rank remain in the pile
func (p *Pile) Counts() map[Rank]int {
	counts := make(map[Rank]int, len(Ranks))
	for _, card := range p.cards {
		counts[card]++
	}
	return counts
}
