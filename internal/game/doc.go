// Package game implements the rules of a card-pairing game.
//
// Players take turns drawing from a shared pile. A drawn card is stored in
// the player's hand: the first card of a rank is held unpaired, a second
// card of that rank makes a pair which is played immediately for double
// its rank, and a third card of a rank already paired overstores it, losing
// the pair and the drawn card. The first player on WinningScore or more at
// the end of a round wins; ties go to the earlier player in turn order.
//
// # Basic Usage
//
//	e, err := game.NewEngine(seed, []string{"Benjamin", "Nick"})
//	if err != nil {
//	    return err
//	}
//	e.EventBus().Subscribe(game.NewNarrator(os.Stdout,
//	    game.NewEventFormatter(game.FormattingOptions{}), true))
//	result, err := e.Run(ctx)
//
// # Deterministic Testing
//
// The seed fully determines the shuffled pile. For scripted scenarios pass
// a prepared pile, drawn from its last element:
//
//	pile := deck.NewPile(deck.Three, deck.Five)
//	e, _ := game.NewEngine(0, players, game.WithPile(pile))
//
// # Exhausted Pile
//
// If the pile runs out before anyone reaches WinningScore, scores can no
// longer change. Run ends such a game at that round boundary with the
// NoContest outcome and no winner.
package game
