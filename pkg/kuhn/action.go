package kuhn

import "github.com/behrlich/euchre-solver/pkg/game"

// Action encodes one Kuhn decision as a single byte. Pass and Bet double
// as check/fold and bet/call depending on whether a bet is outstanding,
// the same action code either way since the betting-history replay in
// settle derives the meaning from position, not from a distinct code.
const (
	ActionPass game.Action = 0
	ActionBet  game.Action = 1

	dealBase game.Action = 10
)

// ActionDeal is the chance action dealing card c to the next undealt seat.
func ActionDeal(c Card) game.Action { return dealBase + game.Action(c) }

func cardOfDeal(a game.Action) Card { return Card(a - dealBase) }

// ActionString renders a for debugging and IStateString.
func ActionString(a game.Action) string {
	switch a {
	case ActionPass:
		return "p"
	case ActionBet:
		return "b"
	default:
		if a >= dealBase && a < dealBase+game.Action(NumCards) {
			return cardOfDeal(a).String()
		}
		return "?"
	}
}
