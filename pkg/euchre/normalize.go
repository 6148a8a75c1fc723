package euchre

import (
	"github.com/behrlich/euchre-solver/pkg/cards"
	"github.com/behrlich/euchre-solver/pkg/game"
	"github.com/behrlich/euchre-solver/pkg/istate"
)

// transformCard remaps c's suit under the canonical permutation that
// sends faceUpSuit to Spades, its same-color partner to Clubs, and the
// other color pair to Hearts/Diamonds — so any two deals whose face-up
// suit differs only by this relabeling produce the same normalized key.
// The mapping never splits a color pair (the images of Clubs and Spades
// are again a same-color pair, as are those of Hearts and Diamonds),
// since the left-bower rule depends on color pairing, and each mapping
// is its own inverse.
func transformCard(c cards.Card, faceUpSuit cards.Suit) cards.Card {
	remap := func(from cards.Suit) cards.Suit {
		switch faceUpSuit {
		case cards.Clubs:
			switch from {
			case cards.Clubs:
				return cards.Spades
			case cards.Spades:
				return cards.Clubs
			default:
				return from
			}
		case cards.Spades:
			return from
		case cards.Hearts:
			switch from {
			case cards.Clubs:
				return cards.Diamonds
			case cards.Spades:
				return cards.Hearts
			case cards.Hearts:
				return cards.Spades
			default:
				return cards.Clubs
			}
		default: // Diamonds
			switch from {
			case cards.Clubs:
				return cards.Hearts
			case cards.Spades:
				return cards.Diamonds
			case cards.Hearts:
				return cards.Clubs
			default:
				return cards.Spades
			}
		}
	}
	return cards.NewCard(c.Rank(), remap(c.Suit()))
}

// NormalizeSuit returns key with every card-bearing action remapped by
// transformCard so strategically equivalent information states — ones
// differing only by which suit was turned up — collapse onto one CFR
// node. Non-card actions (bids, Pickup, Pass, DiscardMarker) pass
// through unchanged; suit-call actions are remapped too, since a called
// suit is exactly as sensitive to the permutation as a card's suit.
func NormalizeSuit(key istate.Key, faceUpSuit cards.Suit) istate.Key {
	return key.Normalize(func(b byte) byte {
		a := game.Action(b)
		if c, ok := actionCard(a); ok {
			nc := transformCard(c, faceUpSuit)
			switch {
			case a >= dealPlayerBase && a < dealPlayerBase+24:
				return byte(ActionDealPlayer(nc))
			case a >= dealFaceUpBase && a < dealFaceUpBase+24:
				return byte(ActionDealFaceUp(nc))
			case a >= discardBase && a < discardBase+24:
				return byte(ActionDiscard(nc))
			default:
				return byte(ActionPlay(nc))
			}
		}
		if isSuitCallAction(a) {
			return byte(actionSuit(target(faceUpSuit, suitOfAction(a))))
		}
		return b
	})
}

func target(faceUpSuit, from cards.Suit) cards.Suit {
	c := transformCard(cards.NewCard(cards.Nine, from), faceUpSuit)
	return c.Suit()
}

// NormalizeKey adapts NormalizeSuit to the KeyNormalizer shape
// pkg/cfr.Trainer and pkg/bestresponse.BestResponder both take
// (cfr.KeyNormalizer and bestresponse.KeyNormalizer are structurally
// identical function types, never unified into one shared type since
// neither package imports the other). Every decision node this is
// called at is past PhaseDealFaceUp, so g's face-up card is always set.
func NormalizeKey(g game.Game, player int, key istate.Key) istate.Key {
	s := g.(*State)
	return NormalizeSuit(key, s.FaceUp().Suit())
}
