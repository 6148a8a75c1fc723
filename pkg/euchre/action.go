package euchre

import (
	"fmt"
	"strings"

	"github.com/behrlich/euchre-solver/pkg/cards"
	"github.com/behrlich/euchre-solver/pkg/game"
)

// Action encodes one Euchre decision as a single byte, partitioned by
// range so a card-bearing action can be recovered with one subtraction:
// the low values are the non-card bids, and each card-bearing family
// occupies its own 24-wide band.
const (
	ActionPickup   game.Action = 0
	ActionPass     game.Action = 1
	ActionClubs    game.Action = 2
	ActionSpades   game.Action = 3
	ActionHearts   game.Action = 4
	ActionDiamonds game.Action = 5

	dealPlayerBase game.Action = 50
	playBase       game.Action = 100
	discardBase    game.Action = 150
	dealFaceUpBase game.Action = 200

	// ActionDiscardMarker is pushed into info-state keys immediately after
	// the dealer's discard so that the first Play action of player 0 can't
	// be confused, byte-for-byte, with the start of the DealHands sequence.
	ActionDiscardMarker game.Action = 255
)

// ActionDealPlayer is the chance action that moves card c into the next
// player's hand during DealHands.
func ActionDealPlayer(c cards.Card) game.Action { return dealPlayerBase + game.Action(c) }

// ActionPlay is the action that plays card c from the current player's hand.
func ActionPlay(c cards.Card) game.Action { return playBase + game.Action(c) }

// ActionDiscard is the dealer's action discarding card c during Discard.
func ActionDiscard(c cards.Card) game.Action { return discardBase + game.Action(c) }

// ActionDealFaceUp is the chance action turning card c face up after the deal.
func ActionDealFaceUp(c cards.Card) game.Action { return dealFaceUpBase + game.Action(c) }

// actionSuit encodes calling trump suit s during ChooseTrump. cards.Suit's
// natural order (Clubs, Spades, Hearts, Diamonds) lines up with the action
// band (Clubs=2 .. Diamonds=5), so the two are a single offset apart.
func actionSuit(s cards.Suit) game.Action { return ActionClubs + game.Action(s) }

func suitOfAction(a game.Action) cards.Suit { return cards.Suit(a - ActionClubs) }

// actionCard recovers the card carried by a, if any.
func actionCard(a game.Action) (cards.Card, bool) {
	switch {
	case a >= dealFaceUpBase && a < dealFaceUpBase+24:
		return cards.Card(a - dealFaceUpBase), true
	case a >= discardBase && a < discardBase+24:
		return cards.Card(a - discardBase), true
	case a >= playBase && a < playBase+24:
		return cards.Card(a - playBase), true
	case a >= dealPlayerBase && a < dealPlayerBase+24:
		return cards.Card(a - dealPlayerBase), true
	default:
		return 0, false
	}
}

func isSuitCallAction(a game.Action) bool {
	return a >= ActionClubs && a <= ActionDiamonds
}

// ActionString renders a a the way the canonical text serialization does:
// bids print as a single letter, card actions print as the card.
func ActionString(a game.Action) string {
	switch {
	case a == ActionPickup:
		return "T"
	case a == ActionPass:
		return "P"
	case isSuitCallAction(a):
		return strings.ToUpper(suitOfAction(a).String())
	case a == ActionDiscardMarker:
		return ""
	default:
		if c, ok := actionCard(a); ok {
			return c.String()
		}
		return fmt.Sprintf("?%d", a)
	}
}
