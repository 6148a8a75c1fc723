package euchre

import (
	"fmt"
	"strings"

	"github.com/behrlich/euchre-solver/pkg/cards"
	"github.com/behrlich/euchre-solver/pkg/game"
)

// String renders the canonical text form:
// hand0|hand1|hand2|hand3|faceup|bids|[discard]|trick1|trick2|...
//
// Each hand is its five originally dealt cards (not the current, possibly
// depleted, hand), lowest card first; bids concatenates P/T/C/S/H/D in
// the order they were called across Pickup and ChooseTrump; the discard
// segment is present only once a Pickup has happened; tricks group the
// Play actions four at a time, with the in-progress trick (if any)
// trailing as a short, final segment.
func (s *State) String() string {
	var sb strings.Builder
	for p := 0; p < 4; p++ {
		for _, c := range s.dealtHands[p].Cards() {
			sb.WriteString(c.String())
		}
		sb.WriteByte('|')
	}
	if s.dealCount >= 20 {
		sb.WriteString(s.faceUp.String())
	}
	sb.WriteByte('|')

	var bids []game.Action
	var discard game.Action
	hasDiscard := false
	var plays []game.Action
	for _, a := range s.actions {
		switch {
		case a == ActionPickup || a == ActionPass || isSuitCallAction(a):
			bids = append(bids, a)
		case a >= discardBase && a < discardBase+24:
			discard, hasDiscard = a, true
		case a >= playBase && a < playBase+24:
			plays = append(plays, a)
		}
	}
	for _, a := range bids {
		sb.WriteString(ActionString(a))
	}

	if hasDiscard {
		sb.WriteByte('|')
		c, _ := actionCard(discard)
		sb.WriteString(c.String())
	}
	for i, a := range plays {
		if i%4 == 0 {
			sb.WriteByte('|')
		}
		c, _ := actionCard(a)
		sb.WriteString(c.String())
	}
	return sb.String()
}

// Parse builds a State by replaying the canonical text form action by
// action, in the order real play would produce them: deal the four
// hands, turn up the face-up card, replay the bids, replay the discard
// (if any), then replay the tricks. Malformed syntax (wrong segment
// count, an unparseable card or bid letter) is returned as an error;
// an action that is syntactically well-formed but illegal in the
// current phase panics, via Apply, since that indicates the string
// describes an impossible game rather than a malformed one.
func Parse(text string) (*State, error) {
	segments := strings.Split(text, "|")
	if len(segments) < 6 {
		return nil, fmt.Errorf("euchre: canonical string has %d segments, want at least 6", len(segments))
	}

	s := NewState()

	var dealt [4][]cards.Card
	for p := 0; p < 4; p++ {
		hand, err := cards.ParseCards(segments[p])
		if err != nil {
			return nil, fmt.Errorf("euchre: hand %d: %w", p, err)
		}
		if len(hand) != CardsPerHand {
			return nil, fmt.Errorf("euchre: hand %d has %d cards, want %d", p, len(hand), CardsPerHand)
		}
		dealt[p] = hand
	}
	for p := 0; p < 4; p++ {
		for _, c := range dealt[p] {
			s.Apply(ActionDealPlayer(c))
		}
	}

	faceUpStr := segments[4]
	if faceUpStr != "" {
		faceUp, err := cards.ParseCard(faceUpStr)
		if err != nil {
			return nil, fmt.Errorf("euchre: face-up card: %w", err)
		}
		s.Apply(ActionDealFaceUp(faceUp))
	}

	if len(segments) > 5 {
		for _, b := range segments[5] {
			a, err := parseBidLetter(byte(b))
			if err != nil {
				return nil, err
			}
			s.Apply(a)
		}
	}

	rest := segments[6:]
	if len(rest) > 0 && s.phase == PhaseDiscard {
		discard, err := cards.ParseCard(rest[0])
		if err != nil {
			return nil, fmt.Errorf("euchre: discard: %w", err)
		}
		s.Apply(ActionDiscard(discard))
		rest = rest[1:]
	}

	for _, trick := range rest {
		if trick == "" {
			continue
		}
		trickCards, err := cards.ParseCards(trick)
		if err != nil {
			return nil, fmt.Errorf("euchre: trick %q: %w", trick, err)
		}
		for _, c := range trickCards {
			s.Apply(ActionPlay(c))
		}
	}

	return s, nil
}

func parseBidLetter(b byte) (game.Action, error) {
	switch b {
	case 'P':
		return ActionPass, nil
	case 'T':
		return ActionPickup, nil
	case 'C':
		return actionSuit(cards.Clubs), nil
	case 'S':
		return actionSuit(cards.Spades), nil
	case 'H':
		return actionSuit(cards.Hearts), nil
	case 'D':
		return actionSuit(cards.Diamonds), nil
	default:
		return 0, fmt.Errorf("euchre: invalid bid letter %q", b)
	}
}
