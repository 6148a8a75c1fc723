package indexer

import (
	"github.com/behrlich/euchre-solver/pkg/cards"
	"github.com/behrlich/euchre-solver/pkg/game"
)

// kind discriminates the three round shapes spec.md §4.7 names.
type kind int

const (
	kindStandard kind = iota
	kindEuchre
	kindChoice
)

// RoundType describes one independent round of a GameIndexer: a chunk
// of an information-state's action sequence that is indexed on its own
// and then combined with the other rounds via a Horner-like scheme.
// Construct one with NewStandardRound, NewEuchreRound, or
// NewChoiceRound.
type RoundType struct {
	kind          kind
	deckSize      int
	cardsPerRound []int
	faceUp        cards.Suit
	choices       [][]game.Action
	total         int
}

// NewStandardRound describes a round that deals cardsPerRound[i] cards
// (for each stage i) from a deckSize-card deck without isomorphism
// reduction, the deck shrinking by the cards already dealt between
// stages. This covers both spec.md §4.7's "Standard deck" (e.g. a
// Kuhn-style single 1-card deal from a 3-card deck) and "Custom deck"
// round kinds, which differ from Standard only in deck size/labeling,
// not in indexing algorithm.
func NewStandardRound(deckSize int, cardsPerRound []int) RoundType {
	total := 0
	for _, k := range cardsPerRound {
		total += k
	}
	return RoundType{kind: kindStandard, deckSize: deckSize, cardsPerRound: append([]int(nil), cardsPerRound...), total: total}
}

// NewEuchreRound describes a round that deals handSize cards from the
// 24-card Euchre deck, indexed up to suit-color isomorphism given a
// fixed face-up card suit (see euchre.HandFingerprint).
func NewEuchreRound(handSize int, faceUp cards.Suit) RoundType {
	return RoundType{kind: kindEuchre, cardsPerRound: []int{handSize}, faceUp: faceUp, total: handSize}
}

// NewChoiceRound describes a round whose only legal sequences are the
// given fixed list of action sequences (e.g. Euchre's 31 distinct
// bidding sequences). Sequences are deduplicated and may be given in
// any order.
func NewChoiceRound(choices [][]game.Action) RoundType {
	longest := 0
	for _, c := range choices {
		if len(c) > longest {
			longest = len(c)
		}
	}
	return RoundType{kind: kindChoice, choices: choices, total: longest}
}

// matchingActions reports how many leading elements of actions belong
// to this round, or ok=false if actions doesn't contain a full match
// (a partial round is not indexable).
func (rt RoundType) matchingActions(actions []game.Action) (n int, ok bool) {
	switch rt.kind {
	case kindStandard, kindEuchre:
		if rt.total <= len(actions) {
			return rt.total, true
		}
		return 0, false
	case kindChoice:
		best := -1
		for _, c := range rt.choices {
			if len(c) <= len(actions) && len(c) > best && actionsEqual(c, actions[:len(c)]) {
				best = len(c)
			}
		}
		if best < 0 {
			return 0, false
		}
		return best, true
	default:
		return 0, false
	}
}

func actionsEqual(a, b []game.Action) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func actionsKey(actions []game.Action) string {
	buf := make([]byte, len(actions))
	for i, a := range actions {
		buf[i] = byte(a)
	}
	return string(buf)
}
