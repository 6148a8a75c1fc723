package euchre

import (
	"testing"

	"github.com/behrlich/euchre-solver/pkg/cards"
)

// dealDeck places each of the four 5-card hands and returns the deck;
// remaining cards stay in LocNone.
func dealDeck(t *testing.T, hands [4][]cards.Card) cards.Deck {
	t.Helper()
	d := cards.NewDeck()
	for p, hand := range hands {
		for _, c := range hand {
			d.Move(c, cards.PlayerLocation(p))
		}
	}
	return d
}

// TestIsoFingerprintColorSwapInvariant checks the soundness property from
// spec section 8: two deals that differ only by relabeling clubs<->spades
// (holding trump unknown) project to the same fingerprint.
func TestIsoFingerprintColorSwapInvariant(t *testing.T) {
	original := [4][]cards.Card{
		{cards.NewCard(cards.Nine, cards.Clubs), cards.NewCard(cards.Ten, cards.Clubs)},
		{cards.NewCard(cards.Nine, cards.Spades)},
		{cards.NewCard(cards.Nine, cards.Hearts)},
		{cards.NewCard(cards.Nine, cards.Diamonds)},
	}
	swapped := [4][]cards.Card{
		{cards.NewCard(cards.Nine, cards.Spades), cards.NewCard(cards.Ten, cards.Spades)},
		{cards.NewCard(cards.Nine, cards.Clubs)},
		{cards.NewCard(cards.Nine, cards.Hearts)},
		{cards.NewCard(cards.Nine, cards.Diamonds)},
	}

	d1 := dealDeck(t, original)
	d2 := dealDeck(t, swapped)

	f1 := isoFingerprint(&d1, 0, false)
	f2 := isoFingerprint(&d2, 0, false)
	if f1 != f2 {
		t.Errorf("fingerprints differ under a pure color relabeling: %v != %v", f1, f2)
	}
}

// TestIsoFingerprintDistinguishesDifferentHands checks the converse: two
// deals that are not isomorphic must not collide (a cheap sanity check,
// not a proof of injectivity).
func TestIsoFingerprintDistinguishesDifferentHands(t *testing.T) {
	a := [4][]cards.Card{
		{cards.NewCard(cards.Nine, cards.Clubs)},
		{cards.NewCard(cards.Ace, cards.Spades)},
		{},
		{},
	}
	b := [4][]cards.Card{
		{cards.NewCard(cards.Ace, cards.Clubs)},
		{cards.NewCard(cards.Nine, cards.Spades)},
		{},
		{},
	}
	da := dealDeck(t, a)
	db := dealDeck(t, b)

	fa := isoFingerprint(&da, 0, false)
	fb := isoFingerprint(&db, 0, false)
	if fa == fb {
		t.Errorf("fingerprints collide for clearly different deals: %v", fa)
	}
}

// TestIsoFingerprintTrumpKnownSwapsLaneZero checks that once trump is
// known, the trump suit's lane always sorts into index 0, so two decks
// with different trump suits but otherwise-identical structure still
// compare their trump lane to trump lane.
func TestIsoFingerprintTrumpKnownSwapsLaneZero(t *testing.T) {
	hands := [4][]cards.Card{
		{cards.NewCard(cards.Nine, cards.Hearts)},
		{},
		{},
		{},
	}
	d := dealDeck(t, hands)
	f := isoFingerprint(&d, cards.Hearts, true)
	if f[0] == 0 {
		t.Errorf("trump lane (index 0) is empty, want the dealt Nine of Hearts's word")
	}
}

func TestShiftNoneGapsLeavesFullWordUnchanged(t *testing.T) {
	// A word with no None nibbles (every position occupied) has nothing
	// to shift.
	var word uint32
	for i := 0; i < NumRanksPerSuit; i++ {
		word = (word << wordSize) | 0b0100 // any non-zero location
	}
	if got := shiftNoneGaps(word, NumRanksPerSuit); got != word {
		t.Errorf("shiftNoneGaps(%#x) = %#x, want unchanged", word, got)
	}
}
