package euchre

import (
	"testing"

	"github.com/behrlich/euchre-solver/pkg/cards"
	"github.com/behrlich/euchre-solver/pkg/game"
	"github.com/behrlich/euchre-solver/pkg/istate"
)

func istateKeyFromActions(actions ...game.Action) istate.Key {
	var k istate.Key
	for _, a := range actions {
		k = k.Push(byte(a))
	}
	return k
}

func TestTransformCardFaceUpSpadesIsIdentity(t *testing.T) {
	for _, c := range cards.FullDeck.Cards() {
		if got := transformCard(c, cards.Spades); got != c {
			t.Errorf("transformCard(%v, Spades) = %v, want identity", c, got)
		}
	}
}

func TestTransformCardFaceUpClubsSwapsBlackSuits(t *testing.T) {
	tests := []struct {
		in   cards.Card
		want cards.Card
	}{
		{cards.NewCard(cards.Nine, cards.Clubs), cards.NewCard(cards.Nine, cards.Spades)},
		{cards.NewCard(cards.Nine, cards.Spades), cards.NewCard(cards.Nine, cards.Clubs)},
		{cards.NewCard(cards.Nine, cards.Hearts), cards.NewCard(cards.Nine, cards.Hearts)},
		{cards.NewCard(cards.Nine, cards.Diamonds), cards.NewCard(cards.Nine, cards.Diamonds)},
	}
	for _, tt := range tests {
		if got := transformCard(tt.in, cards.Clubs); got != tt.want {
			t.Errorf("transformCard(%v, Clubs) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// TestTransformCardIsInvolutionPerFaceUp checks that applying the same
// face-up suit's permutation twice returns every card to itself: each
// mapping is built from disjoint 2-cycles (plus fixed points), not a
// longer cycle.
func TestTransformCardIsInvolutionPerFaceUp(t *testing.T) {
	for _, faceUp := range []cards.Suit{cards.Clubs, cards.Spades, cards.Hearts, cards.Diamonds} {
		for _, c := range cards.FullDeck.Cards() {
			once := transformCard(c, faceUp)
			twice := transformCard(once, faceUp)
			if twice != c {
				t.Errorf("transformCard(transformCard(%v, %v), %v) = %v, want %v", c, faceUp, faceUp, twice, c)
			}
		}
	}
}

func TestNormalizeSuitFixesSuitCallActions(t *testing.T) {
	k := istateKeyFromActions(actionSuit(cards.Hearts))
	got := NormalizeSuit(k, cards.Clubs)
	wantByte := byte(actionSuit(target(cards.Clubs, cards.Hearts)))
	if got.Bytes()[0] != wantByte {
		t.Errorf("NormalizeSuit suit-call byte = %v, want %v", got.Bytes()[0], wantByte)
	}
}

func TestNormalizeSuitLeavesBidsAlone(t *testing.T) {
	k := istateKeyFromActions(ActionPickup, ActionPass)
	got := NormalizeSuit(k, cards.Diamonds)
	want := []byte{byte(ActionPickup), byte(ActionPass)}
	gotBytes := got.Bytes()
	for i, b := range want {
		if gotBytes[i] != b {
			t.Errorf("NormalizeSuit byte %d = %v, want %v (unchanged)", i, gotBytes[i], b)
		}
	}
}
