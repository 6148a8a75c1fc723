package euchre

import (
	"sort"

	"github.com/behrlich/euchre-solver/pkg/cards"
)

// wordSize is the width, in bits, of the nibble packed per card location.
const wordSize = 4

// jackRank is the index of the Jack within the 6-card, no-trump-known
// per-suit ordering (Nine, Ten, Jack, Queen, King, Ace): a gap can only
// be shifted across positions that are not the Jack's, since once trump
// is later decided the Jack's position determines whether it becomes a
// bower.
const jackRank = 2

// locationMask assigns each CardLocation a nibble value. The four
// Played(p) locations share one value, and None is 0, which
// shiftNoneGaps reads to find empty slots; apart from that, only
// equality between two decks' packed words matters.
func locationMask(d *cards.Deck, c cards.Card) uint32 {
	switch d.LocationOf(c) {
	case cards.LocPlayer0:
		return 0b1000
	case cards.LocPlayer1:
		return 0b0001
	case cards.LocPlayer2:
		return 0b0010
	case cards.LocPlayer3:
		return 0b0011
	case cards.LocFaceUp:
		return 0b0101
	case cards.LocNone:
		return 0b0000
	default: // one of the four Played(p) locations
		return 0b0100
	}
}

// suitOrder lists the cards of suit in ascending strategic order given
// trump: with trump known, the same-color Jack (the left bower) sorts as
// if it belonged to the trump suit and ranks just under the right bower.
func suitOrder(suit cards.Suit, trump cards.Suit, trumpKnown bool) []cards.Card {
	plain := func() []cards.Card {
		out := make([]cards.Card, 0, NumRanksPerSuit)
		for r := cards.Rank(0); r < cards.NumRanks; r++ {
			out = append(out, cards.NewCard(r, suit))
		}
		return out
	}

	if !trumpKnown {
		return plain()
	}

	leftBowerSuit := cards.SameColorSuit(trump)
	switch {
	case suit == trump:
		out := make([]cards.Card, 0, NumRanksPerSuit+1)
		for r := cards.Rank(0); r < cards.NumRanks; r++ {
			if r == cards.Jack {
				continue
			}
			out = append(out, cards.NewCard(r, suit))
		}
		out = append(out, cards.NewCard(cards.Jack, leftBowerSuit), cards.NewCard(cards.Jack, suit))
		return out
	case suit == leftBowerSuit:
		out := make([]cards.Card, 0, NumRanksPerSuit-1)
		for r := cards.Rank(0); r < cards.NumRanks; r++ {
			if r == cards.Jack {
				continue
			}
			out = append(out, cards.NewCard(r, suit))
		}
		return out
	default:
		return plain()
	}
}

// NumRanksPerSuit mirrors cards.NumRanks under a name local to this file's
// fixed-capacity slice sizing.
const NumRanksPerSuit = int(cards.NumRanks)

// isoFingerprint computes the 4-lane isomorphism fingerprint described in
// the canonicalization contract: two decks that are strategically
// equivalent under suit-color relabeling (and, when trump is undecided,
// under shifting empty gaps past non-Jack positions) produce identical
// lane words.
func isoFingerprint(d *cards.Deck, trump cards.Suit, trumpKnown bool) [4]uint32 {
	var lanes [4]uint32

	for suit := cards.Suit(0); suit < cards.NumSuits; suit++ {
		order := suitOrder(suit, trump, trumpKnown)
		var word uint32
		for _, c := range order {
			word <<= wordSize
			word |= locationMask(d, c)
		}
		lanes[suit] = word
	}

	if !trumpKnown {
		for s := range lanes {
			lanes[s] = shiftNoneGaps(lanes[s], len(suitOrder(cards.Suit(s), trump, trumpKnown)))
		}
	}

	if trumpKnown {
		lanes[0], lanes[trump] = lanes[trump], lanes[0]
		rest := lanes[1:]
		sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	} else {
		sort.Slice(lanes[:], func(i, j int) bool { return lanes[i] < lanes[j] })
	}

	return lanes
}

// shiftNoneGaps makes one pass from the Ace's nibble (offset 0) towards
// the Nine's: whenever the nibble at offset i is empty (None), it is
// swapped with the nibble at offset i+1, whatever that holds, so empty
// slots move towards the Nine end and cards towards the Ace end. Any
// swap that touches the Jack's slot is skipped. This canonicalizes
// "equivalent gaps" so two decks differing only in which unknown
// non-Jack slot is empty hash identically. The packing loop in isoFingerprint writes order[0] (the
// Nine) into the highest nibble, so order's rank index and a nibble's
// bit-offset run in opposite directions; jackOffset converts jackRank
// (an index into order) into the corresponding offset.
func shiftNoneGaps(word uint32, n int) uint32 {
	nibble := func(w uint32, i int) uint32 { return (w >> (uint(i) * wordSize)) & 0xF }
	swap := func(w uint32, i, j int) uint32 {
		xi, xj := i*wordSize, j*wordSize
		x := ((w >> uint(xi)) ^ (w >> uint(xj))) & 0xF
		return w ^ (x << uint(xi)) ^ (x << uint(xj))
	}

	jackOffset := n - 1 - jackRank
	for i := 0; i+1 < n; i++ {
		if i == jackOffset || i+1 == jackOffset {
			continue
		}
		if nibble(word, i) == 0 {
			word = swap(word, i, i+1)
		}
	}
	return word
}

// HandFingerprint computes the isomorphism-canonical fingerprint of an
// arbitrary group of cards (e.g. a candidate dealt hand under
// consideration by a hand indexer) relative to a fixed face-up-card
// suit, reusing the same suit-color-symmetry projection the
// transposition table uses for full game states: two hands that are
// strategically equivalent under suit-color relabeling given that
// face-up suit produce identical fingerprints. Exported for
// pkg/indexer's Euchre round type.
func HandFingerprint(hand []cards.Card, faceUp cards.Suit) [4]uint32 {
	d := cards.NewDeck()
	for _, c := range hand {
		d.Move(c, cards.LocPlayer0)
	}
	return isoFingerprint(&d, faceUp, true)
}

// transpositionHash combines the isomorphism fingerprint with the current
// player and trump into the 64-bit key used by the transposition table.
// Defined here (rather than pkg/search) because it is a property of the
// canonical projection, not of any particular search algorithm.
func transpositionHash(s *State) uint64 {
	var trump cards.Suit
	if s.trumpSet {
		trump = s.trump
	}
	lanes := isoFingerprint(&s.deck, trump, s.trumpSet)

	h := hasher{}
	for _, l := range lanes {
		h.writeUint32(l)
	}
	h.writeUint32(uint32(s.curPlayer))
	h.writeUint32(uint32(trump))
	h.writeUint32(boolToUint32(s.trumpSet))
	return h.sum()
}

func boolToUint32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
