package cards

import "math/bits"

// CardSet is a 24-bit mask of cards, one bit per Card index. Hands, suits,
// and "cards played so far" are all representable and bitwise-combinable.
type CardSet uint32

// FullDeck is the set of all 24 cards.
const FullDeck CardSet = (1 << 24) - 1

// Insert returns the set with c added.
func (s CardSet) Insert(c Card) CardSet { return s | (1 << uint(c)) }

// Remove returns the set with c removed.
func (s CardSet) Remove(c Card) CardSet { return s &^ (1 << uint(c)) }

// Contains reports whether c is a member of s.
func (s CardSet) Contains(c Card) bool { return s&(1<<uint(c)) != 0 }

// Union returns the union of s and other.
func (s CardSet) Union(other CardSet) CardSet { return s | other }

// Difference returns the cards in s that are not in other.
func (s CardSet) Difference(other CardSet) CardSet { return s &^ other }

// Intersect returns the cards present in both s and other.
func (s CardSet) Intersect(other CardSet) CardSet { return s & other }

// Len returns the number of cards in s.
func (s CardSet) Len() int { return bits.OnesCount32(uint32(s)) }

// IsEmpty reports whether s has no cards.
func (s CardSet) IsEmpty() bool { return s == 0 }

// Lowest returns the lowest-indexed card in s and reports whether s was
// non-empty.
func (s CardSet) Lowest() (Card, bool) {
	if s == 0 {
		return 0, false
	}
	return Card(bits.TrailingZeros32(uint32(s))), true
}

// Singleton returns the single card in s, panicking if s does not contain
// exactly one card. Used where the caller has already established (e.g.
// via an invariant) that a location holds exactly one card.
func (s CardSet) Singleton() Card {
	if s.Len() != 1 {
		panic("CardSet.Singleton: set does not contain exactly one card")
	}
	c, _ := s.Lowest()
	return c
}

// Cards returns the members of s as a slice, lowest card first.
func (s CardSet) Cards() []Card {
	out := make([]Card, 0, s.Len())
	for s != 0 {
		c, _ := s.Lowest()
		out = append(out, c)
		s = s.Remove(c)
	}
	return out
}

// SuitMask returns the set of all cards of the given suit (nominal suit,
// not effective suit under trump).
func SuitMask(suit Suit) CardSet {
	var m CardSet
	for r := Rank(0); r < NumRanks; r++ {
		m = m.Insert(NewCard(r, suit))
	}
	return m
}

// EffectiveSuitMask returns all cards whose effective suit (given trump)
// equals suit — this includes the left bower when suit == trump.
func EffectiveSuitMask(suit, trump Suit) CardSet {
	m := SuitMask(suit)
	if suit == trump {
		m = m.Insert(NewCard(Jack, SameColorSuit(trump)))
	} else if suit == SameColorSuit(trump) {
		m = m.Remove(NewCard(Jack, suit))
	}
	return m
}

func (s CardSet) String() string {
	out := ""
	for _, c := range s.Cards() {
		out += c.String()
	}
	return out
}
