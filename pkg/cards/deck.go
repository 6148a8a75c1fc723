package cards

// Location is where a single card currently resides. Every card is in
// exactly one location at all times — that invariant is maintained by
// Deck.Move, the only mutator.
type Location uint8

const (
	LocPlayer0 Location = iota
	LocPlayer1
	LocPlayer2
	LocPlayer3
	LocPlayed0 // card played this trick by player 0
	LocPlayed1
	LocPlayed2
	LocPlayed3
	LocFaceUp
	LocNone // undealt, or discarded out of play
	NumLocations
)

// PlayerLocation returns the hand location for seat p (0-3).
func PlayerLocation(p int) Location { return Location(p) }

// PlayedLocation returns the trick location for seat p (0-3).
func PlayedLocation(p int) Location { return LocPlayed0 + Location(p) }

func (l Location) String() string {
	switch l {
	case LocPlayer0:
		return "P0"
	case LocPlayer1:
		return "P1"
	case LocPlayer2:
		return "P2"
	case LocPlayer3:
		return "P3"
	case LocPlayed0:
		return "Played0"
	case LocPlayed1:
		return "Played1"
	case LocPlayed2:
		return "Played2"
	case LocPlayed3:
		return "Played3"
	case LocFaceUp:
		return "FaceUp"
	case LocNone:
		return "None"
	default:
		return "?"
	}
}

// Deck tracks, for every location, the set of cards currently there, and
// the inverse mapping from card to its current location. All 24 cards
// start in LocNone.
type Deck struct {
	hands    [NumLocations]CardSet
	location [24]Location
}

// NewDeck returns a deck with all 24 cards undealt (in LocNone).
func NewDeck() Deck {
	d := Deck{}
	d.hands[LocNone] = FullDeck
	for c := Card(0); c < 24; c++ {
		d.location[c] = LocNone
	}
	return d
}

// Hand returns the set of cards currently at loc.
func (d Deck) Hand(loc Location) CardSet { return d.hands[loc] }

// LocationOf returns the current location of a card.
func (d Deck) LocationOf(c Card) Location { return d.location[c] }

// Move relocates a single card, returning its previous location so the
// caller can push it onto an undo stack.
func (d *Deck) Move(c Card, to Location) Location {
	from := d.location[c]
	d.hands[from] = d.hands[from].Remove(c)
	d.hands[to] = d.hands[to].Insert(c)
	d.location[c] = to
	return from
}

// MoveTo is the inverse of Move: it relocates c back to a previously
// recorded location, used by undo.
func (d *Deck) MoveTo(c Card, loc Location) { d.Move(c, loc) }
