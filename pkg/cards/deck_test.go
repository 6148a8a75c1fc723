package cards

import "testing"

func TestDeckMoveInvariant(t *testing.T) {
	d := NewDeck()
	ac, _ := ParseCard("As")
	if d.LocationOf(ac) != LocNone {
		t.Fatalf("new deck: LocationOf(As) = %v, want LocNone", d.LocationOf(ac))
	}

	prev := d.Move(ac, LocPlayer0)
	if prev != LocNone {
		t.Fatalf("Move returned previous location %v, want LocNone", prev)
	}
	if d.LocationOf(ac) != LocPlayer0 {
		t.Fatalf("LocationOf(As) = %v, want LocPlayer0", d.LocationOf(ac))
	}
	if !d.Hand(LocPlayer0).Contains(ac) {
		t.Fatal("LocPlayer0 hand should contain As")
	}
	if d.Hand(LocNone).Contains(ac) {
		t.Fatal("LocNone hand should no longer contain As")
	}

	d.MoveTo(ac, prev)
	if d.LocationOf(ac) != LocNone {
		t.Fatalf("after undo, LocationOf(As) = %v, want LocNone", d.LocationOf(ac))
	}
}

func TestDeckEveryCardExactlyOneLocation(t *testing.T) {
	d := NewDeck()
	var total CardSet
	for loc := Location(0); loc < NumLocations; loc++ {
		total = total.Union(d.Hand(loc))
	}
	if total != FullDeck {
		t.Fatalf("union of all locations = %v, want FullDeck", total)
	}
	if d.Hand(LocNone).Len() != 24 {
		t.Fatalf("fresh deck should have 24 cards in LocNone, got %d", d.Hand(LocNone).Len())
	}
}
