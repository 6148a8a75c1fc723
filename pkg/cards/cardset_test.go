package cards

import "testing"

func TestCardSetInsertRemoveContains(t *testing.T) {
	var s CardSet
	ac, _ := ParseCard("As")
	kc, _ := ParseCard("Kh")

	s = s.Insert(ac)
	if !s.Contains(ac) {
		t.Fatal("expected set to contain As after insert")
	}
	if s.Contains(kc) {
		t.Fatal("expected set not to contain Kh")
	}
	s = s.Insert(kc)
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	s = s.Remove(ac)
	if s.Contains(ac) {
		t.Fatal("expected As removed")
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
}

func TestCardSetUnionDifference(t *testing.T) {
	a, _ := ParseCard("9c")
	b, _ := ParseCard("Th")
	var s1, s2 CardSet
	s1 = s1.Insert(a)
	s2 = s2.Insert(b)

	u := s1.Union(s2)
	if u.Len() != 2 {
		t.Fatalf("Union Len() = %d, want 2", u.Len())
	}
	d := u.Difference(s1)
	if d.Len() != 1 || !d.Contains(b) {
		t.Fatalf("Difference = %v, want {%v}", d, b)
	}
}

func TestCardSetLowestAndCards(t *testing.T) {
	full := FullDeck
	if full.Len() != 24 {
		t.Fatalf("FullDeck.Len() = %d, want 24", full.Len())
	}
	lowest, ok := full.Lowest()
	if !ok || lowest != NewCard(Nine, Clubs) {
		t.Fatalf("Lowest() = %v, %v, want 9c", lowest, ok)
	}
	cards := full.Cards()
	if len(cards) != 24 {
		t.Fatalf("Cards() returned %d cards, want 24", len(cards))
	}
}

func TestSingletonPanicsOnNonSingleton(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic calling Singleton on empty set")
		}
	}()
	var s CardSet
	s.Singleton()
}

func TestEffectiveSuitMaskIncludesLeftBower(t *testing.T) {
	m := EffectiveSuitMask(Clubs, Clubs)
	leftBower, _ := ParseCard("Js")
	if !m.Contains(leftBower) {
		t.Fatal("trump effective-suit mask should include the left bower")
	}
	spadesMask := EffectiveSuitMask(Spades, Clubs)
	if spadesMask.Contains(leftBower) {
		t.Fatal("spades effective-suit mask should not include the left bower when clubs is trump")
	}
}
