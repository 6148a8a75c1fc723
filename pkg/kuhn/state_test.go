package kuhn

import (
	"testing"

	"github.com/behrlich/euchre-solver/pkg/game"
)

// playHand deals card0 to player 0 and card1 to player 1, then applies
// each of bets in turn, returning the resulting state.
func playHand(t *testing.T, card0, card1 Card, bets ...game.Action) *State {
	t.Helper()
	s := NewState()
	s.Apply(ActionDeal(card0))
	s.Apply(ActionDeal(card1))
	for _, b := range bets {
		s.Apply(b)
	}
	return s
}

// TestEvaluateAllTerminalHistories walks every one of Kuhn's five
// terminal betting histories (pp, bp, bb, pbp, pbb) with King-over-Jack
// hands and checks both the winner and the exact payoff magnitude.
func TestEvaluateAllTerminalHistories(t *testing.T) {
	tests := []struct {
		name     string
		bets     []game.Action
		p0Payoff float64
	}{
		{"pp showdown, p0 has King", []game.Action{ActionPass, ActionPass}, 1},
		{"bp fold to p0's bet", []game.Action{ActionBet, ActionPass}, 1},
		{"bb showdown after call", []game.Action{ActionBet, ActionBet}, 2},
		{"pbp p0 folds", []game.Action{ActionPass, ActionBet, ActionPass}, -1},
		{"pbb showdown after check-raise-call", []game.Action{ActionPass, ActionBet, ActionBet}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := playHand(t, King, Jack, tt.bets...)
			if !s.IsTerminal() {
				t.Fatalf("state not terminal after %v", tt.bets)
			}
			if got := s.Evaluate(0); got != tt.p0Payoff {
				t.Errorf("Evaluate(0) = %v, want %v", got, tt.p0Payoff)
			}
			if got := s.Evaluate(1); got != -tt.p0Payoff {
				t.Errorf("Evaluate(1) = %v, want %v (zero-sum)", got, -tt.p0Payoff)
			}
		})
	}
}

// TestEvaluateShowdownLowCardLoses checks that a showdown goes to the
// higher card: player 0 holds Jack, player 1 holds King, and both check.
func TestEvaluateShowdownLowCardLoses(t *testing.T) {
	s := playHand(t, Jack, King, ActionPass, ActionPass)
	if got := s.Evaluate(0); got != -1 {
		t.Errorf("Evaluate(0) = %v, want -1 (Jack loses showdown to King)", got)
	}
	if got := s.Evaluate(1); got != 1 {
		t.Errorf("Evaluate(1) = %v, want 1", got)
	}
}

func TestEvaluateFoldIgnoresCards(t *testing.T) {
	// Player 1 holds King (the best card) but folds to player 0's bet;
	// player 0 still wins despite holding the worst card.
	s := playHand(t, Jack, King, ActionBet, ActionPass)
	if got := s.Evaluate(0); got != 1 {
		t.Errorf("Evaluate(0) = %v, want 1 (fold awards the pot regardless of cards)", got)
	}
}

func TestLegalActionsDuringBettingAreSortedPassThenBet(t *testing.T) {
	s := playHand(t, Queen, Jack)
	got := s.LegalActions(nil)
	want := []game.Action{ActionPass, ActionBet}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("LegalActions() = %v, want %v", got, want)
	}
}

func TestDealLegalActionsExcludeUsedCards(t *testing.T) {
	s := NewState()
	s.Apply(ActionDeal(Queen))
	got := s.LegalActions(nil)
	for _, a := range got {
		if a == ActionDeal(Queen) {
			t.Errorf("LegalActions() after dealing Queen still offers Queen: %v", got)
		}
	}
	if len(got) != 2 {
		t.Fatalf("LegalActions() = %v, want exactly the 2 remaining cards", got)
	}
}

// TestUndoInversesApply replays a full pbb hand one action at a time,
// applying then immediately undoing each action and checking that every
// observable field is restored exactly.
func TestUndoInversesApply(t *testing.T) {
	full := []game.Action{ActionDeal(King), ActionDeal(Jack), ActionPass, ActionBet, ActionBet}

	s := NewState()
	for _, a := range full {
		before := snapshot(s)
		s.Apply(a)
		s.Undo()
		after := snapshot(s)
		if before != after {
			t.Fatalf("apply/undo of action %d changed state: before=%+v after=%+v", a, before, after)
		}
		s.Apply(a)
	}
	if !s.IsTerminal() {
		t.Fatalf("state not terminal after replaying the full action list")
	}
}

type stateSnapshot struct {
	phase     Phase
	curPlayer int
	dealt     [2]bool
	hands     [2]Card
}

func snapshot(s *State) stateSnapshot {
	return stateSnapshot{phase: s.phase, curPlayer: s.curPlayer, dealt: s.dealt, hands: s.hands}
}

func TestIStateKeyHidesOpponentCard(t *testing.T) {
	s := playHand(t, King, Jack, ActionPass)

	k0 := s.IStateKey(0)
	k1 := s.IStateKey(1)

	b0 := k0.Bytes()
	b1 := k1.Bytes()
	if len(b0) != 3 || len(b1) != 3 {
		t.Fatalf("key length = %d/%d, want 3 (own card, placeholder, one bet)", len(b0), len(b1))
	}
	if b0[0] != byte(ActionDeal(King)) {
		t.Errorf("player 0's key does not show its own King: %v", b0)
	}
	if b1[1] != byte(ActionDeal(Jack)) {
		t.Errorf("player 1's key does not show its own Jack: %v", b1)
	}
	if b0[1] != 0xFF {
		t.Errorf("player 0's key does not hide player 1's card: %v", b0)
	}
	if b1[0] != 0xFF {
		t.Errorf("player 1's key does not hide player 0's card: %v", b1)
	}
}

func TestChanceOutcomesSumToOne(t *testing.T) {
	s := NewState()
	outcomes := s.ChanceOutcomes()
	if len(outcomes) != 3 {
		t.Fatalf("len(ChanceOutcomes()) = %d, want 3 (one per undealt card)", len(outcomes))
	}
	var sum float64
	for _, o := range outcomes {
		sum += o.Prob
	}
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("chance outcome probabilities sum to %v, want 1", sum)
	}
}

func TestTranspositionHashDiffersByCurPlayerCard(t *testing.T) {
	// Neither hand has had a bet applied yet, so curPlayer is still 0 in
	// both: the hash should pick up player 0's differing card.
	a := playHand(t, King, Jack)
	b := playHand(t, Queen, Jack)

	ha, okA := a.TranspositionHash()
	hb, okB := b.TranspositionHash()
	if !okA || !okB {
		t.Fatalf("TranspositionHash ok = %v/%v, want true/true", okA, okB)
	}
	if ha == hb {
		t.Errorf("hashes collide for different current-player hands: %v", ha)
	}
}

func TestEvaluatePanicsOnNonTerminal(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Evaluate did not panic on a non-terminal state")
		}
	}()
	NewState().Evaluate(0)
}
