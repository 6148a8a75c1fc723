package pimcts

import (
	"testing"

	"github.com/behrlich/euchre-solver/pkg/config"
	"github.com/behrlich/euchre-solver/pkg/kuhn"
)

func kuhnDeal(p0, p1 kuhn.Card) *kuhn.State {
	s := kuhn.NewState()
	s.Apply(kuhn.ActionDeal(p0))
	s.Apply(kuhn.ActionDeal(p1))
	return s
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.MaxSearchDepth = 6
	cfg.SingleThread = true
	return cfg
}

// TestEvaluatePlayerFavorsHigherCard checks PIMCTS's defining property
// on a game small enough to be exhaustively resampled: with the King
// holder's own card fixed and the opponent's single unknown card
// resampled from the two remaining ones, the King holder's mean
// open-hand value should never be negative (King beats both Queen and
// Jack).
func TestEvaluatePlayerFavorsHigherCard(t *testing.T) {
	e := NewEvaluator(testConfig(), 40, 7)
	s := kuhnDeal(kuhn.King, kuhn.Jack)

	v := e.EvaluatePlayer(s, 0)
	if v < 0 {
		t.Errorf("King holder's mean open-hand value = %v, want >= 0", v)
	}
}

func TestEvaluatePlayerIsDeterministicForFixedSeed(t *testing.T) {
	s1 := kuhnDeal(kuhn.Queen, kuhn.Jack)
	s2 := kuhnDeal(kuhn.Queen, kuhn.Jack)

	v1 := NewEvaluator(testConfig(), 30, 99).EvaluatePlayer(s1, 0)
	v2 := NewEvaluator(testConfig(), 30, 99).EvaluatePlayer(s2, 0)

	if v1 != v2 {
		t.Errorf("same seed produced different means: %v vs %v", v1, v2)
	}
}

func TestActionProbabilitiesReturnsOneHotDistribution(t *testing.T) {
	e := NewEvaluator(testConfig(), 20, 11)
	s := kuhnDeal(kuhn.King, kuhn.Queen)

	actions, probs := e.ActionProbabilities(s)
	if len(actions) == 0 {
		t.Fatalf("ActionProbabilities returned no actions")
	}

	sum, maxCount := 0.0, 0
	for _, p := range probs {
		sum += p
		if p == 1.0 {
			maxCount++
		} else if p != 0.0 {
			t.Errorf("probability %v is neither 0 nor 1 in a one-hot distribution", p)
		}
	}
	if maxCount != 1 {
		t.Errorf("expected exactly one action with probability 1, got %d", maxCount)
	}
	if sum != 1.0 {
		t.Errorf("probabilities sum to %v, want 1", sum)
	}
}

func TestEvaluatePlayerHandlesTerminalStateDirectly(t *testing.T) {
	s := kuhnDeal(kuhn.King, kuhn.Jack)
	s.Apply(kuhn.ActionPass)
	s.Apply(kuhn.ActionPass)
	if !s.IsTerminal() {
		t.Fatalf("expected terminal state after pass-pass")
	}

	e := NewEvaluator(testConfig(), 10, 3)
	want := s.Evaluate(0)
	if got := e.EvaluatePlayer(s, 0); got != want {
		t.Errorf("EvaluatePlayer(terminal) = %v, want Evaluate() = %v", got, want)
	}
}

func TestParallelAndSingleThreadedAgree(t *testing.T) {
	s := kuhnDeal(kuhn.King, kuhn.Jack)

	single := testConfig()
	single.SingleThread = true
	parallel := testConfig()
	parallel.SingleThread = false

	vSingle := NewEvaluator(single, 25, 42).EvaluatePlayer(s, 0)
	vParallel := NewEvaluator(parallel, 25, 42).EvaluatePlayer(s, 0)

	if vSingle != vParallel {
		t.Errorf("single-threaded and parallel means diverged: %v vs %v (same seed must still average the same multiset of per-world values)", vSingle, vParallel)
	}
}
