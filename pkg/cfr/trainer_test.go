package cfr

import (
	"math/rand"
	"testing"

	"github.com/behrlich/euchre-solver/pkg/config"
	"github.com/behrlich/euchre-solver/pkg/game"
	"github.com/behrlich/euchre-solver/pkg/kuhn"
)

func newKuhnRoot() game.Game { return kuhn.NewState() }

func kuhnIterations(t *testing.T, long int) int {
	if testing.Short() {
		return long / 50
	}
	return long
}

func checkDistribution(t *testing.T, label string, probs []float64) {
	t.Helper()
	var sum float64
	for _, p := range probs {
		if p < 0 || p > 1 {
			t.Errorf("%s: probability %v out of [0,1] range", label, p)
		}
		sum += p
	}
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("%s: probabilities sum to %v, want 1 (got %v)", label, sum, probs)
	}
}

// TestVanillaCFRTrainsKuhn checks that a full-enumeration training run
// over Kuhn Poker's (small, fully enumerable) game tree completes
// without error and produces a valid policy: every visited info-state's
// average strategy is a proper probability distribution over its legal
// actions.
func TestVanillaCFRTrainsKuhn(t *testing.T) {
	cfg := config.Default()
	cfg.LinearCFR = true
	trainer := NewTrainer(Vanilla, cfg, nil, rand.New(rand.NewSource(1)))
	profile := trainer.Train(newKuhnRoot, kuhnIterations(t, 5000))

	if profile.NumInfoSets() == 0 {
		t.Fatalf("NumInfoSets() = 0, want at least one visited info-state")
	}

	for key, strat := range profile.AverageStrategies() {
		checkDistribution(t, key, strat)
	}
}

// TestVanillaCFRFavorsBettingOnTheStrongestHand checks a directional
// property of Kuhn Poker's known equilibrium: after training, the
// average strategy for a player holding the King (the best card) who
// has not yet seen any bet should favor betting over checking at least
// as often as a uniform-random policy would.
func TestVanillaCFRFavorsBettingOnTheStrongestHand(t *testing.T) {
	cfg := config.Default()
	cfg.LinearCFR = true
	trainer := NewTrainer(Vanilla, cfg, nil, rand.New(rand.NewSource(7)))
	profile := trainer.Train(newKuhnRoot, kuhnIterations(t, 20000))
	policy := NewPolicy(profile, nil)

	s := kuhn.NewState()
	s.Apply(kuhn.ActionDeal(kuhn.King))
	s.Apply(kuhn.ActionDeal(kuhn.Jack))

	actions, probs := policy.ActionProbabilities(s)
	checkDistribution(t, "king's opening action", probs)

	var betProb float64
	for i, a := range actions {
		if a == kuhn.ActionBet {
			betProb = probs[i]
		}
	}
	if betProb <= 0.5 {
		t.Errorf("P(bet | King, no action yet) = %v, want > 0.5 after training", betProb)
	}
}

// TestChanceSampledAndExternalSamplingTrainWithoutPanicking exercises
// the two sampling-based variants, which Vanilla's enumeration-only path
// does not reach (traverseChance's sampling branch, and
// ExternalSampling's per-opponent sampling branch in traverse).
func TestChanceSampledAndExternalSamplingTrainWithoutPanicking(t *testing.T) {
	for _, variant := range []Variant{ChanceSampled, ExternalSampling} {
		cfg := config.Default()
		trainer := NewTrainer(variant, cfg, nil, rand.New(rand.NewSource(3)))
		profile := trainer.Train(newKuhnRoot, kuhnIterations(t, 2000))

		if profile.NumInfoSets() == 0 {
			t.Errorf("variant %v: NumInfoSets() = 0, want at least one visited info-state", variant)
		}
		for key, strat := range profile.AverageStrategies() {
			checkDistribution(t, key, strat)
		}
	}
}

func TestPolicyFallsBackToUniformForUnvisitedState(t *testing.T) {
	profile := NewProfile()
	policy := NewPolicy(profile, nil)

	s := kuhn.NewState()
	s.Apply(kuhn.ActionDeal(kuhn.Queen))
	s.Apply(kuhn.ActionDeal(kuhn.Jack))

	actions, probs := policy.ActionProbabilities(s)
	if len(actions) != 2 {
		t.Fatalf("len(actions) = %d, want 2", len(actions))
	}
	checkDistribution(t, "untrained info-state", probs)
	if probs[0] != 0.5 || probs[1] != 0.5 {
		t.Errorf("probs = %v, want uniform [0.5 0.5] for an untrained info-state", probs)
	}
}
