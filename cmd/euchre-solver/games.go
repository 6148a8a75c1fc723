package main

import (
	"fmt"
	"math/rand"

	"github.com/behrlich/euchre-solver/pkg/cards"
	"github.com/behrlich/euchre-solver/pkg/euchre"
	"github.com/behrlich/euchre-solver/pkg/game"
	"github.com/behrlich/euchre-solver/pkg/istate"
	"github.com/behrlich/euchre-solver/pkg/kuhn"
)

// newRootFunc builds a fresh game.Game positioned at its initial chance
// node, matching cfr.Trainer.Train's and bestresponse.NewBestResponder's
// newRoot contract.
func newRootFunc(gameName string) (func() game.Game, error) {
	switch gameName {
	case "euchre":
		return func() game.Game { return euchre.NewState() }, nil
	case "kuhn":
		return func() game.Game { return kuhn.NewState() }, nil
	default:
		return nil, fmt.Errorf("euchre-solver: unknown game %q (want euchre or kuhn)", gameName)
	}
}

// keyNormalizer returns the function cfr.Trainer and
// bestresponse.BestResponder both accept as their KeyNormalizer
// parameter (identical underlying function type in both packages,
// so a bare func value of this shape is assignable to either one
// without a wrapper). Kuhn's three-card, two-player game has no suit
// symmetry to exploit, so normalization is an Euchre-only concern
// regardless of normalizeSuit.
func keyNormalizer(gameName string, normalizeSuit bool) func(g game.Game, player int, key istate.Key) istate.Key {
	if gameName != "euchre" || !normalizeSuit {
		return nil
	}
	return euchre.NormalizeKey
}

// teamOf groups players into the two alliances every game in this
// module partitions into: Euchre's across-the-table partnerships and
// Kuhn's trivial one-player-per-team split are both player%2, the same
// projection pkg/search and algorithms/alphamu.rs use internally.
func teamOf(player int) int { return player % 2 }

// dealEuchreHand applies a uniformly random 20-card deal plus face-up
// card to a fresh *euchre.State, for CLI commands (size, evaluate) that
// need a concrete starting deal rather than a chance node a trainer
// will sample through on its own.
func dealEuchreHand(rng *rand.Rand) *euchre.State {
	pool := cards.FullDeck.Cards()
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	s := euchre.NewState()
	for _, c := range pool[:20] {
		s.Apply(euchre.ActionDealPlayer(c))
	}
	s.Apply(euchre.ActionDealFaceUp(pool[20]))
	return s
}

// dealKuhnHand applies a uniformly random two-card deal to a fresh
// *kuhn.State.
func dealKuhnHand(rng *rand.Rand) *kuhn.State {
	deck := []kuhn.Card{kuhn.Jack, kuhn.Queen, kuhn.King}
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	s := kuhn.NewState()
	s.Apply(kuhn.ActionDeal(deck[0]))
	s.Apply(kuhn.ActionDeal(deck[1]))
	return s
}

// dealRoot returns a fully-dealt starting position for gameName, past
// every chance node, ready for a decision-tree walk (size) or a
// self-play rollout with seat-assigned policies (evaluate).
func dealRoot(gameName string, rng *rand.Rand) (game.Game, error) {
	switch gameName {
	case "euchre":
		return dealEuchreHand(rng), nil
	case "kuhn":
		return dealKuhnHand(rng), nil
	default:
		return nil, fmt.Errorf("euchre-solver: unknown game %q (want euchre or kuhn)", gameName)
	}
}
