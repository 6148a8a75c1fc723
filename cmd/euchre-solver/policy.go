package main

import (
	"math/rand"

	"github.com/behrlich/euchre-solver/pkg/game"
	"github.com/behrlich/euchre-solver/pkg/search"
)

// policy is the shape every agent this CLI can field reduces to:
// bestresponse.Policy and *cfr.Policy already satisfy it verbatim, and
// *pimcts.Evaluator's ActionProbabilities matches it too, so only the
// open-hand solver (whose FindBestMove returns a single action, not a
// distribution) needs an adapter below.
type policy interface {
	ActionProbabilities(g game.Game) ([]game.Action, []float64)
}

// randomPolicy plays uniformly over the legal actions at every node it
// is asked about; the evaluate command's default baseline.
type randomPolicy struct{}

func (randomPolicy) ActionProbabilities(g game.Game) ([]game.Action, []float64) {
	legal := g.LegalActions(nil)
	probs := make([]float64, len(legal))
	u := 1.0 / float64(len(legal))
	for i := range probs {
		probs[i] = u
	}
	return legal, probs
}

// openHandPolicy adapts search.Solver.FindBestMove to the policy shape
// by returning a one-hot distribution on its chosen action. It
// evaluates the position it is actually handed, which in a live
// self-play rollout is the true, fully determined state — so this
// policy plays as an open-hand oracle, exactly the cheating benchmark
// opponent spec.md's evaluate surface calls for, not a legal
// imperfect-information player.
type openHandPolicy struct {
	solver *search.Solver
}

func (o openHandPolicy) ActionProbabilities(g game.Game) ([]game.Action, []float64) {
	legal := g.LegalActions(nil)
	probs := make([]float64, len(legal))
	best, ok := o.solver.FindBestMove(g)
	if !ok {
		u := 1.0 / float64(len(legal))
		for i := range probs {
			probs[i] = u
		}
		return legal, probs
	}
	for i, a := range legal {
		if a == best {
			probs[i] = 1
		}
	}
	return legal, probs
}

// chanceTransitions mirrors bestresponse's own chance handling: the
// game's true distribution when it exposes one (game.ChanceGame), else
// uniform over LegalActions. Self-play rollouts need this at every
// chance node exactly as best-response computation does.
func chanceTransitions(g game.Game) ([]game.Action, []float64) {
	if cg, ok := g.(game.ChanceGame); ok {
		outcomes := cg.ChanceOutcomes()
		actions := make([]game.Action, len(outcomes))
		probs := make([]float64, len(outcomes))
		for i, oc := range outcomes {
			actions[i], probs[i] = oc.Action, oc.Prob
		}
		return actions, probs
	}
	legal := g.LegalActions(nil)
	probs := make([]float64, len(legal))
	p := 1.0 / float64(len(legal))
	for i := range probs {
		probs[i] = p
	}
	return legal, probs
}

// sampleAction draws one action from a parallel (actions, probs) pair.
func sampleAction(actions []game.Action, probs []float64, rng *rand.Rand) game.Action {
	r := rng.Float64()
	var cum float64
	for i, p := range probs {
		cum += p
		if r <= cum {
			return actions[i]
		}
	}
	return actions[len(actions)-1]
}

// playGame runs one self-play rollout to completion, with seatPolicy
// selecting which policy controls each player by team (teamOf(player)),
// and returns every player's terminal value.
func playGame(root game.Game, seatPolicy map[int]policy, rng *rand.Rand) []float64 {
	for !root.IsTerminal() {
		var actions []game.Action
		var probs []float64
		if root.IsChanceNode() {
			actions, probs = chanceTransitions(root)
		} else {
			p := seatPolicy[teamOf(root.CurPlayer())]
			actions, probs = p.ActionProbabilities(root)
		}
		root.Apply(sampleAction(actions, probs, rng))
	}
	vals := make([]float64, root.NumPlayers())
	for p := range vals {
		vals[p] = root.Evaluate(p)
	}
	return vals
}
