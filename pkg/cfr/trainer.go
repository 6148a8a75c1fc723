package cfr

import (
	"math/rand"

	"github.com/behrlich/euchre-solver/pkg/config"
	"github.com/behrlich/euchre-solver/pkg/game"
)

// Variant selects which member of the CFR family Trainer.Train runs.
type Variant int

const (
	// Vanilla enumerates every chance outcome and every legal action at
	// every info-state, as described in spec.md §4.5. Requires the root
	// (and every chance node reachable from it) to implement
	// game.ChanceGame; practical only for games with enumerable chance
	// nodes, such as Kuhn Poker.
	Vanilla Variant = iota

	// ChanceSampled samples one chance outcome per visit instead of
	// enumerating, so it works on games like Euchre whose initial deal
	// is combinatorially infeasible to enumerate in full. Decision nodes
	// are still fully enumerated.
	ChanceSampled

	// ExternalSampling enumerates every action at the update player's
	// own info-states but samples one action (according to the current
	// strategy) at every other player's info-states, yielding unbiased,
	// lower-variance regret estimates than outcome sampling.
	ExternalSampling
)

// Trainer runs CFR training over a Profile. Unlike the teacher's
// solver.CFR (which recurses over a pre-built *tree.TreeNode with
// static Children/ChanceProbabilities maps), Trainer drives a live
// game.Game through Apply/Undo, rebuilding each child on the fly and
// backing out via Undo once its subtree's value is known.
type Trainer struct {
	profile   *Profile
	cfg       config.Config
	normalize KeyNormalizer
	variant   Variant
	rng       *rand.Rand
}

// NewTrainer returns a Trainer for variant, configured by cfg. rng
// drives every sampling decision (CFR-CS's chance sampling, CFR-ES's
// opponent-action sampling); callers that need determinism (tests,
// reproducible training runs) should pass a seeded source. normalize
// may be nil, in which case info-state keys are used as-is.
func NewTrainer(variant Variant, cfg config.Config, normalize KeyNormalizer, rng *rand.Rand) *Trainer {
	return &Trainer{
		profile:   NewProfile(),
		cfg:       cfg,
		normalize: normalize,
		variant:   variant,
		rng:       rng,
	}
}

// Profile returns the strategy table trained so far.
func (t *Trainer) Profile() *Profile { return t.profile }

// Train runs iterations rounds of self-play. newRoot constructs a fresh
// game state (typically at its initial chance node) for each traversal;
// training must not reuse a played-out state across iterations.
//
// Vanilla and ChanceSampled update every info-state's regret and
// strategy sums in a single combined traversal per iteration, the same
// structure as the teacher's cfr() (one recursive pass threading every
// player's reach probability together). ExternalSampling instead runs
// one traversal per player per iteration, since only the designated
// update player's info-states are fully enumerated on a given pass.
func (t *Trainer) Train(newRoot func() game.Game, iterations int) *Profile {
	for i := 1; i <= iterations; i++ {
		weight := 1.0
		if t.cfg.LinearCFR {
			weight = float64(i)
		}

		if t.variant == ExternalSampling {
			numPlayers := newRoot().NumPlayers()
			for p := 0; p < numPlayers; p++ {
				root := newRoot()
				reach := onesVector(numPlayers)
				t.traverse(root, p, reach, weight)
			}
			continue
		}

		root := newRoot()
		reach := onesVector(root.NumPlayers())
		t.traverse(root, -1, reach, weight)
	}
	return t.profile
}

func onesVector(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}
	return v
}

func allZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// traverse walks one path of the game tree, updating the Profile along
// the way, and returns the expected value for every player from the
// current node. updatePlayer is only consulted by ExternalSampling; the
// other two variants pass -1 and enumerate every player's info-states
// uniformly.
func (t *Trainer) traverse(g game.Game, updatePlayer int, reach []float64, weight float64) []float64 {
	if g.IsTerminal() {
		n := g.NumPlayers()
		vals := make([]float64, n)
		for p := 0; p < n; p++ {
			vals[p] = g.Evaluate(p)
		}
		return vals
	}

	if g.IsChanceNode() {
		return t.traverseChance(g, updatePlayer, reach, weight)
	}

	// A zero reach for every player means this path cannot occur under
	// the current strategies; its regret and strategy-sum contributions
	// are exactly zero everywhere beneath it, so there is nothing to
	// gain by descending further. This approximates the subtree pruning
	// spec.md describes for CFR-CS's two-phase accumulation, applied
	// uniformly across variants rather than as two separate tree walks.
	if allZero(reach) {
		return make([]float64, g.NumPlayers())
	}

	player := g.CurPlayer()
	legal := g.LegalActions(nil)
	key := g.IStateKey(player)
	if t.normalize != nil {
		key = t.normalize(g, player, key)
	}
	node := t.profile.getOrCreate(key, legal)
	strategy := node.CurrentStrategy()

	if t.variant == ExternalSampling && player != updatePlayer {
		idx := sampleIndex(strategy, t.rng)
		g.Apply(legal[idx])
		v := t.traverse(g, updatePlayer, reach, weight)
		g.Undo()
		return v
	}

	return t.enumerateDecision(g, node, strategy, legal, player, updatePlayer, reach, weight)
}

// enumerateDecision recurses into every legal action, then updates
// node's regret and strategy sums from the resulting counterfactual
// values. Shared by Vanilla, ChanceSampled, and ExternalSampling's
// update-player turns.
func (t *Trainer) enumerateDecision(g game.Game, node *Node, strategy []float64, legal []game.Action, player, updatePlayer int, reach []float64, weight float64) []float64 {
	numPlayers := len(reach)
	actionValues := make([][]float64, len(legal))
	nodeValue := make([]float64, numPlayers)

	for i, a := range legal {
		childReach := append([]float64(nil), reach...)
		childReach[player] *= strategy[i]

		g.Apply(a)
		v := t.traverse(g, updatePlayer, childReach, weight)
		g.Undo()

		actionValues[i] = v
		for p := 0; p < numPlayers; p++ {
			nodeValue[p] += strategy[i] * v[p]
		}
	}

	cfReach := 1.0
	for p := 0; p < numPlayers; p++ {
		if p != player {
			cfReach *= reach[p]
		}
	}
	ownReach := reach[player]

	regrets := make([]float64, len(legal))
	for i := range legal {
		regrets[i] = (actionValues[i][player] - nodeValue[player]) * cfReach
	}
	node.updateRegrets(regrets)
	node.updateStrategySum(strategy, ownReach*weight)

	return nodeValue
}

// traverseChance applies one chance action: enumerated in full for
// Vanilla (which requires game.ChanceGame), sampled according to the
// chance distribution for ChanceSampled and ExternalSampling.
func (t *Trainer) traverseChance(g game.Game, updatePlayer int, reach []float64, weight float64) []float64 {
	if t.variant == Vanilla {
		cg, ok := g.(game.ChanceGame)
		if !ok {
			panic("cfr: Vanilla requires a game.ChanceGame at every chance node")
		}
		numPlayers := g.NumPlayers()
		nodeValue := make([]float64, numPlayers)
		for _, oc := range cg.ChanceOutcomes() {
			g.Apply(oc.Action)
			v := t.traverse(g, updatePlayer, reach, weight)
			g.Undo()
			for p := 0; p < numPlayers; p++ {
				nodeValue[p] += oc.Prob * v[p]
			}
		}
		return nodeValue
	}

	a := t.sampleChance(g)
	g.Apply(a)
	v := t.traverse(g, updatePlayer, reach, weight)
	g.Undo()
	return v
}

// sampleChance draws one action at a chance node according to the true
// chance distribution when the game exposes it (game.ChanceGame, which
// both euchre.State and kuhn.State implement), or uniformly over
// LegalActions otherwise.
func (t *Trainer) sampleChance(g game.Game) game.Action {
	if cg, ok := g.(game.ChanceGame); ok {
		outcomes := cg.ChanceOutcomes()
		r := t.rng.Float64()
		var cum float64
		for _, oc := range outcomes {
			cum += oc.Prob
			if r <= cum {
				return oc.Action
			}
		}
		return outcomes[len(outcomes)-1].Action
	}
	legal := g.LegalActions(nil)
	return legal[t.rng.Intn(len(legal))]
}

// sampleIndex draws an action index from a probability distribution.
func sampleIndex(strategy []float64, rng *rand.Rand) int {
	r := rng.Float64()
	var cum float64
	for i, p := range strategy {
		cum += p
		if r <= cum {
			return i
		}
	}
	return len(strategy) - 1
}
