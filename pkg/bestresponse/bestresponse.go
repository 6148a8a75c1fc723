// Package bestresponse computes tabular best-response values and
// NashConv/exploitability for a fixed opponent policy, per spec.md
// §4.6. It walks the live game tree via game.Game's Apply/Undo rather
// than a pre-built tree, the same traversal style pkg/cfr uses, since
// this module never materializes a full game tree in memory.
package bestresponse

import (
	"github.com/behrlich/euchre-solver/pkg/game"
	"github.com/behrlich/euchre-solver/pkg/istate"
)

// Policy is the minimal contract a best response needs of an opponent's
// strategy: given a live state, the probability distribution it plays
// over that state's legal actions. *cfr.Policy satisfies this directly.
type Policy interface {
	ActionProbabilities(g game.Game) ([]game.Action, []float64)
}

// KeyNormalizer optionally canonicalizes an information-state key
// before it is used to group decision nodes into one best-responder
// info-state, mirroring cfr.KeyNormalizer. Pass nil to disable.
type KeyNormalizer func(g game.Game, player int, key istate.Key) istate.Key

// observation is one occurrence of a best-responder info-state: the
// action path from the root that reaches it, and the counterfactual
// probability (product of every OTHER player's and chance's action
// probabilities along the way; the best-responder's own actions do
// not factor into its own counterfactual reach, by definition).
type observation struct {
	path   []game.Action
	cfProb float64
}

// BestResponder computes the best response for one player against a
// fixed Policy played by every other player (and, at chance nodes, the
// game's own chance distribution). Grounded on
// bestresponse/tabular_best_response.rs's TabularBestResponse: info-sets
// are collected once up front by a full decision-node walk, then each
// best-response action is resolved by summing counterfactual-weighted
// Q-values over every occurrence of that info-state, memoizing Q-values
// (and values) per exact history so a Euchre-sized tree never
// recomputes a subtree's value twice.
type BestResponder struct {
	newRoot      func() game.Game
	player       int
	opponent     Policy
	normalize    KeyNormalizer
	cutThreshold float64

	infoSets   map[string][]observation
	brActions  map[string]game.Action
	valueCache map[string]float64
}

// NewBestResponder builds a best responder for player against opponent,
// grouping decision nodes into info-states via normalize (nil to
// disable). cutThreshold prunes transitions whose probability falls at
// or below it, matching tabular_best_response.rs's cut_threshold.
func NewBestResponder(newRoot func() game.Game, player int, opponent Policy, normalize KeyNormalizer, cutThreshold float64) *BestResponder {
	br := &BestResponder{
		newRoot:      newRoot,
		player:       player,
		opponent:     opponent,
		normalize:    normalize,
		cutThreshold: cutThreshold,
		infoSets:     make(map[string][]observation),
		brActions:    make(map[string]game.Action),
		valueCache:   make(map[string]float64),
	}
	br.collectInfoSets(newRoot(), nil, 1.0)
	return br
}

// Value returns the best-responder's expected value from the root.
func (br *BestResponder) Value() float64 {
	return br.value(br.newRoot(), nil)
}

func pathKey(path []game.Action) string {
	buf := make([]byte, len(path))
	for i, a := range path {
		buf[i] = byte(a)
	}
	return string(buf)
}

func copyPath(path []game.Action, next game.Action) []game.Action {
	out := make([]game.Action, len(path)+1)
	copy(out, path)
	out[len(path)] = next
	return out
}

func (br *BestResponder) infoKey(g game.Game) string {
	key := g.IStateKey(br.player)
	if br.normalize != nil {
		key = br.normalize(g, br.player, key)
	}
	return key.String()
}

// collectInfoSets walks every decision node reachable from g (already
// positioned at path, with counterfactual reach cfProb), recording an
// observation each time it reaches a state where the best responder is
// to act.
func (br *BestResponder) collectInfoSets(g game.Game, path []game.Action, cfProb float64) {
	if g.IsTerminal() {
		return
	}
	if !g.IsChanceNode() && g.CurPlayer() == br.player {
		k := br.infoKey(g)
		br.infoSets[k] = append(br.infoSets[k], observation{path: path, cfProb: cfProb})
	}

	for _, t := range br.transitions(g) {
		g.Apply(t.action)
		br.collectInfoSets(g, copyPath(path, t.action), cfProb*t.prob)
		g.Undo()
	}
}

type transition struct {
	action game.Action
	prob   float64
}

// transitions returns the (action, probability) pairs available from g.
// At the best responder's own turn, every legal action is returned with
// probability 1.0, since the best responder's reach does not count
// toward its own counterfactual probability. At a chance node, outcomes
// are weighted by the game's own chance distribution when available
// (ChanceGame), else uniformly. At any other player's turn, the fixed
// opponent policy supplies the weights.
func (br *BestResponder) transitions(g game.Game) []transition {
	if !g.IsChanceNode() && g.CurPlayer() == br.player {
		legal := g.LegalActions(nil)
		out := make([]transition, len(legal))
		for i, a := range legal {
			out[i] = transition{action: a, prob: 1.0}
		}
		return out
	}

	if g.IsChanceNode() {
		if cg, ok := g.(game.ChanceGame); ok {
			outcomes := cg.ChanceOutcomes()
			out := make([]transition, len(outcomes))
			for i, o := range outcomes {
				out[i] = transition{action: o.Action, prob: o.Prob}
			}
			return out
		}
		legal := g.LegalActions(nil)
		prob := 1.0 / float64(len(legal))
		out := make([]transition, len(legal))
		for i, a := range legal {
			out[i] = transition{action: a, prob: prob}
		}
		return out
	}

	actions, probs := br.opponent.ActionProbabilities(g)
	out := make([]transition, len(actions))
	for i, a := range actions {
		out[i] = transition{action: a, prob: probs[i]}
	}
	return out
}

// value returns the best responder's expected value of g, assumed to
// already be positioned at path, memoized by the exact history since
// distinct histories in the same info-state can still have distinct
// values (only the best responder's own action is forced equal across
// an info-state, not the value of reaching it).
func (br *BestResponder) value(g game.Game, path []game.Action) float64 {
	pk := pathKey(path)
	if v, ok := br.valueCache[pk]; ok {
		return v
	}

	var v float64
	switch {
	case g.IsTerminal():
		v = g.Evaluate(br.player)
	case !g.IsChanceNode() && g.CurPlayer() == br.player:
		a := br.bestResponseAction(g)
		v = br.qValue(g, path, a)
	default:
		for _, t := range br.transitions(g) {
			if t.prob <= br.cutThreshold {
				continue
			}
			v += t.prob * br.qValue(g, path, t.action)
		}
	}

	br.valueCache[pk] = v
	return v
}

func (br *BestResponder) qValue(g game.Game, path []game.Action, a game.Action) float64 {
	g.Apply(a)
	v := br.value(g, copyPath(path, a))
	g.Undo()
	return v
}

// bestResponseAction resolves (and caches) the single action the best
// responder plays at every state sharing g's info-state: the action
// maximizing the counterfactual-weighted sum of Q-values across every
// observed occurrence of that info-state. Ties favor the lowest-valued
// action, matching tabular_best_response.rs's documented tie-break.
func (br *BestResponder) bestResponseAction(g game.Game) game.Action {
	k := br.infoKey(g)
	if a, ok := br.brActions[k]; ok {
		return a
	}

	legal := g.LegalActions(nil)
	obs := br.infoSets[k]

	var best game.Action
	bestValue := -1e300
	for _, a := range legal {
		var total float64
		for _, o := range obs {
			root := br.newRoot()
			for _, step := range o.path {
				root.Apply(step)
			}
			total += o.cfProb * br.qValue(root, o.path, a)
		}
		if total > bestValue {
			bestValue = total
			best = a
		}
	}

	br.brActions[k] = best
	return best
}

// Exploitability computes spec.md §4.6's NashConv: the sum, over every
// player, of that player's best-response value against opponent's fixed
// policy. In a zero-sum game this is 0 exactly at equilibrium and
// strictly positive away from it, per the GLOSSARY's definition.
func Exploitability(newRoot func() game.Game, opponent Policy, normalize KeyNormalizer, cutThreshold float64) (nashConv float64, perPlayer []float64) {
	numPlayers := newRoot().NumPlayers()
	perPlayer = make([]float64, numPlayers)
	for p := 0; p < numPlayers; p++ {
		br := NewBestResponder(newRoot, p, opponent, normalize, cutThreshold)
		perPlayer[p] = br.Value()
		nashConv += perPlayer[p]
	}
	return nashConv, perPlayer
}

// PolicyValue computes player's expected value when every player,
// including player, follows policy (a plain self-play rollout, with no
// maximization at any node). It is used alongside BestResponder to
// check spec.md §8's testable property 6 ("best response value for p
// against π is >= π's expected value for p"): PolicyValue is one
// particular, generally suboptimal, strategy available to the best
// responder, so it can never exceed the best-response value.
func PolicyValue(newRoot func() game.Game, player int, policy Policy, normalize KeyNormalizer) float64 {
	pv := &policyValuer{player: player, policy: policy, normalize: normalize, cache: make(map[string]float64)}
	return pv.value(newRoot(), nil)
}

type policyValuer struct {
	player    int
	policy    Policy
	normalize KeyNormalizer
	cache     map[string]float64
}

func (pv *policyValuer) value(g game.Game, path []game.Action) float64 {
	pk := pathKey(path)
	if v, ok := pv.cache[pk]; ok {
		return v
	}

	var v float64
	if g.IsTerminal() {
		v = g.Evaluate(pv.player)
	} else {
		actions, probs := pv.policyOrChance(g)
		for i, a := range actions {
			if probs[i] == 0 {
				continue
			}
			g.Apply(a)
			v += probs[i] * pv.value(g, copyPath(path, a))
			g.Undo()
		}
	}

	pv.cache[pk] = v
	return v
}

func (pv *policyValuer) policyOrChance(g game.Game) ([]game.Action, []float64) {
	if g.IsChanceNode() {
		if cg, ok := g.(game.ChanceGame); ok {
			outcomes := cg.ChanceOutcomes()
			actions := make([]game.Action, len(outcomes))
			probs := make([]float64, len(outcomes))
			for i, o := range outcomes {
				actions[i], probs[i] = o.Action, o.Prob
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
	return pv.policy.ActionProbabilities(g)
}
