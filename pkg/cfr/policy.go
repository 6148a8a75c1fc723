package cfr

import (
	"github.com/behrlich/euchre-solver/pkg/game"
)

// Policy wraps a trained Profile with the normalizer used to train it,
// implementing the "action_probabilities(gs)" contract from spec.md
// §4.5: given a live game state, return a probability distribution over
// its legal actions by looking up the average strategy of the current
// info-state. An info-state never visited during training falls back
// to uniform over its legal actions, since an untrained node's average
// strategy is not yet a meaningful estimate.
type Policy struct {
	profile   *Profile
	normalize KeyNormalizer
}

// NewPolicy wraps profile for querying. normalize must match whatever
// normalizer (if any) the Trainer used to produce profile.
func NewPolicy(profile *Profile, normalize KeyNormalizer) *Policy {
	return &Policy{profile: profile, normalize: normalize}
}

// ActionProbabilities returns the legal actions at g's current decision
// node, in the same order LegalActions produced them, paired with the
// average-strategy probability for each.
func (p *Policy) ActionProbabilities(g game.Game) ([]game.Action, []float64) {
	player := g.CurPlayer()
	key := g.IStateKey(player)
	if p.normalize != nil {
		key = p.normalize(g, player, key)
	}

	if actions, node, ok := p.profile.Lookup(key); ok {
		return actions, node.AverageStrategy()
	}

	legal := g.LegalActions(nil)
	uniform := make([]float64, len(legal))
	u := 1.0 / float64(len(legal))
	for i := range uniform {
		uniform[i] = u
	}
	return legal, uniform
}
