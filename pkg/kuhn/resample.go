package kuhn

import (
	"math/rand"

	"github.com/behrlich/euchre-solver/pkg/game"
)

// ResampleFromIState implements pkg/pimcts.Resampler: it returns a new,
// independent *State consistent with player's information (their own
// dealt card and the betting history so far), with the opponent's
// hidden card redrawn uniformly from the two cards player wasn't dealt.
// Grounded on algorithms/pimcts.rs's get_worlds/resample_from_istate,
// which Kuhn's three-card deck makes a direct uniform draw rather than
// Euchre's constrained reshuffle (see euchre.State.ResampleFromIState).
func (s *State) ResampleFromIState(player int, rng *rand.Rand) game.Game {
	own, dealt := s.Hand(player)
	if !dealt {
		panic("kuhn: ResampleFromIState called before player's own card is known")
	}

	candidates := make([]Card, 0, NumCards-1)
	for c := Card(0); c < NumCards; c++ {
		if c != own {
			candidates = append(candidates, c)
		}
	}
	opp := candidates[rng.Intn(len(candidates))]

	ns := NewState()
	if player == 0 {
		ns.Apply(ActionDeal(own))
		ns.Apply(ActionDeal(opp))
	} else {
		ns.Apply(ActionDeal(opp))
		ns.Apply(ActionDeal(own))
	}
	for _, a := range s.BetHistory() {
		ns.Apply(a)
	}
	return ns
}
