package euchre

import (
	"math/rand"

	"github.com/behrlich/euchre-solver/pkg/cards"
	"github.com/behrlich/euchre-solver/pkg/game"
)

// ResampleFromIState implements pkg/pimcts.Resampler: it returns a new,
// independent *State reconstructed by replaying this hand's public
// history plus player's own private observations, with every card
// player hasn't observed (other seats' still-held cards, and the
// dealer's discard if player isn't the dealer) reshuffled uniformly
// among those unseen slots.
//
// Grounded on algorithms/pimcts.rs's resample_from_istate contract
// ("player's own cards fixed, others shuffled among remaining deck");
// the stated refinement "subject to public constraints e.g. failure to
// follow suit" is not implemented here — tracking which suits each
// opponent has revealed themselves void in and excluding those cards
// from their resampled hand would tighten the sampled worlds, but is
// left as a known simplification (see DESIGN.md) rather than guessed at
// without a concrete source to verify the bookkeeping against.
func (s *State) ResampleFromIState(player int, rng *rand.Rand) game.Game {
	seen := make(map[cards.Card]bool, 16)
	for _, c := range s.dealtHands[player].Cards() {
		seen[c] = true
	}
	if s.dealCount >= 20 {
		seen[s.faceUp] = true
	}

	var dealSlots []cards.Card
	var playedCards []cards.Card
	var discardCard cards.Card
	hasDiscard := false
	for _, a := range s.actions {
		switch {
		case a >= dealPlayerBase && a < dealPlayerBase+24:
			c, _ := actionCard(a)
			dealSlots = append(dealSlots, c)
		case a >= playBase && a < playBase+24:
			c, _ := actionCard(a)
			playedCards = append(playedCards, c)
			seen[c] = true
		case a >= discardBase && a < discardBase+24:
			discardCard, _ = actionCard(a)
			hasDiscard = true
		}
	}
	if hasDiscard && player == Dealer {
		seen[discardCard] = true
	}

	var unseenSlots []int
	var pool []cards.Card
	for i, c := range dealSlots {
		if !seen[c] {
			unseenSlots = append(unseenSlots, i)
			pool = append(pool, c)
		}
	}
	discardUnseen := hasDiscard && !seen[discardCard]
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	resampledDeal := append([]cards.Card(nil), dealSlots...)
	idx := 0
	for _, slot := range unseenSlots {
		resampledDeal[slot] = pool[idx]
		idx++
	}
	resampledDiscard := discardCard
	if discardUnseen {
		// The discard was dealt to the dealer, so its deal slot is one of
		// the unseen slots; discard whatever card that slot now holds.
		for i, c := range dealSlots {
			if c == discardCard {
				resampledDiscard = resampledDeal[i]
			}
		}
	}

	ns := NewState()
	for _, c := range resampledDeal {
		ns.Apply(ActionDealPlayer(c))
	}
	if s.dealCount >= 20 {
		ns.Apply(ActionDealFaceUp(s.faceUp))
	}
	for _, a := range s.actions {
		if a == ActionPickup || a == ActionPass || isSuitCallAction(a) {
			ns.Apply(a)
		}
	}
	if hasDiscard {
		ns.Apply(ActionDiscard(resampledDiscard))
	}
	for _, c := range playedCards {
		ns.Apply(ActionPlay(c))
	}
	return ns
}
