package euchre

import (
	"github.com/behrlich/euchre-solver/pkg/cards"
	"github.com/behrlich/euchre-solver/pkg/game"
)

// LegalActions implements game.Game. Actions are always appended in
// strictly increasing encoded order, which is what gives alpha-beta's
// move ordering and the canonical text serialization their determinism.
func (s *State) LegalActions(out []game.Action) []game.Action {
	out = out[:0]
	switch s.phase {
	case PhaseDealHands, PhaseDealFaceUp:
		for _, c := range s.deck.Hand(cards.LocNone).Cards() {
			out = append(out, dealActionFor(s.phase, c))
		}
	case PhasePickup:
		out = append(out, ActionPickup, ActionPass)
	case PhaseDiscard:
		for _, c := range s.Hand(Dealer).Cards() {
			out = append(out, ActionDiscard(c))
		}
	case PhaseChooseTrump:
		// ActionPass (1) encodes below the suit actions (2-5), so it must
		// be appended first to keep the list in increasing encoded order.
		if !(s.curPlayer == Dealer && s.bidCount == 3) {
			out = append(out, ActionPass)
		}
		for suit := cards.Suit(0); suit < cards.NumSuits; suit++ {
			if suit == s.faceUp.Suit() {
				continue
			}
			out = append(out, actionSuit(suit))
		}
	case PhasePlay:
		out = s.legalPlays(out)
	default:
		panic("euchre: legal_actions on terminal state")
	}
	if len(out) == 0 {
		panic("euchre: legal_actions returned empty on non-terminal state")
	}
	return out
}

// dealActionFor picks the right chance-action encoding for the deal
// phase currently in progress.
func dealActionFor(phase Phase, c cards.Card) game.Action {
	if phase == PhaseDealFaceUp {
		return ActionDealFaceUp(c)
	}
	return ActionDealPlayer(c)
}

func (s *State) legalPlays(out []game.Action) []game.Action {
	hand := s.Hand(s.curPlayer)
	if s.trickCount > 0 && s.trickLeadSet {
		var follow cards.CardSet
		for _, c := range hand.Cards() {
			if s.EffectiveSuit(c) == s.trickLead {
				follow = follow.Insert(c)
			}
		}
		if !follow.IsEmpty() {
			hand = follow
		}
	}
	for _, c := range hand.Cards() {
		out = append(out, ActionPlay(c))
	}
	return out
}

func (s *State) isLegal(a game.Action) bool {
	for _, la := range s.LegalActions(nil) {
		if la == a {
			return true
		}
	}
	return false
}

// ChanceOutcomes implements game.ChanceGame for the two deal phases,
// where every remaining undealt card is an equally likely next deal.
func (s *State) ChanceOutcomes() []game.ChanceOutcome {
	if !s.IsChanceNode() {
		panic("euchre: chance_outcomes on non-chance state")
	}
	actions := s.LegalActions(nil)
	prob := 1.0 / float64(len(actions))
	out := make([]game.ChanceOutcome, len(actions))
	for i, a := range actions {
		out[i] = game.ChanceOutcome{Action: a, Prob: prob}
	}
	return out
}
