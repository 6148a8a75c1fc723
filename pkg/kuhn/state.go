// Package kuhn implements Kuhn Poker, the 2-player 3-card betting game
// used alongside Euchre (pkg/euchre) to exercise pkg/cfr and
// pkg/bestresponse against a game small enough to solve to an exact
// Nash equilibrium within a test's time budget. The state machine
// follows the same snapshot/undo apply pattern as euchre.State, scaled
// down to this game's two phases (deal, then at most three bets).
package kuhn

import (
	"fmt"

	"github.com/behrlich/euchre-solver/pkg/game"
	"github.com/behrlich/euchre-solver/pkg/istate"
	"github.com/cespare/xxhash/v2"
)

// Phase indexes where in the hand this state sits.
type Phase int

const (
	PhaseDealP0 Phase = iota
	PhaseDealP1
	PhaseBet
	PhaseTerminal
)

// undoEntry records the action and the fields Undo restores directly;
// the used-card flags are recomputed from the action.
type undoEntry struct {
	action game.Action

	prevPhase     Phase
	prevCurPlayer int
	prevDealt     [2]bool
	prevHands     [2]Card
}

// State is one dealt Kuhn hand.
type State struct {
	phase Phase

	hands [2]Card
	dealt [2]bool
	used  [NumCards]bool // cards already dealt, for chance-action legality

	curPlayer int

	actions []game.Action
	history []undoEntry
}

// NewState returns a fresh hand before either card is dealt.
func NewState() *State {
	return &State{
		phase:   PhaseDealP0,
		actions: make([]game.Action, 0, 4),
		history: make([]undoEntry, 0, 4),
	}
}

// NumPlayers implements game.Game.
func (s *State) NumPlayers() int { return 2 }

// CurPlayer implements game.Game. Undefined at chance or terminal nodes.
func (s *State) CurPlayer() int { return s.curPlayer }

// IsTerminal implements game.Game.
func (s *State) IsTerminal() bool { return s.phase == PhaseTerminal }

// IsChanceNode implements game.Game.
func (s *State) IsChanceNode() bool { return s.phase == PhaseDealP0 || s.phase == PhaseDealP1 }

// Hand returns the card dealt to player p, if any.
func (s *State) Hand(p int) (Card, bool) { return s.hands[p], s.dealt[p] }

// BetHistory returns the betting actions played so far, in order.
func (s *State) BetHistory() []game.Action {
	for i, a := range s.actions {
		if a == ActionPass || a == ActionBet {
			return s.actions[i:]
		}
	}
	return nil
}

// LegalActions implements game.Game.
func (s *State) LegalActions(out []game.Action) []game.Action {
	switch s.phase {
	case PhaseDealP0, PhaseDealP1:
		for c := Card(0); c < NumCards; c++ {
			if !s.used[c] {
				out = append(out, ActionDeal(c))
			}
		}
	case PhaseBet:
		out = append(out, ActionPass, ActionBet)
	default:
		panic("kuhn: legal actions on terminal state")
	}
	return out
}

// ChanceOutcomes implements game.ChanceGame: every undealt card is an
// equally likely next deal.
func (s *State) ChanceOutcomes() []game.ChanceOutcome {
	legal := s.LegalActions(nil)
	out := make([]game.ChanceOutcome, len(legal))
	prob := 1.0 / float64(len(legal))
	for i, a := range legal {
		out[i] = game.ChanceOutcome{Action: a, Prob: prob}
	}
	return out
}

func (s *State) snapshot(a game.Action) undoEntry {
	return undoEntry{
		action:        a,
		prevPhase:     s.phase,
		prevCurPlayer: s.curPlayer,
		prevDealt:     s.dealt,
		prevHands:     s.hands,
	}
}

// Apply implements game.Game. a must be a member of LegalActions();
// applying an illegal action is a programmer error and panics.
func (s *State) Apply(a game.Action) {
	if !s.isLegal(a) {
		panic(fmt.Sprintf("kuhn: illegal action %d in phase %d", a, s.phase))
	}
	e := s.snapshot(a)

	switch s.phase {
	case PhaseDealP0:
		c := cardOfDeal(a)
		s.hands[0], s.dealt[0] = c, true
		s.used[c] = true
		s.phase = PhaseDealP1
	case PhaseDealP1:
		c := cardOfDeal(a)
		s.hands[1], s.dealt[1] = c, true
		s.used[c] = true
		s.phase = PhaseBet
		s.curPlayer = 0
	case PhaseBet:
		s.curPlayer = 1 - s.curPlayer
		if isTerminalBetting(append(s.currentBetHistory(), a)) {
			s.phase = PhaseTerminal
		}
	default:
		panic("kuhn: apply on terminal state")
	}

	s.actions = append(s.actions, a)
	s.history = append(s.history, e)
}

func (s *State) currentBetHistory() []game.Action {
	return append([]game.Action(nil), s.BetHistory()...)
}

func (s *State) isLegal(a game.Action) bool {
	for _, la := range s.LegalActions(nil) {
		if la == a {
			return true
		}
	}
	return false
}

// isTerminalBetting reports whether hist (the full sequence of Pass/Bet
// actions seen so far, including the action just applied) ends the
// betting round. Kuhn's three possible endings are: both players check
// (pp), a bet is answered immediately (bp, bb), or a check is followed
// by a bet and then a response (pbp, pbb).
func isTerminalBetting(hist []game.Action) bool {
	switch len(hist) {
	case 0, 1:
		return false
	case 2:
		if hist[0] == ActionBet {
			return true
		}
		return hist[1] == ActionPass
	default:
		return true
	}
}

// Undo implements game.Game. Panics if no Apply is pending.
func (s *State) Undo() {
	if len(s.history) == 0 {
		panic("kuhn: undo with empty history")
	}
	e := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.actions = s.actions[:len(s.actions)-1]

	if e.prevPhase == PhaseDealP0 || e.prevPhase == PhaseDealP1 {
		c := cardOfDeal(e.action)
		s.used[c] = false
	}

	s.phase = e.prevPhase
	s.curPlayer = e.prevCurPlayer
	s.dealt = e.prevDealt
	s.hands = e.prevHands
}

// settle replays the betting history of a terminal hand and returns the
// folder's player index, or -1 if the hand went to showdown, along with
// each player's total chips committed (ante plus any bets/calls).
func settle(hist []game.Action) (folder int, committed [2]int) {
	committed = [2]int{1, 1}
	pendingBetBy := -1
	for i, a := range hist {
		player := i % 2
		if a == ActionBet {
			committed[player]++
			pendingBetBy = player
			continue
		}
		if pendingBetBy != -1 && pendingBetBy != player {
			return player, committed
		}
	}
	return -1, committed
}

// Evaluate implements game.Game: Kuhn's net chip winnings for player,
// counting the ante each player already committed. A folded hand awards
// the pot to whichever player did not fold; a showdown awards it to the
// higher card. Winnings are symmetric: the winner's profit always equals
// the loser's total commitment (see settle).
func (s *State) Evaluate(player int) float64 {
	if s.phase != PhaseTerminal {
		panic("kuhn: evaluate on non-terminal state")
	}
	folder, committed := settle(s.BetHistory())

	var winner int
	if folder == -1 {
		if s.hands[0] > s.hands[1] {
			winner = 0
		} else {
			winner = 1
		}
	} else {
		winner = 1 - folder
	}

	loser := 1 - winner
	if player == winner {
		return float64(committed[loser])
	}
	return -float64(committed[loser])
}

// IStateKey implements game.Game: the dealt card of player, followed by
// the public betting history. The opponent's dealt card is replaced with
// istate.Placeholder; Kuhn has no other hidden information.
func (s *State) IStateKey(player int) istate.Key {
	var k istate.Key
	dealIdx := 0
	for _, a := range s.actions {
		if a >= dealBase && a < dealBase+game.Action(NumCards) {
			if dealIdx == player {
				k = k.Push(byte(a))
			} else {
				k = k.Push(istate.Placeholder)
			}
			dealIdx++
			continue
		}
		k = k.Push(byte(a))
	}
	return k
}

// IStateString implements game.Game.
func (s *State) IStateString(player int) string {
	k := s.IStateKey(player)
	out := ""
	for _, b := range k.Bytes() {
		if b == istate.Placeholder {
			out += "_"
		} else {
			out += ActionString(game.Action(b))
		}
	}
	return out
}

// TranspositionHash implements game.Game. Kuhn's entire game tree is
// small enough that caching is only useful at the start of the betting
// round onward; the deal phases return ok=false since a chance node
// never benefits from a value cache.
func (s *State) TranspositionHash() (uint64, bool) {
	if s.phase == PhaseDealP0 || s.phase == PhaseDealP1 {
		return 0, false
	}
	var buf []byte
	if s.dealt[s.curPlayer] {
		buf = append(buf, byte(s.hands[s.curPlayer]))
	}
	for _, a := range s.BetHistory() {
		buf = append(buf, byte(a))
	}
	buf = append(buf, byte(s.phase), byte(s.curPlayer))
	return xxhash.Sum64(buf), true
}
