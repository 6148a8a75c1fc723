// Package euchre implements the 4-player trick-taking state machine: a
// phase-indexed apply/undo core over a 24-card bitmask deck, legal-action
// generation (including the forced-follow-suit and stick-the-dealer
// rules), terminal scoring, and the isomorphic canonicalization used to
// share transposition-table entries across strategically equivalent
// deals.
package euchre

import (
	"fmt"

	"github.com/behrlich/euchre-solver/pkg/cards"
	"github.com/behrlich/euchre-solver/pkg/game"
	"github.com/behrlich/euchre-solver/pkg/istate"
)

// undoEntry records exactly what an Apply call changed, so Undo can
// invert it in constant time without ever re-deriving state. One entry
// is pushed per Apply regardless of phase; fields irrelevant to the
// phase that ran are simply left at their zero value and ignored.
type undoEntry struct {
	action game.Action

	prevPhase        Phase
	prevTrump        cards.Suit
	prevTrumpSet     bool
	prevFaceUp       cards.Card
	prevCurPlayer    int
	prevLeadPlayer   int
	prevTrickLead    cards.Suit
	prevTrickLeadSet bool
	prevTrickCount   int
	prevTricksPlayed int
	prevTricksWon    [2]int
	prevCallingTeam  int
	prevDealCount    int
	prevBidCount     int

	movedCard cards.Card
	hasMove   bool
	prevLoc   cards.Location
}

// State is one dealt Euchre hand, from the first card dealt through the
// fifth trick. It owns the deck, the phase, and a history stack deep
// enough to invert every Apply it has processed.
type State struct {
	deck  cards.Deck
	phase Phase

	dealCount int // cards dealt so far in DealHands, 0..20
	faceUp    cards.Card

	trump    cards.Suit
	trumpSet bool

	bidCount int // passes seen so far in the current bidding round (Pickup or ChooseTrump)

	curPlayer  int
	leadPlayer int

	trickLead    cards.Suit // effective lead suit of the in-progress trick
	trickLeadSet bool
	trickCount   int // cards played in the current trick, 0..3
	tricksPlayed int // tricks completed, 0..5

	tricksWon   [2]int
	callingTeam int // team that named trump; -1 until decided

	// dealtHands freezes each seat's original 5-card deal once DealHands
	// completes, so the canonical text form can render the deal even
	// after cards have left hands via pickup, discard, or play.
	dealtHands [4]cards.CardSet

	actions []game.Action
	history []undoEntry
}

// NewState returns a fresh hand with all 24 cards undealt.
func NewState() *State {
	return &State{
		deck:        cards.NewDeck(),
		phase:       PhaseDealHands,
		callingTeam: -1,
		actions:     make([]game.Action, 0, 32),
		history:     make([]undoEntry, 0, 32),
	}
}

// NumPlayers implements game.Game.
func (s *State) NumPlayers() int { return 4 }

// Phase returns the current phase.
func (s *State) Phase() Phase { return s.phase }

// CurPlayer implements game.Game. Undefined at chance or terminal nodes.
func (s *State) CurPlayer() int { return s.curPlayer }

// IsTerminal implements game.Game.
func (s *State) IsTerminal() bool { return s.phase == PhaseTerminal }

// IsChanceNode implements game.Game.
func (s *State) IsChanceNode() bool {
	return s.phase == PhaseDealHands || s.phase == PhaseDealFaceUp
}

// IsTrickOver reports whether the current trick has received all four
// plays (used by the search layer's early-terminal and move-ordering
// heuristics, which only apply between tricks).
func (s *State) IsTrickOver() bool {
	return s.phase == PhasePlay && s.trickCount == 0 && s.tricksPlayed > 0 && s.tricksPlayed < 5
}

// Trump returns the trump suit and whether it has been decided yet.
func (s *State) Trump() (cards.Suit, bool) { return s.trump, s.trumpSet }

// FaceUp returns the card turned up after the deal.
func (s *State) FaceUp() cards.Card { return s.faceUp }

// TricksWon returns the tricks won so far by each team (index = team).
func (s *State) TricksWon() [2]int { return s.tricksWon }

// CallingTeam returns the team that named trump, or -1 if undecided.
func (s *State) CallingTeam() int { return s.callingTeam }

// Hand returns the current hand of seat p.
func (s *State) Hand(p int) cards.CardSet { return s.deck.Hand(cards.PlayerLocation(p)) }

// EffectiveSuit returns the suit c follows under the current trump. Trump
// must already be decided; callers check Trump() first.
func (s *State) EffectiveSuit(c cards.Card) cards.Suit {
	if s.trumpSet {
		return c.EffectiveSuit(s.trump)
	}
	return c.Suit()
}

func (s *State) dealPlayerForIndex(idx int) int { return idx / CardsPerHand }

// moveCard relocates c and records enough to undo it, returning the
// card's prior location.
func (s *State) moveCard(e *undoEntry, c cards.Card, to cards.Location) {
	e.movedCard = c
	e.hasMove = true
	e.prevLoc = s.deck.Move(c, to)
}

func (s *State) snapshot(a game.Action) undoEntry {
	return undoEntry{
		action:           a,
		prevPhase:        s.phase,
		prevTrump:        s.trump,
		prevTrumpSet:     s.trumpSet,
		prevFaceUp:       s.faceUp,
		prevCurPlayer:    s.curPlayer,
		prevLeadPlayer:   s.leadPlayer,
		prevTrickLead:    s.trickLead,
		prevTrickLeadSet: s.trickLeadSet,
		prevTrickCount:   s.trickCount,
		prevTricksPlayed: s.tricksPlayed,
		prevTricksWon:    s.tricksWon,
		prevCallingTeam:  s.callingTeam,
		prevDealCount:    s.dealCount,
		prevBidCount:     s.bidCount,
	}
}

// Apply plays action a. a must be a member of LegalActions(); applying an
// illegal action is a programmer error and panics rather than corrupt
// search state.
func (s *State) Apply(a game.Action) {
	if !s.isLegal(a) {
		panic(fmt.Sprintf("euchre: illegal action %d in phase %s", a, s.phase))
	}

	e := s.snapshot(a)

	switch s.phase {
	case PhaseDealHands:
		c, _ := actionCard(a)
		recipient := s.dealPlayerForIndex(s.dealCount)
		s.moveCard(&e, c, cards.PlayerLocation(recipient))
		s.dealtHands[recipient] = s.dealtHands[recipient].Insert(c)
		s.dealCount++
		if s.dealCount == 20 {
			s.phase = PhaseDealFaceUp
		}
	case PhaseDealFaceUp:
		c, _ := actionCard(a)
		s.moveCard(&e, c, cards.LocFaceUp)
		s.faceUp = c
		s.phase = PhasePickup
		s.curPlayer = LeftOfDealer
		s.bidCount = 0
	case PhasePickup:
		s.applyPickup(&e, a)
	case PhaseDiscard:
		c, _ := actionCard(a)
		s.moveCard(&e, c, cards.LocNone)
		s.phase = PhasePlay
		s.curPlayer = LeftOfDealer
		s.leadPlayer = LeftOfDealer
	case PhaseChooseTrump:
		s.applyChooseTrump(a)
	case PhasePlay:
		s.applyPlay(&e, a)
	default:
		panic("euchre: apply on terminal state")
	}

	s.actions = append(s.actions, a)
	s.history = append(s.history, e)
}

func (s *State) applyPickup(e *undoEntry, a game.Action) {
	switch a {
	case ActionPickup:
		s.moveCard(e, s.faceUp, cards.PlayerLocation(Dealer))
		s.trump = s.faceUp.Suit()
		s.trumpSet = true
		s.callingTeam = TeamOf(s.curPlayer)
		s.phase = PhaseDiscard
		s.curPlayer = Dealer
	case ActionPass:
		s.bidCount++
		if s.bidCount == 4 {
			s.phase = PhaseChooseTrump
			s.curPlayer = LeftOfDealer
			s.bidCount = 0
		} else {
			s.curPlayer = (s.curPlayer + 1) % 4
		}
	default:
		panic("euchre: invalid pickup action")
	}
}

func (s *State) applyChooseTrump(a game.Action) {
	if isSuitCallAction(a) {
		s.trump = suitOfAction(a)
		s.trumpSet = true
		s.callingTeam = TeamOf(s.curPlayer)
		s.phase = PhasePlay
		s.curPlayer = LeftOfDealer
		s.leadPlayer = LeftOfDealer
		return
	}
	if a == ActionPass {
		s.bidCount++
		s.curPlayer = (s.curPlayer + 1) % 4
		return
	}
	panic("euchre: invalid choose-trump action")
}

func (s *State) applyPlay(e *undoEntry, a game.Action) {
	c, _ := actionCard(a)
	s.moveCard(e, c, cards.PlayedLocation(s.curPlayer))

	if s.trickCount == 0 {
		s.trickLead = s.EffectiveSuit(c)
		s.trickLeadSet = true
	}
	s.trickCount++

	if s.trickCount < 4 {
		s.curPlayer = (s.curPlayer + 1) % 4
		return
	}

	winner := s.trickWinner()
	s.tricksWon[TeamOf(winner)]++
	s.tricksPlayed++
	s.leadPlayer = winner
	s.curPlayer = winner
	s.trickCount = 0
	s.trickLeadSet = false
	s.clearTrick()

	if s.tricksPlayed == 5 {
		s.phase = PhaseTerminal
	}
}

// clearTrick moves the four played cards out of play. Their prior
// location (Played(p)) is recoverable on undo from trickCount bookkeeping
// rather than per-card history, since a completed trick is only ever
// un-done one play at a time by Undo, never all at once.
func (s *State) clearTrick() {
	for p := 0; p < 4; p++ {
		loc := cards.PlayedLocation(p)
		hand := s.deck.Hand(loc)
		if c, ok := hand.Lowest(); ok {
			s.deck.Move(c, cards.LocNone)
		}
	}
}

// trickWinner returns the seat holding the highest card of the trick,
// using effective suit so the left bower and right bower rank correctly.
func (s *State) trickWinner() int {
	best := -1
	var bestCard cards.Card
	for p := 0; p < 4; p++ {
		c := s.deck.Hand(cards.PlayedLocation(p)).Singleton()
		if best == -1 || s.beats(c, bestCard) {
			best = p
			bestCard = c
		}
	}
	return best
}

// beats reports whether c outranks cur as the next card compared in
// trick-resolution order: trump beats non-trump, otherwise cards of the
// lead suit outrank off-suit cards, otherwise rank decides.
func (s *State) beats(c, cur cards.Card) bool {
	cTrump := c.IsTrump(s.trump, s.trumpSet)
	curTrump := cur.IsTrump(s.trump, s.trumpSet)
	if cTrump != curTrump {
		return cTrump
	}
	if cTrump && curTrump {
		return trumpRank(c, s.trump) > trumpRank(cur, s.trump)
	}
	cFollows := c.EffectiveSuit(s.trump) == s.trickLead
	curFollows := cur.EffectiveSuit(s.trump) == s.trickLead
	if cFollows != curFollows {
		return cFollows
	}
	if !cFollows {
		return false // neither follows lead nor trump; can't win regardless of rank
	}
	return c.Rank() > cur.Rank()
}

// trumpRank orders trump cards right-bower-high, left-bower-second.
func trumpRank(c cards.Card, trump cards.Suit) int {
	if c.IsRightBower(trump) {
		return 100
	}
	if c.IsLeftBower(trump) {
		return 99
	}
	return int(c.Rank())
}

// Undo reverses the most recent Apply. Panics if no Apply is pending.
func (s *State) Undo() {
	if len(s.history) == 0 {
		panic("euchre: undo with empty history")
	}
	e := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.actions = s.actions[:len(s.actions)-1]

	// Trick completion moves four cards out of play and can't be undone
	// from a single undoEntry's one card slot; replaying from the action
	// log instead keeps Undo correct without unbounded per-entry storage.
	if e.prevPhase == PhasePlay && e.prevTrickCount == 3 && e.action >= playBase && e.action < playBase+24 {
		s.undoTrickCompletion(e)
		return
	}

	if e.hasMove {
		s.deck.MoveTo(e.movedCard, e.prevLoc)
	}
	if e.prevPhase == PhaseDealHands {
		recipient := s.dealPlayerForIndex(e.prevDealCount)
		s.dealtHands[recipient] = s.dealtHands[recipient].Remove(e.movedCard)
	}

	s.phase = e.prevPhase
	s.trump = e.prevTrump
	s.trumpSet = e.prevTrumpSet
	s.faceUp = e.prevFaceUp
	s.curPlayer = e.prevCurPlayer
	s.leadPlayer = e.prevLeadPlayer
	s.trickLead = e.prevTrickLead
	s.trickLeadSet = e.prevTrickLeadSet
	s.trickCount = e.prevTrickCount
	s.tricksPlayed = e.prevTricksPlayed
	s.tricksWon = e.prevTricksWon
	s.callingTeam = e.prevCallingTeam
	s.dealCount = e.prevDealCount
	s.bidCount = e.prevBidCount
}

// undoTrickCompletion reverses the fourth play of a trick: it restores
// the trick's first three cards to Played(p) (they were cleared to None
// by the trick-completion side effect), returns the fourth card to the
// location it was played from, and restores the pre-play fields.
func (s *State) undoTrickCompletion(e undoEntry) {
	// Replay the first three plays of the just-finished trick from the
	// action log to recover each card's owning seat, since clearTrick
	// discarded the Played(p) locations.
	start := len(s.actions) - 3
	for i := 0; i < 3; i++ {
		c, _ := actionCard(s.actions[start+i])
		p := (e.prevLeadPlayer + i) % 4
		s.deck.Move(c, cards.PlayedLocation(p))
	}
	s.deck.MoveTo(e.movedCard, e.prevLoc)

	s.phase = e.prevPhase
	s.trump = e.prevTrump
	s.trumpSet = e.prevTrumpSet
	s.faceUp = e.prevFaceUp
	s.curPlayer = e.prevCurPlayer
	s.leadPlayer = e.prevLeadPlayer
	s.trickLead = e.prevTrickLead
	s.trickLeadSet = e.prevTrickLeadSet
	s.trickCount = e.prevTrickCount
	s.tricksPlayed = e.prevTricksPlayed
	s.tricksWon = e.prevTricksWon
	s.callingTeam = e.prevCallingTeam
	s.dealCount = e.prevDealCount
	s.bidCount = e.prevBidCount
}

// Evaluate implements game.Game: the terminal score for the team player
// belongs to. The calling team scores tricks-2 when they made their bid
// (3, 4, or all 5 tricks) and -(tricks the defenders took)-2 when they
// were euchred; the defending team's score is the negation, since the
// hand is zero-sum between the two teams.
func (s *State) Evaluate(player int) float64 {
	if s.phase != PhaseTerminal {
		panic("euchre: evaluate on non-terminal state")
	}
	team := TeamOf(player)
	calling := s.callingTeam
	defending := 1 - calling

	var callingScore float64
	if s.tricksWon[calling] >= 3 {
		callingScore = float64(s.tricksWon[calling]) - 2
	} else {
		callingScore = -float64(s.tricksWon[defending]) - 2
	}

	if team == calling {
		return callingScore
	}
	return -callingScore
}

// IStateKey implements game.Game: the subsequence of actions visible to
// player, with every other player's private action replaced by
// istate.Placeholder. DealPlayer actions are private to their recipient;
// Discard is private to the dealer; everything else (deal of the face-up
// card, bids, and play) is public. A DiscardMarker byte, visible to
// everyone, is inserted right after the discard: without it, player 0's
// key would read identically whether a 100+c byte at that position was
// their own opening lead or (in some other deal) an echo of a DealPlayer
// byte reused at the same offset once suit-normalization folds two hands
// onto each other; the marker pins the phase boundary unambiguously.
func (s *State) IStateKey(player int) istate.Key {
	var k istate.Key
	dealIdx := 0
	for _, a := range s.actions {
		visible := true
		switch {
		case a >= dealPlayerBase && a < dealPlayerBase+24:
			visible = s.dealPlayerForIndex(dealIdx) == player
			dealIdx++
		case a >= discardBase && a < discardBase+24:
			visible = player == Dealer
		}
		if visible {
			k = k.Push(byte(a))
		} else {
			k = k.Push(istate.Placeholder)
		}
		if a >= discardBase && a < discardBase+24 {
			k = k.Push(byte(ActionDiscardMarker))
		}
	}
	return k
}

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

// TranspositionHash implements game.Game. It is only defined at a
// "start of turn" boundary: Discard, ChooseTrump, and the first play of
// a trick. Mid-trick caching could cross the point where a parallel
// search branch has played a different number of the trick's four cards
// but the hash can't distinguish it from this state, so those cases
// return ok=false and callers must not cache.
func (s *State) TranspositionHash() (uint64, bool) {
	if s.phase != PhasePlay && s.phase != PhaseDiscard && s.phase != PhaseChooseTrump {
		return 0, false
	}
	if s.phase == PhasePlay && s.trickCount != 0 {
		return 0, false
	}
	return transpositionHash(s), true
}
