// Package game declares the trait every search algorithm in this module
// requires of a two-or-more-player, imperfect-information extensive-form
// game: Euchre (pkg/euchre) and Kuhn Poker (pkg/kuhn) both implement it,
// so pkg/search, pkg/pimcts, pkg/cfr, and pkg/bestresponse never refer to
// a specific game's concrete type.
package game

import "github.com/behrlich/euchre-solver/pkg/istate"

// Action is an 8-bit action code. Each game defines its own partition of
// the 256-value space; the only shared requirement is that encoded
// actions sort into the order LegalActions must return them in.
type Action uint8

// Game is the interface the solvers traverse. Implementations must
// support cheap, exact undo: every Apply must be paired with an Undo
// that restores the prior state bit-for-bit.
type Game interface {
	// LegalActions appends the legal actions at the current state to out
	// (which may be nil) and returns the result, in strictly increasing
	// encoded order. Must not be called on a terminal state.
	LegalActions(out []Action) []Action

	// Apply plays action a, which must be a member of LegalActions().
	// Applying an action not present in LegalActions is a programmer
	// error and implementations panic rather than corrupt state.
	Apply(a Action)

	// Undo reverses the most recent Apply. Panics if no Apply is pending.
	Undo()

	// IsTerminal reports whether the game has ended.
	IsTerminal() bool

	// IsChanceNode reports whether the next Apply must be a chance
	// outcome (e.g. a deal) rather than a player decision.
	IsChanceNode() bool

	// Evaluate returns the terminal score for player, from that player's
	// perspective. Only valid when IsTerminal().
	Evaluate(player int) float64

	// NumPlayers returns the number of players in the game.
	NumPlayers() int

	// CurPlayer returns the index of the player to act. Undefined at
	// terminal or chance nodes.
	CurPlayer() int

	// IStateKey returns the information-state key visible to player,
	// i.e. the subsequence of history that player can observe.
	IStateKey(player int) istate.Key

	// IStateString returns a human-readable rendering of IStateKey,
	// useful for debugging and CLI output.
	IStateString(player int) string

	// TranspositionHash returns a 64-bit hash of the canonical
	// projection of the current state, or ok=false when the state is
	// mid-trick (or otherwise not at a cacheable boundary) and callers
	// must not cache results computed here.
	TranspositionHash() (hash uint64, ok bool)
}

// ChanceOutcome is one possible result of a chance node, paired with its
// probability. Games expose these so CFR-CS/CFR-ES and PIMCTS can sample
// or enumerate without the game needing to know which algorithm is
// driving it.
type ChanceOutcome struct {
	Action Action
	Prob   float64
}

// ChanceGame is implemented by games whose chance nodes can enumerate
// their outcomes (as opposed to a Game that can only be driven by
// LegalActions at chance nodes, which for Euchre's 20-card initial deal
// would be combinatorially infeasible to enumerate in full; Euchre
// instead exposes single-card deal outcomes which are enumerable).
type ChanceGame interface {
	Game
	ChanceOutcomes() []ChanceOutcome
}
