package search

import "github.com/behrlich/euchre-solver/pkg/game"

// Pruner is implemented by games that expose domain-specific move
// ordering and early-cutoff heuristics beyond the generic fail-soft
// alpha-beta loop. pkg/euchre's *euchre.State implements it; pkg/kuhn's
// *kuhn.State does not, and the solver falls back to neutral ordering
// and no early termination for it.
//
// There is no Rust source to ground this interface on: the original
// workspace's open_hand_solver.rs, which spec.md §4.3's pruning rules
// describe, is not present anywhere in the examples pack (only
// algorithms/pimcts.rs and algorithms/alphamu.rs are). The heuristics
// below are transcribed directly from spec.md's prose.
type Pruner interface {
	// MoveHeuristic scores action a for ordering purposes only: higher
	// sorts earlier for a maximizing node, later for a minimizing one
	// (maximizing reports which side the enclosing node is on, so an
	// implementation wanting an action evaluated dead last regardless of
	// side, e.g. the Discard phase's picked-up card, can return a
	// sentinel that sorts last under either direction). It is a cheap,
	// shallow estimate, not a search result, and must never be cached or
	// treated as authoritative.
	MoveHeuristic(a game.Action, maximizing bool) float64

	// ElideEquivalentActions removes actions from legal that are
	// strategically redundant with another action already present
	// (e.g. playing the nine of a suit when the current player also
	// holds that suit's ten and no opponent can hold a card in between,
	// making the two choices interchangeable). legal is returned
	// unmodified if no elision applies; otherwise a shorter slice,
	// possibly aliasing legal's storage, is returned.
	ElideEquivalentActions(legal []game.Action) []game.Action

	// EarlyTerminalValue reports a provable final value for
	// maximizingPlayer without searching further, when the remaining
	// tricks are already decided (e.g. one player holds every
	// outstanding trump). ok is false when no such shortcut applies.
	EarlyTerminalValue(maximizingPlayer int) (value float64, ok bool)
}
