// Package search implements the open-hand alpha-beta/MTD(f) solver
// spec.md §4.3 names: iterative deepening drives MTD(f), which drives a
// fail-soft alpha-beta search with transposition-table probing/storing
// and domain-specific move ordering. It assumes full information (no
// chance nodes below the root) and panics if it encounters one, which
// is exactly the property PIMCTS needs: it resamples a chance node's
// uncertainty away into a concrete world before handing that world to
// this solver.
//
// There is no Rust source in the examples pack to transliterate this
// from (open_hand_solver.rs, the file spec.md's algorithm is itself
// describing, is absent — see DESIGN.md); the recursion, the MTD(f)
// loop, and the allocation discipline are built directly from spec.md
// §4.3's prose, following the Apply/Undo idiom already established by
// pkg/euchre and pkg/kuhn and the transposition-table conventions
// pkg/config and pkg/telemetry were already built to support.
package search

import (
	"math"

	"github.com/behrlich/euchre-solver/pkg/config"
	"github.com/behrlich/euchre-solver/pkg/game"
	"github.com/behrlich/euchre-solver/pkg/telemetry"
	"github.com/rs/zerolog"
)

var (
	negInf = math.Inf(-1)
	posInf = math.Inf(1)
)

// teamOf groups players into the two alliances a zero-sum evaluation
// distinguishes: Euchre's partners sit across from each other (0&2,
// 1&3), and Kuhn's two players are trivially their own teams, both
// captured by the same player%2 projection the original workspace's
// alphamu.rs uses for its Team enum.
func teamOf(player int) int { return player % 2 }

// Solver runs the open-hand search described above over a live
// game.Game via Apply/Undo. A Solver is not safe for concurrent use;
// pkg/pimcts gives each sampled world its own Solver (and its own
// Cache) so per-world searches never contend with each other.
type Solver struct {
	cfg   config.Config
	cache *Cache
	log   zerolog.Logger

	scratch  []game.Action  // reused legal-action buffer for childNodes
	children [][]childEntry // per-depth reused child-score/action buffers
	pvMoves  []game.Action  // pvMoves[depth] is the best move found at that depth
}

// NewSolver returns a solver configured per cfg, sharing no state with
// any other Solver. log may be the zero zerolog.Logger, which discards
// everything.
func NewSolver(cfg config.Config, log zerolog.Logger) *Solver {
	depth := cfg.MaxSearchDepth
	if depth < 1 {
		depth = 1
	}
	return &Solver{
		cfg:      cfg,
		cache:    NewCache(),
		log:      log,
		scratch:  make([]game.Action, 0, 32),
		children: make([][]childEntry, depth+1),
		pvMoves:  make([]game.Action, depth+1),
	}
}

// Cache exposes the solver's transposition table, e.g. so a caller can
// report its size via pkg/telemetry.
func (s *Solver) Cache() *Cache { return s.cache }

type childEntry struct {
	action game.Action
	score  float64
}

// FindBestMove runs iterative deepening from depth 1 to cfg.MaxSearchDepth,
// each iteration seeding MTD(f) with the previous iteration's value as
// its first guess, and returns the best action found at the deepest
// completed iteration. Returns ok=false if g is already terminal or the
// current player's legal-action set is empty (a chance node, which this
// solver cannot drive).
func (s *Solver) FindBestMove(g game.Game) (game.Action, bool) {
	if g.IsTerminal() || g.IsChanceNode() {
		return 0, false
	}
	maximizingPlayer := g.CurPlayer()

	maxDepth := s.cfg.MaxSearchDepth
	if maxDepth < 1 {
		maxDepth = 1
	}

	guess := 0.0
	var best game.Action
	haveBest := false
	for depth := 1; depth <= maxDepth; depth++ {
		guess = s.mtdf(g, maximizingPlayer, depth, guess)
		telemetry.SearchBound(s.log, depth, guess)
		if depth < len(s.pvMoves) {
			best = s.pvMoves[depth]
			haveBest = true
		}
	}
	return best, haveBest
}

// EvaluatePlayer runs the same iterative-deepening MTD(f) search but
// returns the root's value from player's perspective instead of the
// best action, for PIMCTS's per-world scalar evaluation.
func (s *Solver) EvaluatePlayer(g game.Game, player int) float64 {
	if g.IsTerminal() {
		return g.Evaluate(player)
	}
	maxDepth := s.cfg.MaxSearchDepth
	if maxDepth < 1 {
		maxDepth = 1
	}
	guess := 0.0
	for depth := 1; depth <= maxDepth; depth++ {
		guess = s.mtdf(g, player, depth, guess)
	}
	return guess
}

// mtdf implements the standard MTD(f) driver: repeated null-window
// alpha-beta probes around a moving guess g, converging to the minimax
// value once lower meets upper.
func (s *Solver) mtdf(g game.Game, maximizingPlayer, depth int, firstGuess float64) float64 {
	guess := firstGuess
	lower, upper := negInf, posInf
	for lower < upper {
		beta := guess
		if guess == lower {
			beta = guess + 1
		}
		guess = s.alphaBeta(g, maximizingPlayer, depth, beta-1, beta)
		if guess < beta {
			upper = guess
		} else {
			lower = guess
		}
	}
	return guess
}

// alphaBeta is fail-soft negamax-style alpha-beta, except the
// evaluation frame never flips: every leaf and every transposition
// entry is expressed from maximizingPlayer's fixed perspective, and
// CurPlayer's team relative to maximizingPlayer decides whether this
// node maximizes or minimizes that fixed value. Panics if g is a chance
// node, per this package's doc comment.
func (s *Solver) alphaBeta(g game.Game, maximizingPlayer, depth int, alpha, beta float64) float64 {
	if g.IsChanceNode() {
		panic("search: alpha-beta reached a chance node; resample it away before searching")
	}
	if g.IsTerminal() || depth == 0 {
		return g.Evaluate(maximizingPlayer)
	}

	if pr, ok := g.(Pruner); ok {
		if v, ok := pr.EarlyTerminalValue(maximizingPlayer); ok {
			return v
		}
	}

	alphaOrig, betaOrig := alpha, beta

	hash, cacheable := g.TranspositionHash()
	if cacheable && s.cfg.CacheEnabled {
		if e, found := s.cache.get(hash); found && e.depth >= depth {
			switch e.flag {
			case flagExact:
				return e.value
			case flagLower:
				if e.value > alpha {
					alpha = e.value
				}
			case flagUpper:
				if e.value < beta {
					beta = e.value
				}
			}
			if alpha >= beta {
				return e.value
			}
		}
	} else if !cacheable {
		telemetry.CacheMisuse(s.log, "non-turn-start probe skipped")
	}

	maximizing := teamOf(g.CurPlayer()) == teamOf(maximizingPlayer)
	children := s.childNodes(g, depth, maximizing)

	var value float64
	var bestAction game.Action
	if maximizing {
		value = negInf
		for _, c := range children {
			g.Apply(c.action)
			v := s.alphaBeta(g, maximizingPlayer, depth-1, alpha, beta)
			g.Undo()
			if v > value {
				value = v
				bestAction = c.action
			}
			if value > alpha {
				alpha = value
			}
			if alpha >= beta {
				break
			}
		}
	} else {
		value = posInf
		for _, c := range children {
			g.Apply(c.action)
			v := s.alphaBeta(g, maximizingPlayer, depth-1, alpha, beta)
			g.Undo()
			if v < value {
				value = v
				bestAction = c.action
			}
			if value < beta {
				beta = value
			}
			if alpha >= beta {
				break
			}
		}
	}

	if cacheable && s.cfg.CacheEnabled && depth <= s.cfg.MaxTTDepth {
		var flag ttFlag
		switch {
		case value <= alphaOrig:
			flag = flagUpper
		case value >= betaOrig:
			flag = flagLower
		default:
			flag = flagExact
		}
		s.cache.put(hash, ttEntry{depth: depth, value: value, flag: flag})
	}

	if depth < len(s.pvMoves) {
		s.pvMoves[depth] = bestAction
	}

	return value
}

// childNodes returns g's legal actions ordered for alpha-beta pruning:
// the cached principal-variation move (if any, at this depth) sorts
// first, ties broken by a domain heuristic when g implements Pruner,
// descending for a maximizing node and ascending for a minimizing one
// so the loop above tries its most promising branch first. The
// returned slice aliases s's per-depth scratch buffer and is only valid
// until the next call at the same depth.
func (s *Solver) childNodes(g game.Game, depth int, maximizing bool) []childEntry {
	s.scratch = g.LegalActions(s.scratch[:0])
	legal := s.scratch

	pruner, hasPruner := g.(Pruner)
	if hasPruner {
		legal = pruner.ElideEquivalentActions(legal)
	}

	if depth >= len(s.children) {
		// Only reached if a caller drives alphaBeta above cfg.MaxSearchDepth
		// directly; grow rather than index out of range.
		grown := make([][]childEntry, depth+1)
		copy(grown, s.children)
		s.children = grown
	}
	buf := s.children[depth][:0]

	pv := game.Action(0)
	havePV := depth < len(s.pvMoves)
	if havePV {
		pv = s.pvMoves[depth]
	}

	for _, a := range legal {
		score := 0.0
		if hasPruner {
			score = pruner.MoveHeuristic(a, maximizing)
		}
		if havePV && a == pv {
			if maximizing {
				score = posInf
			} else {
				score = negInf
			}
		}
		buf = append(buf, childEntry{action: a, score: score})
	}
	s.children[depth] = buf

	if maximizing {
		sortDescending(buf)
	} else {
		sortAscending(buf)
	}
	return buf
}

func sortDescending(c []childEntry) {
	for i := 1; i < len(c); i++ {
		for j := i; j > 0 && c[j].score > c[j-1].score; j-- {
			c[j], c[j-1] = c[j-1], c[j]
		}
	}
}

func sortAscending(c []childEntry) {
	for i := 1; i < len(c); i++ {
		for j := i; j > 0 && c[j].score < c[j-1].score; j-- {
			c[j], c[j-1] = c[j-1], c[j]
		}
	}
}
