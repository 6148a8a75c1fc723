// Package pimcts implements the perfect-information Monte Carlo
// evaluator spec.md §4.4 names: average the open-hand solver's value
// over many resampled worlds consistent with a player's information
// state, instead of searching the true, imperfect-information game
// tree. Grounded on algorithms/pimcts.rs's PIMCTSBot.
package pimcts

import (
	"math/rand"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/behrlich/euchre-solver/pkg/config"
	"github.com/behrlich/euchre-solver/pkg/game"
	"github.com/behrlich/euchre-solver/pkg/search"
)

// Resampler is implemented by games that can produce an independent,
// fully-determined world consistent with one player's information
// state: own cards fixed, everything that player hasn't observed
// redrawn. euchre.State and kuhn.State both implement it.
type Resampler interface {
	game.Game
	ResampleFromIState(player int, rng *rand.Rand) game.Game
}

// Evaluator is PIMCTSBot's generalization to any Resampler game. It
// owns no game state itself; every call takes the live position to
// evaluate, mirroring the rest of this module's Apply/Undo-based
// solvers even though resampling here always produces brand-new
// game.Game values rather than reusing the caller's.
type Evaluator struct {
	cfg       config.Config
	rollouts  int
	rngSource func() *rand.Rand
}

// NewEvaluator returns an evaluator that runs rollouts worlds per
// EvaluatePlayer/ActionProbabilities call, each solved by an
// independently configured search.Solver (cfg also governs the depth
// and caching of those per-world solvers). seed seeds a dedicated
// math/rand source for world sampling; pass a fixed seed for
// reproducible tests, or a value derived from time for production use.
func NewEvaluator(cfg config.Config, rollouts int, seed int64) *Evaluator {
	if rollouts < 1 {
		rollouts = 1
	}
	// Each call to EvaluatePlayer needs its own *rand.Rand per world (to
	// avoid N goroutines contending for one shared source's lock), but
	// all of them must still derive deterministically from one seed so a
	// fixed seed reproduces a fixed run. Spinning a fresh source per
	// world, seeded from a counter drawn off one root source, gives both:
	// guarded by a mutex only at the (cheap, infrequent) point of minting
	// a new per-world seed, never in the per-world hot path itself.
	shared := &lockedRand{r: rand.New(rand.NewSource(seed))}
	return &Evaluator{
		cfg:      cfg,
		rollouts: rollouts,
		rngSource: func() *rand.Rand {
			return rand.New(rand.NewSource(shared.next()))
		},
	}
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) next() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Int63()
}

// EvaluatePlayer implements spec.md §4.4's evaluate_player: it samples
// Evaluator.rollouts worlds consistent with player's information state
// and returns the mean open-hand value across them. Per
// algorithms/pimcts.rs's evaluate_with_worlds, each world gets its own
// solver and transposition table; results are summed in a
// deterministic, index-addressed order (never as worlds happen to
// finish) so the returned mean doesn't depend on goroutine scheduling.
func (e *Evaluator) EvaluatePlayer(g game.Game, player int) float64 {
	r, ok := g.(Resampler)
	if !ok {
		panic("pimcts: game does not implement Resampler")
	}
	if g.IsTerminal() {
		return g.Evaluate(player)
	}

	values := make([]float64, e.rollouts)

	// Every per-world *rand.Rand is minted up front, in a fixed order,
	// before branching on SingleThread: that keeps a run's outcome a
	// function of the seed and rollout count alone, never of whether the
	// worlds happened to be solved sequentially or concurrently.
	rngs := make([]*rand.Rand, e.rollouts)
	for i := range rngs {
		rngs[i] = e.rngSource()
	}

	if e.cfg.SingleThread {
		for i := range values {
			values[i] = e.evaluateWorld(r, player, rngs[i])
		}
	} else {
		var eg errgroup.Group
		for i := range values {
			i := i
			eg.Go(func() error {
				values[i] = e.evaluateWorld(r, player, rngs[i])
				return nil
			})
		}
		_ = eg.Wait()
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func (e *Evaluator) evaluateWorld(r Resampler, player int, rng *rand.Rand) float64 {
	world := r.ResampleFromIState(player, rng)
	solver := search.NewSolver(e.cfg, zerolog.Nop())
	return solver.EvaluatePlayer(world, player)
}

// ActionProbabilities implements spec.md §4.4: it evaluates every legal
// action at g by applying it and calling EvaluatePlayer from the
// current player's perspective, then returns a one-hot distribution on
// the maximizing action (ties broken by encoded action order, the
// order LegalActions already returns them in).
func (e *Evaluator) ActionProbabilities(g game.Game) ([]game.Action, []float64) {
	player := g.CurPlayer()
	legal := g.LegalActions(nil)
	if len(legal) == 0 {
		return nil, nil
	}

	values := make([]float64, len(legal))
	for i, a := range legal {
		g.Apply(a)
		values[i] = e.EvaluatePlayer(g, player)
		g.Undo()
	}

	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}

	probs := make([]float64, len(legal))
	probs[best] = 1.0
	return legal, probs
}
