// Package cfr implements the vanilla, chance-sampled (CFR-CS), and
// external-sampling (CFR-ES) Counterfactual Regret Minimization
// variants described in SPEC_FULL.md §4.5, generalized from the
// teacher's two-player, pre-built-tree traversal
// (pkg/solver/cfr.go, pkg/solver/strategy.go in the teacher repo) to an
// arbitrary number of players traversing a live game.Game via
// Apply/Undo rather than a materialized tree.
package cfr

// Node is the per-information-state CFR state: cumulative regret and
// cumulative (reach-weighted) strategy for each legal action at that
// info-state. The invariant matches spec.md's CFR node description:
// CurrentStrategy is the positive-regret-normalized projection of
// RegretSum, falling back to uniform when no regret is positive.
type Node struct {
	RegretSum   []float64
	StrategySum []float64
}

// newNode allocates a zeroed node sized for numActions legal actions.
func newNode(numActions int) *Node {
	return &Node{
		RegretSum:   make([]float64, numActions),
		StrategySum: make([]float64, numActions),
	}
}

// CurrentStrategy computes this iteration's strategy via regret
// matching: each action's weight is its positive regret, normalized to
// a probability distribution; uniform if no action has positive regret.
func (n *Node) CurrentStrategy() []float64 {
	strat := make([]float64, len(n.RegretSum))
	var sum float64
	for i, r := range n.RegretSum {
		if r > 0 {
			strat[i] = r
			sum += r
		}
	}
	if sum > 0 {
		for i := range strat {
			strat[i] /= sum
		}
		return strat
	}
	uniform := 1.0 / float64(len(strat))
	for i := range strat {
		strat[i] = uniform
	}
	return strat
}

// AverageStrategy returns the time-averaged strategy, the quantity that
// converges to a Nash equilibrium as training iterations grow.
func (n *Node) AverageStrategy() []float64 {
	avg := make([]float64, len(n.StrategySum))
	var sum float64
	for _, s := range n.StrategySum {
		sum += s
	}
	if sum > 0 {
		for i, s := range n.StrategySum {
			avg[i] = s / sum
		}
		return avg
	}
	uniform := 1.0 / float64(len(avg))
	for i := range avg {
		avg[i] = uniform
	}
	return avg
}

// updateRegrets adds deltas (already scaled by counterfactual reach) to
// RegretSum. Deltas of NaN or Inf never occur by construction: callers
// scale by a reach product that is exactly 0 rather than a limit, so
// 0*x is always treated as 0 per spec.md's "CFR training must tolerate
// pathological reach products" requirement.
func (n *Node) updateRegrets(deltas []float64) {
	for i, d := range deltas {
		n.RegretSum[i] += d
	}
}

// updateStrategySum adds reach-weighted strategy to StrategySum.
func (n *Node) updateStrategySum(strategy []float64, weight float64) {
	if weight == 0 {
		return
	}
	for i, s := range strategy {
		n.StrategySum[i] += weight * s
	}
}
