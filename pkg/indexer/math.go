package indexer

import "sort"

// binom returns n choose k, or 0 if n < k. Ported from
// hand-indexer/src/math.rs's binom, using the iterative multiplicative
// formula (with the k > n-k symmetry reduction) instead of the Rust
// source's recursive one, since Go has no free tail-call optimization
// and this module's decks are too large for that recursion's depth to
// be a reasonable gamble.
func binom(n, k int) int {
	if n < k {
		return 0
	}
	if k == 0 || k == n {
		return 1
	}
	if k > n-k {
		k = n - k
	}
	result := 1
	for i := 0; i < k; i++ {
		result = result * (n - i) / (i + 1)
	}
	return result
}

// indexSet computes the colex rank of a subset of {0, ..., n-1} (given
// as ranks, in any order) among all subsets of the same size, via the
// combinatorial number system. Grounded on
// hand-indexer/src/lib.rs's HandIndexer::index_set.
func indexSet(ranks []int) int {
	if len(ranks) == 0 {
		panic("indexer: cannot index an empty set")
	}
	if len(ranks) == 1 {
		return ranks[0]
	}

	sorted := append([]int(nil), ranks...)
	sort.Ints(sorted)

	m := len(sorted)
	index := 0
	for i := 1; i <= m; i++ {
		a := sorted[len(sorted)-1]
		sorted = sorted[:len(sorted)-1]
		index += binom(a, m-i+1)
	}
	return index
}

// combinations calls visit once for every increasing-order k-combination
// of {0, ..., n-1}. The slice passed to visit is reused across calls and
// must not be retained.
func combinations(n, k int, visit func(combo []int)) {
	if k == 0 {
		visit(nil)
		return
	}
	combo := make([]int, k)
	var rec func(start, idx int)
	rec = func(start, idx int) {
		if idx == k {
			visit(combo)
			return
		}
		for v := start; v <= n-(k-idx); v++ {
			combo[idx] = v
			rec(v+1, idx+1)
		}
	}
	rec(0, 0)
}
