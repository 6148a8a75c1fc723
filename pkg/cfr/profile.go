package cfr

import (
	"sync"

	"github.com/behrlich/euchre-solver/pkg/game"
	"github.com/behrlich/euchre-solver/pkg/istate"
)

// entry pairs a Node with the legal actions it was created for, so
// callers can map a strategy vector back to concrete game.Actions.
type entry struct {
	actions []game.Action
	node    *Node
}

// Profile is the trained strategy table, keyed by information-state key
// (after normalization, if any). One Profile is shared by every
// traversal of a training run; SPEC_FULL.md's concurrency model allows
// one worker per training-iteration batch, so lookups and inserts are
// guarded by a mutex rather than assumed single-threaded.
type Profile struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewProfile returns an empty strategy table.
func NewProfile() *Profile {
	return &Profile{entries: make(map[string]*entry)}
}

// getOrCreate returns the node for key, creating one sized for actions
// on first use. actions must be in the same order every time the same
// key is seen; game.Game.LegalActions' strictly-increasing contract
// guarantees this.
func (p *Profile) getOrCreate(key istate.Key, actions []game.Action) *Node {
	k := key.String()
	p.mu.Lock()
	defer p.mu.Unlock()
	if e, ok := p.entries[k]; ok {
		return e.node
	}
	e := &entry{actions: append([]game.Action(nil), actions...), node: newNode(len(actions))}
	p.entries[k] = e
	return e.node
}

// Lookup returns the node and its action list for key, if trained.
func (p *Profile) Lookup(key istate.Key) (actions []game.Action, node *Node, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.entries[key.String()]
	if !ok {
		return nil, nil, false
	}
	return e.actions, e.node, true
}

// NumInfoSets reports how many distinct information states have been
// visited during training.
func (p *Profile) NumInfoSets() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// AverageStrategies returns every info-state's average strategy, keyed
// by the hex rendering of its istate.Key. Only this package's tests call
// it; the CLI's `train` subcommand persists a profile with Save.
func (p *Profile) AverageStrategies() map[string][]float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string][]float64, len(p.entries))
	for k, e := range p.entries {
		out[k] = e.node.AverageStrategy()
	}
	return out
}

// KeyNormalizer canonicalizes an info-state key before it is used to
// index the Profile, e.g. euchre's suit normalization: two keys that
// are strategically equivalent under a suit relabeling collapse to one
// node, quartering Euchre's memory footprint per SPEC_FULL.md §4.5.
// Takes the game and acting player so a normalizer can consult
// game-specific context (such as the Euchre face-up suit) unavailable
// from the key bytes alone.
type KeyNormalizer func(g game.Game, player int, key istate.Key) istate.Key
