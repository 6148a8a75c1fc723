// Package istate implements the fixed-capacity information-state key
// shared by every game: a bounded sequence of action bytes representing
// what one specific player has observed.
package istate

import (
	"encoding/hex"
	"fmt"
)

// Capacity is the maximum number of actions an information-state key can
// record. Euchre hands need at most about 50 actions (20 deals, the
// face-up card, up to 8 bids or a pickup with its discard, and 20
// plays); 64 leaves headroom.
const Capacity = 64

// Placeholder replaces another player's private action in a key so the
// sequence still records *that a turn happened* without leaking hidden
// information.
const Placeholder byte = 0xFF

// Key is a bounded, comparable action history. Zero value is the empty
// key (the game's root information state).
type Key struct {
	data [Capacity]byte
	n    int
}

// Push appends an action byte, panicking if the key is already full —
// a full key indicates Capacity was sized wrong for the game in use.
func (k Key) Push(b byte) Key {
	if k.n >= Capacity {
		panic("istate: key capacity exceeded")
	}
	k.data[k.n] = b
	k.n++
	return k
}

// Pop removes and returns the most recently pushed byte, panicking if
// the key is empty.
func (k Key) Pop() (Key, byte) {
	if k.n == 0 {
		panic("istate: pop of empty key")
	}
	k.n--
	return k, k.data[k.n]
}

// Len returns the number of actions recorded.
func (k Key) Len() int { return k.n }

// Bytes returns a copy of the recorded action bytes; the caller may keep
// or modify it without affecting the key.
func (k Key) Bytes() []byte {
	out := make([]byte, k.n)
	copy(out, k.data[:k.n])
	return out
}

// Normalize returns a new Key with remap applied to every non-placeholder
// byte. Games use this to canonicalize a key under a suit permutation so
// strategically equivalent hands share one key.
func (k Key) Normalize(remap func(b byte) byte) Key {
	out := k
	for i := 0; i < out.n; i++ {
		if out.data[i] != Placeholder {
			out.data[i] = remap(out.data[i])
		}
	}
	return out
}

// String renders the key as hex, suitable as a map key or log field.
func (k Key) String() string {
	return hex.EncodeToString(k.data[:k.n])
}

// GoString supports %#v and debugger inspection.
func (k Key) GoString() string {
	return fmt.Sprintf("istate.Key(%s)", k.String())
}
