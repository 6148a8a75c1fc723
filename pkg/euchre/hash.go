package euchre

import "github.com/cespare/xxhash/v2"

// hasher accumulates the isomorphism fingerprint's component words into a
// single buffer and reduces it with xxhash, the same hash family
// pkg/search uses to shard its transposition table.
type hasher struct {
	buf []byte
}

func (h *hasher) writeUint32(v uint32) {
	h.buf = append(h.buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func (h *hasher) sum() uint64 { return xxhash.Sum64(h.buf) }
