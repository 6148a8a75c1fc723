package cfr

import (
	"encoding/binary"
	"encoding/gob"
	"io"

	"github.com/behrlich/euchre-solver/pkg/game"
	"github.com/pkg/errors"
)

// policyMagic and policyVersion identify a persisted policy file.
// Endianness and float layout are not portable across machines or
// future versions of this package, matching spec.md §6: the format is
// an opaque binary container, not an interchange format.
const (
	policyMagic   uint32 = 0x6b756872 // "kuhr": kuhn/euchre
	policyVersion uint16 = 1
)

// record is the gob-encoded payload per info-state: the quantities
// spec.md §6 names (regret_sum, move_prob, total_move_prob). move_prob
// (the current regret-matched strategy) is recomputed from RegretSum on
// load rather than stored, since it is a pure function of RegretSum.
type record struct {
	Actions     []byte // game.Action is a uint8; stored as raw bytes
	RegretSum   []float64
	StrategySum []float64
}

// Save writes p to w as a magic-prefixed, versioned gob stream. Errors
// are wrapped with errors.Wrap since this is an I/O boundary, per
// SPEC_FULL.md's error-handling design (internal programmer errors
// panic; I/O boundaries return wrapped errors).
func (p *Profile) Save(w io.Writer) error {
	var header [6]byte
	binary.BigEndian.PutUint32(header[0:4], policyMagic)
	binary.BigEndian.PutUint16(header[4:6], policyVersion)
	if _, err := w.Write(header[:]); err != nil {
		return errors.Wrap(err, "cfr: writing policy header")
	}

	p.mu.Lock()
	records := make(map[string]record, len(p.entries))
	for k, e := range p.entries {
		actions := make([]byte, len(e.actions))
		for i, a := range e.actions {
			actions[i] = byte(a)
		}
		records[k] = record{
			Actions:     actions,
			RegretSum:   e.node.RegretSum,
			StrategySum: e.node.StrategySum,
		}
	}
	p.mu.Unlock()

	if err := gob.NewEncoder(w).Encode(records); err != nil {
		return errors.Wrap(err, "cfr: encoding policy")
	}
	return nil
}

// LoadProfile reads a Profile previously written by Save.
func LoadProfile(r io.Reader) (*Profile, error) {
	var header [6]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, errors.Wrap(err, "cfr: reading policy header")
	}
	magic := binary.BigEndian.Uint32(header[0:4])
	version := binary.BigEndian.Uint16(header[4:6])
	if magic != policyMagic {
		return nil, errors.Errorf("cfr: not a policy file (bad magic %#x)", magic)
	}
	if version != policyVersion {
		return nil, errors.Errorf("cfr: unsupported policy version %d", version)
	}

	var records map[string]record
	if err := gob.NewDecoder(r).Decode(&records); err != nil {
		return nil, errors.Wrap(err, "cfr: decoding policy")
	}

	p := NewProfile()
	for k, rec := range records {
		actions := make([]game.Action, len(rec.Actions))
		for i, b := range rec.Actions {
			actions[i] = game.Action(b)
		}
		p.entries[k] = &entry{
			actions: actions,
			node: &Node{
				RegretSum:   rec.RegretSum,
				StrategySum: rec.StrategySum,
			},
		}
	}
	return p, nil
}
