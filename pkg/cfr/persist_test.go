package cfr

import (
	"bytes"
	"testing"

	"github.com/behrlich/euchre-solver/pkg/game"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	p := NewProfile()
	n1 := p.getOrCreate(key(1, 2), []game.Action{0, 1})
	n1.RegretSum = []float64{4, -2}
	n1.StrategySum = []float64{3, 1}
	n2 := p.getOrCreate(key(3), []game.Action{0, 1, 2})
	n2.RegretSum = []float64{1, 1, 1}
	n2.StrategySum = []float64{2, 2, 2}

	var buf bytes.Buffer
	if err := p.Save(&buf); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	loaded, err := LoadProfile(&buf)
	if err != nil {
		t.Fatalf("LoadProfile() returned error: %v", err)
	}

	if loaded.NumInfoSets() != p.NumInfoSets() {
		t.Fatalf("loaded NumInfoSets() = %d, want %d", loaded.NumInfoSets(), p.NumInfoSets())
	}

	gotActions, gotNode, ok := loaded.Lookup(key(1, 2))
	if !ok {
		t.Fatalf("Lookup(key(1,2)) not found after round trip")
	}
	if len(gotActions) != 2 || gotActions[0] != 0 || gotActions[1] != 1 {
		t.Errorf("round-tripped actions = %v, want [0 1]", gotActions)
	}
	if gotNode.RegretSum[0] != 4 || gotNode.RegretSum[1] != -2 {
		t.Errorf("round-tripped RegretSum = %v, want [4 -2]", gotNode.RegretSum)
	}
	if gotNode.StrategySum[0] != 3 || gotNode.StrategySum[1] != 1 {
		t.Errorf("round-tripped StrategySum = %v, want [3 1]", gotNode.StrategySum)
	}

	strat := gotNode.CurrentStrategy()
	checkDistribution(t, "round-tripped node's current strategy", strat)
}

func TestLoadProfileRejectsBadMagic(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0, 0, 0, 0, 0, 1})
	if _, err := LoadProfile(buf); err == nil {
		t.Errorf("LoadProfile() with bad magic returned nil error, want an error")
	}
}

func TestLoadProfileRejectsUnsupportedVersion(t *testing.T) {
	var buf bytes.Buffer
	p := NewProfile()
	if err := p.Save(&buf); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}
	data := buf.Bytes()
	data[5] = 0xFF // corrupt the version byte
	if _, err := LoadProfile(bytes.NewReader(data)); err == nil {
		t.Errorf("LoadProfile() with unsupported version returned nil error, want an error")
	}
}

func TestLoadProfileRejectsTruncatedHeader(t *testing.T) {
	buf := bytes.NewBuffer([]byte{1, 2, 3})
	if _, err := LoadProfile(buf); err == nil {
		t.Errorf("LoadProfile() with truncated header returned nil error, want an error")
	}
}
