package istate

import "testing"

func TestPushPopInverse(t *testing.T) {
	var k Key
	k = k.Push(1)
	k = k.Push(2)
	k = k.Push(3)

	k, last := k.Pop()
	if last != 3 {
		t.Fatalf("Pop() = %d, want 3", last)
	}
	if k.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", k.Len())
	}
	if got := k.Bytes(); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("Bytes() = %v, want [1 2]", got)
	}
}

func TestPopEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic popping empty key")
		}
	}()
	var k Key
	k.Pop()
}

func TestPushCapacityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic pushing beyond capacity")
		}
	}()
	var k Key
	for i := 0; i < Capacity+1; i++ {
		k = k.Push(byte(i))
	}
}

func TestNormalizeSkipsPlaceholder(t *testing.T) {
	var k Key
	k = k.Push(0)
	k = k.Push(Placeholder)
	k = k.Push(2)

	remap := func(b byte) byte { return b + 10 }
	out := k.Normalize(remap)
	bs := out.Bytes()
	if bs[0] != 10 {
		t.Errorf("bs[0] = %d, want 10", bs[0])
	}
	if bs[1] != Placeholder {
		t.Errorf("bs[1] = %d, want Placeholder unchanged", bs[1])
	}
	if bs[2] != 12 {
		t.Errorf("bs[2] = %d, want 12", bs[2])
	}
}

func TestKeyValueSemantics(t *testing.T) {
	var k1 Key
	k1 = k1.Push(5)
	k2 := k1
	k2 = k2.Push(6)
	if k1.Len() != 1 {
		t.Fatalf("k1.Len() = %d, want 1 (Key must be a value type)", k1.Len())
	}
	if k2.Len() != 2 {
		t.Fatalf("k2.Len() = %d, want 2", k2.Len())
	}
}
