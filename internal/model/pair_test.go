package model

import "testing"

func TestCanonicalPair(t *testing.T) {
	lo, hi := CanonicalPair("U2", "U1")
	if lo != "U1" || hi != "U2" {
		t.Fatalf("got (%s, %s), want (U1, U2)", lo, hi)
	}
	lo, hi = CanonicalPair("U1", "U2")
	if lo != "U1" || hi != "U2" {
		t.Fatalf("got (%s, %s), want (U1, U2)", lo, hi)
	}
}

// 无序对哈希对参数顺序不敏感，不同对互不碰撞
func TestPairKey(t *testing.T) {
	if PairKey("U1", "U2") != PairKey("U2", "U1") {
		t.Fatal("pair key must be order independent")
	}
	if PairKey("U1", "U2") == PairKey("U1", "U3") {
		t.Fatal("different pairs must not share a key")
	}
	if len(PairKey("U1", "U2")) != 64 {
		t.Fatalf("key length = %d, want 64 hex chars", len(PairKey("U1", "U2")))
	}
}
