package engine

import (
	"testing"

	"github.com/hailam/deepmate/internal/board"
)

func TestTranspositionStoreProbe(t *testing.T) {
	tt := NewTranspositionTable(1)

	key := uint64(0xDEADBEEFCAFE1234)
	move := board.Move{From: board.E2, To: board.E4, Promotion: board.NoPieceType}
	tt.Store(key, 5, 1.25, TTExact, move)

	entry, ok := tt.Probe(key)
	if !ok {
		t.Fatal("stored entry not found")
	}
	if entry.Key != key {
		t.Errorf("entry key = %016x, want %016x", entry.Key, key)
	}
	if entry.Depth != 5 || entry.Score != 1.25 || entry.Flag != TTExact || entry.BestMove != move {
		t.Errorf("entry fields corrupted: %+v", entry)
	}
}

func TestTranspositionMissOnEmpty(t *testing.T) {
	tt := NewTranspositionTable(1)
	if _, ok := tt.Probe(0x1122334455667788); ok {
		t.Error("probe of an empty table reported a hit")
	}
}

func TestTranspositionDepthPreferred(t *testing.T) {
	tt := NewTranspositionTable(1)
	key := uint64(0xABCDEF)

	tt.Store(key, 6, 2.0, TTExact, board.NoMove)
	tt.Store(key, 3, -1.0, TTLowerBound, board.NoMove)

	entry, ok := tt.Probe(key)
	if !ok {
		t.Fatal("entry missing")
	}
	if entry.Depth != 6 || entry.Score != 2.0 {
		t.Errorf("shallower store replaced a deeper entry: %+v", entry)
	}

	tt.Store(key, 7, 0.5, TTUpperBound, board.NoMove)
	entry, _ = tt.Probe(key)
	if entry.Depth != 7 || entry.Score != 0.5 {
		t.Errorf("deeper store did not replace the entry: %+v", entry)
	}
}

// TestTranspositionCollisionIsMiss verifies that two keys mapping to the
// same slot never leak each other's data: a probe must verify the full
// 64-bit key.
func TestTranspositionCollisionIsMiss(t *testing.T) {
	tt := NewTranspositionTable(1)

	key := uint64(0x42)
	collider := key + tt.Size() // same slot, different key

	tt.Store(key, 4, 3.5, TTExact, board.NoMove)

	if _, ok := tt.Probe(collider); ok {
		t.Error("probe returned an entry for a colliding key")
	}

	entry, ok := tt.Probe(key)
	if !ok || entry.Key != key {
		t.Error("original entry lost or corrupted")
	}
}
