package engine

import (
	"sync"

	"github.com/hailam/deepmate/internal/board"
)

// TTFlag indicates the type of bound stored in the transposition table.
type TTFlag uint8

const (
	TTExact      TTFlag = iota // Exact score
	TTLowerBound               // Failed high (beta cutoff)
	TTUpperBound               // Failed low
)

// Number of shards for TT locking
const ttShardCount = 256

// TTEntry represents an entry in the transposition table.
type TTEntry struct {
	Key      uint64     // Full 64-bit Zobrist hash for verification
	BestMove board.Move // Best move found
	Score    float64    // Score, bounded per Flag
	Depth    int        // Search depth
	Flag     TTFlag     // Type of bound
}

// TranspositionTable is a fixed-capacity direct-map cache of search results
// keyed by Zobrist hash. Sharded locks keep concurrently written entries
// consistent; a probe trusts an entry only after full key verification, so a
// slot collision reads as a miss.
type TranspositionTable struct {
	entries []TTEntry
	shards  [ttShardCount]sync.RWMutex
	size    uint64
}

// NewTranspositionTable creates a transposition table sized from an MB
// budget.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	const entrySize = 32
	numEntries := uint64(sizeMB) * 1024 * 1024 / entrySize
	if numEntries < 1 {
		numEntries = 1
	}

	return &TranspositionTable{
		entries: make([]TTEntry, numEntries),
		size:    numEntries,
	}
}

// Probe looks up a position. Returns the entry and true only when the full
// 64-bit key matches.
func (tt *TranspositionTable) Probe(hash uint64) (TTEntry, bool) {
	idx := hash % tt.size
	shard := idx % ttShardCount

	tt.shards[shard].RLock()
	entry := tt.entries[idx]
	tt.shards[shard].RUnlock()

	if entry.Key == hash && entry.Depth > 0 {
		return entry, true
	}
	return TTEntry{}, false
}

// Store saves a search result. Replacement is depth-preferred: the slot is
// overwritten only when empty or when the new entry searched at least as
// deep.
func (tt *TranspositionTable) Store(hash uint64, depth int, score float64, flag TTFlag, bestMove board.Move) {
	idx := hash % tt.size
	shard := idx % ttShardCount

	tt.shards[shard].Lock()
	entry := &tt.entries[idx]
	if entry.Key == 0 || depth >= entry.Depth {
		*entry = TTEntry{
			Key:      hash,
			BestMove: bestMove,
			Score:    score,
			Depth:    depth,
			Flag:     flag,
		}
	}
	tt.shards[shard].Unlock()
}

// Clear empties the table.
func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
}

// Size returns the number of entries in the table.
func (tt *TranspositionTable) Size() uint64 {
	return tt.size
}
