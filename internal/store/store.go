// Package store holds the five in-memory tables backing the travels service:
// three primary entity tables plus the two denormalized index tables the
// query endpoints read from.
package store

import (
	"errors"
	"sync"

	"github.com/hlcup17/travels/internal/domain/travel"
)

// ErrNotFound is the canonical miss: the ID names no record in the table.
var ErrNotFound = errors.New("record not found")

// Table is a concurrent, in-memory KV indexed by int32 IDs.
//
// Concurrency:
//   - Per-table write serialization via exclusive lock
//   - Concurrent reads via shared lock
//   - Lock scope is one call. Read-modify-write sequences span several calls
//     and may interleave with other writers; per-table atomicity of a single
//     call is the contract, cross-call atomicity is the caller's concern.
//
// Semantics:
//   - Values are stored and returned by value; callers never share live
//     memory with the table.
//
// Typical costs: O(1) map operations throughout.
type Table[V any] struct {
	mu sync.RWMutex
	m  map[int32]V
}

// NewTable constructs a ready-to-use Table. Safe for concurrent use post-return.
func NewTable[V any]() *Table[V] {
	return &Table[V]{m: make(map[int32]V)}
}

// Exists reports whether id names a record.
func (t *Table[V]) Exists(id int32) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.m[id]
	return ok
}

// Load returns (value, ok).
func (t *Table[V]) Load(id int32) (V, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.m[id]
	return v, ok
}

// Save inserts or overwrites the record at id.
func (t *Table[V]) Save(id int32, v V) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.m[id] = v
}

// Len returns the record count.
func (t *Table[V]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.m)
}

// ListTable is the Table variant for the index lists.
//
// Load hands out a defensive copy: mutators edit the copy and publish it back
// via Save, so a reader holding the previous snapshot is never affected by an
// in-flight rewrite. Costs O(n) per Load; lists are per-entity and small.
type ListTable[E any] struct {
	mu sync.RWMutex
	m  map[int32][]E
}

// NewListTable constructs a ready-to-use ListTable. Safe for concurrent use post-return.
func NewListTable[E any]() *ListTable[E] {
	return &ListTable[E]{m: make(map[int32][]E)}
}

// Load returns a copy of the list at id and whether the list exists.
// An existing empty list yields ([], true); a missing one (nil, false).
func (t *ListTable[E]) Load(id int32) ([]E, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	list, ok := t.m[id]
	if !ok {
		return nil, false
	}
	out := make([]E, len(list))
	copy(out, list)
	return out, true
}

// Save inserts or overwrites the list at id. The slice is owned by the table
// from this point; callers must not retain and mutate it.
func (t *ListTable[E]) Save(id int32, list []E) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.m[id] = list
}

// Exists reports whether id names a list.
func (t *ListTable[E]) Exists(id int32) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.m[id]
	return ok
}

// Len returns the list count.
func (t *ListTable[E]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.m)
}

// Store is the denormalized dual-index store. The entity tables are
// authoritative; the two index tables are derived from them and maintained in
// lock-step by the service layer's write fan-out.
//
// Each table carries its own lock: readers of one table are never blocked by
// writers of another. Nothing provides cross-table atomicity; a concurrent
// reader may observe the store between two fan-out steps of one write.
type Store struct {
	Users     *Table[travel.User]
	Locations *Table[travel.Location]
	Visits    *Table[travel.Visit]

	// UserVisits maps user ID → rows sorted nondecreasing by visited_at.
	UserVisits *ListTable[travel.UserVisit]
	// LocationMarks maps location ID → rows in arbitrary order.
	LocationMarks *ListTable[travel.LocationMark]
}

// New constructs an empty Store.
func New() *Store {
	return &Store{
		Users:         NewTable[travel.User](),
		Locations:     NewTable[travel.Location](),
		Visits:        NewTable[travel.Visit](),
		UserVisits:    NewListTable[travel.UserVisit](),
		LocationMarks: NewListTable[travel.LocationMark](),
	}
}
