package platformer

import (
	"sort"
	"sync"
)

// LedgerStore persists the set of collectible ids ever obtained.
// Load must return an empty slice for missing or malformed data.
// Save must merge ids into what is stored and never remove any.
type LedgerStore interface {
	Load() []int
	Save(ids []int) error
}

// Ledger tracks collected memories across runs and pickup events in the
// current run. The two counters are independent: SessionPickups counts every
// pickup event, including ids that were already in the persisted set.
type Ledger struct {
	collected      map[int]struct{}
	sessionPickups int
	store          LedgerStore
}

// NewLedger loads the persisted set from store. A nil store keeps the ledger
// in memory only.
func NewLedger(store LedgerStore) *Ledger {
	l := &Ledger{collected: make(map[int]struct{}), store: store}
	if store != nil {
		for _, id := range store.Load() {
			l.collected[id] = struct{}{}
		}
	}
	return l
}

// Record registers a pickup event. It reports whether the id was new to the
// persisted set; only new ids trigger a save.
func (l *Ledger) Record(id int) (bool, error) {
	l.sessionPickups++

	if _, ok := l.collected[id]; ok {
		return false, nil
	}
	l.collected[id] = struct{}{}

	if l.store == nil {
		return true, nil
	}
	return true, l.store.Save(l.IDs())
}

// Has reports whether id is in the persisted set.
func (l *Ledger) Has(id int) bool {
	_, ok := l.collected[id]
	return ok
}

// IDs returns the persisted set in ascending order.
func (l *Ledger) IDs() []int {
	ids := make([]int, 0, len(l.collected))
	for id := range l.collected {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Len returns the size of the persisted set.
func (l *Ledger) Len() int { return len(l.collected) }

// SessionPickups returns the number of pickup events this run.
func (l *Ledger) SessionPickups() int { return l.sessionPickups }

// ResetSession zeroes the run counter and keeps the persisted set.
func (l *Ledger) ResetSession() { l.sessionPickups = 0 }

// MemoryStore is an in-process LedgerStore. It is safe for concurrent use.
type MemoryStore struct {
	mu  sync.Mutex
	ids map[int]struct{}
}

// NewMemoryStore returns a store pre-populated with ids.
func NewMemoryStore(ids ...int) *MemoryStore {
	s := &MemoryStore{ids: make(map[int]struct{})}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

func (s *MemoryStore) Load() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]int, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

func (s *MemoryStore) Save(ids []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ids == nil {
		s.ids = make(map[int]struct{})
	}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return nil
}
