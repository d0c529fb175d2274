package storage

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/memory-lane/internal/platformer"
)

// Ledger adapts a Store key to platformer.LedgerStore. Read failures are
// logged and read as an empty ledger so a damaged database never blocks play.
type Ledger struct {
	store  *Store
	key    string
	logger *log.Logger
}

// Ledger returns the collected-memories ledger stored under key.
func (s *Store) Ledger(key string, logger *log.Logger) *Ledger {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Ledger{store: s, key: key, logger: logger}
}

// PlayerKey scopes a ledger key to one player. Local play uses the bare key.
func PlayerKey(key, player string) string {
	if player == "" {
		return key
	}
	return key + ":" + player
}

// Key returns the kv key backing the ledger.
func (l *Ledger) Key() string { return l.key }

// Load implements platformer.LedgerStore.
func (l *Ledger) Load() []int {
	ids, err := l.store.LoadIDs(l.key)
	if err != nil {
		l.logger.Warn("cannot load ledger, starting empty", "key", l.key, "err", err)
	}
	return ids
}

// Save implements platformer.LedgerStore.
func (l *Ledger) Save(ids []int) error {
	return l.store.SaveIDs(l.key, ids)
}

// Ensure Ledger implements platformer.LedgerStore
var _ platformer.LedgerStore = (*Ledger)(nil)
