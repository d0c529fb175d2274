package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrMalformed is returned alongside an empty result when a stored id list
// cannot be decoded.
var ErrMalformed = errors.New("malformed id list")

// Get returns the raw value stored under key and whether it exists.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read key %s: %w", key, err)
	}
	return value, true, nil
}

// Put stores a raw value under key, replacing any previous value.
func (s *Store) Put(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write key %s: %w", key, err)
	}
	return nil
}

// LoadIDs decodes the JSON integer array stored under key. A missing key
// yields an empty list. A malformed value yields an empty list and an error
// wrapping ErrMalformed.
func (s *Store) LoadIDs(key string) ([]int, error) {
	raw, ok, err := s.Get(key)
	if err != nil || !ok {
		return []int{}, err
	}
	ids, err := decodeIDs(raw)
	if err != nil {
		return []int{}, fmt.Errorf("storage: key %s: %w", key, err)
	}
	return ids, nil
}

// SaveIDs merges ids into the list stored under key. Existing ids are never
// removed and duplicates are stored once. A malformed stored value is
// replaced by the merge of ids alone.
func (s *Store) SaveIDs(key string, ids []int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	var raw string
	err = tx.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&raw)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("storage: cannot read key %s: %w", key, err)
	}

	set := make(map[int]struct{})
	if existing, derr := decodeIDs(raw); derr == nil {
		for _, id := range existing {
			set[id] = struct{}{}
		}
	}
	for _, id := range ids {
		set[id] = struct{}{}
	}

	merged := make([]int, 0, len(set))
	for id := range set {
		merged = append(merged, id)
	}
	sort.Ints(merged)

	data, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("storage: cannot encode ids: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, string(data),
	); err != nil {
		return fmt.Errorf("storage: cannot write key %s: %w", key, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

func decodeIDs(raw string) ([]int, error) {
	if raw == "" {
		return []int{}, nil
	}
	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if ids == nil {
		ids = []int{}
	}
	return ids, nil
}
