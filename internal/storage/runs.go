package storage

import (
	"fmt"
	"time"

	"github.com/vovakirdan/memory-lane/internal/platformer"
)

// RunEntry is one finished or abandoned run.
type RunEntry struct {
	ID        int64
	LevelID   string
	Player    string
	Pickups   int
	LivesLost int
	Ticks     int
	Outcome   string // "goal" or "abandoned"
	CreatedAt time.Time
}

// SaveRun records a run. Returns the ID of the inserted record.
func (s *Store) SaveRun(run RunEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (level_id, player, pickups, lives_lost, ticks, outcome)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.LevelID, run.Player, run.Pickups, run.LivesLost, run.Ticks, run.Outcome,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecordRun saves a platformer run summary for player.
func (s *Store) RecordRun(player string, sum platformer.RunSummary) error {
	_, err := s.SaveRun(RunEntry{
		LevelID:   sum.Level,
		Player:    player,
		Pickups:   sum.Pickups,
		LivesLost: sum.LivesLost,
		Ticks:     sum.Ticks,
		Outcome:   sum.Outcome,
	})
	return err
}

// RecentRuns returns the latest runs, newest first. An empty levelID
// matches every level.
func (s *Store) RecentRuns(levelID string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, player, pickups, lives_lost, ticks, outcome, created_at
		 FROM runs
		 WHERE ? = '' OR level_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		levelID, levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunEntry
	for rows.Next() {
		var r RunEntry
		var createdAt any
		if err := rows.Scan(&r.ID, &r.LevelID, &r.Player, &r.Pickups, &r.LivesLost, &r.Ticks, &r.Outcome, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// RunStats contains aggregated statistics for a level.
type RunStats struct {
	LevelID      string
	Runs         int
	Goals        int
	FastestGoal  int // Ticks of the quickest goal run, 0 when none
	TotalPickups int
	LivesLost    int
}

// LevelStats aggregates the run history of a level.
func (s *Store) LevelStats(levelID string) (*RunStats, error) {
	stats := &RunStats{LevelID: levelID}

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'goal' THEN 1 ELSE 0 END), 0),
		        COALESCE(MIN(CASE WHEN outcome = 'goal' THEN ticks END), 0),
		        COALESCE(SUM(pickups), 0),
		        COALESCE(SUM(lives_lost), 0)
		 FROM runs WHERE level_id = ?`,
		levelID,
	).Scan(&stats.Runs, &stats.Goals, &stats.FastestGoal, &stats.TotalPickups, &stats.LivesLost)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	return stats, nil
}
