package journal

import (
	"context"
	"fmt"
	"time"
)

// WriteSnapshot archives content as the state file of game at universal
// time ut and returns the stored record.
//
// Uses ON CONFLICT(id) DO NOTHING for idempotency: archiving identical
// content again returns the existing snapshot with its original seq.
func (s *Store) WriteSnapshot(ctx context.Context, game string, ut float64, content []byte) (Snapshot, error) {
	id := SnapshotID(game, content)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("write snapshot: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO games (title) VALUES (?)
		ON CONFLICT(title) DO NOTHING
	`, game); err != nil {
		return Snapshot{}, fmt.Errorf("write snapshot: game: %w", err)
	}

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM snapshots`).Scan(&seq); err != nil {
		return Snapshot{}, fmt.Errorf("write snapshot: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots
		(id, game, universal_time, content, seq, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		id,
		game,
		ut,
		content,
		seq,
		s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return Snapshot{}, fmt.Errorf("write snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Snapshot{}, fmt.Errorf("write snapshot: commit: %w", err)
	}

	return s.ReadSnapshot(ctx, id)
}
