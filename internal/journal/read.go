package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const snapshotColumns = `id, game, universal_time, content, seq, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (Snapshot, error) {
	var (
		snap    Snapshot
		created string
	)
	if err := row.Scan(&snap.ID, &snap.Game, &snap.UniversalTime, &snap.Content, &snap.Seq, &created); err != nil {
		return Snapshot{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot %s: created_at: %w", snap.ID, err)
	}
	snap.CreatedAt = t
	return snap, nil
}

// ReadSnapshot returns the snapshot with the given id, or ErrNotFound.
func (s *Store) ReadSnapshot(ctx context.Context, id string) (Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+snapshotColumns+` FROM snapshots WHERE id = ?`, id)
	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("read snapshot %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot %s: %w", id, err)
	}
	return snap, nil
}

// FindSnapshot returns the snapshot whose id is idOrPrefix or, failing
// that, the only snapshot whose id starts with it.
func (s *Store) FindSnapshot(ctx context.Context, idOrPrefix string) (Snapshot, error) {
	snap, err := s.ReadSnapshot(ctx, idOrPrefix)
	if !errors.Is(err, ErrNotFound) {
		return snap, err
	}
	if idOrPrefix == "" {
		return Snapshot{}, fmt.Errorf("find snapshot: empty id: %w", ErrNotFound)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id FROM snapshots
		WHERE substr(id, 1, length(?)) = ?
		ORDER BY id COLLATE BINARY ASC
		LIMIT 2
	`, idOrPrefix, idOrPrefix)
	if err != nil {
		return Snapshot{}, fmt.Errorf("find snapshot %s: %w", idOrPrefix, err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return Snapshot{}, fmt.Errorf("find snapshot %s: %w", idOrPrefix, err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("find snapshot %s: %w", idOrPrefix, err)
	}

	switch len(ids) {
	case 0:
		return Snapshot{}, fmt.Errorf("find snapshot %s: %w", idOrPrefix, ErrNotFound)
	case 1:
		return s.ReadSnapshot(ctx, ids[0])
	default:
		return Snapshot{}, fmt.Errorf("find snapshot %s: %w", idOrPrefix, ErrAmbiguous)
	}
}

// Latest returns the most recently archived snapshot of game, or
// ErrNotFound.
func (s *Store) Latest(ctx context.Context, game string) (Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+snapshotColumns+`
		FROM snapshots
		WHERE game = ?
		ORDER BY seq DESC
		LIMIT 1
	`, game)
	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("latest snapshot of %q: %w", game, ErrNotFound)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("latest snapshot of %q: %w", game, err)
	}
	return snap, nil
}

// ListSnapshots returns the snapshots of game in archive order. An empty
// game lists every snapshot.
//
// Returns an empty slice (not nil) if there are none.
func (s *Store) ListSnapshots(ctx context.Context, game string) ([]Snapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM snapshots`
	var args []any
	if game != "" {
		query += ` WHERE game = ?`
		args = append(args, game)
	}
	query += ` ORDER BY seq ASC, id COLLATE BINARY ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	snaps := []Snapshot{}
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return snaps, nil
}

// ListGames returns every game title with at least one snapshot, sorted.
func (s *Store) ListGames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT game FROM snapshots
		ORDER BY game COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	games := []string{}
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}
	return games, nil
}
