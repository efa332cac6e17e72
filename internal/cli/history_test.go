package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/persistrot/internal/journal"
)

func createJournal(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := journal.Open(path)
	require.NoError(t, err)
	require.NoError(t, j.Close())
	return path
}

func TestHistory_Empty(t *testing.T) {
	out, _, err := execute(t, "history", "--db", createJournal(t))
	require.NoError(t, err)
	assert.Contains(t, out, "No snapshots found.")
}

func TestHistory_AfterSimulatedSessions(t *testing.T) {
	root := t.TempDir()
	db := filepath.Join(t.TempDir(), "journal.db")
	world := writeWorld(t, worldYAML)

	_, _, err := execute(t, "simulate", "--root", root, "--world", world, "--save", "--db", db)
	require.NoError(t, err)

	out, _, err := execute(t, "--format", "json", "history", "--db", db)
	require.NoError(t, err)
	result := decodeData[HistoryResult](t, out)
	require.Equal(t, 1, result.Total)
	snap := result.Snapshots[0]
	assert.Equal(t, "default (SANDBOX)", snap.Game)
	assert.Equal(t, 100.0, snap.UniversalTime)
	assert.Equal(t, int64(1), snap.Seq)
	assert.Positive(t, snap.Size)

	out, _, err = execute(t, "history", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Snapshots: 1")
	assert.Contains(t, out, snap.ID[:12])
}

func TestHistory_FilterByGame(t *testing.T) {
	db := filepath.Join(t.TempDir(), "journal.db")
	j, err := journal.Open(db)
	require.NoError(t, err)
	ctx := context.Background()
	_, err = j.WriteSnapshot(ctx, "alpha", 1, []byte("TIME = 1\n"))
	require.NoError(t, err)
	_, err = j.WriteSnapshot(ctx, "beta", 2, []byte("TIME = 2\n"))
	require.NoError(t, err)
	require.NoError(t, j.Close())

	out, _, err := execute(t, "--format", "json", "history", "--db", db, "--game", "beta")
	require.NoError(t, err)
	result := decodeData[HistoryResult](t, out)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "beta", result.Snapshots[0].Game)
	assert.Empty(t, result.Games)

	out, _, err = execute(t, "--format", "json", "history", "--db", db)
	require.NoError(t, err)
	result = decodeData[HistoryResult](t, out)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, []string{"alpha", "beta"}, result.Games)

	out, _, err = execute(t, "history", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Games: alpha, beta")
}

func TestHistory_MissingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.db")

	out, _, err := execute(t, "--format", "json", "history", "--db", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, ErrCodeNotFound, decodeError(t, out))
	assert.NoFileExists(t, path, "history must not create the database")
}
