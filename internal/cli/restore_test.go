package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/persistrot/internal/journal"
	"github.com/roach88/persistrot/internal/rotation"
)

func TestRestore_RoundTrip(t *testing.T) {
	root := t.TempDir()
	db := filepath.Join(t.TempDir(), "journal.db")
	world := writeWorld(t, worldYAML)

	out, _, err := execute(t, "--format", "json", "simulate", "--root", root, "--world", world, "--save", "--db", db)
	require.NoError(t, err)
	saved := decodeData[SimulateResult](t, out)

	original, err := os.ReadFile(saved.Primary)
	require.NoError(t, err)
	require.NoError(t, os.Remove(saved.Primary))

	out, _, err = execute(t, "--format", "json", "history", "--db", db)
	require.NoError(t, err)
	id := decodeData[HistoryResult](t, out).Snapshots[0].ID

	out, _, err = execute(t, "--format", "json", "restore", "--db", db, "--id", id[:8], "--root", root)
	require.NoError(t, err)
	restored := decodeData[RestoreResult](t, out)
	assert.Equal(t, id, restored.ID)
	assert.Equal(t, saved.Primary, restored.Primary)

	data, err := os.ReadFile(saved.Primary)
	require.NoError(t, err)
	assert.Equal(t, original, data)
}

func TestRestore_Text(t *testing.T) {
	db := filepath.Join(t.TempDir(), "journal.db")
	j, err := journal.Open(db)
	require.NoError(t, err)
	snap, err := j.WriteSnapshot(context.Background(), "default (SANDBOX)", 12.5, []byte("TIME = 12.5\n"))
	require.NoError(t, err)
	require.NoError(t, j.Close())

	root := t.TempDir()
	out, _, err := execute(t, "restore", "--db", db, "--id", snap.ID, "--root", root)
	require.NoError(t, err)

	primary := rotation.PathsFor(root, "default (SANDBOX)").Primary
	assert.Contains(t, out, "Restored "+snap.ID[:12]+" (UT 12.5) to "+primary)
	data, err := os.ReadFile(primary)
	require.NoError(t, err)
	assert.Equal(t, "TIME = 12.5\n", string(data))
}

func TestRestore_Errors(t *testing.T) {
	db := filepath.Join(t.TempDir(), "journal.db")
	j, err := journal.Open(db)
	require.NoError(t, err)
	bad, err := j.WriteSnapshot(context.Background(), "broken", 1, []byte("}\n"))
	require.NoError(t, err)
	require.NoError(t, j.Close())

	tests := []struct {
		name     string
		db       string
		id       string
		wantCode string
	}{
		{"missing database", filepath.Join(t.TempDir(), "nope.db"), "abc", ErrCodeNotFound},
		{"unknown id", db, "zzzz", ErrCodeNotFound},
		{"corrupt snapshot", db, bad.ID, ErrCodeParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, "--format", "json", "restore", "--db", tt.db, "--id", tt.id, "--root", t.TempDir())
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Equal(t, tt.wantCode, decodeError(t, out))
		})
	}
}
