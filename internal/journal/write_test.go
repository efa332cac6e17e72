package journal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/persistrot/internal/testutil"
)

func TestSnapshotID(t *testing.T) {
	a := SnapshotID("default", []byte("TIME = 1\n"))
	assert.Len(t, a, 64)
	assert.Equal(t, a, SnapshotID("default", []byte("TIME = 1\n")), "stable")
	assert.NotEqual(t, a, SnapshotID("other", []byte("TIME = 1\n")), "game is part of identity")
	assert.NotEqual(t, a, SnapshotID("default", []byte("TIME = 2\n")), "content is part of identity")

	// The separator keeps game/content boundaries unambiguous.
	assert.NotEqual(t, SnapshotID("ab", []byte("c")), SnapshotID("a", []byte("bc")))
}

func TestWriteSnapshot(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	snap, err := s.WriteSnapshot(ctx, "default", 42.5, []byte("TIME = 42.5\n"))
	require.NoError(t, err)

	assert.Equal(t, SnapshotID("default", []byte("TIME = 42.5\n")), snap.ID)
	assert.Equal(t, "default", snap.Game)
	assert.Equal(t, 42.5, snap.UniversalTime)
	assert.Equal(t, []byte("TIME = 42.5\n"), snap.Content)
	assert.Equal(t, int64(1), snap.Seq)
	assert.True(t, snap.CreatedAt.Equal(testutil.DefaultEpoch))
}

func TestWriteSnapshot_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	first, err := s.WriteSnapshot(ctx, "default", 1, []byte("same"))
	require.NoError(t, err)
	second, err := s.WriteSnapshot(ctx, "default", 1, []byte("same"))
	require.NoError(t, err)

	assert.Equal(t, first, second)

	snaps, err := s.ListSnapshots(ctx, "default")
	require.NoError(t, err)
	assert.Len(t, snaps, 1)
}

func TestWriteSnapshot_SeqIsMonotonic(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for _, c := range []string{"a", "b", "a", "c"} {
		snap, err := s.WriteSnapshot(ctx, "default", 1, []byte(c))
		require.NoError(t, err)
		seqs = append(seqs, snap.Seq)
	}

	assert.Equal(t, []int64{1, 2, 1, 3}, seqs)
}

func TestWriteSnapshot_ContextCanceled(t *testing.T) {
	s := createTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.WriteSnapshot(ctx, "default", 1, []byte("x"))
	assert.Error(t, err)
}
