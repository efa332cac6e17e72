package journal

import (
	"path/filepath"
	"testing"

	"github.com/roach88/persistrot/internal/testutil"
)

// createTestStore opens a fresh journal with a deterministic clock.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.db")
	s, err := Open(path, WithClock(testutil.NewDeterministicClock().Now))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
