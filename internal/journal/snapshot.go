package journal

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

// DomainSnapshot prefixes snapshot hashes. The version suffix allows the
// algorithm to change without colliding with old ids.
const DomainSnapshot = "persistrot/snapshot/v1"

var (
	// ErrNotFound is returned when no snapshot matches a lookup.
	ErrNotFound = errors.New("snapshot not found")
	// ErrAmbiguous is returned when an id prefix matches several snapshots.
	ErrAmbiguous = errors.New("snapshot id prefix is ambiguous")
)

// Snapshot is one archived state file.
type Snapshot struct {
	ID            string
	Game          string
	UniversalTime float64
	Content       []byte
	Seq           int64
	CreatedAt     time.Time
}

// SnapshotID computes the content-addressed id of a state file.
// Format: SHA256(domain + 0x00 + game + 0x00 + content)
func SnapshotID(game string, content []byte) string {
	h := sha256.New()
	h.Write([]byte(DomainSnapshot))
	h.Write([]byte{0x00})
	h.Write([]byte(game))
	h.Write([]byte{0x00})
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}
