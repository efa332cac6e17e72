package testutil

import (
	"bytes"
	"log/slog"
	"math/rand/v2"

	"github.com/roach88/persistrot/internal/host"
	"github.com/roach88/persistrot/internal/vec"
)

// Fixed vessel ids for tests. They are GUID-shaped like the host's own ids.
const (
	ID1 host.ObjectID = "00000000-0000-7000-8000-000000000001"
	ID2 host.ObjectID = "00000000-0000-7000-8000-000000000002"
	ID3 host.ObjectID = "00000000-0000-7000-8000-000000000003"
)

// Orbit is a distance that is a power of two, so directions computed from
// axis-aligned positions at this distance are exact unit vectors.
const Orbit = 1 << 20

// NewWorld returns a fixture with Kerbin at the origin and the Mun on the
// +X axis, and no vessels.
func NewWorld(title string, ut float64) *host.Fixture {
	f := &host.Fixture{Title: title, UT: ut}
	f.AddBody(host.Body{Name: "Kerbin"})
	f.AddBody(host.Body{Name: "Mun", Position: vec.Vec3{X: 12 * Orbit}})
	return f
}

// NewVessel returns an orbiting vessel around Kerbin at pos with identity
// rotation.
func NewVessel(id host.ObjectID, name string, typ host.VesselType, pos vec.Vec3) host.Vessel {
	return host.Vessel{
		ID:        id,
		Name:      name,
		Type:      typ,
		Situation: host.SituationOrbiting,
		Rotation:  vec.Identity,
		Position:  pos,
		MainBody:  "Kerbin",
	}
}

// SeededRand returns a deterministic random source.
func SeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// NewLogger returns a text logger at debug level writing to the returned
// buffer, for asserting on log output.
func NewLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, &buf
}
