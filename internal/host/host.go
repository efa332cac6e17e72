// Package host describes what the rotation store needs from the running
// simulation: the live vessel set, the celestial bodies, the clock and the
// active game.
//
// The live game implements these interfaces. Fixture is a file-described
// stand-in used by the CLI and by tests.
package host

import (
	"github.com/roach88/persistrot/internal/vec"
)

// Registry is the read-only view of the simulation the store reconciles
// against.
type Registry interface {
	// Vessels returns every live vessel.
	Vessels() []Vessel
	// Bodies returns every celestial body.
	Bodies() []Body
	// UniversalTime is the current simulation time in seconds.
	UniversalTime() float64
}

// World adds the session-level facts a controller needs.
type World interface {
	Registry
	// GameTitle is the display name of the loaded save game.
	GameTitle() string
	// ActiveVessel returns the vessel under player control, if any.
	ActiveVessel() (Vessel, bool)
}

// Vessel is a snapshot of one live vessel.
type Vessel struct {
	ID        ObjectID
	Name      string
	Type      VesselType
	Situation Situation
	Rotation  vec.Quat
	Position  vec.Vec3

	// MainBody is the name of the body the vessel orbits and
	// MainBodyPosition its current position.
	MainBody         string
	MainBodyPosition vec.Vec3
}

// DirectionToMainBody is the unit vector from the vessel to its main body.
func (v Vessel) DirectionToMainBody() vec.Vec3 {
	return v.MainBodyPosition.Sub(v.Position).Normalize()
}

// Body is a celestial body. Bodies are identified by name.
type Body struct {
	Name     string
	Position vec.Vec3
}

// FindVessel returns the live vessel with the given id.
func FindVessel(r Registry, id ObjectID) (Vessel, bool) {
	for _, v := range r.Vessels() {
		if v.ID == id {
			return v, true
		}
	}
	return Vessel{}, false
}

// FindBody returns the body with exactly the given name.
func FindBody(r Registry, name string) (Body, bool) {
	for _, b := range r.Bodies() {
		if b.Name == name {
			return b, true
		}
	}
	return Body{}, false
}
