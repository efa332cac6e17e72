package host

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// ObjectID is the stable identifier of a trackable vessel.
type ObjectID string

// NewObjectID returns a fresh time-sortable id (UUIDv7).
//
// Panics if UUID generation fails (should never happen in practice).
func NewObjectID() ObjectID {
	return ObjectID(uuid.Must(uuid.NewV7()).String())
}

// CanonicalID rewrites GUID-shaped ids into the lowercase hyphenated form
// the host uses when it stringifies vessel ids. Anything else is returned
// in NFC form.
func CanonicalID(s string) ObjectID {
	s = strings.TrimSpace(s)
	if u, err := uuid.Parse(s); err == nil {
		return ObjectID(u.String())
	}
	return ObjectID(CanonicalName(s))
}

// CanonicalName returns a body or vessel name in NFC form, so names typed
// with combining marks match their precomposed spelling.
func CanonicalName(s string) string {
	return norm.NFC.String(s)
}

// String returns the id text.
func (id ObjectID) String() string { return string(id) }

// VesselType is the host's vessel classification.
type VesselType string

// Vessel types, by their lowercase host names.
const (
	TypeShip        VesselType = "ship"
	TypeProbe       VesselType = "probe"
	TypeRelay       VesselType = "relay"
	TypeRover       VesselType = "rover"
	TypeLander      VesselType = "lander"
	TypeStation     VesselType = "station"
	TypeBase        VesselType = "base"
	TypeEVA         VesselType = "eva"
	TypeFlag        VesselType = "flag"
	TypeDebris      VesselType = "debris"
	TypeSpaceObject VesselType = "space_object"
	TypeUnknown     VesselType = "unknown"
)

var vesselTypes = []VesselType{
	TypeShip, TypeProbe, TypeRelay, TypeRover, TypeLander, TypeStation,
	TypeBase, TypeEVA, TypeFlag, TypeDebris, TypeSpaceObject, TypeUnknown,
}

// Loose reports whether vessels of this type are untracked objects that
// start with a small random tumble instead of zero momentum.
func (t VesselType) Loose() bool {
	return t == TypeSpaceObject || t == TypeUnknown
}

// ParseVesselType maps a type name to a VesselType. The empty string is
// TypeShip.
func ParseVesselType(s string) (VesselType, error) {
	if s == "" {
		return TypeShip, nil
	}
	t := VesselType(strings.ToLower(s))
	for _, known := range vesselTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown vessel type %q", s)
}

// Situation is the vessel's flight situation.
type Situation string

// Flight situations, by their lowercase host names.
const (
	SituationPrelaunch  Situation = "prelaunch"
	SituationLanded     Situation = "landed"
	SituationSplashed   Situation = "splashed"
	SituationFlying     Situation = "flying"
	SituationSubOrbital Situation = "sub_orbital"
	SituationOrbiting   Situation = "orbiting"
	SituationEscaping   Situation = "escaping"
	SituationDocked     Situation = "docked"
)

var situations = []Situation{
	SituationPrelaunch, SituationLanded, SituationSplashed, SituationFlying,
	SituationSubOrbital, SituationOrbiting, SituationEscaping, SituationDocked,
}

// ParseSituation maps a situation name to a Situation. The empty string is
// SituationOrbiting.
func ParseSituation(s string) (Situation, error) {
	if s == "" {
		return SituationOrbiting, nil
	}
	sit := Situation(strings.ToLower(s))
	for _, known := range situations {
		if sit == known {
			return sit, nil
		}
	}
	return "", fmt.Errorf("unknown situation %q", s)
}
