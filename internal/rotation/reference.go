package rotation

import (
	"github.com/roach88/persistrot/internal/host"
	"github.com/roach88/persistrot/internal/vec"
)

// noneValue is stored for vessels without a reference object.
const noneValue = "NONE"

// RefKind tags what a Reference points at.
type RefKind uint8

// Reference kinds.
const (
	// RefNone points at nothing.
	RefNone RefKind = iota
	// RefBody points at a celestial body by name.
	RefBody
	// RefVessel points at another vessel by id.
	RefVessel
)

// String returns the lowercase kind name.
func (k RefKind) String() string {
	switch k {
	case RefNone:
		return "none"
	case RefBody:
		return "body"
	case RefVessel:
		return "vessel"
	default:
		return "invalid"
	}
}

// Reference is a weak link to the object a vessel's direction is anchored
// to. It holds a lookup key, never the object itself, and is re-resolved
// against the live registry when needed.
type Reference struct {
	Kind RefKind
	// Key is the body name for RefBody and the vessel id for RefVessel.
	Key string
}

// NoReference is the zero Reference.
var NoReference = Reference{}

// BodyRef references a celestial body by name.
func BodyRef(name string) Reference {
	return Reference{Kind: RefBody, Key: name}
}

// VesselRef references another tracked vessel.
func VesselRef(id host.ObjectID) Reference {
	return Reference{Kind: RefVessel, Key: string(id)}
}

// IsNone reports whether r points at nothing.
func (r Reference) IsNone() bool {
	return r.Kind == RefNone
}

// String is a readable form for tables and logs: NONE or kind:key.
func (r Reference) String() string {
	if r.Kind == RefNone {
		return noneValue
	}
	return r.Kind.String() + ":" + r.Key
}

// Target is the live object a Reference resolves to. Exactly one of Body
// and Vessel is set, as given by Kind.
type Target struct {
	Kind   RefKind
	Body   host.Body
	Vessel host.Vessel
}

// Name is the body name or the vessel name of the target.
func (t Target) Name() string {
	if t.Kind == RefVessel {
		return t.Vessel.Name
	}
	return t.Body.Name
}

// Position is the current position of the target.
func (t Target) Position() vec.Vec3 {
	if t.Kind == RefVessel {
		return t.Vessel.Position
	}
	return t.Body.Position
}

// Resolve looks the referenced object up in reg. ok is false when r is
// None or its target is gone.
func (r Reference) Resolve(reg host.Registry) (Target, bool) {
	switch r.Kind {
	case RefBody:
		if b, ok := host.FindBody(reg, r.Key); ok {
			return Target{Kind: RefBody, Body: b}, true
		}
	case RefVessel:
		if v, ok := host.FindVessel(reg, host.ObjectID(r.Key)); ok {
			return Target{Kind: RefVessel, Vessel: v}, true
		}
	}
	return Target{}, false
}

// Position returns the current position of the referenced object, or
// false when r is None or its target is gone.
func (r Reference) Position(reg host.Registry) (vec.Vec3, bool) {
	t, ok := r.Resolve(reg)
	if !ok {
		return vec.Vec3{}, false
	}
	return t.Position(), true
}

// encodeReference returns the persisted form of r. ok is false for kinds
// that cannot be written, in which case the value is "NONE".
func encodeReference(r Reference) (value string, ok bool) {
	switch r.Kind {
	case RefNone:
		return noneValue, true
	case RefBody, RefVessel:
		if r.Key == "" {
			return noneValue, false
		}
		return r.Key, true
	default:
		return noneValue, false
	}
}

// resolveReference turns a persisted value back into a Reference.
//
// Bodies are matched by exact name first, then live vessels by exact id;
// a vessel match overrides a body match for the same value. Anything
// unmatched resolves to NoReference.
func resolveReference(value string, bodies []host.Body, vessels []host.Vessel) Reference {
	if value == noneValue {
		return NoReference
	}
	ref := NoReference
	for _, b := range bodies {
		if b.Name == value {
			ref = BodyRef(b.Name)
		}
	}
	for _, v := range vessels {
		if string(v.ID) == value {
			ref = VesselRef(v.ID)
		}
	}
	return ref
}
