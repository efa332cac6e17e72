package host

import (
	"fmt"
	"slices"

	"github.com/roach88/persistrot/internal/vec"
)

// Fixture is an in-memory World. The CLI builds one from a fixture file;
// tests build them directly.
type Fixture struct {
	Title    string
	UT       float64
	ActiveID ObjectID

	BodyList   []Body
	VesselList []Vessel
}

var _ World = (*Fixture)(nil)

// Vessels returns a copy of the live vessels.
func (f *Fixture) Vessels() []Vessel { return slices.Clone(f.VesselList) }

// Bodies returns a copy of the celestial bodies.
func (f *Fixture) Bodies() []Body { return slices.Clone(f.BodyList) }

// UniversalTime is the current game clock in seconds.
func (f *Fixture) UniversalTime() float64 { return f.UT }

// GameTitle is the save game title.
func (f *Fixture) GameTitle() string { return f.Title }

// ActiveVessel returns the vessel the player controls, if any.
func (f *Fixture) ActiveVessel() (Vessel, bool) {
	if f.ActiveID == "" {
		return Vessel{}, false
	}
	return FindVessel(f, f.ActiveID)
}

// Advance moves the clock forward by dt seconds.
func (f *Fixture) Advance(dt float64) {
	f.UT += dt
}

// AddBody registers a body.
func (f *Fixture) AddBody(b Body) {
	f.BodyList = append(f.BodyList, b)
}

// AddVessel registers a vessel. Its MainBodyPosition is filled in from the
// named body when that body is known.
func (f *Fixture) AddVessel(v Vessel) {
	if b, ok := FindBody(f, v.MainBody); ok {
		v.MainBodyPosition = b.Position
	}
	f.VesselList = append(f.VesselList, v)
}

// RemoveVessel drops a vessel, as when it is destroyed or recovered.
func (f *Fixture) RemoveVessel(id ObjectID) bool {
	i := slices.IndexFunc(f.VesselList, func(v Vessel) bool { return v.ID == id })
	if i < 0 {
		return false
	}
	f.VesselList = slices.Delete(f.VesselList, i, i+1)
	return true
}

// FixtureFile is the on-disk fixture layout shared by YAML and CUE files.
type FixtureFile struct {
	Title         string          `yaml:"title" json:"title"`
	UniversalTime float64         `yaml:"universal_time" json:"universal_time"`
	ActiveVessel  string          `yaml:"active_vessel,omitempty" json:"active_vessel,omitempty"`
	Bodies        []FixtureBody   `yaml:"bodies,omitempty" json:"bodies,omitempty"`
	Vessels       []FixtureVessel `yaml:"vessels,omitempty" json:"vessels,omitempty"`
}

// FixtureBody is a body entry in a fixture file.
type FixtureBody struct {
	Name     string    `yaml:"name" json:"name"`
	Position []float64 `yaml:"position,omitempty" json:"position,omitempty"`
}

// FixtureVessel is a vessel entry in a fixture file. The main body must be
// listed under bodies.
type FixtureVessel struct {
	ID        string    `yaml:"id,omitempty" json:"id,omitempty"`
	Name      string    `yaml:"name" json:"name"`
	Type      string    `yaml:"type,omitempty" json:"type,omitempty"`
	Situation string    `yaml:"situation,omitempty" json:"situation,omitempty"`
	MainBody  string    `yaml:"main_body" json:"main_body"`
	Position  []float64 `yaml:"position,omitempty" json:"position,omitempty"`
	Rotation  []float64 `yaml:"rotation,omitempty" json:"rotation,omitempty"`
}

// Build converts the file layout into a Fixture. Vessels without an id get
// a generated one; active_vessel may name a vessel by id or by name.
func (ff *FixtureFile) Build() (*Fixture, error) {
	f := &Fixture{Title: ff.Title, UT: ff.UniversalTime}

	for i, fb := range ff.Bodies {
		name := CanonicalName(fb.Name)
		if _, dup := FindBody(f, name); dup {
			return nil, fmt.Errorf("bodies[%d]: duplicate body %q", i, fb.Name)
		}
		pos, err := toVec3(fb.Position)
		if err != nil {
			return nil, fmt.Errorf("bodies[%d].position: %w", i, err)
		}
		f.AddBody(Body{Name: name, Position: pos})
	}

	for i, fv := range ff.Vessels {
		v, err := buildVessel(fv)
		if err != nil {
			return nil, fmt.Errorf("vessels[%d]: %w", i, err)
		}
		if _, ok := FindBody(f, v.MainBody); !ok {
			return nil, fmt.Errorf("vessels[%d]: unknown main body %q", i, v.MainBody)
		}
		if _, dup := FindVessel(f, v.ID); dup {
			return nil, fmt.Errorf("vessels[%d]: duplicate id %q", i, v.ID)
		}
		f.AddVessel(v)
	}

	if ff.ActiveVessel != "" {
		id, ok := resolveActive(f, ff.ActiveVessel)
		if !ok {
			return nil, fmt.Errorf("active_vessel %q matches no vessel", ff.ActiveVessel)
		}
		f.ActiveID = id
	}
	return f, nil
}

func buildVessel(fv FixtureVessel) (Vessel, error) {
	typ, err := ParseVesselType(fv.Type)
	if err != nil {
		return Vessel{}, err
	}
	sit, err := ParseSituation(fv.Situation)
	if err != nil {
		return Vessel{}, err
	}
	pos, err := toVec3(fv.Position)
	if err != nil {
		return Vessel{}, fmt.Errorf("position: %w", err)
	}
	rot, err := toQuat(fv.Rotation)
	if err != nil {
		return Vessel{}, fmt.Errorf("rotation: %w", err)
	}

	id := NewObjectID()
	if fv.ID != "" {
		id = CanonicalID(fv.ID)
	}
	return Vessel{
		ID:        id,
		Name:      CanonicalName(fv.Name),
		Type:      typ,
		Situation: sit,
		Rotation:  rot,
		Position:  pos,
		MainBody:  CanonicalName(fv.MainBody),
	}, nil
}

func resolveActive(f *Fixture, ref string) (ObjectID, bool) {
	if v, ok := FindVessel(f, CanonicalID(ref)); ok {
		return v.ID, true
	}
	name := CanonicalName(ref)
	for _, v := range f.VesselList {
		if v.Name == name {
			return v.ID, true
		}
	}
	return "", false
}

func toVec3(c []float64) (vec.Vec3, error) {
	switch len(c) {
	case 0:
		return vec.Zero, nil
	case 3:
		return vec.Vec3{X: c[0], Y: c[1], Z: c[2]}, nil
	default:
		return vec.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(c))
	}
}

func toQuat(c []float64) (vec.Quat, error) {
	switch len(c) {
	case 0:
		return vec.Identity, nil
	case 4:
		return vec.Quat{X: c[0], Y: c[1], Z: c[2], W: c[3]}, nil
	default:
		return vec.Quat{}, fmt.Errorf("expected 4 components, got %d", len(c))
	}
}
