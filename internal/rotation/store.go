package rotation

import (
	"log/slog"
	"maps"
	"math/rand/v2"

	"github.com/roach88/persistrot/internal/host"
	"github.com/roach88/persistrot/internal/vec"
)

// Store holds the rotation state of every tracked vessel.
//
// The four maps are owned by the Store and only reachable through its
// methods. The host serializes all calls on its main update path, so the
// Store does no locking.
type Store struct {
	registry host.Registry
	paths    Paths
	logger   *slog.Logger
	rng      *rand.Rand

	momentum  map[host.ObjectID]vec.Vec3
	rotation  map[host.ObjectID]vec.Quat
	direction map[host.ObjectID]vec.Vec3
	reference map[host.ObjectID]Reference

	loaded  bool
	ready   bool
	saveErr error
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = l
	}
}

// WithRand sets the random source used for loose-object momentum.
// Tests pass a seeded source for reproducible defaults.
func WithRand(r *rand.Rand) StoreOption {
	return func(s *Store) {
		s.rng = r
	}
}

// New creates an uninitialized Store reading the live simulation from reg
// and persisting to paths.
func New(reg host.Registry, paths Paths, opts ...StoreOption) *Store {
	s := &Store{
		registry: reg,
		paths:    paths,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s.reset()
	return s
}

// Paths returns the state file locations.
func (s *Store) Paths() Paths {
	return s.paths
}

// Ready reports whether a Load followed by Clean has completed.
func (s *Store) Ready() bool {
	return s.ready
}

func (s *Store) reset() {
	s.momentum = make(map[host.ObjectID]vec.Vec3)
	s.rotation = make(map[host.ObjectID]vec.Quat)
	s.direction = make(map[host.ObjectID]vec.Vec3)
	s.reference = make(map[host.ObjectID]Reference)
}

// Generate inserts default state for a vessel that is not tracked yet.
// Calling it again for the same vessel changes nothing.
func (s *Store) Generate(v host.Vessel) {
	if s.tracked(v.ID) {
		s.logger.Debug("vessel already has data", "vessel", v.Name, "id", v.ID)
		return
	}

	s.logger.Debug("generating data", "vessel", v.Name, "id", v.ID)

	s.rotation[v.ID] = v.Rotation
	s.direction[v.ID] = v.DirectionToMainBody()
	s.reference[v.ID] = NoReference
	s.momentum[v.ID] = s.defaultMomentum(v)
}

func (s *Store) tracked(id host.ObjectID) bool {
	_, m := s.momentum[id]
	_, r := s.rotation[id]
	_, d := s.direction[id]
	_, ref := s.reference[id]
	return m && r && d && ref
}

// Clean reconciles the state against the live vessel set: tracked vessels
// keep their values, new vessels get defaults and vessels that no longer
// exist are dropped. Each map is rebuilt from the live set and swapped in
// whole.
func (s *Store) Clean() {
	s.logger.Info("cleaning rotation data")

	vessels := s.registry.Vessels()
	momentum := make(map[host.ObjectID]vec.Vec3, len(vessels))
	rotation := make(map[host.ObjectID]vec.Quat, len(vessels))
	direction := make(map[host.ObjectID]vec.Vec3, len(vessels))
	reference := make(map[host.ObjectID]Reference, len(vessels))

	for _, v := range vessels {
		if m, ok := s.momentum[v.ID]; ok {
			momentum[v.ID] = m
		} else {
			momentum[v.ID] = s.defaultMomentum(v)
		}
		if r, ok := s.rotation[v.ID]; ok {
			rotation[v.ID] = r
		} else {
			rotation[v.ID] = v.Rotation
		}
		if d, ok := s.direction[v.ID]; ok {
			direction[v.ID] = d
		} else {
			direction[v.ID] = v.DirectionToMainBody()
		}
		if ref, ok := s.reference[v.ID]; ok {
			reference[v.ID] = ref
		} else {
			reference[v.ID] = NoReference
		}
	}

	s.momentum, s.rotation, s.direction, s.reference = momentum, rotation, direction, reference
	if s.loaded {
		s.ready = true
	}
}

// defaultMomentum is zero, except for loose objects which get a slow random
// tumble: each component drawn from {0, 0.01, ..., 0.09}.
func (s *Store) defaultMomentum(v host.Vessel) vec.Vec3 {
	if !v.Type.Loose() {
		return vec.Zero
	}
	return vec.Vec3{
		X: float64(s.rng.IntN(10)) / 100,
		Y: float64(s.rng.IntN(10)) / 100,
		Z: float64(s.rng.IntN(10)) / 100,
	}
}

// Momentum returns the stored angular momentum of a vessel.
func (s *Store) Momentum(id host.ObjectID) (vec.Vec3, bool) {
	m, ok := s.momentum[id]
	return m, ok
}

// SetMomentum stores the angular momentum of a vessel.
func (s *Store) SetMomentum(id host.ObjectID, m vec.Vec3) {
	s.momentum[id] = m
}

// Rotation returns the stored orientation of a vessel.
func (s *Store) Rotation(id host.ObjectID) (vec.Quat, bool) {
	r, ok := s.rotation[id]
	return r, ok
}

// SetRotation stores the orientation of a vessel.
func (s *Store) SetRotation(id host.ObjectID, q vec.Quat) {
	s.rotation[id] = q
}

// Direction returns the stored reference direction of a vessel.
func (s *Store) Direction(id host.ObjectID) (vec.Vec3, bool) {
	d, ok := s.direction[id]
	return d, ok
}

// SetDirection stores the reference direction of a vessel.
func (s *Store) SetDirection(id host.ObjectID, d vec.Vec3) {
	s.direction[id] = d
}

// Reference returns the stored reference object of a vessel.
func (s *Store) Reference(id host.ObjectID) (Reference, bool) {
	r, ok := s.reference[id]
	return r, ok
}

// SetReference stores the reference object of a vessel.
func (s *Store) SetReference(id host.ObjectID, r Reference) {
	s.reference[id] = r
}

// Target resolves the stored reference of a vessel against the live
// registry. ok is false for untracked vessels, None references and targets
// that no longer exist.
func (s *Store) Target(id host.ObjectID) (Target, bool) {
	r, ok := s.reference[id]
	if !ok {
		return Target{}, false
	}
	return r.Resolve(s.registry)
}

// IDs returns every vessel id with momentum state, sorted.
func (s *Store) IDs() []host.ObjectID {
	return sortedIDs(s.momentum)
}

// Len is the number of vessels with momentum state.
func (s *Store) Len() int {
	return len(s.momentum)
}

// State is a detached copy of the Store's maps.
type State struct {
	Momentum  map[host.ObjectID]vec.Vec3
	Rotation  map[host.ObjectID]vec.Quat
	Direction map[host.ObjectID]vec.Vec3
	Reference map[host.ObjectID]Reference
}

// Snapshot copies the current state. Changes to the copy do not affect the
// Store.
func (s *Store) Snapshot() State {
	return State{
		Momentum:  maps.Clone(s.momentum),
		Rotation:  maps.Clone(s.rotation),
		Direction: maps.Clone(s.direction),
		Reference: maps.Clone(s.reference),
	}
}
