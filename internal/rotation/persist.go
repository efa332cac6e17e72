package rotation

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/roach88/persistrot/internal/cfgnode"
	"github.com/roach88/persistrot/internal/host"
	"github.com/roach88/persistrot/internal/vec"
)

// State file keys.
const (
	KeyTime       = "TIME"
	NodeMomentum  = "MOMENTUM"
	NodeRotation  = "ROTATION"
	NodeDirection = "DIRECTION"
	NodeReference = "REFERENCE"
)

// Save writes the current state to the primary file. Entries are written
// in id order so identical state produces identical files.
//
// Failures are logged and otherwise ignored; the in-memory state is never
// affected. SaveErr reports the outcome of the last call.
func (s *Store) Save() {
	s.logger.Info("saving rotation data", "path", s.paths.Primary)

	if err := cfgnode.Save(s.encode(), s.paths.Primary); err != nil {
		s.saveErr = err
		s.logger.Error("saving not successful", "path", s.paths.Primary, "error", err)
		return
	}
	s.saveErr = nil
}

// SaveErr returns the error of the most recent Save, or nil.
func (s *Store) SaveErr() error {
	return s.saveErr
}

func (s *Store) encode() *cfgnode.Node {
	root := cfgnode.New("")
	root.AddValue(KeyTime, FormatTime(s.registry.UniversalTime()))

	m := root.AddNode(NodeMomentum)
	for _, id := range sortedIDs(s.momentum) {
		m.AddValue(string(id), vec.FormatVec3(s.momentum[id]))
	}

	r := root.AddNode(NodeRotation)
	for _, id := range sortedIDs(s.rotation) {
		r.AddValue(string(id), vec.FormatQuat(s.rotation[id]))
	}

	d := root.AddNode(NodeDirection)
	for _, id := range sortedIDs(s.direction) {
		d.AddValue(string(id), vec.FormatVec3(s.direction[id]))
	}

	ref := root.AddNode(NodeReference)
	for _, id := range sortedIDs(s.reference) {
		value, ok := encodeReference(s.reference[id])
		if !ok {
			s.logger.Error("wrong reference type", "id", id, "kind", s.reference[id].Kind)
		}
		ref.AddValue(string(id), value)
	}

	return root
}

// FormatTime writes a universal time the way it is stored under TIME.
func FormatTime(ut float64) string {
	return strconv.FormatFloat(ut, 'f', -1, 64)
}

// Load replaces the in-memory state with defaults for every live vessel
// overlaid with the persisted state.
//
// The primary file is used unless its TIME is not older than the current
// universal time (or is unreadable), in which case the backup file is used
// as is. Missing files leave the defaults in place.
func (s *Store) Load() {
	s.logger.Info("loading rotation data", "path", s.paths.Primary)

	s.reset()
	for _, v := range s.registry.Vessels() {
		s.Generate(v)
	}
	s.loaded = true

	root, err := cfgnode.Load(s.paths.Primary)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.logger.Info("couldn't load data: file not found", "path", s.paths.Primary)
		return
	case err != nil:
		s.logger.Warn("primary state file unreadable, loading backup", "path", s.paths.Primary, "error", err)
	case !s.current(root):
		s.logger.Info("loading backup", "path", s.paths.Backup)
	default:
		s.apply(root)
		return
	}

	root, err = cfgnode.Load(s.paths.Backup)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.logger.Info("couldn't load data: file not found", "path", s.paths.Backup)
		return
	case err != nil:
		s.logger.Warn("backup state file unreadable", "path", s.paths.Backup, "error", err)
		return
	}
	s.apply(root)
}

// current reports whether a state file predates the present. A file stamped
// at or after the current time belongs to a reverted future.
func (s *Store) current(root *cfgnode.Node) bool {
	raw, ok := root.GetValue(KeyTime)
	if !ok {
		s.logger.Warn("state file has no TIME", "path", s.paths.Primary)
		return false
	}
	t, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		s.logger.Warn("state file has malformed TIME", "path", s.paths.Primary, "value", raw)
		return false
	}
	return t < s.registry.UniversalTime()
}

func (s *Store) apply(root *cfgnode.Node) {
	if n := root.GetNode(NodeMomentum); n != nil {
		for _, kv := range n.Values {
			m, err := vec.ParseVec3(kv.Value)
			if err != nil {
				s.logger.Warn("skipping momentum entry", "id", kv.Name, "error", err)
				continue
			}
			s.momentum[host.ObjectID(kv.Name)] = m
		}
	}

	if n := root.GetNode(NodeRotation); n != nil {
		for _, kv := range n.Values {
			q, err := vec.ParseQuat(kv.Value)
			if err != nil {
				s.logger.Warn("skipping rotation entry", "id", kv.Name, "error", err)
				continue
			}
			s.rotation[host.ObjectID(kv.Name)] = q
		}
	}

	if n := root.GetNode(NodeDirection); n != nil {
		for _, kv := range n.Values {
			d, err := vec.ParseVec3(kv.Value)
			if err != nil {
				s.logger.Warn("skipping direction entry", "id", kv.Name, "error", err)
				continue
			}
			s.direction[host.ObjectID(kv.Name)] = d
		}
	}

	if n := root.GetNode(NodeReference); n != nil {
		bodies := s.registry.Bodies()
		vessels := s.registry.Vessels()
		for _, kv := range n.Values {
			s.reference[host.ObjectID(kv.Name)] = resolveReference(kv.Value, bodies, vessels)
		}
	}
}

// RotateBackup replaces the backup file with a copy of the primary file.
// When there is no primary file the existing backup is left alone.
func (s *Store) RotateBackup() error {
	data, err := os.ReadFile(s.paths.Primary)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Info("no primary state file, keeping backup", "path", s.paths.Backup)
		return nil
	}
	if err != nil {
		return fmt.Errorf("rotate backup: read primary: %w", err)
	}

	if err := os.Remove(s.paths.Backup); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("rotate backup: remove old backup: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.paths.Backup), 0o755); err != nil {
		return fmt.Errorf("rotate backup: %w", err)
	}
	if err := os.WriteFile(s.paths.Backup, data, 0o644); err != nil {
		return fmt.Errorf("rotate backup: write backup: %w", err)
	}
	return nil
}

func sortedIDs[V any](m map[host.ObjectID]V) []host.ObjectID {
	ids := make([]host.ObjectID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
