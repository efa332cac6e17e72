// Package session runs the rotation store through the host's session
// lifecycle: load and reconcile when a flight scene starts, save and rotate
// the backup when it ends.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/roach88/persistrot/internal/host"
	"github.com/roach88/persistrot/internal/journal"
	"github.com/roach88/persistrot/internal/rotation"
	"github.com/roach88/persistrot/internal/vec"
)

// Config locates the game installation.
type Config struct {
	// Root is the game root directory; state files live under
	// rotation.DataDir inside it.
	Root string
}

// Archiver receives a copy of every state file written at session end.
// *journal.Store implements it.
type Archiver interface {
	WriteSnapshot(ctx context.Context, game string, ut float64, content []byte) (journal.Snapshot, error)
}

var _ Archiver = (*journal.Store)(nil)

// Controller owns the rotation store for one game session.
type Controller struct {
	world   host.World
	store   *rotation.Store
	archive Archiver
	logger  *slog.Logger
	rng     *rand.Rand
}

// Option configures a Controller.
type Option func(*Controller)

// WithJournal archives the primary state file on Stop.
func WithJournal(a Archiver) Option {
	return func(c *Controller) {
		c.archive = a
	}
}

// WithLogger sets the logger for the controller and its store.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithRand sets the random source for loose-object momentum.
func WithRand(r *rand.Rand) Option {
	return func(c *Controller) {
		c.rng = r
	}
}

// New creates a controller for the game world. State file paths are
// derived from the world's game title.
func New(world host.World, cfg Config, opts ...Option) (*Controller, error) {
	if cfg.Root == "" {
		return nil, errors.New("session: game root directory is required")
	}

	c := &Controller{
		world:  world,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	storeOpts := []rotation.StoreOption{rotation.WithLogger(c.logger)}
	if c.rng != nil {
		storeOpts = append(storeOpts, rotation.WithRand(c.rng))
	}
	paths := rotation.PathsFor(cfg.Root, world.GameTitle())
	c.store = rotation.New(world, paths, storeOpts...)
	return c, nil
}

// Store returns the rotation store.
func (c *Controller) Store() *rotation.Store {
	return c.store
}

// Start loads and reconciles the state. A vessel still on the launch pad
// never carries momentum, whatever the file says.
func (c *Controller) Start() {
	c.store.Load()
	c.store.Clean()

	active, ok := c.world.ActiveVessel()
	if ok && active.Situation == host.SituationPrelaunch {
		c.logger.Debug("zeroing momentum of prelaunch vessel", "vessel", active.Name, "id", active.ID)
		c.store.SetMomentum(active.ID, vec.Zero)
	}
}

// VesselCreated gives a vessel that appeared mid-session its default state.
func (c *Controller) VesselCreated(v host.Vessel) {
	c.store.Generate(v)
}

// Stop saves the state and refreshes the backup from it, then archives the
// saved file when a journal is attached.
//
// The returned error reports a failed save or backup rotation; the host may
// ignore it since both are already logged. Journal failures are only
// logged.
func (c *Controller) Stop(ctx context.Context) error {
	c.store.Save()
	saveErr := c.store.SaveErr()

	var rotateErr error
	if err := c.store.RotateBackup(); err != nil {
		c.logger.Error("backup rotation failed", "path", c.store.Paths().Backup, "error", err)
		rotateErr = err
	}

	if c.archive != nil && saveErr == nil {
		c.archiveState(ctx)
	}

	if saveErr != nil {
		saveErr = fmt.Errorf("save: %w", saveErr)
	}
	return errors.Join(saveErr, rotateErr)
}

func (c *Controller) archiveState(ctx context.Context) {
	path := c.store.Paths().Primary
	data, err := os.ReadFile(path)
	if err != nil {
		c.logger.Warn("journal: cannot read state file", "path", path, "error", err)
		return
	}

	snap, err := c.archive.WriteSnapshot(ctx, c.world.GameTitle(), c.world.UniversalTime(), data)
	if err != nil {
		c.logger.Warn("journal: archive failed", "path", path, "error", err)
		return
	}
	c.logger.Info("journal: archived state", "id", snap.ID, "seq", snap.Seq)
}
