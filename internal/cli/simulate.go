package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/persistrot/internal/host"
	"github.com/roach88/persistrot/internal/journal"
	"github.com/roach88/persistrot/internal/rotation"
	"github.com/roach88/persistrot/internal/session"
	"github.com/roach88/persistrot/internal/vec"
)

// SimulateOptions holds flags for the simulate command.
type SimulateOptions struct {
	*RootOptions
	Root     string
	World    string
	Save     bool
	Database string
	Seed     uint64
}

// VesselState is one vessel's state after a simulated session start.
type VesselState struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Momentum  string `json:"momentum"`
	Rotation  string `json:"rotation"`
	Direction string `json:"direction"`
	Reference string `json:"reference"`
	Target    string `json:"target,omitempty"`
}

// SimulateResult is the output of the simulate command.
type SimulateResult struct {
	Game          string        `json:"game"`
	UniversalTime float64       `json:"universal_time"`
	Primary       string        `json:"primary"`
	Backup        string        `json:"backup"`
	Saved         bool          `json:"saved"`
	Vessels       []VesselState `json:"vessels"`
}

// NewSimulateCommand creates the simulate command.
func NewSimulateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SimulateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a session against a fixture world",
		Long: `Start a session against a world described by a YAML or CUE fixture file:
load the state files under the game root, reconcile them with the fixture's
vessels and print the resulting state. With --save the session is also
ended: the state is saved, the backup refreshed and, with --db, the saved
file archived in the journal.

Exit codes:
  0 - Session ran (and saved, with --save)
  1 - Saving failed
  2 - Command error (fixture missing or invalid, database error, etc.)

Examples:
  persistrot simulate --root ~/KSP --world world.yaml
  persistrot simulate --root ~/KSP --world world.cue --save --db journal.db
  persistrot simulate --root ~/KSP --world world.yaml --seed 42 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Root, "root", "", "game root directory (required)")
	_ = cmd.MarkFlagRequired("root")
	cmd.Flags().StringVar(&opts.World, "world", "", "fixture world file, .yaml/.yml/.cue (required)")
	_ = cmd.MarkFlagRequired("world")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "end the session: save, rotate backup and archive")
	cmd.Flags().StringVar(&opts.Database, "db", "", "journal database to archive the saved file in (requires --save)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "seed for loose-object momentum")

	return cmd
}

func runSimulate(opts *SimulateOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	if opts.Database != "" && !opts.Save {
		return f.Fail(ExitCommandError, ErrCodeUsage, "--db requires --save", nil)
	}

	world, err := host.LoadFixture(opts.World)
	if errors.Is(err, fs.ErrNotExist) {
		return f.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("fixture not found: %s", opts.World), err)
	}
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeParse, "failed to load fixture", err)
	}
	f.VerboseLog("Loaded %d vessel(s) and %d body(ies) from %s", len(world.VesselList), len(world.BodyList), opts.World)

	sessOpts := []session.Option{session.WithLogger(logger)}
	if cmd.Flags().Changed("seed") {
		sessOpts = append(sessOpts, session.WithRand(rand.New(rand.NewPCG(opts.Seed, opts.Seed))))
	}
	if opts.Database != "" {
		j, err := journal.Open(opts.Database)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeDatabase, "failed to open journal", err)
		}
		defer func() {
			if closeErr := j.Close(); closeErr != nil {
				logger.Error("error closing journal", "error", closeErr)
			}
		}()
		sessOpts = append(sessOpts, session.WithJournal(j))
	}

	ctrl, err := session.New(world, session.Config{Root: opts.Root}, sessOpts...)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeUsage, "invalid session configuration", err)
	}

	ctrl.Start()
	if opts.Save {
		if err := ctrl.Stop(cmd.Context()); err != nil {
			return f.Fail(ExitFailure, ErrCodeWriteFailed, "failed to save rotation state", err)
		}
	}

	result := simulateResult(world, ctrl.Store(), opts.Save)
	return f.Render(result, func(w io.Writer) {
		writeSimulateText(w, result)
	})
}

func simulateResult(world *host.Fixture, store *rotation.Store, saved bool) SimulateResult {
	paths := store.Paths()
	result := SimulateResult{
		Game:          world.GameTitle(),
		UniversalTime: world.UniversalTime(),
		Primary:       paths.Primary,
		Backup:        paths.Backup,
		Saved:         saved,
		Vessels:       []VesselState{},
	}

	for _, id := range store.IDs() {
		vs := VesselState{ID: id.String()}
		if v, ok := host.FindVessel(world, id); ok {
			vs.Name = v.Name
			vs.Type = string(v.Type)
		}
		m, _ := store.Momentum(id)
		r, _ := store.Rotation(id)
		d, _ := store.Direction(id)
		ref, _ := store.Reference(id)
		vs.Momentum = vec.FormatVec3(m)
		vs.Rotation = vec.FormatQuat(r)
		vs.Direction = vec.FormatVec3(d)
		vs.Reference = ref.String()
		if target, ok := store.Target(id); ok {
			vs.Target = target.Name()
		}
		result.Vessels = append(result.Vessels, vs)
	}
	return result
}

func writeSimulateText(w io.Writer, result SimulateResult) {
	fmt.Fprintf(w, "Game: %s (UT %s)\n", result.Game, rotation.FormatTime(result.UniversalTime))
	fmt.Fprintf(w, "Primary: %s\n", result.Primary)
	if result.Saved {
		fmt.Fprintln(w, "Saved: yes")
	} else {
		fmt.Fprintln(w, "Saved: no")
	}
	fmt.Fprintf(w, "Vessels: %d\n", len(result.Vessels))
	if len(result.Vessels) == 0 {
		return
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tMOMENTUM\tROTATION\tDIRECTION\tREFERENCE")
	for _, v := range result.Vessels {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			v.ID, v.Name, v.Type, v.Momentum, v.Rotation, v.Direction, v.Reference)
	}
	tw.Flush()
}
