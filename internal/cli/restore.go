package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/persistrot/internal/cfgnode"
	"github.com/roach88/persistrot/internal/journal"
	"github.com/roach88/persistrot/internal/rotation"
)

// RestoreOptions holds flags for the restore command.
type RestoreOptions struct {
	*RootOptions
	Database string
	ID       string
	Root     string
}

// RestoreResult is the output of the restore command.
type RestoreResult struct {
	ID            string  `json:"id"`
	Game          string  `json:"game"`
	UniversalTime float64 `json:"universal_time"`
	Primary       string  `json:"primary"`
}

// NewRestoreCommand creates the restore command.
func NewRestoreCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RestoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Write an archived snapshot back as the primary state file",
		Long: `Write a journal snapshot back to the primary state file of its game.

The snapshot's TIME is kept. If it is not older than the game's current
universal time when the game next loads, the backup file is used instead.

Exit codes:
  0 - Snapshot restored
  1 - Writing the state file failed
  2 - Command error (journal missing, unknown or ambiguous id, etc.)

Examples:
  persistrot restore --db journal.db --id 3f2a9c01 --root ~/KSP`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestore(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to journal database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.ID, "id", "", "snapshot id or unique id prefix (required)")
	_ = cmd.MarkFlagRequired("id")
	cmd.Flags().StringVar(&opts.Root, "root", "", "game root directory (required)")
	_ = cmd.MarkFlagRequired("root")

	return cmd
}

func runRestore(opts *RestoreOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	if err := requireFile(opts.Database); err != nil {
		return f.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("journal not found: %s", opts.Database), err)
	}

	j, err := journal.Open(opts.Database)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeDatabase, "failed to open journal", err)
	}
	defer j.Close()

	snap, err := j.FindSnapshot(cmd.Context(), opts.ID)
	switch {
	case errors.Is(err, journal.ErrNotFound):
		return f.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("no snapshot with id %q", opts.ID), err)
	case errors.Is(err, journal.ErrAmbiguous):
		return f.Fail(ExitCommandError, ErrCodeUsage, fmt.Sprintf("snapshot id %q is ambiguous", opts.ID), err)
	case err != nil:
		return f.Fail(ExitCommandError, ErrCodeDatabase, "failed to read snapshot", err)
	}

	node, err := cfgnode.Parse(snap.Content)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeParse, "archived snapshot is not a valid state file", err)
	}

	paths := rotation.PathsFor(opts.Root, snap.Game)
	f.VerboseLog("Restoring snapshot %s (seq %d) to %s", snap.ID, snap.Seq, paths.Primary)
	if err := cfgnode.Save(node, paths.Primary); err != nil {
		return f.Fail(ExitFailure, ErrCodeWriteFailed, "failed to write state file", err)
	}

	result := RestoreResult{
		ID:            snap.ID,
		Game:          snap.Game,
		UniversalTime: snap.UniversalTime,
		Primary:       paths.Primary,
	}
	return f.Render(result, func(w io.Writer) {
		fmt.Fprintf(w, "Restored %s (UT %s) to %s\n", shortID(result.ID), rotation.FormatTime(result.UniversalTime), result.Primary)
	})
}
