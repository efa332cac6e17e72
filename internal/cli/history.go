package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/persistrot/internal/journal"
	"github.com/roach88/persistrot/internal/rotation"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Game     string // optional - one game only
}

// HistoryEntry is one archived snapshot, without its content.
type HistoryEntry struct {
	ID            string    `json:"id"`
	Game          string    `json:"game"`
	UniversalTime float64   `json:"universal_time"`
	Seq           int64     `json:"seq"`
	Size          int       `json:"size"`
	CreatedAt     time.Time `json:"created_at"`
}

// HistoryResult is the output of the history command.
type HistoryResult struct {
	Games     []string       `json:"games,omitempty"` // set when no --game filter is given
	Snapshots []HistoryEntry `json:"snapshots"`
	Total     int            `json:"total"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived state file snapshots",
		Long: `List the state file snapshots archived in a journal database, oldest
first.

Examples:
  persistrot history --db journal.db
  persistrot history --db journal.db --game "default (SANDBOX)"
  persistrot history --db journal.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to journal database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Game, "game", "", "list one game only")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	if err := requireFile(opts.Database); err != nil {
		return f.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("journal not found: %s", opts.Database), err)
	}

	j, err := journal.Open(opts.Database)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeDatabase, "failed to open journal", err)
	}
	defer j.Close()

	snaps, err := j.ListSnapshots(cmd.Context(), opts.Game)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeDatabase, "failed to list snapshots", err)
	}

	result := HistoryResult{Snapshots: make([]HistoryEntry, 0, len(snaps)), Total: len(snaps)}
	if opts.Game == "" {
		games, err := j.ListGames(cmd.Context())
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeDatabase, "failed to list games", err)
		}
		result.Games = games
	}
	for _, s := range snaps {
		result.Snapshots = append(result.Snapshots, HistoryEntry{
			ID:            s.ID,
			Game:          s.Game,
			UniversalTime: s.UniversalTime,
			Seq:           s.Seq,
			Size:          len(s.Content),
			CreatedAt:     s.CreatedAt,
		})
	}

	return f.Render(result, func(w io.Writer) {
		writeHistoryText(w, result)
	})
}

// requireFile fails when path does not exist, so read-only commands do not
// create an empty database as a side effect of opening it.
func requireFile(path string) error {
	_, err := os.Stat(path)
	return err
}

func writeHistoryText(w io.Writer, result HistoryResult) {
	if result.Total == 0 {
		fmt.Fprintln(w, "No snapshots found.")
		return
	}

	if len(result.Games) > 0 {
		fmt.Fprintf(w, "Games: %s\n", strings.Join(result.Games, ", "))
	}
	fmt.Fprintf(w, "Snapshots: %d\n\n", result.Total)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tID\tGAME\tUT\tBYTES\tCREATED")
	for _, s := range result.Snapshots {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n",
			s.Seq, shortID(s.ID), s.Game, rotation.FormatTime(s.UniversalTime), s.Size,
			s.CreatedAt.UTC().Format(time.RFC3339))
	}
	tw.Flush()
}

// shortID abbreviates a snapshot id for tables. restore accepts any unique
// prefix.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
