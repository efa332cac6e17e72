package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/persistrot/internal/rotation"
)

// PathsOptions holds flags for the paths command.
type PathsOptions struct {
	*RootOptions
	Root  string
	Title string
}

// PathsResult is the output of the paths command.
type PathsResult struct {
	SaveName string `json:"save_name"`
	Dir      string `json:"dir"`
	Primary  string `json:"primary"`
	Backup   string `json:"backup"`
}

// NewPathsCommand creates the paths command.
func NewPathsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PathsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Show the state file locations of a save game",
		Long: `Show where the primary and backup state files of a save game live.

The game-mode suffix the host appends to save titles is stripped first.

Examples:
  persistrot paths --root ~/KSP --title "default (SANDBOX)"
  persistrot paths --root ~/KSP --title "Jeb's Run (CAREER)" --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPaths(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Root, "root", "", "game root directory (required)")
	_ = cmd.MarkFlagRequired("root")
	cmd.Flags().StringVar(&opts.Title, "title", "", "save game title (required)")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func runPaths(opts *PathsOptions, cmd *cobra.Command) error {
	p := rotation.PathsFor(opts.Root, opts.Title)
	result := PathsResult{
		SaveName: rotation.SaveName(opts.Title),
		Dir:      p.Dir,
		Primary:  p.Primary,
		Backup:   p.Backup,
	}

	return newFormatter(opts.RootOptions, cmd).Render(result, func(w io.Writer) {
		fmt.Fprintf(w, "save:    %s\n", result.SaveName)
		fmt.Fprintf(w, "primary: %s\n", result.Primary)
		fmt.Fprintf(w, "backup:  %s\n", result.Backup)
	})
}
