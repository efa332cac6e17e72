package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/persistrot/internal/cfgnode"
	"github.com/roach88/persistrot/internal/rotation"
)

// InspectEntry is one vessel's persisted state. Fields missing from the
// file are empty.
type InspectEntry struct {
	ID        string `json:"id"`
	Momentum  string `json:"momentum,omitempty"`
	Rotation  string `json:"rotation,omitempty"`
	Direction string `json:"direction,omitempty"`
	Reference string `json:"reference,omitempty"`
}

// InspectResult is the output of the inspect command.
type InspectResult struct {
	Path    string         `json:"path"`
	Time    string         `json:"time,omitempty"`
	Vessels []InspectEntry `json:"vessels"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <state-file>",
		Short: "Print the contents of a state file",
		Long: `Parse a rotation state file and print its TIME stamp and the stored
momentum, rotation, direction and reference of every vessel.

Exit codes:
  0 - File parsed
  2 - File missing or malformed

Examples:
  persistrot inspect GameData/PersistentRotation/PersistentRotation_default.cfg
  persistrot inspect Backup_PersistentRotation_default.cfg --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runInspect(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)

	root, err := cfgnode.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return f.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("state file not found: %s", path), err)
	}
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeParse, "failed to parse state file", err)
	}

	result := inspectState(path, root)
	return f.Render(result, func(w io.Writer) {
		writeInspectText(w, result)
	})
}

func inspectState(path string, root *cfgnode.Node) InspectResult {
	result := InspectResult{Path: path, Vessels: []InspectEntry{}}
	result.Time, _ = root.GetValue(rotation.KeyTime)

	entries := make(map[string]*InspectEntry)
	entry := func(id string) *InspectEntry {
		e, ok := entries[id]
		if !ok {
			e = &InspectEntry{ID: id}
			entries[id] = e
		}
		return e
	}

	fields := []struct {
		node string
		set  func(e *InspectEntry, v string)
	}{
		{rotation.NodeMomentum, func(e *InspectEntry, v string) { e.Momentum = v }},
		{rotation.NodeRotation, func(e *InspectEntry, v string) { e.Rotation = v }},
		{rotation.NodeDirection, func(e *InspectEntry, v string) { e.Direction = v }},
		{rotation.NodeReference, func(e *InspectEntry, v string) { e.Reference = v }},
	}
	for _, field := range fields {
		n := root.GetNode(field.node)
		if n == nil {
			continue
		}
		for _, kv := range n.Values {
			field.set(entry(kv.Name), kv.Value)
		}
	}

	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		result.Vessels = append(result.Vessels, *entries[id])
	}
	return result
}

func writeInspectText(w io.Writer, result InspectResult) {
	t := result.Time
	if t == "" {
		t = "(missing)"
	}
	fmt.Fprintf(w, "File: %s\n", result.Path)
	fmt.Fprintf(w, "TIME: %s\n", t)
	fmt.Fprintf(w, "Vessels: %d\n", len(result.Vessels))
	if len(result.Vessels) == 0 {
		return
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tMOMENTUM\tROTATION\tDIRECTION\tREFERENCE")
	for _, e := range result.Vessels {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.ID, dash(e.Momentum), dash(e.Rotation), dash(e.Direction), dash(e.Reference))
	}
	tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
