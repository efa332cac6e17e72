package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const worldYAML = `title: "default (SANDBOX)"
universal_time: 100
active_vessel: Pad Ship
bodies:
  - name: Kerbin
    position: [0, 0, 0]
vessels:
  - id: 00000000-0000-7000-8000-000000000001
    name: Pad Ship
    type: ship
    situation: prelaunch
    main_body: Kerbin
    position: [1048576, 0, 0]
  - id: 00000000-0000-7000-8000-000000000002
    name: Rock
    type: space_object
    main_body: Kerbin
    position: [0, 1048576, 0]
`

func writeWorld(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "world.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// decodeData unmarshals the data field of an "ok" JSON response.
func decodeData[T any](t *testing.T, out string) T {
	t.Helper()
	var resp struct {
		Status string `json:"status"`
		Data   T      `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	require.Equal(t, "ok", resp.Status, out)
	return resp.Data
}

// decodeError returns the error code of an "error" JSON response.
func decodeError(t *testing.T, out string) string {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	require.Equal(t, "error", resp.Status, out)
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}
