package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaths_Text(t *testing.T) {
	root := filepath.Join("games", "ksp")
	out, _, err := execute(t, "paths", "--root", root, "--title", "default (SANDBOX)")
	require.NoError(t, err)

	dir := filepath.Join(root, "GameData", "PersistentRotation")
	assert.Contains(t, out, "save:    default\n")
	assert.Contains(t, out, "primary: "+filepath.Join(dir, "PersistentRotation_default.cfg")+"\n")
	assert.Contains(t, out, "backup:  "+filepath.Join(dir, "Backup_PersistentRotation_default.cfg")+"\n")
}

func TestPaths_JSON(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "paths", "--root", "ksp", "--title", "Jeb's Run (CAREER)")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   PathsResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "Jeb's Run", resp.Data.SaveName)
	assert.Equal(t, "PersistentRotation_Jeb's Run.cfg", filepath.Base(resp.Data.Primary))
	assert.Equal(t, "Backup_PersistentRotation_Jeb's Run.cfg", filepath.Base(resp.Data.Backup))
}
