package cfgnode

import (
	"fmt"
	"os"
	"path/filepath"
)

// Load reads and parses the file at path. A missing file yields an error
// satisfying errors.Is(err, fs.ErrNotExist).
func Load(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	n, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return n, nil
}

// Save writes n to path, creating the parent directory if needed.
// The content goes to a temp file in the same directory first and is
// renamed into place, so readers never see a half-written file.
func Save(n *Node, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("save %s: chmod: %w", path, err)
	}
	if _, err := tmp.Write(Marshal(n)); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("save %s: write: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("save %s: sync: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save %s: close: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save %s: rename: %w", path, err)
	}
	return nil
}
