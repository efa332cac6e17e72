package rotation

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DataDir is the plugin data directory relative to the game root.
const DataDir = "GameData/PersistentRotation"

const (
	filePrefix   = "PersistentRotation_"
	backupPrefix = "Backup_"
	fileExt      = ".cfg"

	// Characters of the " (SANDBOX)", " (CAREER)", " (SCIENCE)" suffixes the
	// host appends to save titles.
	titleSuffixChars = "_()SANDBOXCAREERSCIENCE"
)

// Paths are the state files of one save game.
type Paths struct {
	Dir     string
	Primary string
	Backup  string
}

// PathsFor derives the primary and backup state file paths for a save game
// title under the game root directory.
func PathsFor(root, title string) Paths {
	dir := filepath.Join(root, filepath.FromSlash(DataDir))
	name := filePrefix + SaveName(title) + fileExt
	return Paths{
		Dir:     dir,
		Primary: filepath.Join(dir, name),
		Backup:  filepath.Join(dir, backupPrefix+name),
	}
}

// SaveName strips the game-mode suffix from a save title: trailing runes
// from the suffix character set (any case), then trailing spaces.
//
//	"default (SANDBOX)"  -> "default"
//	"Jeb's Run (CAREER)" -> "Jeb's Run"
func SaveName(title string) string {
	t := norm.NFC.String(title)
	t = strings.TrimRightFunc(t, func(r rune) bool {
		return strings.ContainsRune(titleSuffixChars, unicode.ToUpper(r))
	})
	return strings.TrimRight(t, " ")
}
