package editor

import (
	"path/filepath"
	"slices"
	"strings"
)

// SoundfontPattern is the chooser file pattern.
const SoundfontPattern = "*.sf2;*.SF2;*.sf3;*.SF3;*.sfz;*.SFZ"

var soundfontExtensions = []string{".sf2", ".sf3", ".sfz"}

// AcceptSoundfontFile reports whether the chooser accepts path. The
// extension check ignores case.
func AcceptSoundfontFile(path string) bool {
	return slices.Contains(soundfontExtensions, strings.ToLower(filepath.Ext(path)))
}
