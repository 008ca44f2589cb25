// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	configDirName  = "eutils"
	configFileName = "preferences.json"
	historyFile    = "history.db"
)

// Location says where the preferences file lives. It is resolved once at
// startup and passed down explicitly.
type Location struct {
	Path string
}

// DefaultLocation returns $HOME/.config/eutils/preferences.json.
func DefaultLocation() (Location, error) {
	return defaultLocation(os.UserHomeDir)
}

func defaultLocation(home func() (string, error)) (Location, error) {
	dir, err := home()
	if err != nil {
		return Location{}, fmt.Errorf("%w: locating home directory: %w", ErrConfig, err)
	}
	return Location{Path: filepath.Join(dir, ".config", configDirName, configFileName)}, nil
}

// Dir returns the directory holding the preferences file.
func (l Location) Dir() string {
	return filepath.Dir(l.Path)
}

// HistoryPath returns the journal database path next to the preferences.
func (l Location) HistoryPath() string {
	return filepath.Join(l.Dir(), historyFile)
}
