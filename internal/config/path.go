// Package config loads harmony's settings from flags, the environment, .env
// and an optional YAML file.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultSQLiteFile is the database file created inside the data directory.
const DefaultSQLiteFile = "harmony.db"

// ExpandPath expands $VAR references and a leading ~ in path. When the home
// directory cannot be found the ~ is left in place.
func ExpandPath(path string) string {
	path = os.ExpandEnv(path)
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
}

// sqlitePath resolves the configured database path against the data
// directory: empty selects DefaultSQLiteFile and relative paths live under
// dataDir.
func sqlitePath(dataDir, configured string) string {
	configured = ExpandPath(configured)
	switch {
	case configured == "":
		return filepath.Join(dataDir, DefaultSQLiteFile)
	case filepath.IsAbs(configured):
		return configured
	default:
		return filepath.Join(dataDir, configured)
	}
}
