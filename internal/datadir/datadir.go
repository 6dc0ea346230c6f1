// Package datadir provides constants and utilities for the todolist data directory layout.
package datadir

import "path/filepath"

const (
	// Dir is the name of the todolist data directory under the home directory.
	Dir = ".todolist"

	// ConfigFile is the config file name.
	ConfigFile = "todolist.toml"

	// StoreDir is the key-value store directory (inside the data dir).
	StoreDir = "store"

	// JournalDir is the activity journal directory (inside the data dir).
	JournalDir = "journal"

	// LogFile is the console log file used while the TUI owns the terminal.
	LogFile = "todolist.log"
)

// StorePath returns the key-value store directory within a data directory.
func StorePath(dataDir string) string {
	return joinPath(dataDir, StoreDir)
}

// JournalPath returns the journal directory within a data directory.
func JournalPath(dataDir string) string {
	return joinPath(dataDir, JournalDir)
}

// LogPath returns the TUI log file path within a data directory.
func LogPath(dataDir string) string {
	return joinPath(dataDir, LogFile)
}

// ConfigPath returns the config file path within a data directory.
func ConfigPath(dataDir string) string {
	return joinPath(dataDir, ConfigFile)
}

func joinPath(dataDir, name string) string {
	if dataDir == "" {
		dataDir = "."
	}
	return filepath.Join(dataDir, name)
}
