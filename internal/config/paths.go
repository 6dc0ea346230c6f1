package config

import (
	"os"
	"path/filepath"
	"strings"
)

// resolvePaths rewrites the path settings into usable file system paths.
// data_dir holds the task store, journal and TUI log; log_file, when set,
// replaces the console as the log destination. Both accept a leading ~ and
// $VAR or ${VAR} references.
func resolvePaths(cfg *Config) {
	cfg.DataDir = expandPath(cfg.DataDir)
	cfg.LogFile = expandPath(cfg.LogFile)
}

// expandPath substitutes environment variables, then a leading ~ with the
// user's home directory. Unset variables expand to nothing. The result is
// cleaned; an empty path stays empty.
func expandPath(p string) string {
	if p == "" {
		return ""
	}
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = home + p[1:]
		}
	}
	if p == "" {
		return ""
	}
	return filepath.Clean(p)
}
