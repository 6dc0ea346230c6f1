package config

import (
	"flag"
)

// flagFields maps flag names to the config field they set.
var flagFields = map[string]string{
	"data-dir":   "data_dir",
	"key":        "storage_key",
	"filter":     "default_filter",
	"log-level":  "log_level",
	"log-format": "log_format",
	"log-file":   "log_file",
	"journal":    "journal",
}

// parseFlags defines the global flags on fs and parses args. Only flags set
// on the command line are recorded in sources (when non-nil).
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("todo", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Data directory for tasks, journal and logs")
	fs.StringVar(&cfg.StorageKey, "key", cfg.StorageKey, "Storage key the task list is saved under")
	fs.StringVar(&cfg.DefaultFilter, "filter", cfg.DefaultFilter, "Initial filter: all, active or completed")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text, json, logfmt")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write console logs to this file")
	fs.BoolVar(&cfg.Journal, "journal", cfg.Journal, "Record changes in the activity journal")
	fs.BoolVar(&cfg.Ephemeral, "ephemeral", cfg.Ephemeral, "Keep tasks in memory only")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagFields[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}
	return nil
}
