package config

import (
	"os"

	"github.com/nibzard/todolist/internal/utils"
)

// Environment variable names.
const (
	EnvDataDir       = "TODO_DATA_DIR"
	EnvKey           = "TODO_KEY"
	EnvDefaultFilter = "TODO_DEFAULT_FILTER"
	EnvLogLevel      = "TODO_LOG_LEVEL"
	EnvLogFormat     = "TODO_LOG_FORMAT"
	EnvLogTimestamps = "TODO_LOG_TIMESTAMPS"
	EnvLogCaller     = "TODO_LOG_CALLER"
	EnvLogFile       = "TODO_LOG_FILE"
	EnvJournal       = "TODO_JOURNAL"
)

// loadFromEnv overrides config from environment variables. If sources is
// non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	str := func(env, field string, target *string) {
		if v := os.Getenv(env); v != "" {
			*target = v
			if sources != nil {
				sources[field] = SourceEnv
			}
		}
	}
	boolean := func(env, field string, target *bool) {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			*target = utils.BoolFromString(v)
			if sources != nil {
				sources[field] = SourceEnv
			}
		}
	}

	str(EnvDataDir, "data_dir", &cfg.DataDir)
	str(EnvKey, "storage_key", &cfg.StorageKey)
	str(EnvDefaultFilter, "default_filter", &cfg.DefaultFilter)
	str(EnvLogLevel, "log_level", &cfg.LogLevel)
	str(EnvLogFormat, "log_format", &cfg.LogFormat)
	boolean(EnvLogTimestamps, "log_timestamps", &cfg.LogTimestamps)
	boolean(EnvLogCaller, "log_caller", &cfg.LogCaller)
	str(EnvLogFile, "log_file", &cfg.LogFile)
	boolean(EnvJournal, "journal", &cfg.Journal)
}
