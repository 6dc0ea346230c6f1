package config

import (
	"errors"
	"fmt"

	"github.com/nibzard/todolist/internal/logging"
	"github.com/nibzard/todolist/internal/storage"
	"github.com/nibzard/todolist/internal/todo"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
	// Unknown lists keys present in a config file that match no field.
	Unknown []string
}

// Default values.
const (
	DefaultDataDir   = "~/.todolist"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultJournal   = true
)

// Config holds all configuration.
type Config struct {
	// DataDir holds the key-value store, the journal and the TUI log file.
	DataDir string `toml:"data_dir"`

	// StorageKey is the slot the task list is persisted under.
	StorageKey string `toml:"storage_key"`

	// DefaultFilter is the filter the TUI and `ls` start with.
	DefaultFilter string `toml:"default_filter"`

	// Logging
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`
	LogFile       string `toml:"log_file"`

	// Journal enables the per-run activity journal.
	Journal bool `toml:"journal"`

	// Ephemeral keeps tasks in memory only. Flag only.
	Ephemeral bool `toml:"-"`
}

// Filter returns the parsed default filter, falling back to all.
func (c *Config) Filter() todo.Filter {
	f, err := todo.ParseFilter(c.DefaultFilter)
	if err != nil {
		return todo.FilterAll
	}
	return f
}

// Validate reports every invalid value.
func (c *Config) Validate() error {
	var errs []error
	if c.DataDir == "" && !c.Ephemeral {
		errs = append(errs, errors.New("data_dir: must not be empty"))
	}
	if err := storage.ValidateKey(c.StorageKey); err != nil {
		errs = append(errs, fmt.Errorf("storage_key: %w", err))
	}
	if _, err := todo.ParseFilter(c.DefaultFilter); err != nil {
		errs = append(errs, fmt.Errorf("default_filter: %w", err))
	}
	if !logging.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("log_level: unknown level %q", c.LogLevel))
	}
	if !logging.ValidFormat(c.LogFormat) {
		errs = append(errs, fmt.Errorf("log_format: unknown format %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// LoggingOptions converts the logging fields into console logger options.
func (c *Config) LoggingOptions() logging.Options {
	return logging.OptionsFromConfig(c.LogLevel, c.LogFormat, c.LogTimestamps, c.LogCaller)
}
