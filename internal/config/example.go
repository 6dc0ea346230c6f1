package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todolist configuration file
# Values can be overridden by environment variables (TODO_*) or CLI flags

# Data directory for the task store, journal and TUI log (supports ~ and $VAR)
data_dir = "~/.todolist"

# Key the task list is saved under
storage_key = "todos"

# Filter shown at startup: all, active or completed
default_filter = "all"

# Console logging
log_level = "info"      # debug, info, warn, error
log_format = "text"     # text, json, logfmt
log_timestamps = false
log_caller = false
# log_file = "~/.todolist/todolist.log"

# Record every change in <data_dir>/journal/<run>.jsonl
journal = true
`
}
