package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/nibzard/todolist/internal/config"
	"github.com/nibzard/todolist/internal/datadir"
	"github.com/nibzard/todolist/internal/logging"
	"github.com/nibzard/todolist/internal/storage"
	"github.com/nibzard/todolist/internal/todo"
)

// doctorCommand checks config, the data directory and stored task validity.
// It never writes to the store.
func (a *app) doctorCommand(args []string) error {
	fs := flag.NewFlagSet("todo doctor", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	w := a.stdout
	cfg := a.cfg

	fmt.Fprintln(w, "todo doctor")
	fmt.Fprintln(w, "===========")
	fmt.Fprintln(w)

	allOK := true

	// Check config
	fmt.Fprintln(w, "Config:")
	if file := a.sources.GetConfigFile(); file != "" {
		fmt.Fprintf(w, "  File: %s\n", file)
	} else {
		fmt.Fprintln(w, "  File: (none, using defaults)")
	}
	for _, u := range a.sources.Unknown {
		fmt.Fprintf(w, "  ⚠️  Unknown key %s\n", u)
	}
	if err := cfg.Validate(); err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			fmt.Fprintf(w, "  ❌ %s\n", line)
		}
		allOK = false
	} else {
		fmt.Fprintln(w, "  ✅ Valid")
	}
	if *verbose {
		for _, field := range config.Fields() {
			fmt.Fprintf(w, "    %-15s %-20s (%s)\n", field, fieldValue(cfg, field), a.sources.Sources[field])
		}
	}
	fmt.Fprintln(w)

	if cfg.Ephemeral {
		fmt.Fprintln(w, "Storage: in memory (-ephemeral)")
		fmt.Fprintln(w, "  ✅ OK")
		fmt.Fprintln(w)
		return a.doctorResult(allOK)
	}

	// Check data directory
	fmt.Fprintf(w, "Data directory: %s\n", cfg.DataDir)
	if info, err := os.Stat(cfg.DataDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(w, "  ⚠️  Not found (will be created on first change)")
		} else {
			fmt.Fprintf(w, "  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if !info.IsDir() {
		fmt.Fprintln(w, "  ❌ Error: path is not a directory")
		allOK = false
	} else {
		fmt.Fprintln(w, "  ✅ OK")
	}
	fmt.Fprintln(w)

	// Check stored tasks
	kv := storage.NewFileKV(datadir.StorePath(cfg.DataDir))
	fmt.Fprintf(w, "Stored tasks: %s\n", kv.Path(cfg.StorageKey))
	if !a.checkStoredTasks(kv, *verbose) {
		allOK = false
	}
	fmt.Fprintln(w)

	// Check journal
	journalDir := datadir.JournalPath(cfg.DataDir)
	fmt.Fprintf(w, "Journal: %s\n", journalDir)
	if !cfg.Journal {
		fmt.Fprintln(w, "  ⚠️  Disabled")
	} else if runs, err := logging.FindLogRuns(journalDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(w, "  ⚠️  No runs recorded yet")
		} else {
			fmt.Fprintf(w, "  ❌ Error: %v\n", err)
			allOK = false
		}
	} else {
		fmt.Fprintf(w, "  ✅ %d run(s)\n", len(runs))
		if *verbose && len(runs) > 0 {
			fmt.Fprintf(w, "  Latest: %s\n", runs[0].Path)
		}
	}
	fmt.Fprintln(w)

	return a.doctorResult(allOK)
}

func (a *app) checkStoredTasks(kv *storage.FileKV, verbose bool) bool {
	w := a.stdout
	key := a.cfg.StorageKey
	if err := storage.ValidateKey(key); err != nil {
		fmt.Fprintf(w, "  ❌ %v\n", err)
		return false
	}

	ok := true
	data, found, err := kv.Get(key)
	switch {
	case err != nil:
		fmt.Fprintf(w, "  ❌ Read error: %v\n", err)
		ok = false
	case !found:
		fmt.Fprintln(w, "  ⚠️  Not found (starts empty)")
	default:
		result := todo.Validate(data)
		if result.Valid {
			l, _ := todo.Unmarshal(data)
			c := todo.CountsOf(l)
			fmt.Fprintf(w, "  ✅ Valid (%d active, %d completed)\n", c.Active, c.Completed)
			if verbose {
				for _, t := range l {
					box := "[ ]"
					if t.Completed {
						box = "[x]"
					}
					fmt.Fprintf(w, "    - %s %d: %s\n", box, t.ID, t.Text)
				}
			}
		} else {
			fmt.Fprintln(w, "  ❌ Validation failed (the list will be reset on next start):")
			for _, e := range result.Errors {
				fmt.Fprintf(w, "     - %v\n", e)
			}
			ok = false
		}
	}

	keys, err := kv.Keys()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(w, "  ❌ Listing store: %v\n", err)
		return false
	}
	prefix := key + ".corrupt-"
	for _, k := range keys {
		if strings.HasPrefix(k, prefix) {
			fmt.Fprintf(w, "  ⚠️  Backup of discarded data: %s\n", kv.Path(k))
		}
	}
	return ok
}

func (a *app) doctorResult(allOK bool) error {
	if allOK {
		fmt.Fprintln(a.stdout, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(a.stdout, "⚠️  Some checks failed. todo may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

func fieldValue(cfg *config.Config, field string) string {
	switch field {
	case "data_dir":
		return cfg.DataDir
	case "storage_key":
		return cfg.StorageKey
	case "default_filter":
		return cfg.DefaultFilter
	case "log_level":
		return cfg.LogLevel
	case "log_format":
		return cfg.LogFormat
	case "log_timestamps":
		return fmt.Sprint(cfg.LogTimestamps)
	case "log_caller":
		return fmt.Sprint(cfg.LogCaller)
	case "log_file":
		return cfg.LogFile
	case "journal":
		return fmt.Sprint(cfg.Journal)
	}
	return ""
}
