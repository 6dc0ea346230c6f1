package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/nibzard/todolist/internal/datadir"
	"github.com/nibzard/todolist/internal/todo"
	"github.com/nibzard/todolist/internal/ui"
)

// tuiCommand launches the interactive list.
func (a *app) tuiCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("todo tui", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	filterName := fs.String("filter", string(a.cfg.Filter()), "Initial filter (all|active|completed)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	filter, err := todo.ParseFilter(*filterName)
	if err != nil {
		return err
	}

	s, err := a.openSession(a.tuiLogPath(), true)
	if err != nil {
		return err
	}
	defer s.Close()

	s.logger.Info("tui started", "tasks", s.store.Len(), "load", s.load.Status)
	err = ui.RunTUI(ctx, s.store,
		ui.WithFilter(filter),
		ui.WithSaveError(s.saveErr),
		ui.WithLogger(s.logger),
	)
	s.logger.Info("tui stopped", "tasks", s.store.Len())
	if err != nil {
		return err
	}
	return s.saveErr()
}

// tuiLogPath picks the log file for the TUI. Console logs would corrupt the
// alternate screen, so without a configured file the logs go to the data
// directory, or nowhere when the session is ephemeral.
func (a *app) tuiLogPath() string {
	if a.cfg.LogFile != "" {
		return a.cfg.LogFile
	}
	if a.cfg.Ephemeral || a.cfg.DataDir == "" {
		return ""
	}
	return datadir.LogPath(a.cfg.DataDir)
}
