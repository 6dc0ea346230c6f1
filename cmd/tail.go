package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/nibzard/todolist/internal/datadir"
	"github.com/nibzard/todolist/internal/logging"
)

// tailCommand prints the latest activity journal.
func (a *app) tailCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("todo tail", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	follow := fs.Bool("f", false, "Follow the journal (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the journal (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	list := fs.Bool("list", false, "List journal runs")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logDir := datadir.JournalPath(a.cfg.DataDir)

	if *list {
		runs, err := logging.FindLogRuns(logDir)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("listing journal runs: %w", err)
		}
		if len(runs) == 0 {
			fmt.Fprintln(a.stdout, "No journal files found.")
			return nil
		}
		for _, r := range runs {
			fmt.Fprintf(a.stdout, "%s  %s  %d bytes\n", r.RunID, r.ModTime.Format("2006-01-02 15:04:05"), r.Size)
		}
		return nil
	}

	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest journal: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(a.stdout, "No journal files found.")
		return nil
	}

	fmt.Fprintf(a.stdout, "Tailing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(a.stdout, "(Ctrl+C to stop)")
	}
	fmt.Fprintln(a.stdout)

	return logging.TailLog(ctx, a.stdout, logPath, *n, *follow)
}
