package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todolist/internal/datadir"
	"github.com/nibzard/todolist/internal/logging"
	"github.com/nibzard/todolist/internal/storage"
	"github.com/nibzard/todolist/internal/todo"
)

// session wires the store to its listeners for one command.
type session struct {
	logger *log.Logger
	kv     storage.KV
	load   todo.LoadResult
	store  *todo.Store
	sync   *todo.Sync

	journal *logging.Journal
	closers []io.Closer
}

// openSession builds the logger, loads the list and attaches persistence and
// the journal. logPath, when non-empty, overrides the log destination;
// discardLogs drops log output when no path is given.
func (a *app) openSession(logPath string, discardLogs bool) (*session, error) {
	s := &session{}

	var logOut io.Writer = a.stderr
	if logPath == "" {
		logPath = a.cfg.LogFile
	}
	switch {
	case logPath != "":
		f, err := logging.OpenLogFile(logPath)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, f)
		logOut = f
	case discardLogs:
		logOut = io.Discard
	}
	s.logger = logging.NewLogger(logOut, a.cfg.LoggingOptions())

	if a.cfg.Ephemeral {
		s.kv = storage.NewMemoryKV()
	} else {
		s.kv = storage.NewFileKV(datadir.StorePath(a.cfg.DataDir))
	}

	s.load = todo.Load(s.kv, a.cfg.StorageKey, s.logger)
	if s.load.Status == todo.LoadUnreadable {
		_ = s.Close()
		return nil, fmt.Errorf("reading stored tasks: %w", s.load.Err)
	}
	if s.load.Status == todo.LoadDiscarded {
		msg := "stored tasks were invalid, starting with an empty list"
		if s.load.BackupKey != "" {
			msg += fmt.Sprintf(" (previous data kept as %q)", s.load.BackupKey)
		}
		fmt.Fprintln(a.stderr, "⚠️  "+msg)
	}

	s.store = todo.NewStore(s.load.List, todo.WithLogger(s.logger))
	s.sync = todo.NewSync(s.kv, a.cfg.StorageKey, s.logger)
	s.sync.Attach(s.store, s.load)

	if a.cfg.Journal && !a.cfg.Ephemeral {
		j, err := logging.NewJournal(datadir.JournalPath(a.cfg.DataDir), s.logger)
		if err != nil {
			s.logger.Warn("activity journal disabled", "err", err)
		} else {
			s.journal = j
			s.store.Subscribe(j.Record)
		}
	}

	return s, nil
}

// saveErr returns the last persistence failure.
func (s *session) saveErr() error {
	return s.sync.LastError()
}

// Close releases the journal and log file. A journal that failed to
// record some change is reported as a warning before it is closed.
func (s *session) Close() error {
	var first error
	if s.journal != nil {
		if err := s.journal.Err(); err != nil {
			s.logger.Warn("activity journal is incomplete", "path", s.journal.LogPath, "err", err)
		}
		first = s.journal.Close()
		s.journal = nil
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
