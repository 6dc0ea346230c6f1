package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/nibzard/todolist/internal/todo"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{" error ", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.InfoLevel},
		{"loud", log.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormatter(t *testing.T) {
	tests := []struct {
		in   string
		want log.Formatter
	}{
		{"json", log.JSONFormatter},
		{"LOGFMT", log.LogfmtFormatter},
		{"text", log.TextFormatter},
		{"", log.TextFormatter},
		{"yaml", log.TextFormatter},
	}
	for _, tt := range tests {
		if got := ParseFormatter(tt.in); got != tt.want {
			t.Errorf("ParseFormatter(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidLevelAndFormat(t *testing.T) {
	if !ValidLevel("Warn") || ValidLevel("loud") {
		t.Error("ValidLevel misclassified input")
	}
	if !ValidFormat("json") || ValidFormat("yaml") {
		t.Error("ValidFormat misclassified input")
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("respects level", func(t *testing.T) {
		var buf bytes.Buffer
		opts := DefaultOptions()
		opts.Level = log.WarnLevel
		logger := NewLogger(&buf, opts)
		logger.Info("hidden")
		logger.Warn("shown")
		out := buf.String()
		if strings.Contains(out, "hidden") {
			t.Errorf("info line should be filtered, got %q", out)
		}
		if !strings.Contains(out, "shown") {
			t.Errorf("expected warn line, got %q", out)
		}
		if !strings.Contains(out, DefaultPrefix) {
			t.Errorf("expected prefix %q, got %q", DefaultPrefix, out)
		}
	})

	t.Run("json formatter", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, OptionsFromConfig("debug", "json", false, false))
		logger.Debug("hello", "key", "todos")
		out := buf.String()
		if !strings.HasPrefix(strings.TrimSpace(out), "{") {
			t.Errorf("expected JSON output, got %q", out)
		}
		if !strings.Contains(out, `"key":"todos"`) {
			t.Errorf("expected key field, got %q", out)
		}
	})
}

func TestOpenLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "todolist.log")
	f, err := OpenLogFile(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := f.WriteString("line\n"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	f.Close()

	f, err = OpenLogFile(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	f.WriteString("again\n")
	f.Close()

	data, _ := os.ReadFile(path)
	if string(data) != "line\nagain\n" {
		t.Errorf("expected appended content, got %q", data)
	}
}

func TestNewJournal(t *testing.T) {
	t.Run("creates run file", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "journal")
		j, err := NewJournal(dir, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer j.Close()

		if j.RunID == "" {
			t.Error("expected run id")
		}
		if filepath.Dir(j.LogPath) != dir {
			t.Errorf("expected log in %s, got %s", dir, j.LogPath)
		}
		if !strings.HasSuffix(j.LogPath, ".jsonl") {
			t.Errorf("expected .jsonl file, got %s", j.LogPath)
		}
		if _, err := os.Stat(j.LogPath); err != nil {
			t.Errorf("expected log file to exist: %v", err)
		}
	})

	t.Run("empty dir", func(t *testing.T) {
		if _, err := NewJournal("", nil); err == nil {
			t.Error("expected error for empty dir")
		}
	})
}

func TestJournalRecord(t *testing.T) {
	j, err := NewJournal(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	j.now = func() time.Time { return fixed }

	store := todo.NewStore(nil)
	store.Subscribe(j.Record)

	task, _ := store.Add("write journal")
	store.Toggle(task.ID)
	store.ClearCompleted()
	if err := j.Close(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := j.Err(); err != nil {
		t.Fatalf("expected no record error, got %v", err)
	}

	entries, err := ReadEntries(j.LogPath)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	wantOps := []todo.Op{todo.OpAdd, todo.OpToggle, todo.OpClearCompleted}
	seen := make(map[string]bool)
	for i, e := range entries {
		if e.Op != wantOps[i] {
			t.Errorf("entry %d: op = %s, want %s", i, e.Op, wantOps[i])
		}
		if _, err := uuid.Parse(e.ID); err != nil {
			t.Errorf("entry %d: id %q is not a uuid: %v", i, e.ID, err)
		}
		if seen[e.ID] {
			t.Errorf("entry %d: duplicate id %s", i, e.ID)
		}
		seen[e.ID] = true
		if e.RunID != j.RunID {
			t.Errorf("entry %d: run id = %s, want %s", i, e.RunID, j.RunID)
		}
		if !e.Time.Equal(fixed) {
			t.Errorf("entry %d: time = %v, want %v", i, e.Time, fixed)
		}
	}

	if entries[0].TaskID != task.ID || entries[0].Text != "write journal" || entries[0].Total != 1 {
		t.Errorf("unexpected add entry: %+v", entries[0])
	}
	if !entries[1].Completed {
		t.Errorf("toggle entry should record completed state: %+v", entries[1])
	}
	if entries[2].Removed != 1 || entries[2].Total != 0 || entries[2].TaskID != 0 {
		t.Errorf("unexpected clear entry: %+v", entries[2])
	}
}

func TestJournalWriteAfterClose(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel})
	j, err := NewJournal(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	j.Close()
	j.Record(todo.Change{Op: todo.OpAdd, Task: todo.Task{ID: 1, Text: "x"}})
	if j.Err() == nil {
		t.Error("expected error after close")
	}
	out := buf.String()
	if !strings.Contains(out, "journal write failed") || !strings.Contains(out, "journal is closed") {
		t.Errorf("expected logged warning, got %q", out)
	}
	if err := j.Close(); err != nil {
		t.Errorf("second close should be a no-op, got %v", err)
	}
}

func TestFindLatestLog(t *testing.T) {
	t.Run("missing dir", func(t *testing.T) {
		path, err := FindLatestLog(filepath.Join(t.TempDir(), "absent"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if path != "" {
			t.Errorf("expected empty path, got %s", path)
		}
	})

	t.Run("picks newest", func(t *testing.T) {
		dir := t.TempDir()
		older := filepath.Join(dir, "20260101-000000-1.jsonl")
		newer := filepath.Join(dir, "20260102-000000-2.jsonl")
		os.WriteFile(older, []byte("{}\n"), 0644)
		os.WriteFile(newer, []byte("{}\n"), 0644)
		os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)
		past := time.Now().Add(-time.Hour)
		os.Chtimes(older, past, past)

		path, err := FindLatestLog(dir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if path != newer {
			t.Errorf("expected %s, got %s", newer, path)
		}

		runs, err := FindLogRuns(dir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(runs) != 2 {
			t.Fatalf("expected 2 runs, got %d", len(runs))
		}
		if runs[0].RunID != "20260102-000000-2" {
			t.Errorf("expected newest run first, got %s", runs[0].RunID)
		}
	})
}

func TestTailLog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.jsonl")
	os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0644)

	t.Run("last lines", func(t *testing.T) {
		var buf bytes.Buffer
		if err := TailLog(context.Background(), &buf, path, 2, false); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if buf.String() != "two\nthree\n" {
			t.Errorf("expected last two lines, got %q", buf.String())
		}
	})

	t.Run("all lines", func(t *testing.T) {
		var buf bytes.Buffer
		if err := TailLog(context.Background(), &buf, path, 0, false); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if buf.String() != "one\ntwo\nthree\n" {
			t.Errorf("expected whole file, got %q", buf.String())
		}
	})

	t.Run("follow stops on cancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var buf bytes.Buffer
		if err := TailLog(ctx, &buf, path, 1, true); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if buf.String() != "three\n" {
			t.Errorf("expected last line, got %q", buf.String())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		var buf bytes.Buffer
		if err := TailLog(context.Background(), &buf, filepath.Join(dir, "nope.jsonl"), 1, false); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
