package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/nibzard/todolist/internal/todo"
)

// Entry is one line of the activity journal.
type Entry struct {
	ID        string    `json:"id"`
	Time      time.Time `json:"time"`
	RunID     string    `json:"run_id"`
	Op        todo.Op   `json:"op"`
	TaskID    int64     `json:"task_id,omitempty"`
	Text      string    `json:"text,omitempty"`
	Completed bool      `json:"completed,omitempty"`
	Removed   int       `json:"removed,omitempty"`
	Total     int       `json:"total"`
}

// Journal writes one JSONL file per run into Dir.
type Journal struct {
	Dir     string
	RunID   string
	LogPath string

	mu     sync.Mutex
	file   *os.File
	now    func() time.Time
	logger *log.Logger
	err    error
}

// NewJournal creates the journal directory and this run's JSONL file.
// Failed writes from Record are reported to logger; nil discards them.
func NewJournal(dir string, logger *log.Logger) (*Journal, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if dir == "" {
		return nil, fmt.Errorf("journal dir is empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}

	id := runID()
	logPath := filepath.Join(dir, fmt.Sprintf("%s.jsonl", id))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("create journal file: %w", err)
	}

	return &Journal{
		Dir:     dir,
		RunID:   id,
		LogPath: logPath,
		file:    file,
		now:     time.Now,
		logger:  logger,
	}, nil
}

// Record is a todo.Store listener that appends one entry per change.
// Write errors are logged and kept for Err; they do not interrupt the caller.
func (j *Journal) Record(c todo.Change) {
	entry := Entry{
		ID:      uuid.NewString(),
		Time:    j.now().UTC(),
		RunID:   j.RunID,
		Op:      c.Op,
		Removed: c.Removed,
		Total:   len(c.List),
	}
	if c.Op != todo.OpClearCompleted {
		entry.TaskID = c.Task.ID
		entry.Text = c.Task.Text
		entry.Completed = c.Task.Completed
	}
	if err := j.Write(entry); err != nil {
		j.logger.Warn("journal write failed", "path", j.LogPath, "op", c.Op, "err", err)
		j.mu.Lock()
		j.err = err
		j.mu.Unlock()
	}
}

// Write appends an entry as a single JSON line.
func (j *Journal) Write(e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal journal entry: %w", err)
	}
	data = append(data, '\n')

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.file == nil {
		return fmt.Errorf("journal is closed")
	}
	if _, err := j.file.Write(data); err != nil {
		return fmt.Errorf("write journal entry: %w", err)
	}
	return nil
}

// Err returns the last error hit by Record.
func (j *Journal) Err() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.err
}

// Close closes the journal file.
func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.file == nil {
		return nil
	}
	err := j.file.Close()
	j.file = nil
	return err
}

// runID is <utc start time>-<pid>-<random suffix>.
func runID() string {
	return fmt.Sprintf("%s-%d-%s", time.Now().UTC().Format("20060102-150405"), os.Getpid(), uuid.NewString()[:8])
}

// ReadEntries decodes every entry of a journal file.
func ReadEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	var entries []Entry
	for i, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			return nil, fmt.Errorf("journal line %d: %w", i+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// FindLatestLog finds the most recently modified JSONL file in a directory.
// It returns "" when the directory is missing or holds no journal.
func FindLatestLog(logDir string) (string, error) {
	runs, err := FindLogRuns(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	if len(runs) == 0 {
		return "", nil
	}
	return runs[0].Path, nil
}

// LogRun describes one journal file.
type LogRun struct {
	RunID   string
	Path    string
	ModTime time.Time
	Size    int64
}

// FindLogRuns lists journal files, newest first.
func FindLogRuns(logDir string) ([]LogRun, error) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("read journal dir: %w", err)
	}

	var runs []LogRun
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".jsonl") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		runs = append(runs, LogRun{
			RunID:   strings.TrimSuffix(name, ".jsonl"),
			Path:    filepath.Join(logDir, name),
			ModTime: info.ModTime(),
			Size:    info.Size(),
		})
	}

	sort.Slice(runs, func(i, k int) bool {
		if runs[i].ModTime.Equal(runs[k].ModTime) {
			return runs[i].RunID > runs[k].RunID
		}
		return runs[i].ModTime.After(runs[k].ModTime)
	})
	return runs, nil
}

// TailLog copies the last n lines of path to w (all lines when n <= 0).
// With follow set it keeps copying new data until ctx is done.
func TailLog(ctx context.Context, w io.Writer, path string, n int, follow bool) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer file.Close()

	if n > 0 {
		if err := writeLastLines(w, file, n); err != nil {
			return err
		}
	} else if _, err := io.Copy(w, file); err != nil {
		return err
	}

	if !follow {
		return nil
	}
	return tailFollow(ctx, w, file)
}

// writeLastLines writes the final n lines of file and leaves the offset at EOF.
func writeLastLines(w io.Writer, file *os.File, n int) error {
	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read journal: %w", err)
	}
	lines := strings.SplitAfter(string(data), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	_, err = io.WriteString(w, strings.Join(lines, ""))
	return err
}

// tailFollow follows a file like tail -f.
func tailFollow(ctx context.Context, w io.Writer, file *os.File) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		if _, err := io.Copy(w, file); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
