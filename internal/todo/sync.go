package todo

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Slot is the key-value store the list is mirrored into.
type Slot interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

// LoadStatus reports how the initial list was obtained.
type LoadStatus int

const (
	// LoadOK means the slot held a valid list.
	LoadOK LoadStatus = iota
	// LoadMissing means the slot was absent.
	LoadMissing
	// LoadDiscarded means the slot held invalid data and was ignored.
	LoadDiscarded
	// LoadUnreadable means reading the slot failed. Its contents are
	// unknown, so they must not be overwritten.
	LoadUnreadable
)

func (s LoadStatus) String() string {
	switch s {
	case LoadOK:
		return "ok"
	case LoadMissing:
		return "missing"
	case LoadDiscarded:
		return "discarded"
	case LoadUnreadable:
		return "unreadable"
	default:
		return fmt.Sprintf("LoadStatus(%d)", int(s))
	}
}

// LoadResult is the outcome of Load.
type LoadResult struct {
	List   List
	Status LoadStatus
	// Err is the parse error behind LoadDiscarded or the read error behind
	// LoadUnreadable.
	Err error
	// BackupKey is the key the discarded bytes were copied to, if any.
	BackupKey string
}

// Load reads the list from the slot. A missing slot yields an empty list.
// Invalid data is logged, backed up under a sibling key and replaced by an
// empty list. A read error yields LoadUnreadable with an empty list; the
// slot is left alone.
func Load(slot Slot, key string, logger *log.Logger) LoadResult {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	data, ok, err := slot.Get(key)
	if err != nil {
		logger.Error("reading task list failed", "key", key, "err", err)
		return LoadResult{List: List{}, Status: LoadUnreadable, Err: err}
	}
	if !ok {
		logger.Debug("no stored task list", "key", key)
		return LoadResult{List: List{}, Status: LoadMissing}
	}

	l, err := Unmarshal(data)
	if err != nil {
		res := LoadResult{List: List{}, Status: LoadDiscarded, Err: err}
		backup := BackupKey(key, time.Now())
		if berr := slot.Set(backup, data); berr != nil {
			logger.Warn("backing up invalid task list failed", "key", backup, "err", berr)
		} else {
			res.BackupKey = backup
		}
		logger.Warn("stored task list is invalid, starting empty", "key", key, "backup", res.BackupKey, "err", err)
		return res
	}

	logger.Debug("loaded task list", "key", key, "tasks", len(l))
	return LoadResult{List: l, Status: LoadOK}
}

// BackupKey returns the key used to keep a copy of discarded slot data.
func BackupKey(key string, now time.Time) string {
	return fmt.Sprintf("%s.corrupt-%s", key, now.UTC().Format("20060102-150405"))
}

// Sync mirrors the list into a slot. Register Sync.OnChange as a store
// listener; every change overwrites the slot with the full list.
type Sync struct {
	slot    Slot
	key     string
	logger  *log.Logger
	lastErr error
	writes  int
	// blocked is set when the slot could not be read; no write reaches it.
	blocked error
}

// NewSync creates a Sync writing to key in slot.
func NewSync(slot Slot, key string, logger *log.Logger) *Sync {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Sync{slot: slot, key: key, logger: logger}
}

// Attach subscribes the sync to the store and writes the current list once.
// loaded is the result the store was seeded from: after LoadUnreadable the
// initial write is skipped and every later write is refused.
// It returns the subscription id.
func (s *Sync) Attach(store *Store, loaded LoadResult) int {
	if loaded.Status == LoadUnreadable {
		s.blocked = fmt.Errorf("stored task list was not read, refusing to overwrite it: %w", loaded.Err)
		s.lastErr = s.blocked
	} else {
		_ = s.Write(store.List())
	}
	return store.Subscribe(s.OnChange)
}

// OnChange is the store listener.
func (s *Sync) OnChange(c Change) {
	_ = s.Write(c.List)
}

// Write serializes the list and overwrites the slot. Failures are logged
// and kept for LastError; they never touch the in-memory list.
func (s *Sync) Write(l List) error {
	if s.blocked != nil {
		s.lastErr = fmt.Errorf("persist tasks: %w", s.blocked)
		s.logger.Warn("skipping task list write", "key", s.key, "tasks", len(l), "err", s.blocked)
		return s.lastErr
	}
	data, err := Marshal(l)
	if err == nil {
		err = s.slot.Set(s.key, data)
	}
	if err != nil {
		s.lastErr = fmt.Errorf("persist tasks: %w", err)
		s.logger.Error("persisting task list failed", "key", s.key, "tasks", len(l), "err", err)
		return s.lastErr
	}
	s.lastErr = nil
	s.writes++
	s.logger.Debug("persisted task list", "key", s.key, "tasks", len(l))
	return nil
}

// LastError returns the error of the most recent write, or nil if it
// succeeded.
func (s *Sync) LastError() error {
	return s.lastErr
}

// Writes returns the number of successful writes.
func (s *Sync) Writes() int {
	return s.writes
}
