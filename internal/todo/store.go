package todo

import (
	"io"
	"runtime/debug"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Op names a store mutation.
type Op string

const (
	OpAdd            Op = "add"
	OpToggle         Op = "toggle"
	OpDelete         Op = "delete"
	OpClearCompleted Op = "clear_completed"
)

// Change describes a completed mutation. List is the new list value.
type Change struct {
	Op      Op
	Task    Task // the added, toggled (new state) or deleted task; zero for clear
	Removed int  // tasks dropped by OpClearCompleted
	List    List
}

// Listener is called after the store swaps in a new list.
type Listener func(Change)

type subscription struct {
	id int
	fn Listener
}

// Store owns the task list. It is not safe for concurrent mutation; the
// shells drive it from a single event loop.
type Store struct {
	list   List
	lastID int64
	now    func() time.Time
	logger *log.Logger

	mu     sync.Mutex
	subs   []subscription
	nextID int
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock sets the time source used for ids and creation times.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets the logger used to report listener panics.
func WithLogger(logger *log.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a store holding a copy of initial.
func NewStore(initial List, opts ...StoreOption) *Store {
	s := &Store{
		list:   initial.Clone(),
		lastID: initial.maxID(),
		now:    time.Now,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns a copy of the current list.
func (s *Store) List() List {
	return s.list.Clone()
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.list)
}

// Add trims text and prepends a new task. Blank text is a no-op and
// returns false.
func (s *Store) Add(text string) (Task, bool) {
	now := s.now().UTC().Truncate(time.Millisecond)
	next, ok := Add(s.list, text, s.nextTaskID(now), now)
	if !ok {
		return Task{}, false
	}
	s.lastID = next[0].ID
	s.commit(Change{Op: OpAdd, Task: next[0]}, next)
	return next[0], true
}

// Toggle flips the completed flag of the task with the given id.
// Unknown ids are a no-op and return false.
func (s *Store) Toggle(id int64) bool {
	next, found := Toggle(s.list, id)
	if !found {
		return false
	}
	t, _ := next.Find(id)
	s.commit(Change{Op: OpToggle, Task: t}, next)
	return true
}

// Delete removes the task with the given id. Unknown ids are a no-op and
// return false.
func (s *Store) Delete(id int64) bool {
	t, ok := s.list.Find(id)
	if !ok {
		return false
	}
	next, _ := Delete(s.list, id)
	s.commit(Change{Op: OpDelete, Task: t}, next)
	return true
}

// ClearCompleted removes every completed task and returns how many were
// removed. Nothing is published when there is nothing to clear.
func (s *Store) ClearCompleted() int {
	next, removed := ClearCompleted(s.list)
	if removed == 0 {
		return 0
	}
	s.commit(Change{Op: OpClearCompleted, Removed: removed}, next)
	return removed
}

// Subscribe registers fn and returns an id for Unsubscribe. Listeners run
// in registration order.
func (s *Store) Subscribe(fn Listener) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.subs = append(s.subs, subscription{id: s.nextID, fn: fn})
	return s.nextID
}

// Unsubscribe removes a listener. It returns false if id is unknown.
func (s *Store) Unsubscribe(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return true
		}
	}
	return false
}

// nextTaskID derives an id from the current time in milliseconds, bumped
// past the last issued id so ids stay unique even within one millisecond
// or when the clock steps backwards.
func (s *Store) nextTaskID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	return id
}

// commit swaps in the new list, then notifies listeners.
func (s *Store) commit(c Change, next List) {
	s.list = next

	s.mu.Lock()
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		c.List = next.Clone()
		s.safeCall(sub.fn, c)
	}
}

func (s *Store) safeCall(fn Listener, c Change) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("store listener panicked", "op", c.Op, "panic", r, "stack", string(debug.Stack()))
		}
	}()
	fn(c)
}
