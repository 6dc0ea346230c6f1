package todo

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todolist/internal/storage"
)

type failingSlot struct{ err error }

func (f failingSlot) Get(string) ([]byte, bool, error) { return nil, false, f.err }
func (f failingSlot) Set(string, []byte) error         { return f.err }

// flakySlot holds data that cannot currently be read but would accept writes.
type flakySlot struct {
	data map[string][]byte
	sets int
}

func (f *flakySlot) Get(string) ([]byte, bool, error) {
	return nil, false, errors.New("input/output error")
}

func (f *flakySlot) Set(key string, value []byte) error {
	f.sets++
	f.data[key] = append([]byte(nil), value...)
	return nil
}

func testLogger(buf *bytes.Buffer) *log.Logger {
	return log.NewWithOptions(buf, log.Options{Level: log.DebugLevel})
}

func TestLoadMissing(t *testing.T) {
	res := Load(storage.NewMemoryKV(), DefaultKey, nil)
	if res.Status != LoadMissing {
		t.Errorf("Status: got %s, want missing", res.Status)
	}
	if res.List == nil || len(res.List) != 0 {
		t.Errorf("List: got %#v, want empty", res.List)
	}
}

func TestLoadValid(t *testing.T) {
	kv := storage.NewMemoryKV()
	want := List{{ID: 2, Text: "b", Completed: true, CreatedAt: baseTime}, {ID: 1, Text: "a", CreatedAt: baseTime}}
	data, _ := Marshal(want)
	if err := kv.Set(DefaultKey, data); err != nil {
		t.Fatal(err)
	}

	res := Load(kv, DefaultKey, nil)
	if res.Status != LoadOK || res.Err != nil {
		t.Fatalf("Load: status=%s err=%v", res.Status, res.Err)
	}
	if !tasksEqual(res.List, want) {
		t.Errorf("List: got %+v, want %+v", res.List, want)
	}
}

func TestLoadDiscardsInvalid(t *testing.T) {
	var buf bytes.Buffer
	kv := storage.NewMemoryKV()
	garbage := []byte("not json at all")
	if err := kv.Set(DefaultKey, garbage); err != nil {
		t.Fatal(err)
	}

	res := Load(kv, DefaultKey, testLogger(&buf))
	if res.Status != LoadDiscarded {
		t.Fatalf("Status: got %s, want discarded", res.Status)
	}
	if len(res.List) != 0 || res.Err == nil {
		t.Errorf("List=%v Err=%v", res.List, res.Err)
	}
	if !strings.HasPrefix(res.BackupKey, DefaultKey+".corrupt-") {
		t.Fatalf("BackupKey: got %q", res.BackupKey)
	}
	backup, ok, _ := kv.Get(res.BackupKey)
	if !ok || !bytes.Equal(backup, garbage) {
		t.Errorf("backup: ok=%v data=%q", ok, backup)
	}
	if !strings.Contains(buf.String(), "stored task list is invalid") {
		t.Errorf("warning not logged: %q", buf.String())
	}
}

func TestLoadReadError(t *testing.T) {
	res := Load(failingSlot{err: errors.New("disk gone")}, DefaultKey, nil)
	if res.Status != LoadUnreadable || res.Err == nil || len(res.List) != 0 {
		t.Errorf("Load: %+v", res)
	}
	if res.BackupKey != "" {
		t.Errorf("BackupKey: got %q, want none", res.BackupKey)
	}
}

func TestSyncKeepsUnreadableSlot(t *testing.T) {
	var buf bytes.Buffer
	valid, err := Marshal(List{{ID: 1, Text: "keep me", CreatedAt: baseTime}})
	if err != nil {
		t.Fatal(err)
	}
	slot := &flakySlot{data: map[string][]byte{DefaultKey: valid}}

	res := Load(slot, DefaultKey, testLogger(&buf))
	s := NewStore(res.List, WithClock(fixedClock(baseTime)))
	sync := NewSync(slot, DefaultKey, testLogger(&buf))
	sync.Attach(s, res)

	if _, ok := s.Add("new task"); !ok {
		t.Fatal("Add rejected a valid task")
	}

	if slot.sets != 0 {
		t.Errorf("slot written %d times, want 0", slot.sets)
	}
	if !bytes.Equal(slot.data[DefaultKey], valid) {
		t.Errorf("slot changed: got %q, want %q", slot.data[DefaultKey], valid)
	}
	if err := sync.LastError(); err == nil || !strings.Contains(err.Error(), "input/output error") {
		t.Errorf("LastError: got %v", err)
	}
	if sync.Writes() != 0 {
		t.Errorf("Writes: got %d, want 0", sync.Writes())
	}
	if s.Len() != 1 {
		t.Errorf("store should keep the task in memory, has %d", s.Len())
	}
}

func TestSyncMirrorsEveryChange(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := newTestStore(nil)
	sync := NewSync(kv, DefaultKey, nil)
	sync.Attach(s, LoadResult{Status: LoadMissing})

	// Attach writes the initial list.
	if got, ok, _ := kv.Get(DefaultKey); !ok || string(got) != "[]\n" {
		t.Fatalf("after Attach: ok=%v data=%q", ok, got)
	}

	check := func(step string) {
		t.Helper()
		data, _, _ := kv.Get(DefaultKey)
		stored, err := Unmarshal(data)
		if err != nil {
			t.Fatalf("%s: stored data invalid: %v", step, err)
		}
		if !tasksEqual(stored, s.List()) {
			t.Errorf("%s: slot %v != store %v", step, texts(stored), texts(s.List()))
		}
	}

	a, _ := s.Add("a")
	check("add")
	s.Add("b")
	check("add b")
	s.Toggle(a.ID)
	check("toggle")
	s.ClearCompleted()
	check("clear")
	b := s.List()[0]
	s.Delete(b.ID)
	check("delete")

	if sync.Writes() != 6 {
		t.Errorf("Writes: got %d, want 6", sync.Writes())
	}
}

func TestSyncWriteFailureKeepsState(t *testing.T) {
	var buf bytes.Buffer
	kv := storage.NewMemoryKV()
	s := newTestStore(nil)
	sync := NewSync(kv, DefaultKey, testLogger(&buf))
	sync.Attach(s, LoadResult{Status: LoadMissing})

	kv.FailWrites = errors.New("quota exceeded")
	s.Add("kept in memory")

	if s.Len() != 1 {
		t.Fatalf("store lost the task after a failed write")
	}
	if err := sync.LastError(); err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("LastError: got %v", err)
	}
	if !strings.Contains(buf.String(), "persisting task list failed") {
		t.Errorf("failure not logged: %q", buf.String())
	}

	kv.FailWrites = nil
	s.Add("second")
	if sync.LastError() != nil {
		t.Errorf("LastError after recovery: %v", sync.LastError())
	}
	data, _, _ := kv.Get(DefaultKey)
	stored, _ := Unmarshal(data)
	if len(stored) != 2 {
		t.Errorf("recovered write has %d tasks, want 2", len(stored))
	}
}

func TestLoadStatusString(t *testing.T) {
	if LoadOK.String() != "ok" || LoadMissing.String() != "missing" || LoadDiscarded.String() != "discarded" || LoadUnreadable.String() != "unreadable" {
		t.Error("unexpected LoadStatus names")
	}
	if LoadStatus(9).String() != "LoadStatus(9)" {
		t.Errorf("unknown status: %s", LoadStatus(9))
	}
}
