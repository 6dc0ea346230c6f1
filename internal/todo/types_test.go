package todo

import (
	"errors"
	"testing"
	"time"
)

var baseTime = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

// fixedClock returns a clock that never advances.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestStore(initial List) *Store {
	return NewStore(initial, WithClock(fixedClock(baseTime)))
}

// tasksEqual compares two lists field by field.
func tasksEqual(a, b List) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Text != b[i].Text ||
			a[i].Completed != b[i].Completed || !a[i].CreatedAt.Equal(b[i].CreatedAt) {
			return false
		}
	}
	return true
}

func texts(l List) []string {
	out := make([]string, len(l))
	for i, t := range l {
		out[i] = t.Text
	}
	return out
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    Filter
		wantErr bool
	}{
		{"", FilterAll, false},
		{"all", FilterAll, false},
		{" Active ", FilterActive, false},
		{"COMPLETED", FilterCompleted, false},
		{"done", FilterCompleted, false},
		{"pending", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFilter(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFilter(%q): err=%v, wantErr=%v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFilter(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFilterCycle(t *testing.T) {
	if got := FilterAll.Next(); got != FilterActive {
		t.Errorf("all.Next: got %q", got)
	}
	if got := FilterCompleted.Next(); got != FilterAll {
		t.Errorf("completed.Next: got %q", got)
	}
	if got := FilterAll.Prev(); got != FilterCompleted {
		t.Errorf("all.Prev: got %q", got)
	}
	if got := Filter("bogus").Next(); got != FilterAll {
		t.Errorf("bogus.Next: got %q", got)
	}
}

func TestListFind(t *testing.T) {
	l := List{{ID: 1, Text: "a"}, {ID: 2, Text: "b"}}
	if got, ok := l.Find(2); !ok || got.Text != "b" {
		t.Errorf("Find(2): got %+v, %v", got, ok)
	}
	if _, ok := l.Find(3); ok {
		t.Error("Find(3): expected not found")
	}
}

func TestListClone(t *testing.T) {
	l := List{{ID: 1, Text: "a"}}
	c := l.Clone()
	c[0].Text = "changed"
	if l[0].Text != "a" {
		t.Error("Clone shares backing array with original")
	}
	if got := List(nil).Clone(); got == nil || len(got) != 0 {
		t.Errorf("nil Clone: got %#v, want empty non-nil", got)
	}
}

func TestValidationErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &ValidationError{Path: "[0].text", Err: inner}
	if err.Error() != "[0].text: boom" {
		t.Errorf("Error: got %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("errors.Is did not unwrap ValidationError")
	}
	if (&ValidationError{Err: inner}).Error() != "boom" {
		t.Error("Error without path should be the bare message")
	}
}
