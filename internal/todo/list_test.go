package todo

import (
	"reflect"
	"testing"
)

func TestAddTrimsAndPrepends(t *testing.T) {
	l, ok := Add(nil, "  x  ", 1, baseTime)
	if !ok {
		t.Fatal("Add(x): got false")
	}
	l, _ = Add(l, "y", 2, baseTime)

	if got, want := texts(l), []string{"y", "x"}; !reflect.DeepEqual(got, want) {
		t.Errorf("order: got %v, want %v", got, want)
	}
	if l[0].Completed || l[1].Completed {
		t.Error("new tasks must start active")
	}
	if !l[0].CreatedAt.Equal(baseTime) {
		t.Errorf("CreatedAt: got %v, want %v", l[0].CreatedAt, baseTime)
	}
}

func TestAddBlankIsNoop(t *testing.T) {
	orig := List{{ID: 1, Text: "a"}}
	for _, in := range []string{"", "   ", "\t\n"} {
		got, ok := Add(orig, in, 2, baseTime)
		if ok {
			t.Errorf("Add(%q): got true, want false", in)
		}
		if !tasksEqual(got, orig) {
			t.Errorf("Add(%q) changed the list: %v", in, got)
		}
	}
}

func TestAddReplacesInvalidUTF8(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"caf\xe9", "caf\uFFFD"},
		{"  \xff\xfebad  ", "\uFFFDbad"},
		{"ok ✓", "ok ✓"},
	}
	for _, tt := range tests {
		l, ok := Add(nil, tt.in, 1, baseTime)
		if !ok {
			t.Fatalf("Add(%q): got false", tt.in)
		}
		if l[0].Text != tt.want {
			t.Errorf("Add(%q): text %q, want %q", tt.in, l[0].Text, tt.want)
		}
	}
}

func TestAddDoesNotAlias(t *testing.T) {
	orig := make(List, 1, 8)
	orig[0] = Task{ID: 1, Text: "a"}
	next, _ := Add(orig, "b", 2, baseTime)
	next[1].Text = "mutated"
	if orig[0].Text != "a" {
		t.Error("Add result aliases its input")
	}
}

func TestToggle(t *testing.T) {
	orig := List{{ID: 1, Text: "a"}, {ID: 2, Text: "b"}}

	once, found := Toggle(orig, 2)
	if !found {
		t.Fatal("Toggle(2): not found")
	}
	if !once[1].Completed || once[0].Completed {
		t.Errorf("after one toggle: %+v", once)
	}
	if orig[1].Completed {
		t.Error("Toggle mutated its input")
	}

	twice, _ := Toggle(once, 2)
	if !tasksEqual(twice, orig) {
		t.Errorf("double toggle: got %+v, want %+v", twice, orig)
	}

	same, found := Toggle(orig, 99)
	if found || !tasksEqual(same, orig) {
		t.Errorf("Toggle(unknown): found=%v list=%+v", found, same)
	}
}

func TestDelete(t *testing.T) {
	orig := List{{ID: 3, Text: "c"}, {ID: 2, Text: "b"}, {ID: 1, Text: "a"}}

	got, found := Delete(orig, 2)
	if !found {
		t.Fatal("Delete(2): not found")
	}
	if want := []string{"c", "a"}; !reflect.DeepEqual(texts(got), want) {
		t.Errorf("Delete(2): got %v, want %v", texts(got), want)
	}

	again, found := Delete(got, 2)
	if found || !tasksEqual(again, got) {
		t.Errorf("second Delete(2): found=%v list=%v", found, texts(again))
	}
	if len(orig) != 3 {
		t.Error("Delete mutated its input")
	}
}

func TestClearCompleted(t *testing.T) {
	orig := List{
		{ID: 5, Text: "e"},
		{ID: 4, Text: "d", Completed: true},
		{ID: 3, Text: "c"},
		{ID: 2, Text: "b", Completed: true},
		{ID: 1, Text: "a"},
	}
	got, removed := ClearCompleted(orig)
	if removed != 2 {
		t.Errorf("removed: got %d, want 2", removed)
	}
	if want := []string{"e", "c", "a"}; !reflect.DeepEqual(texts(got), want) {
		t.Errorf("ClearCompleted: got %v, want %v", texts(got), want)
	}
	for _, task := range got {
		if task.Completed {
			t.Errorf("completed task survived: %+v", task)
		}
	}

	none, removed := ClearCompleted(got)
	if removed != 0 || !tasksEqual(none, got) {
		t.Errorf("ClearCompleted with nothing to clear: removed=%d", removed)
	}
}
