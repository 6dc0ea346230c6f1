package todo

import (
	"strings"
	"time"
)

// Add prepends a new active task with the trimmed text. Invalid UTF-8 is
// replaced with U+FFFD so the stored text survives a JSON round trip.
// It returns the input list and false when the trimmed text is empty.
func Add(l List, text string, id int64, now time.Time) (List, bool) {
	text = strings.TrimSpace(strings.ToValidUTF8(text, "\uFFFD"))
	if text == "" {
		return l, false
	}
	out := make(List, 0, len(l)+1)
	out = append(out, Task{
		ID:        id,
		Text:      text,
		Completed: false,
		CreatedAt: now,
	})
	out = append(out, l...)
	return out, true
}

// Toggle flips the completed flag of the task with the given id.
// The result is a copy of l either way; found reports whether a task matched.
func Toggle(l List, id int64) (out List, found bool) {
	out = l.Clone()
	for i := range out {
		if out[i].ID == id {
			out[i].Completed = !out[i].Completed
			return out, true
		}
	}
	return out, false
}

// Delete removes the task with the given id, keeping the order of the rest.
func Delete(l List, id int64) (out List, found bool) {
	out = make(List, 0, len(l))
	for _, t := range l {
		if t.ID == id {
			found = true
			continue
		}
		out = append(out, t)
	}
	return out, found
}

// ClearCompleted removes every completed task and reports how many were
// dropped. Active tasks keep their relative order.
func ClearCompleted(l List) (List, int) {
	out := make(List, 0, len(l))
	for _, t := range l {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out, len(l) - len(out)
}
