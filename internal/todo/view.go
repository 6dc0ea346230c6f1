package todo

// Counts summarizes a list. Active+Completed always equals Total.
type Counts struct {
	Active    int
	Completed int
	Total     int
}

// Filtered returns the tasks selected by f, in list order.
func Filtered(l List, f Filter) List {
	if f == FilterAll || f == "" {
		return l.Clone()
	}
	wantCompleted := f == FilterCompleted
	out := make(List, 0, len(l))
	for _, t := range l {
		if t.Completed == wantCompleted {
			out = append(out, t)
		}
	}
	return out
}

// CountsOf counts active and completed tasks.
func CountsOf(l List) Counts {
	c := Counts{Total: len(l)}
	for _, t := range l {
		if t.Completed {
			c.Completed++
		}
	}
	c.Active = c.Total - c.Completed
	return c
}

// For returns the count shown next to filter f.
func (c Counts) For(f Filter) int {
	switch f {
	case FilterActive:
		return c.Active
	case FilterCompleted:
		return c.Completed
	default:
		return c.Total
	}
}

// EmptyMessage returns the placeholder shown when Filtered(l, f) is empty.
func EmptyMessage(f Filter) string {
	switch f {
	case FilterActive:
		return "No active tasks. Everything is done!"
	case FilterCompleted:
		return "No completed tasks yet."
	default:
		return "No tasks yet. Add one above!"
	}
}
