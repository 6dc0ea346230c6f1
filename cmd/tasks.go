package cmd

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/nibzard/todolist/internal/todo"
	"github.com/nibzard/todolist/internal/utils"
)

// addCommand adds one task from the joined arguments, or one per part with
// -sep.
func (a *app) addCommand(args []string) error {
	fs := flag.NewFlagSet("todo add", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	sep := fs.String("sep", "", "Split the text on this separator and add one task per part")
	if err := fs.Parse(args); err != nil {
		return err
	}

	texts := []string{strings.Join(fs.Args(), " ")}
	if *sep != "" {
		texts = utils.SplitAndTrim(texts[0], *sep)
	}

	s, err := a.openSession("", false)
	if err != nil {
		return err
	}
	defer s.Close()

	added := 0
	for _, text := range texts {
		t, ok := s.store.Add(text)
		if !ok {
			continue
		}
		added++
		fmt.Fprintf(a.stdout, "Added %d: %s\n", t.ID, t.Text)
	}
	if added == 0 {
		fmt.Fprintln(a.stdout, "Nothing to add: task text is empty.")
	}
	return s.saveErr()
}

// lsCommand prints the filtered list followed by the counts.
func (a *app) lsCommand(args []string) error {
	fs := flag.NewFlagSet("todo ls", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	filterName := fs.String("filter", string(a.cfg.Filter()), "Filter (all|active|completed)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	if len(remaining) == 1 {
		*filterName = remaining[0]
	}
	filter, err := todo.ParseFilter(*filterName)
	if err != nil {
		return err
	}

	s, err := a.openSession("", false)
	if err != nil {
		return err
	}
	defer s.Close()

	list := s.store.List()
	visible := todo.Filtered(list, filter)
	if len(visible) == 0 {
		fmt.Fprintln(a.stdout, todo.EmptyMessage(filter))
	} else {
		for _, t := range visible {
			printTask(a, t)
		}
	}

	c := todo.CountsOf(list)
	fmt.Fprintln(a.stdout)
	fmt.Fprintf(a.stdout, "%d active, %d completed, %d total\n", c.Active, c.Completed, c.Total)
	return s.saveErr()
}

// toggleCommand flips the completed flag of one task.
func (a *app) toggleCommand(args []string) error {
	id, err := parseID("toggle", args)
	if err != nil {
		return err
	}

	s, err := a.openSession("", false)
	if err != nil {
		return err
	}
	defer s.Close()

	if !s.store.Toggle(id) {
		fmt.Fprintf(a.stdout, "No task with id %d.\n", id)
		return s.saveErr()
	}
	t, _ := s.store.List().Find(id)
	state := "active"
	if t.Completed {
		state = "completed"
	}
	fmt.Fprintf(a.stdout, "Marked %d %s: %s\n", t.ID, state, t.Text)
	return s.saveErr()
}

// rmCommand deletes one task.
func (a *app) rmCommand(args []string) error {
	id, err := parseID("rm", args)
	if err != nil {
		return err
	}

	s, err := a.openSession("", false)
	if err != nil {
		return err
	}
	defer s.Close()

	t, found := s.store.List().Find(id)
	if !found {
		fmt.Fprintf(a.stdout, "No task with id %d.\n", id)
		return s.saveErr()
	}
	s.store.Delete(id)
	fmt.Fprintf(a.stdout, "Deleted %d: %s\n", t.ID, t.Text)
	return s.saveErr()
}

// clearCommand removes every completed task.
func (a *app) clearCommand(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}

	s, err := a.openSession("", false)
	if err != nil {
		return err
	}
	defer s.Close()

	n := s.store.ClearCompleted()
	switch n {
	case 0:
		fmt.Fprintln(a.stdout, "No completed tasks to clear.")
	case 1:
		fmt.Fprintln(a.stdout, "Cleared 1 completed task.")
	default:
		fmt.Fprintf(a.stdout, "Cleared %d completed tasks.\n", n)
	}
	return s.saveErr()
}

func parseID(command string, args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: todo %s <id>", command)
	}
	id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q: %w", args[0], err)
	}
	return id, nil
}

// printTask prints one task line: checkbox, id and text.
func printTask(a *app, t todo.Task) {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	fmt.Fprintf(a.stdout, "%s %d  %s\n", box, t.ID, t.Text)
}
