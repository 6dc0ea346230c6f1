// Package todo holds the task list, its mutations, and the projections
// rendered by the shells.
//
// The persisted slot (key "todos" by default) holds a JSON array of tasks:
//
//	[
//	  {
//	    "id": 1767225600000,
//	    "text": "Buy milk",
//	    "completed": false,
//	    "createdAt": "2026-01-01T00:00:00Z"
//	  }
//	]
//
// The array is ordered newest first. New tasks are prepended.
//
// # State
//
// [Store] owns the current [List] value. Every mutation ([Store.Add],
// [Store.Toggle], [Store.Delete], [Store.ClearCompleted]) builds a new list
// with the pure functions in list.go, swaps it in, and then notifies the
// subscribed listeners. [Sync] is one such listener: it re-serializes the
// whole list into the slot after every change.
//
// # Validation
//
// Data read from the slot is checked twice:
//
//  1. JSON Schema (draft 2020-12) for shape and types
//  2. Invariants the schema cannot express: unique ids and non-blank text
//
// A slot that fails either check is discarded by [Load] and the session
// starts with an empty list.
//
// # Filters
//
//   - "all": every task
//   - "active": tasks with completed=false
//   - "completed": tasks with completed=true
package todo
