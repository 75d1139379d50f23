// Package task stores, validates, and updates the persisted task collection.
//
// The task file (tasks.json) is a JSON array of task objects:
//
//	[
//	  {
//	    "id": 1,
//	    "description": "Fix login bug",
//	    "priority": "urgent",
//	    "completed": false,
//	    "created_at": "2024-01-01T00:00:00Z",
//	    "completed_at": null
//	  }
//	]
//
// # Invariants
//
//   - Ids are positive, unique, and never reused: a new task always gets
//     (historical maximum id) + 1, so deleting the highest-id task and adding
//     another still produces a fresh, higher id.
//   - Tasks keep creation order; delete leaves the order of the rest intact.
//   - completed_at is non-null exactly when completed is true. Completing an
//     already-completed task is allowed and re-stamps completed_at.
//
// # Persistence
//
// Every mutating operation loads the file, mutates in memory, and writes the
// whole collection back through a temp-file-plus-rename, so a partially
// written file is never observable. A missing file loads as an empty
// collection; a file that exists but does not parse or validate surfaces a
// CorruptStoreError and is never guessed at or repaired.
//
// # Validation
//
// Structural invariant checks always run on load. When a JSON Schema file is
// configured and present, field-level validation against JSON Schema
// draft-2020-12 runs as well; an unavailable schema degrades to a warning,
// not an error.
//
// # Concurrency
//
// The package assumes exactly one process touches the file at a time. Two
// concurrent invocations racing on the same file are a read-modify-write
// race resolved as last-writer-wins; there is no file locking.
//
// # File format
//
// When writing task files, the package uses:
//   - 2-space indentation
//   - Trailing newline
//   - Stable key ordering (via JSON marshaling)
package task
