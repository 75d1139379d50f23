package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Store applies task operations against a single backing file. Every
// mutating operation follows the same cycle: load the file, mutate the
// in-memory collection, save the whole collection back, return the result.
// A failed save fails the whole operation; the on-disk state is untouched.
type Store struct {
	// DataFile is the path to the persisted task collection.
	DataFile string
	// SchemaFile is the optional path to a JSON Schema used to validate
	// the collection on load. Empty or missing means invariant checks only.
	SchemaFile string
}

// NewStore returns a store over the given data file. The schema path may be
// empty.
func NewStore(dataFile, schemaFile string) *Store {
	return &Store{DataFile: dataFile, SchemaFile: schemaFile}
}

// load reads and validates the collection. A file that parses but fails
// validation is as corrupt as one that does not parse.
func (s *Store) load() (Collection, error) {
	c, err := Load(s.DataFile)
	if err != nil {
		return nil, err
	}

	result := c.Validate(ValidationOptions{SchemaPath: s.SchemaFile})
	if !result.Valid {
		return nil, &CorruptStoreError{Path: s.DataFile, Err: errors.Join(result.Errors...)}
	}

	return c, nil
}

// Add creates a new pending task and persists it. The description is
// trimmed and must be non-empty; the priority must be one of the known
// levels (empty selects the default). The new task's id is one past the
// highest id ever assigned.
func (s *Store) Add(description string, priority Priority) (Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Task{}, &InvalidInputError{Reason: "description must not be empty"}
	}
	if priority == "" {
		priority = DefaultPriority
	}
	if !priority.Valid() {
		return Task{}, &InvalidInputError{
			Reason: fmt.Sprintf("unknown priority %q, must be one of: low, medium, high, urgent", priority),
		}
	}

	c, err := s.load()
	if err != nil {
		return Task{}, err
	}

	t := Task{
		ID:          c.NextID(),
		Description: description,
		Priority:    priority,
		CreatedAt:   time.Now().UTC(),
	}
	c = append(c, t)

	if err := Save(s.DataFile, c); err != nil {
		return Task{}, err
	}
	return t, nil
}

// Complete marks the task with the given id as completed and persists the
// change. Completing an already-completed task is allowed and re-stamps
// completed_at with the current time.
func (s *Store) Complete(id int) (Task, error) {
	c, err := s.load()
	if err != nil {
		return Task{}, err
	}

	i := c.indexOf(id)
	if i < 0 {
		return Task{}, &NotFoundError{ID: id}
	}

	now := time.Now().UTC()
	c[i].Completed = true
	c[i].CompletedAt = &now

	if err := Save(s.DataFile, c); err != nil {
		return Task{}, err
	}
	return c[i], nil
}

// Delete removes the task with the given id and persists the change. The
// order of the remaining tasks is unchanged, and the removed id is never
// handed out again.
func (s *Store) Delete(id int) error {
	c, err := s.load()
	if err != nil {
		return err
	}

	i := c.indexOf(id)
	if i < 0 {
		return &NotFoundError{ID: id}
	}
	c = append(c[:i], c[i+1:]...)

	return Save(s.DataFile, c)
}

// List returns tasks in creation order. Completed tasks are filtered out
// unless includeCompleted is true. List never writes.
func (s *Store) List(includeCompleted bool) ([]Task, error) {
	c, err := s.load()
	if err != nil {
		return nil, err
	}

	if includeCompleted {
		return c, nil
	}
	active := make([]Task, 0, len(c))
	for _, t := range c {
		if !t.Completed {
			active = append(active, t)
		}
	}
	return active, nil
}
