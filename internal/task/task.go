package task

import (
	"fmt"
	"time"
)

// Priority represents a task priority level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// DefaultPriority is assigned when the caller does not specify a priority.
const DefaultPriority = PriorityMedium

// Valid reports whether p is one of the four known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ParsePriority converts a raw string into a Priority. An empty string maps
// to DefaultPriority; anything outside the known set is an InvalidInputError.
func ParsePriority(s string) (Priority, error) {
	if s == "" {
		return DefaultPriority, nil
	}
	p := Priority(s)
	if !p.Valid() {
		return "", &InvalidInputError{
			Reason: fmt.Sprintf("unknown priority %q, must be one of: low, medium, high, urgent", s),
		}
	}
	return p, nil
}

// Task represents a single tracked task.
type Task struct {
	ID          int        `json:"id"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// IsZero returns true if the task is empty (has no id).
func (t *Task) IsZero() bool {
	return t.ID == 0
}

// Collection is the full ordered set of persisted tasks. Order is creation
// order.
type Collection []Task

// NextID returns the id for the next task to be added: one past the highest
// id present, or 1 for an empty collection. Because ids only ever grow, a
// deleted id is never handed out again.
func (c Collection) NextID() int {
	max := 0
	for i := range c {
		if c[i].ID > max {
			max = c[i].ID
		}
	}
	return max + 1
}

// Get returns a pointer to the task with the given id, or nil if not found.
func (c Collection) Get(id int) *Task {
	i := c.indexOf(id)
	if i < 0 {
		return nil
	}
	return &c[i]
}

func (c Collection) indexOf(id int) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}
