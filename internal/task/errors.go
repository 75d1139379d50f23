package task

import "fmt"

// InvalidInputError reports a rejected operation argument: an empty
// description or a priority outside the known set. The collection is left
// unchanged.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

// NotFoundError reports an operation that referenced an id not present in
// the collection. The collection is left unchanged.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %d not found", e.ID)
}

// CorruptStoreError reports a task file that exists but cannot be parsed or
// validated as a task collection. The file is surfaced as-is, never guessed
// at or partially repaired.
type CorruptStoreError struct {
	Path string
	Err  error
}

func (e *CorruptStoreError) Error() string {
	return fmt.Sprintf("corrupt task file %s: %s", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *CorruptStoreError) Unwrap() error {
	return e.Err
}
