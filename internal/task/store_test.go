package task

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "tasks.json"), "")
}

func TestAddAssignsSequentialIDs(t *testing.T) {
	s := newTestStore(t)

	for want := 1; want <= 5; want++ {
		task, err := s.Add("task", PriorityMedium)
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if task.ID != want {
			t.Errorf("ID: got %d, want %d", task.ID, want)
		}
	}
}

func TestAddDefaultsAndValidation(t *testing.T) {
	tests := []struct {
		name        string
		description string
		priority    Priority
		wantErr     bool
	}{
		{name: "default priority", description: "write docs", priority: "", wantErr: false},
		{name: "explicit priority", description: "write docs", priority: PriorityUrgent, wantErr: false},
		{name: "empty description", description: "", wantErr: true},
		{name: "whitespace description", description: "   \t", wantErr: true},
		{name: "unknown priority", description: "write docs", priority: "critical", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			task, err := s.Add(tt.description, tt.priority)

			if tt.wantErr {
				var invalid *InvalidInputError
				if !errors.As(err, &invalid) {
					t.Fatalf("expected InvalidInputError, got %v", err)
				}
				// A rejected add must not touch the file.
				if _, statErr := os.Stat(s.DataFile); !os.IsNotExist(statErr) {
					t.Errorf("rejected add wrote to %s", s.DataFile)
				}
				return
			}

			if err != nil {
				t.Fatalf("Add failed: %v", err)
			}
			if task.Completed {
				t.Error("new task is completed")
			}
			if task.CompletedAt != nil {
				t.Error("new task has completed_at set")
			}
			if task.CreatedAt.IsZero() {
				t.Error("new task has zero created_at")
			}
			if tt.priority == "" && task.Priority != DefaultPriority {
				t.Errorf("Priority: got %s, want default %s", task.Priority, DefaultPriority)
			}
		})
	}
}

func TestDeletedIDIsNeverReused(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 3; i++ {
		if _, err := s.Add("task", PriorityLow); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	if err := s.Delete(3); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	task, err := s.Add("task", PriorityLow)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if task.ID != 4 {
		t.Errorf("ID after delete: got %d, want 4", task.ID)
	}
}

func TestCompleteSetsTimestamp(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Add("task", PriorityHigh); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	task, err := s.Complete(1)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if !task.Completed {
		t.Error("task not marked completed")
	}
	if task.CompletedAt == nil {
		t.Fatal("completed_at not set")
	}
}

func TestCompleteAgainRestamps(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Add("task", PriorityHigh); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	first, err := s.Complete(1)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	second, err := s.Complete(1)
	if err != nil {
		t.Fatalf("second Complete failed: %v", err)
	}
	if !second.Completed {
		t.Error("task no longer completed")
	}
	if !second.CompletedAt.After(*first.CompletedAt) {
		t.Errorf("completed_at not re-stamped: first %v, second %v", first.CompletedAt, second.CompletedAt)
	}

	// The task stays visible in the completed view.
	all, err := s.List(true)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 1 || !all[0].Completed {
		t.Errorf("completed task missing from full list: %+v", all)
	}
}

func TestNotFoundLeavesCollectionUnchanged(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Add("task", PriorityLow); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	before, err := os.ReadFile(s.DataFile)
	if err != nil {
		t.Fatalf("reading data file: %v", err)
	}

	var notFound *NotFoundError
	if _, err := s.Complete(42); !errors.As(err, &notFound) {
		t.Errorf("Complete(42): expected NotFoundError, got %v", err)
	}
	if err := s.Delete(42); !errors.As(err, &notFound) {
		t.Errorf("Delete(42): expected NotFoundError, got %v", err)
	}

	after, err := os.ReadFile(s.DataFile)
	if err != nil {
		t.Fatalf("reading data file: %v", err)
	}
	if string(before) != string(after) {
		t.Error("failed operation modified the data file")
	}
}

func TestListFiltersCompleted(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 4; i++ {
		if _, err := s.Add("task", PriorityMedium); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	if _, err := s.Complete(2); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	active, err := s.List(false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	for _, task := range active {
		if task.Completed {
			t.Errorf("active list contains completed task %d", task.ID)
		}
	}
	if got, want := len(active), 3; got != want {
		t.Errorf("active count: got %d, want %d", got, want)
	}

	all, err := s.List(true)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("full count: got %d, want 4", len(all))
	}
	for i, task := range all {
		if task.ID != i+1 {
			t.Errorf("full list out of creation order at %d: id %d", i, task.ID)
		}
	}
}

func TestEndToEndScenario(t *testing.T) {
	s := newTestStore(t)

	first, err := s.Add("Fix login bug", PriorityUrgent)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if first.ID != 1 {
		t.Errorf("first ID: got %d, want 1", first.ID)
	}

	second, err := s.Add("Write unit tests", PriorityHigh)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if second.ID != 2 {
		t.Errorf("second ID: got %d, want 2", second.ID)
	}

	active, err := s.List(false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(active) != 2 || active[0].ID != 1 || active[1].ID != 2 {
		t.Fatalf("active list: got %+v, want ids [1 2]", active)
	}

	done, err := s.Complete(1)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if !done.Completed || done.CompletedAt == nil {
		t.Errorf("completed task: %+v", done)
	}

	active, err = s.List(false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(active) != 1 || active[0].ID != 2 {
		t.Fatalf("active list after complete: got %+v, want ids [2]", active)
	}

	all, err := s.List(true)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 || all[0].ID != 1 || all[1].ID != 2 {
		t.Fatalf("full list: got %+v, want ids [1 2]", all)
	}

	if err := s.Delete(2); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	all, err = s.List(true)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 1 || all[0].ID != 1 {
		t.Fatalf("full list after delete: got %+v, want ids [1]", all)
	}
}

func TestStoreSurfacesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("writing corrupt file: %v", err)
	}
	s := NewStore(path, "")

	var corrupt *CorruptStoreError
	if _, err := s.List(true); !errors.As(err, &corrupt) {
		t.Errorf("expected CorruptStoreError, got %v", err)
	}
	if _, err := s.Add("task", PriorityLow); !errors.As(err, &corrupt) {
		t.Errorf("Add on corrupt file: expected CorruptStoreError, got %v", err)
	}
}

func TestStoreRejectsInvariantViolations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	// Parses fine, but the two tasks share an id.
	content := `[
  {"id": 1, "description": "a", "priority": "low", "completed": false, "created_at": "2024-01-01T00:00:00Z", "completed_at": null},
  {"id": 1, "description": "b", "priority": "low", "completed": false, "created_at": "2024-01-01T00:00:00Z", "completed_at": null}
]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	s := NewStore(path, "")

	var corrupt *CorruptStoreError
	if _, err := s.List(true); !errors.As(err, &corrupt) {
		t.Errorf("expected CorruptStoreError for duplicate ids, got %v", err)
	}
}
