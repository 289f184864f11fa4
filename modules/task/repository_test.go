package task

import (
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/example/taskboard/domain/task"
)

func setupRepo(t *testing.T) *TaskRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	repo := NewTaskRepository(db)
	if err := repo.Migrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return repo
}

func seedTask(t *testing.T, repo *TaskRepository, id, listID string, order int) {
	t.Helper()

	now := time.Now()
	o := order
	err := repo.Create(&domain.Task{
		ID:        id,
		Title:     "task " + id,
		Priority:  domain.PriorityMedium,
		ListID:    listID,
		UserID:    "u1",
		Order:     &o,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("failed to seed task %s: %v", id, err)
	}
}

func listOrder(t *testing.T, repo *TaskRepository, listID string) []string {
	t.Helper()

	tasks, err := repo.FindByList(listID)
	if err != nil {
		t.Fatalf("FindByList() error = %v", err)
	}
	ids := make([]string, len(tasks))
	for i, tk := range tasks {
		ids[i] = tk.ID
	}
	return ids
}

func TestRepository_NextOrder(t *testing.T) {
	repo := setupRepo(t)

	order, err := repo.NextOrder("l1")
	if err != nil {
		t.Fatalf("NextOrder() error = %v", err)
	}
	if order != 0 {
		t.Errorf("empty list next order = %d, expected 0", order)
	}

	seedTask(t, repo, "a", "l1", 0)
	seedTask(t, repo, "b", "l1", 1)

	order, err = repo.NextOrder("l1")
	if err != nil {
		t.Fatalf("NextOrder() error = %v", err)
	}
	if order != 2 {
		t.Errorf("next order = %d, expected 2", order)
	}
}

func TestRepository_ApplyOrdering(t *testing.T) {
	repo := setupRepo(t)
	seedTask(t, repo, "a", "l1", 0)
	seedTask(t, repo, "b", "l1", 1)
	seedTask(t, repo, "c", "l1", 2)

	if err := repo.ApplyOrdering("l1", []string{"c", "a", "b"}); err != nil {
		t.Fatalf("ApplyOrdering() error = %v", err)
	}

	got := listOrder(t, repo, "l1")
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order after ApplyOrdering = %v, expected %v", got, want)
		}
	}

	if err := repo.ApplyOrdering("l1", []string{"c", "a", "ghost"}); err == nil {
		t.Error("ApplyOrdering with an unknown id should fail")
	}
}

func TestRepository_MoveToList(t *testing.T) {
	repo := setupRepo(t)
	seedTask(t, repo, "a", "l1", 0)
	seedTask(t, repo, "b", "l1", 1)
	seedTask(t, repo, "c", "l1", 2)
	seedTask(t, repo, "x", "l2", 0)

	moved, err := repo.FindByID("x")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if err := repo.MoveToList(moved, "l1", 1); err != nil {
		t.Fatalf("MoveToList() error = %v", err)
	}
	if moved.ListID != "l1" || moved.Order == nil || *moved.Order != 1 {
		t.Errorf("moved task list/order = %s/%v, expected l1/1", moved.ListID, moved.Order)
	}

	tasks, err := repo.FindByList("l1")
	if err != nil {
		t.Fatalf("FindByList() error = %v", err)
	}
	for _, tk := range tasks {
		switch tk.ID {
		case "a":
			if *tk.Order != 0 {
				t.Errorf("task a order = %d, expected 0 (below the gap)", *tk.Order)
			}
		case "x":
			if *tk.Order != 1 {
				t.Errorf("task x order = %d, expected 1", *tk.Order)
			}
		case "b":
			if *tk.Order != 2 {
				t.Errorf("task b order = %d, expected 2", *tk.Order)
			}
		case "c":
			if *tk.Order != 3 {
				t.Errorf("task c order = %d, expected 3", *tk.Order)
			}
		}
	}
}

func TestRepository_MoveToListRollsBackShift(t *testing.T) {
	repo := setupRepo(t)
	seedTask(t, repo, "a", "l1", 0)
	seedTask(t, repo, "b", "l1", 1)

	ghost := &domain.Task{ID: "ghost"}
	if err := repo.MoveToList(ghost, "l1", 0); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("MoveToList() error = %v, expected ErrTaskNotFound", err)
	}

	tasks, err := repo.FindByList("l1")
	if err != nil {
		t.Fatalf("FindByList() error = %v", err)
	}
	for _, tk := range tasks {
		switch tk.ID {
		case "a":
			if *tk.Order != 0 {
				t.Errorf("task a order = %d, expected 0 after rollback", *tk.Order)
			}
		case "b":
			if *tk.Order != 1 {
				t.Errorf("task b order = %d, expected 1 after rollback", *tk.Order)
			}
		}
	}
}

func TestRepository_DeleteBatchScopedToUser(t *testing.T) {
	repo := setupRepo(t)
	seedTask(t, repo, "a", "l1", 0)

	now := time.Now()
	o := 0
	err := repo.Create(&domain.Task{
		ID: "foreign", Title: "foreign", Priority: domain.PriorityMedium,
		ListID: "l9", UserID: "u2", Order: &o, CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("failed to seed foreign task: %v", err)
	}

	deleted, err := repo.DeleteBatch("u1", []string{"a", "foreign"})
	if err != nil {
		t.Fatalf("DeleteBatch() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("DeleteBatch removed %d rows, expected 1 (other user's task untouched)", deleted)
	}

	if _, err := repo.FindByID("foreign"); err != nil {
		t.Errorf("foreign task should survive, got %v", err)
	}
	if _, err := repo.FindByID("a"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("deleted task lookup error = %v, expected ErrTaskNotFound", err)
	}
}
