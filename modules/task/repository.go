package task

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/example/taskboard/domain/task"
)

// ErrTaskNotFound is returned when a task is not found.
var ErrTaskNotFound = errors.New("task not found")

// TaskRepository handles task persistence using GORM.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Migrate runs database migrations for the tasks table.
func (r *TaskRepository) Migrate() error {
	return r.db.AutoMigrate(&domain.Task{})
}

// Create creates a new task.
func (r *TaskRepository) Create(t *domain.Task) error {
	if err := r.db.Create(t).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// CreateBatch creates several tasks in one transaction.
func (r *TaskRepository) CreateBatch(tasks []*domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	if err := r.db.Create(tasks).Error; err != nil {
		return fmt.Errorf("failed to create tasks: %w", err)
	}
	return nil
}

// FindByID finds a task by ID.
func (r *TaskRepository) FindByID(id string) (*domain.Task, error) {
	var t domain.Task
	if err := r.db.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindByUser returns all tasks owned by a user, ordered by list then
// explicit order index then creation time.
func (r *TaskRepository) FindByUser(userID string) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.
		Where("user_id = ?", userID).
		Order("list_id ASC, order_index ASC, created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// FindByList returns a list's tasks in display order.
func (r *TaskRepository) FindByList(listID string) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.
		Where("list_id = ?", listID).
		Order("order_index ASC, created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for list: %w", err)
	}
	return tasks, nil
}

// Update persists changes to an existing task.
func (r *TaskRepository) Update(t *domain.Task) error {
	if err := r.db.Save(t).Error; err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// Delete deletes a task by ID.
func (r *TaskRepository) Delete(id string) error {
	result := r.db.Delete(&domain.Task{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// DeleteBatch deletes several tasks owned by a user and returns how
// many rows were removed.
func (r *TaskRepository) DeleteBatch(userID string, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Where("user_id = ? AND id IN ?", userID, ids).Delete(&domain.Task{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete tasks: %w", result.Error)
	}
	return int(result.RowsAffected), nil
}

// DeleteByList deletes all tasks in a list and returns the count.
func (r *TaskRepository) DeleteByList(listID string) (int, error) {
	result := r.db.Where("list_id = ?", listID).Delete(&domain.Task{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete list tasks: %w", result.Error)
	}
	return int(result.RowsAffected), nil
}

// NextOrder returns the next free order index at the end of a list.
func (r *TaskRepository) NextOrder(listID string) (int, error) {
	var max *int
	err := r.db.Model(&domain.Task{}).
		Where("list_id = ?", listID).
		Select("MAX(order_index)").
		Scan(&max).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute next order: %w", err)
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}

// ApplyOrdering assigns order indexes 0..n-1 following orderedIDs to
// the tasks of a list, in one transaction. Order stays unique within
// the list because every member is reassigned.
func (r *TaskRepository) ApplyOrdering(listID string, orderedIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			result := tx.Model(&domain.Task{}).
				Where("id = ? AND list_id = ?", id, listID).
				Update("order_index", i)
			if result.Error != nil {
				return fmt.Errorf("failed to set order for task %s: %w", id, result.Error)
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("task %s is not in list %s: %w", id, listID, ErrTaskNotFound)
			}
		}
		return nil
	})
}

// MoveToList inserts a task at index in the target list in one
// transaction: tasks at or after the index shift one position down,
// then the moved task lands in the gap. On success t reflects its new
// list and order.
func (r *TaskRepository) MoveToList(t *domain.Task, listID string, index int) error {
	now := time.Now()
	err := r.db.Transaction(func(tx *gorm.DB) error {
		shift := tx.Model(&domain.Task{}).
			Where("list_id = ? AND order_index >= ?", listID, index).
			Update("order_index", gorm.Expr("order_index + 1"))
		if shift.Error != nil {
			return fmt.Errorf("failed to shift orders: %w", shift.Error)
		}

		result := tx.Model(&domain.Task{}).
			Where("id = ?", t.ID).
			Updates(map[string]any{
				"list_id":     listID,
				"order_index": index,
				"updated_at":  now,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to move task: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrTaskNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	t.ListID = listID
	t.Order = &index
	t.UpdatedAt = now
	return nil
}

// CopyToList clones one list's tasks into another, keeping titles,
// completion state and board order. Rows not owned by userID are
// skipped. Returns the number of tasks copied.
func (r *TaskRepository) CopyToList(fromListID, toListID, userID string) (int, error) {
	source, err := r.FindByList(fromListID)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	copies := make([]*domain.Task, 0, len(source))
	for i := range source {
		src := source[i]
		if src.UserID != userID {
			continue
		}
		copy := src
		copy.ID = uuid.New().String()
		copy.ListID = toListID
		copy.CreatedAt = now
		copy.UpdatedAt = now
		copies = append(copies, &copy)
	}

	if err := r.CreateBatch(copies); err != nil {
		return 0, err
	}
	return len(copies), nil
}
