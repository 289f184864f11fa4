package list

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	domain "github.com/example/taskboard/domain/list"
)

// ErrListNotFound is returned when a list does not exist.
var ErrListNotFound = errors.New("list not found")

// ListRepository handles list persistence using GORM. Task counters
// are read-only aggregates over the task module's table; all writes to
// tasks stay in the task module.
type ListRepository struct {
	db *gorm.DB
}

// NewListRepository creates a new ListRepository.
func NewListRepository(db *gorm.DB) *ListRepository {
	return &ListRepository{db: db}
}

// Migrate creates the lists table.
func (r *ListRepository) Migrate() error {
	return r.db.AutoMigrate(&domain.List{})
}

// Create inserts a new list.
func (r *ListRepository) Create(l *domain.List) error {
	if err := r.db.Create(l).Error; err != nil {
		return fmt.Errorf("failed to create list: %w", err)
	}
	return nil
}

// FindByID returns one list with its task counters populated.
func (r *ListRepository) FindByID(id string) (*domain.List, error) {
	var l domain.List
	if err := r.db.First(&l, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("failed to find list: %w", err)
	}

	if err := r.attachCounters([]*domain.List{&l}); err != nil {
		return nil, err
	}
	return &l, nil
}

// FindByUser returns a user's lists, oldest first, with counters.
func (r *ListRepository) FindByUser(userID string, includeArchived bool) ([]domain.List, error) {
	q := r.db.Where("user_id = ?", userID)
	if !includeArchived {
		q = q.Where("archived = ?", false)
	}

	var lists []domain.List
	if err := q.Order("created_at asc").Find(&lists).Error; err != nil {
		return nil, fmt.Errorf("failed to find lists: %w", err)
	}

	refs := make([]*domain.List, len(lists))
	for i := range lists {
		refs[i] = &lists[i]
	}
	if err := r.attachCounters(refs); err != nil {
		return nil, err
	}
	return lists, nil
}

// Update saves list changes.
func (r *ListRepository) Update(l *domain.List) error {
	if err := r.db.Save(l).Error; err != nil {
		return fmt.Errorf("failed to update list: %w", err)
	}
	return nil
}

// Delete removes a list row. Task cleanup happens in the task module.
func (r *ListRepository) Delete(id string) error {
	result := r.db.Delete(&domain.List{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete list: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrListNotFound
	}
	return nil
}

// Stats aggregates a list's task counters, including overdue.
func (r *ListRepository) Stats(listID string, now time.Time) (*domain.Stats, error) {
	var row struct {
		Total     int
		Completed int
		Overdue   int
	}

	err := r.db.Table("tasks").
		Select(
			"COUNT(*) AS total, "+
				"SUM(CASE WHEN completed THEN 1 ELSE 0 END) AS completed, "+
				"SUM(CASE WHEN NOT completed AND deadline IS NOT NULL AND deadline < ? THEN 1 ELSE 0 END) AS overdue",
			now).
		Where("list_id = ?", listID).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate list stats: %w", err)
	}

	stats := &domain.Stats{
		ListID:         listID,
		TaskCount:      row.Total,
		CompletedCount: row.Completed,
		PendingCount:   row.Total - row.Completed,
		OverdueCount:   row.Overdue,
	}
	if stats.TaskCount > 0 {
		stats.CompletionPercentage = float64(stats.CompletedCount) / float64(stats.TaskCount) * 100
	}
	return stats, nil
}

// attachCounters fills the derived TaskCount/CompletedCount fields
// with one grouped query over the tasks table.
func (r *ListRepository) attachCounters(lists []*domain.List) error {
	if len(lists) == 0 {
		return nil
	}

	ids := make([]string, len(lists))
	for i, l := range lists {
		ids[i] = l.ID
	}

	var rows []struct {
		ListID    string
		Total     int
		Completed int
	}
	err := r.db.Table("tasks").
		Select("list_id, COUNT(*) AS total, SUM(CASE WHEN completed THEN 1 ELSE 0 END) AS completed").
		Where("list_id IN ?", ids).
		Group("list_id").
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to count list tasks: %w", err)
	}

	counts := make(map[string]struct{ total, completed int }, len(rows))
	for _, row := range rows {
		counts[row.ListID] = struct{ total, completed int }{row.Total, row.Completed}
	}

	for _, l := range lists {
		c := counts[l.ID]
		l.TaskCount = c.total
		l.CompletedCount = c.completed
	}
	return nil
}
