package analytics

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	domain "github.com/example/taskboard/domain/analytics"
)

// ActivityRepository persists task lifecycle records and computes the
// aggregates behind the analytics services.
type ActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Migrate creates the activity table.
func (r *ActivityRepository) Migrate() error {
	return r.db.AutoMigrate(&domain.ActivityRecord{})
}

// Record inserts one activity row.
func (r *ActivityRepository) Record(rec *domain.ActivityRecord) error {
	if err := r.db.Create(rec).Error; err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}

// CountByType returns per-type activity counts for a user.
func (r *ActivityRepository) CountByType(userID string) (map[string]int, error) {
	var rows []struct {
		Type  string
		Total int
	}
	err := r.db.Model(&domain.ActivityRecord{}).
		Select("type, COUNT(*) AS total").
		Where("user_id = ?", userID).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count activity: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Type] = row.Total
	}
	return counts, nil
}

// CountCompletedSince counts completions at or after the given time.
func (r *ActivityRepository) CountCompletedSince(userID string, since time.Time) (int, error) {
	var count int64
	err := r.db.Model(&domain.ActivityRecord{}).
		Where("user_id = ? AND type = ? AND occurred_at >= ?", userID, domain.ActivityCompleted, since).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count completions: %w", err)
	}
	return int(count), nil
}

// CompletedPriorityBreakdown returns completion counts grouped by the
// completed task's priority.
func (r *ActivityRepository) CompletedPriorityBreakdown(userID string) (map[string]int, error) {
	var rows []struct {
		Priority string
		Total    int
	}
	err := r.db.Model(&domain.ActivityRecord{}).
		Select("priority, COUNT(*) AS total").
		Where("user_id = ? AND type = ? AND priority <> ''", userID, domain.ActivityCompleted).
		Group("priority").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to break down priorities: %w", err)
	}

	breakdown := make(map[string]int, len(rows))
	for _, row := range rows {
		breakdown[row.Priority] = row.Total
	}
	return breakdown, nil
}

// CompletionsPerDay returns completion counts keyed by YYYY-MM-DD for
// records at or after since.
func (r *ActivityRepository) CompletionsPerDay(userID string, since time.Time) (map[string]int, error) {
	var rows []domain.ActivityRecord
	err := r.db.
		Where("user_id = ? AND type = ? AND occurred_at >= ?", userID, domain.ActivityCompleted, since).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load completions: %w", err)
	}

	// Bucketing happens in Go so local midnight boundaries don't depend
	// on the SQLite date() implementation.
	perDay := make(map[string]int)
	for _, rec := range rows {
		perDay[rec.OccurredAt.Local().Format("2006-01-02")]++
	}
	return perDay, nil
}
