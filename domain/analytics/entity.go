package analytics

import "time"

// Activity types recorded from task events.
const (
	ActivityCreated   = "created"
	ActivityCompleted = "completed"
	ActivityReopened  = "reopened"
	ActivityDeleted   = "deleted"
	ActivityMoved     = "moved"
)

// ActivityRecord is one task lifecycle event, kept for aggregation.
type ActivityRecord struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     string    `gorm:"size:36;index;not null" json:"user_id"`
	TaskID     string    `gorm:"size:36;index" json:"task_id"`
	ListID     string    `gorm:"size:36" json:"list_id"`
	Type       string    `gorm:"size:20;not null" json:"type"`
	Priority   string    `gorm:"size:10" json:"priority,omitempty"`
	OccurredAt time.Time `gorm:"index" json:"occurred_at"`
}

// TableName returns the table name for the ActivityRecord entity.
func (ActivityRecord) TableName() string {
	return "activity_records"
}
