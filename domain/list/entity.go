package list

import "time"

// List is a named collection of tasks owned by a single user.
type List struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"size:2000" json:"description,omitempty"`
	UserID      string    `gorm:"size:36;index;not null" json:"user_id"`
	Archived    bool      `gorm:"not null;default:false" json:"archived"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Derived counters, populated by the repository, never stored.
	TaskCount      int `gorm:"-" json:"task_count"`
	CompletedCount int `gorm:"-" json:"completed_count"`
}

// TableName returns the table name for the List entity.
func (List) TableName() string {
	return "lists"
}

// CompletionPercentage returns the share of completed tasks, 0-100.
// Empty lists report 0 rather than dividing by zero.
func (l *List) CompletionPercentage() float64 {
	if l.TaskCount == 0 {
		return 0
	}
	return float64(l.CompletedCount) / float64(l.TaskCount) * 100
}

// Stats summarizes the state of a list's tasks.
type Stats struct {
	ListID               string  `json:"list_id"`
	TaskCount            int     `json:"task_count"`
	CompletedCount       int     `json:"completed_count"`
	PendingCount         int     `json:"pending_count"`
	OverdueCount         int     `json:"overdue_count"`
	CompletionPercentage float64 `json:"completion_percentage"`
}
