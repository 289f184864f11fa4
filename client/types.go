package client

import "time"

// Task is a task as returned by the API.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	ListID      string     `json:"list_id"`
	Order       *int       `json:"order,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// List is a task list as returned by the API.
type List struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Description          string    `json:"description,omitempty"`
	Archived             bool      `json:"archived"`
	TaskCount            int       `json:"task_count"`
	CompletedCount       int       `json:"completed_count"`
	CompletionPercentage float64   `json:"completion_percentage"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// ListStats is the per-list stats payload.
type ListStats struct {
	ListID               string  `json:"list_id"`
	TaskCount            int     `json:"task_count"`
	CompletedCount       int     `json:"completed_count"`
	PendingCount         int     `json:"pending_count"`
	OverdueCount         int     `json:"overdue_count"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

// User is the authenticated user's profile.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TokenPair carries the tokens issued on register, login and refresh.
type TokenPair struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// Summary is the per-user analytics summary.
type Summary struct {
	UserID            string         `json:"user_id"`
	TotalCreated      int            `json:"total_created"`
	TotalCompleted    int            `json:"total_completed"`
	TotalReopened     int            `json:"total_reopened"`
	TotalDeleted      int            `json:"total_deleted"`
	CompletedToday    int            `json:"completed_today"`
	CompletedThisWeek int            `json:"completed_this_week"`
	PriorityBreakdown map[string]int `json:"priority_breakdown"`
	GeneratedAt       time.Time      `json:"generated_at"`
}

// TrendPoint is one day of the completion trend.
type TrendPoint struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
}

// Trend is the completion trend, oldest day first.
type Trend struct {
	UserID string       `json:"user_id"`
	Days   int          `json:"days"`
	Points []TrendPoint `json:"points"`
}

// TaskPage is a page of tasks with its total count.
type TaskPage struct {
	Tasks []Task `json:"tasks"`
	Total int    `json:"total"`
}

// ListPage is a page of lists with its total count.
type ListPage struct {
	Lists []List `json:"lists"`
	Total int    `json:"total"`
}

// BulkResult reports the outcome of a bulk operation.
type BulkResult struct {
	Affected int    `json:"affected"`
	Tasks    []Task `json:"tasks,omitempty"`
}
