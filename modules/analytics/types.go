package analytics

import "time"

// SummaryRequest asks for a user's activity summary.
type SummaryRequest struct {
	UserID string `json:"user_id"`
}

// SummaryResponse aggregates a user's task activity.
type SummaryResponse struct {
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

// TrendRequest asks for per-day completion counts. Days defaults to 14
// and is capped at 90.
type TrendRequest struct {
	UserID string `json:"user_id"`
	Days   int    `json:"days,omitempty"`
}

// TrendPoint is one day of the completion trend.
type TrendPoint struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
}

// TrendResponse is the per-day completion series, oldest first. Days
// without completions appear with a zero count.
type TrendResponse struct {
	UserID string       `json:"user_id"`
	Days   int          `json:"days"`
	Points []TrendPoint `json:"points"`
}
