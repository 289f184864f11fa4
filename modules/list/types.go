package list

import (
	"context"
	"time"

	"github.com/example/taskboard/query"
)

// ListResponse is the wire representation of a list.
type ListResponse struct {
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

// CreateListRequest is the request to create a list.
type CreateListRequest struct {
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// GetListRequest fetches one list by id.
type GetListRequest struct {
	UserID string `json:"user_id"`
	ListID string `json:"list_id"`
}

// UpdateListRequest is a partial update; nil fields are untouched.
type UpdateListRequest struct {
	UserID      string  `json:"user_id"`
	ListID      string  `json:"list_id"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// DeleteListRequest deletes a list and, via the task module, its tasks.
type DeleteListRequest struct {
	UserID string `json:"user_id"`
	ListID string `json:"list_id"`
}

// DeleteListResponse is the response after deleting a list.
type DeleteListResponse struct {
	Deleted bool `json:"deleted"`
}

// ListListsRequest fetches the user's lists through the filter/sort
// engine. Archived lists are excluded unless IncludeArchived is set.
type ListListsRequest struct {
	UserID          string           `json:"user_id"`
	IncludeArchived bool             `json:"include_archived"`
	Filter          query.FilterSpec `json:"filter"`
	Sort            query.SortSpec   `json:"sort"`
}

// ListListsResponse is the response with matching lists.
type ListListsResponse struct {
	Lists []ListResponse `json:"lists"`
	Total int            `json:"total"`
}

// DuplicateListRequest copies a list's metadata into a new empty list.
type DuplicateListRequest struct {
	UserID string `json:"user_id"`
	ListID string `json:"list_id"`
}

// ArchiveListRequest archives or unarchives a list.
type ArchiveListRequest struct {
	UserID string `json:"user_id"`
	ListID string `json:"list_id"`
}

// StatsResponse carries a list's task statistics.
type StatsResponse struct {
	ListID               string  `json:"list_id"`
	TaskCount            int     `json:"task_count"`
	CompletedCount       int     `json:"completed_count"`
	PendingCount         int     `json:"pending_count"`
	OverdueCount         int     `json:"overdue_count"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

// ValidateListRequest checks that a list exists and belongs to a user.
type ValidateListRequest struct {
	UserID string `json:"user_id"`
	ListID string `json:"list_id"`
}

// ValidateListResponse is the response of a list validation.
type ValidateListResponse struct {
	Valid bool `json:"valid"`
}

// ListPort defines the interface other modules use to access list
// functionality.
type ListPort interface {
	ValidateList(ctx context.Context, userID, listID string) error
}
