package task

import (
	"context"
	"time"

	domain "github.com/example/taskboard/domain/task"
	"github.com/example/taskboard/query"
)

// TaskResponse is the wire representation of a task.
type TaskResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Completed   bool            `json:"completed"`
	Priority    domain.Priority `json:"priority"`
	Deadline    *time.Time      `json:"deadline,omitempty"`
	ListID      string          `json:"list_id"`
	Order       *int            `json:"order,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// CreateTaskRequest is the request for creating a task.
type CreateTaskRequest struct {
	UserID      string          `json:"user_id"`
	ListID      string          `json:"list_id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Priority    domain.Priority `json:"priority,omitempty"`
	Deadline    *time.Time      `json:"deadline,omitempty"`
}

// GetTaskRequest is the request for getting a task.
type GetTaskRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
}

// UpdateTaskRequest is the request for updating a task. Nil fields are
// left unchanged; a non-nil ClearDeadline removes the deadline.
type UpdateTaskRequest struct {
	UserID        string           `json:"user_id"`
	TaskID        string           `json:"task_id"`
	Title         *string          `json:"title,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Priority      *domain.Priority `json:"priority,omitempty"`
	Deadline      *time.Time       `json:"deadline,omitempty"`
	ClearDeadline bool             `json:"clear_deadline,omitempty"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
}

// DeleteTaskResponse is the response for deleting a task.
type DeleteTaskResponse struct {
	Deleted bool `json:"deleted"`
}

// ListTasksRequest is the request for listing tasks with the filter
// and sort specs applied server-side.
type ListTasksRequest struct {
	UserID string           `json:"user_id"`
	Filter query.FilterSpec `json:"filter,omitempty"`
	Sort   query.SortSpec   `json:"sort,omitempty"`
}

// ListTasksResponse is the response for listing tasks.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// SearchTasksRequest is the request for free-text task search.
type SearchTasksRequest struct {
	UserID string `json:"user_id"`
	Query  string `json:"query"`
}

// ToggleTaskRequest flips a task's completion flag.
type ToggleTaskRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
}

// MoveTaskRequest moves a task to another list at the given insertion
// index.
type MoveTaskRequest struct {
	UserID   string `json:"user_id"`
	TaskID   string `json:"task_id"`
	ToListID string `json:"to_list_id"`
	Index    int    `json:"index"`
}

// ReorderTasksRequest replaces a list's ordering with the given full
// id sequence.
type ReorderTasksRequest struct {
	UserID     string   `json:"user_id"`
	ListID     string   `json:"list_id"`
	OrderedIDs []string `json:"ordered_ids"`
}

// ReorderTasksResponse is the response after reordering.
type ReorderTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

// DuplicateTaskRequest copies a task within its list.
type DuplicateTaskRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
}

// SetPriorityRequest updates only a task's priority.
type SetPriorityRequest struct {
	UserID   string          `json:"user_id"`
	TaskID   string          `json:"task_id"`
	Priority domain.Priority `json:"priority"`
}

// SetDeadlineRequest updates only a task's deadline. A nil deadline
// clears it.
type SetDeadlineRequest struct {
	UserID   string     `json:"user_id"`
	TaskID   string     `json:"task_id"`
	Deadline *time.Time `json:"deadline,omitempty"`
}

// BulkCreateRequest creates several tasks in one call.
type BulkCreateRequest struct {
	UserID string              `json:"user_id"`
	Tasks  []CreateTaskRequest `json:"tasks"`
}

// BulkCompleteRequest completes several tasks in one call.
type BulkCompleteRequest struct {
	UserID  string   `json:"user_id"`
	TaskIDs []string `json:"task_ids"`
}

// BulkDeleteRequest deletes several tasks in one call.
type BulkDeleteRequest struct {
	UserID  string   `json:"user_id"`
	TaskIDs []string `json:"task_ids"`
}

// BulkResponse reports how many tasks a bulk operation touched.
type BulkResponse struct {
	Affected int            `json:"affected"`
	Tasks    []TaskResponse `json:"tasks,omitempty"`
}

// GetListTasksRequest fetches all tasks of one list in board order.
type GetListTasksRequest struct {
	UserID string `json:"user_id"`
	ListID string `json:"list_id"`
}

// TaskPort defines the interface other modules use to access task
// functionality.
type TaskPort interface {
	TasksForList(ctx context.Context, userID, listID string) ([]TaskResponse, error)
}
