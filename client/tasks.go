package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TaskQuery carries the filter and sort parameters for task listings.
// Zero values are omitted, so the zero TaskQuery returns the stored
// board order unfiltered.
type TaskQuery struct {
	Search       string
	Status       string
	Priorities   []string
	ListIDs      []string
	CreatedFrom  string
	CreatedTo    string
	DueToday     bool
	DueThisWeek  bool
	Overdue      bool
	HighPriority bool
	SortBy       string
	SortDesc     bool
}

func (q TaskQuery) values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if len(q.Priorities) > 0 {
		v.Set("priority", strings.Join(q.Priorities, ","))
	}
	if len(q.ListIDs) > 0 {
		v.Set("list_id", strings.Join(q.ListIDs, ","))
	}
	if q.CreatedFrom != "" {
		v.Set("created_from", q.CreatedFrom)
	}
	if q.CreatedTo != "" {
		v.Set("created_to", q.CreatedTo)
	}
	if q.DueToday {
		v.Set("due_today", "true")
	}
	if q.DueThisWeek {
		v.Set("due_this_week", "true")
	}
	if q.Overdue {
		v.Set("overdue", "true")
	}
	if q.HighPriority {
		v.Set("high_priority", "true")
	}
	if q.SortBy != "" {
		v.Set("sort", q.SortBy)
		if q.SortDesc {
			v.Set("direction", "desc")
		}
	}
	return v
}

// CreateTask is the payload for creating a task.
type CreateTask struct {
	ListID      string     `json:"list_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// UpdateTask is the payload for a partial task update. Nil fields are
// left untouched; ClearDeadline removes the deadline.
type UpdateTask struct {
	Title         *string    `json:"title,omitempty"`
	Description   *string    `json:"description,omitempty"`
	Priority      *string    `json:"priority,omitempty"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	ClearDeadline bool       `json:"clear_deadline,omitempty"`
}

// TasksService calls the /tasks endpoints.
type TasksService struct {
	client *Client
}

// List returns the user's tasks filtered and sorted per q.
func (s *TasksService) List(ctx context.Context, q TaskQuery) (*TaskPage, error) {
	var page TaskPage
	if err := s.client.do(ctx, http.MethodGet, "/tasks", q.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Create creates a task at the end of its list.
func (s *TasksService) Create(ctx context.Context, req CreateTask) (*Task, error) {
	var task Task
	if err := s.client.do(ctx, http.MethodPost, "/tasks", nil, req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Get returns one task by id.
func (s *TasksService) Get(ctx context.Context, id string) (*Task, error) {
	var task Task
	if err := s.client.do(ctx, http.MethodGet, "/tasks/"+id, nil, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Update applies a partial update to a task.
func (s *TasksService) Update(ctx context.Context, id string, req UpdateTask) (*Task, error) {
	var task Task
	if err := s.client.do(ctx, http.MethodPut, "/tasks/"+id, nil, req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete removes a task.
func (s *TasksService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, "/tasks/"+id, nil, nil, nil)
}

// Toggle flips a task between completed and pending.
func (s *TasksService) Toggle(ctx context.Context, id string) (*Task, error) {
	var task Task
	if err := s.client.do(ctx, http.MethodPatch, "/tasks/"+id+"/toggle", nil, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Move moves a task to another list at the given insertion index.
func (s *TasksService) Move(ctx context.Context, id, toListID string, index int) (*Task, error) {
	req := map[string]any{"to_list_id": toListID, "index": index}
	var task Task
	if err := s.client.do(ctx, http.MethodPatch, "/tasks/"+id+"/move", nil, req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Reorder replaces the ordering of a list with the given id sequence,
// which must be a permutation of the list's tasks.
func (s *TasksService) Reorder(ctx context.Context, listID string, orderedIDs []string) ([]Task, error) {
	req := map[string]any{"list_id": listID, "ordered_ids": orderedIDs}
	var resp struct {
		Tasks []Task `json:"tasks"`
	}
	if err := s.client.do(ctx, http.MethodPut, "/tasks/reorder", nil, req, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// Duplicate copies a task within its list. The copy is always pending.
func (s *TasksService) Duplicate(ctx context.Context, id string) (*Task, error) {
	var task Task
	if err := s.client.do(ctx, http.MethodPost, "/tasks/"+id+"/duplicate", nil, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// SetPriority changes a task's priority.
func (s *TasksService) SetPriority(ctx context.Context, id, priority string) (*Task, error) {
	req := map[string]string{"priority": priority}
	var task Task
	if err := s.client.do(ctx, http.MethodPatch, "/tasks/"+id+"/priority", nil, req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// SetDeadline sets or, with a nil deadline, clears a task's deadline.
func (s *TasksService) SetDeadline(ctx context.Context, id string, deadline *time.Time) (*Task, error) {
	req := map[string]*time.Time{"deadline": deadline}
	var task Task
	if err := s.client.do(ctx, http.MethodPatch, "/tasks/"+id+"/deadline", nil, req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Search returns tasks whose title or description contains q,
// case-insensitively.
func (s *TasksService) Search(ctx context.Context, q string) (*TaskPage, error) {
	v := url.Values{}
	v.Set("q", q)
	var page TaskPage
	if err := s.client.do(ctx, http.MethodGet, "/tasks/search", v, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// DueToday returns pending tasks whose deadline falls today.
func (s *TasksService) DueToday(ctx context.Context) (*TaskPage, error) {
	return s.quickFiltered(ctx, "/tasks/due-today")
}

// DueThisWeek returns pending tasks due within the next seven days.
func (s *TasksService) DueThisWeek(ctx context.Context) (*TaskPage, error) {
	return s.quickFiltered(ctx, "/tasks/due-this-week")
}

// Overdue returns pending tasks whose deadline has passed.
func (s *TasksService) Overdue(ctx context.Context) (*TaskPage, error) {
	return s.quickFiltered(ctx, "/tasks/overdue")
}

func (s *TasksService) quickFiltered(ctx context.Context, path string) (*TaskPage, error) {
	var page TaskPage
	if err := s.client.do(ctx, http.MethodGet, path, nil, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// BulkCreate creates several tasks in one call. The batch is
// all-or-nothing.
func (s *TasksService) BulkCreate(ctx context.Context, tasks []CreateTask) (*BulkResult, error) {
	req := map[string]any{"tasks": tasks}
	var result BulkResult
	if err := s.client.do(ctx, http.MethodPost, "/tasks/bulk", nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// BulkComplete marks several tasks completed. Already-completed tasks
// are skipped and not counted in Affected.
func (s *TasksService) BulkComplete(ctx context.Context, taskIDs []string) (*BulkResult, error) {
	req := map[string]any{"task_ids": taskIDs}
	var result BulkResult
	if err := s.client.do(ctx, http.MethodPost, "/tasks/bulk/complete", nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// BulkDelete removes several tasks.
func (s *TasksService) BulkDelete(ctx context.Context, taskIDs []string) (*BulkResult, error) {
	req := map[string]any{"task_ids": taskIDs}
	var result BulkResult
	if err := s.client.do(ctx, http.MethodPost, "/tasks/bulk/delete", nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
