package task

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-monolith/mono"
	"github.com/google/uuid"

	domain "github.com/example/taskboard/domain/task"
	"github.com/example/taskboard/events"
	"github.com/example/taskboard/query"
)

var (
	// ErrTitleRequired is returned when a task has no title.
	ErrTitleRequired = errors.New("title is required")
	// ErrInvalidPriority is returned for an unknown priority value.
	ErrInvalidPriority = errors.New("priority must be low, medium or high")
	// ErrNotOwner is returned when a task belongs to another user.
	ErrNotOwner = errors.New("task not found")
	// ErrInvalidOrdering is returned when a reorder sequence does not
	// match the list's membership.
	ErrInvalidOrdering = errors.New("ordered ids must be a permutation of the list's tasks")
)

// createTask handles the create-task service request.
func (m *TaskModule) createTask(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	if req.Title == "" {
		return TaskResponse{}, ErrTitleRequired
	}
	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.IsValid() {
		return TaskResponse{}, ErrInvalidPriority
	}

	if err := m.listPort.ValidateList(ctx, req.UserID, req.ListID); err != nil {
		return TaskResponse{}, fmt.Errorf("invalid list: %w", err)
	}

	order, err := m.repo.NextOrder(req.ListID)
	if err != nil {
		return TaskResponse{}, err
	}

	now := time.Now()
	t := &domain.Task{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		Deadline:    req.Deadline,
		ListID:      req.ListID,
		UserID:      req.UserID,
		Order:       &order,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := m.repo.Create(t); err != nil {
		return TaskResponse{}, err
	}

	m.publishCreated(t)

	return toTaskResponse(t), nil
}

// getTask handles the get-task service request.
func (m *TaskModule) getTask(_ context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	t, err := m.ownedTask(req.UserID, req.TaskID)
	if err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(t), nil
}

// updateTask handles the update-task service request.
func (m *TaskModule) updateTask(_ context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	t, err := m.ownedTask(req.UserID, req.TaskID)
	if err != nil {
		return TaskResponse{}, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return TaskResponse{}, ErrTitleRequired
		}
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Priority != nil {
		if !req.Priority.IsValid() {
			return TaskResponse{}, ErrInvalidPriority
		}
		t.Priority = *req.Priority
	}
	if req.ClearDeadline {
		t.Deadline = nil
	} else if req.Deadline != nil {
		t.Deadline = req.Deadline
	}
	t.UpdatedAt = time.Now()

	if err := m.repo.Update(t); err != nil {
		return TaskResponse{}, err
	}

	return toTaskResponse(t), nil
}

// deleteTask handles the delete-task service request.
func (m *TaskModule) deleteTask(_ context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	t, err := m.ownedTask(req.UserID, req.TaskID)
	if err != nil {
		return DeleteTaskResponse{Deleted: false}, err
	}

	if err := m.repo.Delete(t.ID); err != nil {
		return DeleteTaskResponse{Deleted: false}, err
	}

	m.publishDeleted(t)

	return DeleteTaskResponse{Deleted: true}, nil
}

// listTasks handles the list-tasks service request: the user's tasks
// run through the filter/sort engine before leaving the module.
func (m *TaskModule) listTasks(_ context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.repo.FindByUser(req.UserID)
	if err != nil {
		return ListTasksResponse{}, err
	}

	visible := query.ProcessTasks(tasks, req.Filter, req.Sort, time.Now())
	return toListResponse(visible), nil
}

// searchTasks handles free-text search over the user's tasks.
func (m *TaskModule) searchTasks(_ context.Context, req SearchTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.repo.FindByUser(req.UserID)
	if err != nil {
		return ListTasksResponse{}, err
	}

	visible := query.FilterTasks(tasks, query.FilterSpec{Query: req.Query}, time.Now())
	return toListResponse(visible), nil
}

// dueToday handles the due-today service request.
func (m *TaskModule) dueToday(_ context.Context, req GetTaskRequest, _ *mono.Msg) (ListTasksResponse, error) {
	return m.quickFiltered(req.UserID, query.QuickFilters{DueToday: true})
}

// dueThisWeek handles the due-this-week service request.
func (m *TaskModule) dueThisWeek(_ context.Context, req GetTaskRequest, _ *mono.Msg) (ListTasksResponse, error) {
	return m.quickFiltered(req.UserID, query.QuickFilters{DueThisWeek: true})
}

// overdue handles the overdue service request.
func (m *TaskModule) overdue(_ context.Context, req GetTaskRequest, _ *mono.Msg) (ListTasksResponse, error) {
	return m.quickFiltered(req.UserID, query.QuickFilters{Overdue: true})
}

func (m *TaskModule) quickFiltered(userID string, quick query.QuickFilters) (ListTasksResponse, error) {
	tasks, err := m.repo.FindByUser(userID)
	if err != nil {
		return ListTasksResponse{}, err
	}

	visible := query.FilterTasks(tasks, query.FilterSpec{Quick: quick}, time.Now())
	return toListResponse(visible), nil
}

// toggleTask handles the toggle service request, flipping completion.
func (m *TaskModule) toggleTask(_ context.Context, req ToggleTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	t, err := m.ownedTask(req.UserID, req.TaskID)
	if err != nil {
		return TaskResponse{}, err
	}

	now := time.Now()
	t.Completed = !t.Completed
	t.UpdatedAt = now
	if t.Completed {
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}

	if err := m.repo.Update(t); err != nil {
		return TaskResponse{}, err
	}

	if t.Completed {
		m.publishCompleted(t, now)
	} else {
		m.publishReopened(t, now)
	}

	return toTaskResponse(t), nil
}

// moveTask handles the move service request: target list plus
// insertion index, shifting the target list's order to make room.
func (m *TaskModule) moveTask(ctx context.Context, req MoveTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	t, err := m.ownedTask(req.UserID, req.TaskID)
	if err != nil {
		return TaskResponse{}, err
	}

	if err := m.listPort.ValidateList(ctx, req.UserID, req.ToListID); err != nil {
		return TaskResponse{}, fmt.Errorf("invalid target list: %w", err)
	}

	fromListID := t.ListID
	index := req.Index
	if index < 0 {
		index = 0
	}

	if err := m.repo.MoveToList(t, req.ToListID, index); err != nil {
		return TaskResponse{}, err
	}

	if fromListID != req.ToListID {
		m.publishMoved(t, fromListID)
	}

	return toTaskResponse(t), nil
}

// reorderTasks handles the reorder service request: the new full
// ordered id sequence for one list.
func (m *TaskModule) reorderTasks(_ context.Context, req ReorderTasksRequest, _ *mono.Msg) (ReorderTasksResponse, error) {
	current, err := m.repo.FindByList(req.ListID)
	if err != nil {
		return ReorderTasksResponse{}, err
	}

	if err := validateOrdering(current, req.UserID, req.OrderedIDs); err != nil {
		return ReorderTasksResponse{}, err
	}

	if err := m.repo.ApplyOrdering(req.ListID, req.OrderedIDs); err != nil {
		return ReorderTasksResponse{}, err
	}

	updated, err := m.repo.FindByList(req.ListID)
	if err != nil {
		return ReorderTasksResponse{}, err
	}
	return ReorderTasksResponse{Tasks: toTaskResponses(updated)}, nil
}

// duplicateTask handles the duplicate service request. The copy lands
// at the end of the list, pending, with a marked title.
func (m *TaskModule) duplicateTask(_ context.Context, req DuplicateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	src, err := m.ownedTask(req.UserID, req.TaskID)
	if err != nil {
		return TaskResponse{}, err
	}

	order, err := m.repo.NextOrder(src.ListID)
	if err != nil {
		return TaskResponse{}, err
	}

	now := time.Now()
	copy := &domain.Task{
		ID:          uuid.New().String(),
		Title:       src.Title + " (copy)",
		Description: src.Description,
		Priority:    src.Priority,
		Deadline:    src.Deadline,
		ListID:      src.ListID,
		UserID:      src.UserID,
		Order:       &order,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := m.repo.Create(copy); err != nil {
		return TaskResponse{}, err
	}

	m.publishCreated(copy)

	return toTaskResponse(copy), nil
}

// setPriority handles the set-priority service request.
func (m *TaskModule) setPriority(_ context.Context, req SetPriorityRequest, _ *mono.Msg) (TaskResponse, error) {
	if !req.Priority.IsValid() {
		return TaskResponse{}, ErrInvalidPriority
	}

	t, err := m.ownedTask(req.UserID, req.TaskID)
	if err != nil {
		return TaskResponse{}, err
	}

	t.Priority = req.Priority
	t.UpdatedAt = time.Now()
	if err := m.repo.Update(t); err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(t), nil
}

// setDeadline handles the set-deadline service request. A nil deadline
// clears the field.
func (m *TaskModule) setDeadline(_ context.Context, req SetDeadlineRequest, _ *mono.Msg) (TaskResponse, error) {
	t, err := m.ownedTask(req.UserID, req.TaskID)
	if err != nil {
		return TaskResponse{}, err
	}

	t.Deadline = req.Deadline
	t.UpdatedAt = time.Now()
	if err := m.repo.Update(t); err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(t), nil
}

// tasksForList handles the list-scoped lookup used by the list module
// and the /lists/:id/tasks route.
func (m *TaskModule) tasksForList(ctx context.Context, req GetListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	if err := m.listPort.ValidateList(ctx, req.UserID, req.ListID); err != nil {
		return ListTasksResponse{}, fmt.Errorf("invalid list: %w", err)
	}

	tasks, err := m.repo.FindByList(req.ListID)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return toListResponse(tasks), nil
}

// ownedTask fetches a task and enforces ownership. Foreign tasks look
// like missing ones so ids cannot be probed.
func (m *TaskModule) ownedTask(userID, taskID string) (*domain.Task, error) {
	t, err := m.repo.FindByID(taskID)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, ErrNotOwner
	}
	return t, nil
}

// validateOrdering checks that orderedIDs is exactly the set of the
// list's tasks, all owned by userID, with no duplicates.
func validateOrdering(current []domain.Task, userID string, orderedIDs []string) error {
	if len(orderedIDs) != len(current) {
		return ErrInvalidOrdering
	}

	members := make(map[string]bool, len(current))
	for _, t := range current {
		if t.UserID != userID {
			return ErrNotOwner
		}
		members[t.ID] = true
	}

	seen := make(map[string]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !members[id] || seen[id] {
			return ErrInvalidOrdering
		}
		seen[id] = true
	}
	return nil
}

func (m *TaskModule) publishCreated(t *domain.Task) {
	if m.eventBus == nil {
		return
	}
	event := events.TaskCreatedEvent{
		TaskID:    t.ID,
		ListID:    t.ListID,
		UserID:    t.UserID,
		Title:     t.Title,
		Priority:  t.Priority,
		CreatedAt: t.CreatedAt,
	}
	if err := events.TaskCreatedV1.Publish(m.eventBus, event, nil); err != nil {
		// Event publishing is best-effort; log but don't fail the operation
		log.Printf("[task] Warning: failed to publish TaskCreated event for task %s: %v", t.ID, err)
	}
}

func (m *TaskModule) publishCompleted(t *domain.Task, at time.Time) {
	if m.eventBus == nil {
		return
	}
	event := events.TaskCompletedEvent{
		TaskID:      t.ID,
		ListID:      t.ListID,
		UserID:      t.UserID,
		Priority:    t.Priority,
		CompletedAt: at,
	}
	if err := events.TaskCompletedV1.Publish(m.eventBus, event, nil); err != nil {
		log.Printf("[task] Warning: failed to publish TaskCompleted event for task %s: %v", t.ID, err)
	}
}

func (m *TaskModule) publishReopened(t *domain.Task, at time.Time) {
	if m.eventBus == nil {
		return
	}
	event := events.TaskReopenedEvent{
		TaskID:     t.ID,
		ListID:     t.ListID,
		UserID:     t.UserID,
		ReopenedAt: at,
	}
	if err := events.TaskReopenedV1.Publish(m.eventBus, event, nil); err != nil {
		log.Printf("[task] Warning: failed to publish TaskReopened event for task %s: %v", t.ID, err)
	}
}

func (m *TaskModule) publishDeleted(t *domain.Task) {
	if m.eventBus == nil {
		return
	}
	event := events.TaskDeletedEvent{
		TaskID:    t.ID,
		ListID:    t.ListID,
		UserID:    t.UserID,
		DeletedAt: time.Now(),
	}
	if err := events.TaskDeletedV1.Publish(m.eventBus, event, nil); err != nil {
		log.Printf("[task] Warning: failed to publish TaskDeleted event for task %s: %v", t.ID, err)
	}
}

func (m *TaskModule) publishMoved(t *domain.Task, fromListID string) {
	if m.eventBus == nil {
		return
	}
	event := events.TaskMovedEvent{
		TaskID:     t.ID,
		FromListID: fromListID,
		ToListID:   t.ListID,
		UserID:     t.UserID,
		MovedAt:    time.Now(),
	}
	if err := events.TaskMovedV1.Publish(m.eventBus, event, nil); err != nil {
		log.Printf("[task] Warning: failed to publish TaskMoved event for task %s: %v", t.ID, err)
	}
}

// toTaskResponse converts a domain Task to a TaskResponse.
func toTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    t.Priority,
		Deadline:    t.Deadline,
		ListID:      t.ListID,
		Order:       t.Order,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		CompletedAt: t.CompletedAt,
	}
}

func toTaskResponses(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, toTaskResponse(&tasks[i]))
	}
	return out
}

func toListResponse(tasks []domain.Task) ListTasksResponse {
	return ListTasksResponse{
		Tasks: toTaskResponses(tasks),
		Total: len(tasks),
	}
}
