package task

import (
	"context"
	"fmt"
	"time"

	"github.com/go-monolith/mono"
	"github.com/google/uuid"

	domain "github.com/example/taskboard/domain/task"
)

// bulkCreate handles the bulk-create service request. All tasks are
// validated before any row is written so the batch is all-or-nothing.
func (m *TaskModule) bulkCreate(ctx context.Context, req BulkCreateRequest, _ *mono.Msg) (BulkResponse, error) {
	if len(req.Tasks) == 0 {
		return BulkResponse{}, nil
	}

	nextOrders := make(map[string]int)
	created := make([]*domain.Task, 0, len(req.Tasks))
	now := time.Now()

	for i, item := range req.Tasks {
		if item.Title == "" {
			return BulkResponse{}, fmt.Errorf("task %d: %w", i, ErrTitleRequired)
		}
		priority := item.Priority
		if priority == "" {
			priority = domain.PriorityMedium
		}
		if !priority.IsValid() {
			return BulkResponse{}, fmt.Errorf("task %d: %w", i, ErrInvalidPriority)
		}

		if _, ok := nextOrders[item.ListID]; !ok {
			if err := m.listPort.ValidateList(ctx, req.UserID, item.ListID); err != nil {
				return BulkResponse{}, fmt.Errorf("task %d: invalid list: %w", i, err)
			}
			order, err := m.repo.NextOrder(item.ListID)
			if err != nil {
				return BulkResponse{}, err
			}
			nextOrders[item.ListID] = order
		}

		order := nextOrders[item.ListID]
		nextOrders[item.ListID] = order + 1

		o := order
		created = append(created, &domain.Task{
			ID:          uuid.New().String(),
			Title:       item.Title,
			Description: item.Description,
			Priority:    priority,
			Deadline:    item.Deadline,
			ListID:      item.ListID,
			UserID:      req.UserID,
			Order:       &o,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	if err := m.repo.CreateBatch(created); err != nil {
		return BulkResponse{}, err
	}

	out := make([]TaskResponse, 0, len(created))
	for _, t := range created {
		m.publishCreated(t)
		out = append(out, toTaskResponse(t))
	}

	return BulkResponse{Affected: len(out), Tasks: out}, nil
}

// bulkComplete handles the bulk-complete service request. Already
// completed tasks are skipped, unknown or foreign ids fail the batch.
func (m *TaskModule) bulkComplete(_ context.Context, req BulkCompleteRequest, _ *mono.Msg) (BulkResponse, error) {
	now := time.Now()
	affected := make([]TaskResponse, 0, len(req.TaskIDs))

	for _, id := range req.TaskIDs {
		t, err := m.ownedTask(req.UserID, id)
		if err != nil {
			return BulkResponse{}, err
		}
		if t.Completed {
			continue
		}

		t.Completed = true
		t.CompletedAt = &now
		t.UpdatedAt = now
		if err := m.repo.Update(t); err != nil {
			return BulkResponse{}, err
		}

		m.publishCompleted(t, now)
		affected = append(affected, toTaskResponse(t))
	}

	return BulkResponse{Affected: len(affected), Tasks: affected}, nil
}

// bulkDelete handles the bulk-delete service request.
func (m *TaskModule) bulkDelete(_ context.Context, req BulkDeleteRequest, _ *mono.Msg) (BulkResponse, error) {
	tasks := make([]*domain.Task, 0, len(req.TaskIDs))
	for _, id := range req.TaskIDs {
		t, err := m.ownedTask(req.UserID, id)
		if err != nil {
			return BulkResponse{}, err
		}
		tasks = append(tasks, t)
	}

	deleted, err := m.repo.DeleteBatch(req.UserID, req.TaskIDs)
	if err != nil {
		return BulkResponse{}, err
	}

	for _, t := range tasks {
		m.publishDeleted(t)
	}

	return BulkResponse{Affected: deleted}, nil
}
