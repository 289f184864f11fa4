package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TaskAdapter implements TaskPort by calling the task module's
// services through its service container.
type TaskAdapter struct {
	container mono.ServiceContainer
}

var _ TaskPort = (*TaskAdapter)(nil)

// NewTaskAdapter creates an adapter bound to the task module's container.
func NewTaskAdapter(container mono.ServiceContainer) *TaskAdapter {
	return &TaskAdapter{container: container}
}

// TasksForList returns a list's tasks in board order.
func (a *TaskAdapter) TasksForList(ctx context.Context, userID, listID string) ([]TaskResponse, error) {
	req := GetListTasksRequest{UserID: userID, ListID: listID}
	var resp ListTasksResponse

	err := helper.CallRequestReplyService(
		ctx, a.container, "list-scoped-tasks", json.Marshal, json.Unmarshal, &req, &resp)
	if err != nil {
		return nil, fmt.Errorf("list-scoped-tasks call failed: %w", err)
	}
	return resp.Tasks, nil
}
