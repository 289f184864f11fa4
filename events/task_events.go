package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"

	"github.com/example/taskboard/domain/task"
)

// TaskCreatedEvent is emitted when a new task is created.
type TaskCreatedEvent struct {
	TaskID    string        `json:"task_id"`
	ListID    string        `json:"list_id"`
	UserID    string        `json:"user_id"`
	Title     string        `json:"title"`
	Priority  task.Priority `json:"priority"`
	CreatedAt time.Time     `json:"created_at"`
}

// TaskCreatedV1 is the typed event definition for task creation.
// Subject: events.task.v1.task-created
var TaskCreatedV1 = helper.EventDefinition[TaskCreatedEvent](
	"task", "TaskCreated", "v1",
)

// TaskCompletedEvent is emitted when a task is marked complete.
type TaskCompletedEvent struct {
	TaskID      string        `json:"task_id"`
	ListID      string        `json:"list_id"`
	UserID      string        `json:"user_id"`
	Priority    task.Priority `json:"priority"`
	CompletedAt time.Time     `json:"completed_at"`
}

// TaskCompletedV1 is the typed event definition for task completion.
// Subject: events.task.v1.task-completed
var TaskCompletedV1 = helper.EventDefinition[TaskCompletedEvent](
	"task", "TaskCompleted", "v1",
)

// TaskReopenedEvent is emitted when a completed task is toggled back
// to pending.
type TaskReopenedEvent struct {
	TaskID     string    `json:"task_id"`
	ListID     string    `json:"list_id"`
	UserID     string    `json:"user_id"`
	ReopenedAt time.Time `json:"reopened_at"`
}

// TaskReopenedV1 is the typed event definition for task reopening.
// Subject: events.task.v1.task-reopened
var TaskReopenedV1 = helper.EventDefinition[TaskReopenedEvent](
	"task", "TaskReopened", "v1",
)

// TaskDeletedEvent is emitted when a task is deleted.
type TaskDeletedEvent struct {
	TaskID    string    `json:"task_id"`
	ListID    string    `json:"list_id"`
	UserID    string    `json:"user_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

// TaskDeletedV1 is the typed event definition for task deletion.
// Subject: events.task.v1.task-deleted
var TaskDeletedV1 = helper.EventDefinition[TaskDeletedEvent](
	"task", "TaskDeleted", "v1",
)

// TaskMovedEvent is emitted when a task changes lists.
type TaskMovedEvent struct {
	TaskID     string    `json:"task_id"`
	FromListID string    `json:"from_list_id"`
	ToListID   string    `json:"to_list_id"`
	UserID     string    `json:"user_id"`
	MovedAt    time.Time `json:"moved_at"`
}

// TaskMovedV1 is the typed event definition for task moves.
// Subject: events.task.v1.task-moved
var TaskMovedV1 = helper.EventDefinition[TaskMovedEvent](
	"task", "TaskMoved", "v1",
)
