package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// ListCreatedEvent is emitted when a new list is created.
type ListCreatedEvent struct {
	ListID    string    `json:"list_id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ListCreatedV1 is the typed event definition for list creation.
// Subject: events.list.v1.list-created
var ListCreatedV1 = helper.EventDefinition[ListCreatedEvent](
	"list", "ListCreated", "v1",
)

// ListDeletedEvent is emitted when a list and its tasks are deleted.
type ListDeletedEvent struct {
	ListID    string    `json:"list_id"`
	UserID    string    `json:"user_id"`
	TaskCount int       `json:"task_count"`
	DeletedAt time.Time `json:"deleted_at"`
}

// ListDeletedV1 is the typed event definition for list deletion.
// Subject: events.list.v1.list-deleted
var ListDeletedV1 = helper.EventDefinition[ListDeletedEvent](
	"list", "ListDeleted", "v1",
)

// ListDuplicatedEvent is emitted when a list is duplicated. The task
// module reacts by copying the source list's tasks into the new list.
type ListDuplicatedEvent struct {
	SourceListID string    `json:"source_list_id"`
	NewListID    string    `json:"new_list_id"`
	UserID       string    `json:"user_id"`
	DuplicatedAt time.Time `json:"duplicated_at"`
}

// ListDuplicatedV1 is the typed event definition for list duplication.
// Subject: events.list.v1.list-duplicated
var ListDuplicatedV1 = helper.EventDefinition[ListDuplicatedEvent](
	"list", "ListDuplicated", "v1",
)
