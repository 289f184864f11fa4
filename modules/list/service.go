package list

import (
	"context"
	"errors"
	"time"

	"github.com/go-monolith/mono"
	"github.com/google/uuid"

	domain "github.com/example/taskboard/domain/list"
	"github.com/example/taskboard/query"
)

var (
	// ErrNameRequired is returned when a list has no name.
	ErrNameRequired = errors.New("name is required")
	// ErrNotOwner is returned when a list belongs to another user.
	ErrNotOwner = errors.New("list not found")
)

// createList handles the create-list service request.
func (m *ListModule) createList(_ context.Context, req CreateListRequest, _ *mono.Msg) (ListResponse, error) {
	if req.Name == "" {
		return ListResponse{}, ErrNameRequired
	}

	now := time.Now()
	l := &domain.List{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		UserID:      req.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := m.repo.Create(l); err != nil {
		return ListResponse{}, err
	}

	m.publishCreated(l)

	return toListResponse(l), nil
}

// getList handles the get-list service request.
func (m *ListModule) getList(_ context.Context, req GetListRequest, _ *mono.Msg) (ListResponse, error) {
	l, err := m.ownedList(req.UserID, req.ListID)
	if err != nil {
		return ListResponse{}, err
	}
	return toListResponse(l), nil
}

// updateList handles the update-list service request.
func (m *ListModule) updateList(_ context.Context, req UpdateListRequest, _ *mono.Msg) (ListResponse, error) {
	l, err := m.ownedList(req.UserID, req.ListID)
	if err != nil {
		return ListResponse{}, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return ListResponse{}, ErrNameRequired
		}
		l.Name = *req.Name
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	l.UpdatedAt = time.Now()

	if err := m.repo.Update(l); err != nil {
		return ListResponse{}, err
	}
	return toListResponse(l), nil
}

// deleteList handles the delete-list service request. The tasks of the
// list are removed by the task module reacting to the ListDeleted event.
func (m *ListModule) deleteList(_ context.Context, req DeleteListRequest, _ *mono.Msg) (DeleteListResponse, error) {
	l, err := m.ownedList(req.UserID, req.ListID)
	if err != nil {
		return DeleteListResponse{Deleted: false}, err
	}

	if err := m.repo.Delete(l.ID); err != nil {
		return DeleteListResponse{Deleted: false}, err
	}

	m.publishDeleted(l)

	return DeleteListResponse{Deleted: true}, nil
}

// listLists handles the list-lists service request through the
// filter/sort engine.
func (m *ListModule) listLists(_ context.Context, req ListListsRequest, _ *mono.Msg) (ListListsResponse, error) {
	lists, err := m.repo.FindByUser(req.UserID, req.IncludeArchived)
	if err != nil {
		return ListListsResponse{}, err
	}

	visible := query.ProcessLists(lists, req.Filter, req.Sort)

	out := make([]ListResponse, 0, len(visible))
	for i := range visible {
		out = append(out, toListResponse(&visible[i]))
	}
	return ListListsResponse{Lists: out, Total: len(out)}, nil
}

// duplicateList handles the duplicate service request. The list row is
// copied here; the task module copies the source's tasks into the new
// list when it consumes the ListDuplicated event.
func (m *ListModule) duplicateList(_ context.Context, req DuplicateListRequest, _ *mono.Msg) (ListResponse, error) {
	src, err := m.ownedList(req.UserID, req.ListID)
	if err != nil {
		return ListResponse{}, err
	}

	now := time.Now()
	copy := &domain.List{
		ID:          uuid.New().String(),
		Name:        src.Name + " (copy)",
		Description: src.Description,
		UserID:      src.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := m.repo.Create(copy); err != nil {
		return ListResponse{}, err
	}

	m.publishCreated(copy)
	m.publishDuplicated(src, copy)

	return toListResponse(copy), nil
}

// archiveList handles the archive service request.
func (m *ListModule) archiveList(_ context.Context, req ArchiveListRequest, _ *mono.Msg) (ListResponse, error) {
	return m.setArchived(req, true)
}

// unarchiveList handles the unarchive service request.
func (m *ListModule) unarchiveList(_ context.Context, req ArchiveListRequest, _ *mono.Msg) (ListResponse, error) {
	return m.setArchived(req, false)
}

func (m *ListModule) setArchived(req ArchiveListRequest, archived bool) (ListResponse, error) {
	l, err := m.ownedList(req.UserID, req.ListID)
	if err != nil {
		return ListResponse{}, err
	}

	if l.Archived != archived {
		l.Archived = archived
		l.UpdatedAt = time.Now()
		if err := m.repo.Update(l); err != nil {
			return ListResponse{}, err
		}
	}
	return toListResponse(l), nil
}

// getListStats handles the get-list-stats service request.
func (m *ListModule) getListStats(_ context.Context, req GetListRequest, _ *mono.Msg) (StatsResponse, error) {
	if _, err := m.ownedList(req.UserID, req.ListID); err != nil {
		return StatsResponse{}, err
	}

	stats, err := m.repo.Stats(req.ListID, time.Now())
	if err != nil {
		return StatsResponse{}, err
	}

	return StatsResponse{
		ListID:               stats.ListID,
		TaskCount:            stats.TaskCount,
		CompletedCount:       stats.CompletedCount,
		PendingCount:         stats.PendingCount,
		OverdueCount:         stats.OverdueCount,
		CompletionPercentage: stats.CompletionPercentage,
	}, nil
}

// validateList handles the validate-list service request used by the
// task module before attaching tasks to a list.
func (m *ListModule) validateList(_ context.Context, req ValidateListRequest, _ *mono.Msg) (ValidateListResponse, error) {
	l, err := m.ownedList(req.UserID, req.ListID)
	if err != nil {
		return ValidateListResponse{Valid: false}, err
	}
	return ValidateListResponse{Valid: l != nil}, nil
}

// ownedList fetches a list and enforces ownership. Foreign lists look
// like missing ones so ids cannot be probed.
func (m *ListModule) ownedList(userID, listID string) (*domain.List, error) {
	l, err := m.repo.FindByID(listID)
	if err != nil {
		return nil, err
	}
	if l.UserID != userID {
		return nil, ErrNotOwner
	}
	return l, nil
}

func toListResponse(l *domain.List) ListResponse {
	return ListResponse{
		ID:                   l.ID,
		Name:                 l.Name,
		Description:          l.Description,
		Archived:             l.Archived,
		TaskCount:            l.TaskCount,
		CompletedCount:       l.CompletedCount,
		CompletionPercentage: l.CompletionPercentage(),
		CreatedAt:            l.CreatedAt,
		UpdatedAt:            l.UpdatedAt,
	}
}
