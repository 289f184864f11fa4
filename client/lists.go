package client

import (
	"context"
	"net/http"
	"net/url"
)

// ListQuery carries the parameters for list listings.
type ListQuery struct {
	Search          string
	IncludeArchived bool
	SortBy          string
	SortDesc        bool
}

func (q ListQuery) values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.IncludeArchived {
		v.Set("include_archived", "true")
	}
	if q.SortBy != "" {
		v.Set("sort", q.SortBy)
		if q.SortDesc {
			v.Set("direction", "desc")
		}
	}
	return v
}

// CreateList is the payload for creating a list.
type CreateList struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateList is the payload for a partial list update.
type UpdateList struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ListsService calls the /lists endpoints.
type ListsService struct {
	client *Client
}

// List returns the user's lists. Archived lists are excluded unless
// q.IncludeArchived is set.
func (s *ListsService) List(ctx context.Context, q ListQuery) (*ListPage, error) {
	var page ListPage
	if err := s.client.do(ctx, http.MethodGet, "/lists", q.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Create creates a list.
func (s *ListsService) Create(ctx context.Context, req CreateList) (*List, error) {
	var list List
	if err := s.client.do(ctx, http.MethodPost, "/lists", nil, req, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Get returns one list by id, with its task counters.
func (s *ListsService) Get(ctx context.Context, id string) (*List, error) {
	var list List
	if err := s.client.do(ctx, http.MethodGet, "/lists/"+id, nil, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Update applies a partial update to a list.
func (s *ListsService) Update(ctx context.Context, id string, req UpdateList) (*List, error) {
	var list List
	if err := s.client.do(ctx, http.MethodPut, "/lists/"+id, nil, req, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Delete removes a list. The list's tasks are removed as a consequence.
func (s *ListsService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, "/lists/"+id, nil, nil, nil)
}

// Tasks returns the tasks of one list in board order.
func (s *ListsService) Tasks(ctx context.Context, id string) (*TaskPage, error) {
	var page TaskPage
	if err := s.client.do(ctx, http.MethodGet, "/lists/"+id+"/tasks", nil, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Stats returns the completion stats of one list.
func (s *ListsService) Stats(ctx context.Context, id string) (*ListStats, error) {
	var stats ListStats
	if err := s.client.do(ctx, http.MethodGet, "/lists/"+id+"/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Duplicate copies a list along with its tasks. The server clones the
// task rows asynchronously, so an immediate task fetch may lag.
func (s *ListsService) Duplicate(ctx context.Context, id string) (*List, error) {
	var list List
	if err := s.client.do(ctx, http.MethodPost, "/lists/"+id+"/duplicate", nil, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Archive hides a list from the default listing without deleting it.
func (s *ListsService) Archive(ctx context.Context, id string) (*List, error) {
	var list List
	if err := s.client.do(ctx, http.MethodPost, "/lists/"+id+"/archive", nil, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Unarchive restores an archived list.
func (s *ListsService) Unarchive(ctx context.Context, id string) (*List, error) {
	var list List
	if err := s.client.do(ctx, http.MethodPost, "/lists/"+id+"/unarchive", nil, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}
