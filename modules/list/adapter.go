package list

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// ListAdapter implements ListPort by calling the list module's
// services through its service container.
type ListAdapter struct {
	container mono.ServiceContainer
}

var _ ListPort = (*ListAdapter)(nil)

// NewListAdapter creates an adapter bound to the list module's container.
func NewListAdapter(container mono.ServiceContainer) *ListAdapter {
	return &ListAdapter{container: container}
}

// ValidateList returns nil when the list exists and belongs to the user.
func (a *ListAdapter) ValidateList(ctx context.Context, userID, listID string) error {
	req := ValidateListRequest{UserID: userID, ListID: listID}
	var resp ValidateListResponse

	err := helper.CallRequestReplyService(
		ctx, a.container, "validate-list", json.Marshal, json.Unmarshal, &req, &resp)
	if err != nil {
		return fmt.Errorf("validate-list call failed: %w", err)
	}
	if !resp.Valid {
		return ErrListNotFound
	}
	return nil
}
