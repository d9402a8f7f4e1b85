package api

import (
	"context"
	"net/url"

	"github.com/utafrali/BlogGo/internal/domain"
)

// UserListResponse is the payload of GET /admin/users.
type UserListResponse struct {
	Users []domain.User `json:"users"`
}

type roleChangeRequest struct {
	Role string `json:"role"`
}

// ListUsers fetches all registered users. Admin only.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var resp UserListResponse
	if err := c.get(ctx, "list_users", "/admin/users", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// PromoteUser grants the given role to a user. Admin only.
func (c *Client) PromoteUser(ctx context.Context, userID, role string) error {
	return c.put(ctx, "promote_user", "/admin/users/"+url.PathEscape(userID)+"/promote", roleChangeRequest{Role: role}, nil)
}

// DemoteUser revokes down to the given role. Admin only.
func (c *Client) DemoteUser(ctx context.Context, userID, role string) error {
	return c.put(ctx, "demote_user", "/admin/users/"+url.PathEscape(userID)+"/demote", roleChangeRequest{Role: role}, nil)
}
