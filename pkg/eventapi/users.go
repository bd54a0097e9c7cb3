package eventapi

import (
	"context"
	"net/http"

	"github.com/sefazor/gatherly-gateway/internal/models"
)

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthPayload, error) {
	var payload models.AuthPayload
	if err := c.do(ctx, http.MethodPost, "/login", nil, req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthPayload, error) {
	var payload models.AuthPayload
	if err := c.do(ctx, http.MethodPost, "/register", nil, req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) GetProfile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/user", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPut, "/user", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns the whole user directory. The dataset is small and
// the platform exposes no server-side paging here, so the admin screen
// filters and paginates locally.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	raw, err := c.doRaw(ctx, http.MethodGet, "/users", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeUserList(raw)
}
