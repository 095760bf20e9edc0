package api

import (
	"context"
	"net/http"

	appErrors "github.com/projectnest/nestctl/pkg/errors"

	"github.com/projectnest/nestctl/internal/models"
)

// Login exchanges credentials for an opaque bearer token. Claims inside it
// are decoded by the session manager, not here.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	var resp models.LoginResponse
	if err := c.doPublic(ctx, http.MethodPost, "/login", nil, req, &resp); err != nil {
		e := appErrors.FromError(err)
		if e.Status == http.StatusUnauthorized || e.Status == http.StatusNotFound {
			return "", appErrors.Clone(appErrors.ErrInvalidCredentials, e.Message)
		}
		return "", err
	}
	if resp.Token == "" {
		return "", appErrors.Clone(appErrors.ErrInternal, "backend returned no token")
	}
	return resp.Token, nil
}

// CreateUser registers a new account.
func (c *Client) CreateUser(ctx context.Context, req models.CreateUserRequest) error {
	return c.doPublic(ctx, http.MethodPost, "/create_user", nil, req, nil)
}
