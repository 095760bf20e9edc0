package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/projectnest/nestctl/internal/models"
)

// TotalUsers returns the account count shown on the admin overview.
func (c *Client) TotalUsers(ctx context.Context) (int, error) {
	var resp struct {
		TotalUserCount int `json:"total_user_count"`
	}
	if err := c.do(ctx, http.MethodGet, "/totalUsers", nil, nil, &resp); err != nil {
		return 0, err
	}
	return resp.TotalUserCount, nil
}

// TotalProjects returns the number of projects in the given status.
func (c *Client) TotalProjects(ctx context.Context, status models.ProjectStatus) (int, error) {
	params := url.Values{}
	params.Set("status", string(status))

	var resp struct {
		TotalProjects int `json:"total_projects"`
	}
	if err := c.do(ctx, http.MethodGet, "/totalProjects", params, nil, &resp); err != nil {
		return 0, err
	}
	return resp.TotalProjects, nil
}
