package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/projectnest/nestctl/internal/models"
)

// ListProjects fetches one page of projects.
func (c *Client) ListProjects(ctx context.Context, query models.ListQuery) (models.PagedResponse[models.Project], error) {
	var resp models.PagedResponse[models.Project]
	err := c.do(ctx, http.MethodGet, "/get_projects", listParams(query, models.CriterionStatus), nil, &resp)
	return resp, err
}

// GetProject fetches a single project.
func (c *Client) GetProject(ctx context.Context, projectID int) (*models.Project, error) {
	var project models.Project
	if err := c.do(ctx, http.MethodGet, "/get_project/"+strconv.Itoa(projectID), nil, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateProject adds a project.
func (c *Client) CreateProject(ctx context.Context, req models.CreateProjectRequest) error {
	return c.do(ctx, http.MethodPost, "/create_project", nil, req, nil)
}

// UpdateProject replaces mutable project fields.
func (c *Client) UpdateProject(ctx context.Context, projectID int, req models.UpdateProjectRequest) error {
	return c.do(ctx, http.MethodPut, "/update_project/"+strconv.Itoa(projectID), nil, req, nil)
}

// DeleteProject removes a project.
func (c *Client) DeleteProject(ctx context.Context, projectID int) error {
	return c.do(ctx, http.MethodDelete, "/delete_project/"+strconv.Itoa(projectID), nil, nil, nil)
}

// MyProjects lists the projects a user participates in, with member
// counts filled in.
func (c *Client) MyProjects(ctx context.Context, userID string) ([]models.Project, error) {
	var projects []models.Project
	err := c.do(ctx, http.MethodGet, "/my_projects/"+url.PathEscape(userID), nil, nil, &projects)
	return projects, err
}

// TrackedProjects lists the projects the authenticated user follows.
func (c *Client) TrackedProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := c.do(ctx, http.MethodGet, "/get_trackprojects", nil, nil, &projects)
	return projects, err
}

// TrackProject starts following a project for the authenticated user.
func (c *Client) TrackProject(ctx context.Context, projectID int) error {
	body := map[string]int{"project_id": projectID}
	return c.do(ctx, http.MethodPost, "/create_track", nil, body, nil)
}

// UntrackProject stops following a project.
func (c *Client) UntrackProject(ctx context.Context, projectID int) error {
	body := map[string]int{"project_id": projectID}
	return c.do(ctx, http.MethodDelete, "/delete_track", nil, body, nil)
}
