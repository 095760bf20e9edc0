package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/projectnest/nestctl/internal/models"
)

// MyProgress lists progress updates across the authenticated user's
// projects.
func (c *Client) MyProgress(ctx context.Context) ([]models.ProjectProgress, error) {
	var resp struct {
		Progress []models.ProjectProgress `json:"progress"`
	}
	err := c.do(ctx, http.MethodGet, "/my_progress", nil, nil, &resp)
	return resp.Progress, err
}

// ListProgress fetches the progress updates posted on one project.
func (c *Client) ListProgress(ctx context.Context, projectID int) ([]models.ProjectProgress, error) {
	params := url.Values{}
	params.Set("project_id", strconv.Itoa(projectID))

	var resp struct {
		Progress []models.ProjectProgress `json:"progress"`
	}
	err := c.do(ctx, http.MethodGet, "/get_progress", params, nil, &resp)
	return resp.Progress, err
}

// CreateProgress posts a progress update.
func (c *Client) CreateProgress(ctx context.Context, req models.CreateProgressRequest) error {
	return c.do(ctx, http.MethodPost, "/create_progress", nil, req, nil)
}

// UpdateProgress edits an existing progress update.
func (c *Client) UpdateProgress(ctx context.Context, req models.UpdateProgressRequest) error {
	return c.do(ctx, http.MethodPut, "/update_progress", nil, req, nil)
}

// DeleteProgress removes a progress update.
func (c *Client) DeleteProgress(ctx context.Context, progressID int) error {
	return c.do(ctx, http.MethodDelete, "/delete_progress/"+strconv.Itoa(progressID), nil, nil, nil)
}

// ListComments fetches the comment thread under a progress update.
func (c *Client) ListComments(ctx context.Context, progressID int) ([]models.Comment, error) {
	params := url.Values{}
	params.Set("progress_id", strconv.Itoa(progressID))

	var comments []models.Comment
	err := c.do(ctx, http.MethodGet, "/get_comments", params, nil, &comments)
	return comments, err
}

// CreateComment posts a comment under a progress update.
func (c *Client) CreateComment(ctx context.Context, req models.CreateCommentRequest) error {
	return c.do(ctx, http.MethodPost, "/create_comment", nil, req, nil)
}
