package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/projectnest/nestctl/internal/models"
)

// ListUsers fetches one page of users. The "all" role sentinel maps to an
// absent query parameter here; the coordinator passes criteria through
// untouched.
func (c *Client) ListUsers(ctx context.Context, query models.ListQuery) (models.PagedResponse[models.User], error) {
	var resp models.PagedResponse[models.User]
	err := c.do(ctx, http.MethodGet, "/get_users", listParams(query, models.CriterionRole), nil, &resp)
	return resp, err
}

// GetUser fetches a single account.
func (c *Client) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/get_user_by_id/"+url.PathEscape(userID), nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser replaces mutable account fields.
func (c *Client) UpdateUser(ctx context.Context, userID string, req models.UpdateUserRequest) error {
	return c.do(ctx, http.MethodPut, "/update_user/"+url.PathEscape(userID), nil, req, nil)
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, "/delete_user/"+url.PathEscape(userID), nil, nil, nil)
}

// listParams translates a list query into endpoint parameters. enumFilter
// names the criterion whose "all" sentinel means unfiltered.
func listParams(query models.ListQuery, enumFilter string) url.Values {
	params := url.Values{}
	params.Set("page", strconv.Itoa(query.Page))
	params.Set("pageSize", strconv.Itoa(query.PageSize))

	for name, value := range query.Criteria {
		if value == "" {
			continue
		}
		if name == enumFilter && value == models.FilterAll {
			continue
		}
		params.Set(name, value)
	}
	return params
}
