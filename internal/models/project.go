package models

// ProjectStatus tracks whether a project is finished.
type ProjectStatus string

const (
	StatusDone    ProjectStatus = "done"
	StatusPending ProjectStatus = "pending"
)

// Project is an academic project grouping students and professors.
type Project struct {
	ProjectID   int           `json:"project_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	IsPublic    bool          `json:"is_public"`
	UserCount   int           `json:"user_count,omitempty"`
	CreateAt    string        `json:"create_at,omitempty"`
	UpdateAt    string        `json:"update_at,omitempty"`
}

// CreateProjectRequest is the payload for creating a project.
type CreateProjectRequest struct {
	Title       string        `json:"title" validate:"required"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status" validate:"required,oneof=done pending"`
	IsPublic    bool          `json:"is_public"`
}

// UpdateProjectRequest is the payload for updating a project.
type UpdateProjectRequest struct {
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status,omitempty"`
	IsPublic    *bool         `json:"is_public,omitempty"`
}
