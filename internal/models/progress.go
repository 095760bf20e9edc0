package models

// ProjectProgress is one posted progress update on a project.
type ProjectProgress struct {
	ProgressID    int           `json:"progress_id"`
	ProjectID     int           `json:"project_id"`
	Status        ProjectStatus `json:"status"`
	EstimatedTime string        `json:"estimated_time"`
	ProgressNote  string        `json:"progress_note"`
	CreateAt      string        `json:"create_at,omitempty"`
	UpdateAt      string        `json:"update_at,omitempty"`
}

// CreateProgressRequest posts a new progress update. New updates always
// start out pending; the backend owns status transitions.
type CreateProgressRequest struct {
	ProjectID     int    `json:"project_id" validate:"required"`
	EstimatedTime string `json:"estimated_time" validate:"required"`
	ProgressNote  string `json:"progress_note" validate:"required"`
}

// UpdateProgressRequest edits an existing progress update.
type UpdateProgressRequest struct {
	ProgressID    int    `json:"progress_id" validate:"required"`
	EstimatedTime string `json:"estimated_time,omitempty"`
	ProgressNote  string `json:"progress_note,omitempty"`
}
