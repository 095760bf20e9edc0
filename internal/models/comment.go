package models

// Comment is one message threaded under a progress update.
type Comment struct {
	CommentID  int    `json:"comment_id"`
	UserID     string `json:"user_id"`
	ProgressID int    `json:"progress_id"`
	Content    string `json:"content"`
	CreateAt   string `json:"create_at,omitempty"`
	UpdateAt   string `json:"update_at,omitempty"`
}

// CreateCommentRequest posts a comment under a progress update.
type CreateCommentRequest struct {
	ProgressID int    `json:"progress_id" validate:"required"`
	Content    string `json:"content" validate:"required"`
}
