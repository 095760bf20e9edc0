package models

// Role classifies an account. The backend issues it inside the bearer
// token; the client never sets it directly.
type Role string

const (
	RoleStudent   Role = "student"
	RoleProfessor Role = "professor"
	RoleAdmin     Role = "admin"
)

// Valid reports whether the role is one the backend issues.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleProfessor, RoleAdmin:
		return true
	}
	return false
}

// User represents an account as the backend serialises it. UserID doubles
// as the login credential.
type User struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	ImageURL string `json:"image_url,omitempty"`
	CreateAt string `json:"create_at,omitempty"`
	UpdateAt string `json:"update_at,omitempty"`
}

// CreateUserRequest is the payload for the user-creation endpoint.
type CreateUserRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     Role   `json:"role" validate:"required,oneof=student professor admin"`
}

// UpdateUserRequest is the payload for updating an account.
type UpdateUserRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}
