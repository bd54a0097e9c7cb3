package models

import (
	"time"
)

type UserRole string

const (
	RoleParticipant UserRole = "participant"
	RoleOrganizer   UserRole = "organizer"
	RoleAdmin       UserRole = "admin"
)

// User is the server-owned identity. The gateway only ever holds a
// read-through copy; the role is immutable from this side.
type User struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name,omitempty" validate:"omitempty,min=2"`
	Phone    *string `json:"phone,omitempty"`
	Avatar   *string `json:"avatar,omitempty" validate:"omitempty,url"`
}

// UserPage is one locally paginated slice of the admin user list.
type UserPage struct {
	Users      []User `json:"users"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
	TotalPages int    `json:"total_pages"`
}
