package models

type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthPayload is what the platform returns from /login and /register.
type AuthPayload struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Session is the gateway's view of the persisted identity, exposed to
// the UI shell so it can decide which navigation to render.
type Session struct {
	User            *User `json:"user,omitempty"`
	IsAuthenticated bool  `json:"is_authenticated"`
}
