package models

import "time"

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// Session is the authenticated user's persisted identity record. It
// exists if and only if the user is authenticated.
type Session struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   Address   `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AuthState string

const (
	AuthStateLoading       AuthState = "loading"
	AuthStateAuthenticated AuthState = "authenticated"
	AuthStateAnonymous     AuthState = "anonymous"
)

type AuthStatus struct {
	State   AuthState `json:"state"`
	Session *Session  `json:"session,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Phone     string `json:"phone"`
}

type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ProfileUpdateRequest merges non-empty fields into the session.
type ProfileUpdateRequest struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Email     string   `json:"email" validate:"omitempty,email"`
	Phone     string   `json:"phone"`
	Address   *Address `json:"address"`
}
