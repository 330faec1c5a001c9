// Package session is the session guard: it owns browser sessions, the
// remote bearer token they carry, and the middleware that gates every
// protected view. The remote auth service decides who may log in; this
// package only holds the issued token and the route access rules.
package session

import "time"

// Session is the per-browser session data stored in Redis. It carries the
// opaque bearer token issued by the remote auth service; the token is
// attached to every authenticated gateway call and cleared on logout.
type Session struct {
	// RemoteToken is the bearer credential from the remote auth service.
	RemoteToken string `json:"remote_token"`

	// Email is the address the user logged in with, for display.
	Email string `json:"email"`

	// Name is the user's display name from their remote profile, if the
	// profile fetch succeeded at login.
	Name string `json:"name"`

	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest is the login form binding.
type LoginRequest struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// SignupRequest is the account creation form binding.
type SignupRequest struct {
	Name                 string `form:"name"`
	Email                string `form:"email"`
	Password             string `form:"password"`
	PasswordConfirmation string `form:"password_confirmation"`
	Role                 string `form:"role"`
}
