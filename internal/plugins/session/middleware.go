package session

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arlden/adpanel/internal/gateway"
)

// Context keys for storing session data in the Echo context. Other plugins
// use the exported getters below to read the authenticated user's info.
const (
	contextKeySession = "session_data"
	contextKeyToken   = "session_token"
)

// RequireAuth returns middleware that validates the session cookie, injects
// the session into the request context, and attaches the remote bearer
// token to the Go context so every gateway call made downstream carries it.
// Unauthenticated browsers are redirected to /login.
func RequireAuth(service Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := getSessionToken(c)
			if token == "" {
				return c.Redirect(http.StatusSeeOther, "/login")
			}

			session, err := service.Validate(c.Request().Context(), token)
			if err != nil {
				// Invalid or expired session -- clear the stale cookie.
				clearSessionCookie(c)
				return c.Redirect(http.StatusSeeOther, "/login")
			}

			c.Set(contextKeySession, session)
			c.Set(contextKeyToken, token)

			// The gateway reads the bearer token from the request context
			// on every authenticated call.
			req := c.Request()
			c.SetRequest(req.WithContext(gateway.WithToken(req.Context(), session.RemoteToken)))

			return next(c)
		}
	}
}

// RedirectAuthenticated returns middleware for the login view: a browser
// that already holds a valid session is sent to the dashboard instead.
func RedirectAuthenticated(service Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := getSessionToken(c); token != "" {
				if _, err := service.Validate(c.Request().Context(), token); err == nil {
					return c.Redirect(http.StatusSeeOther, "/dashboard")
				}
			}
			return next(c)
		}
	}
}

// Current retrieves the validated session from the Echo context. Returns
// nil when RequireAuth was not applied or validation failed.
func Current(c echo.Context) *Session {
	session, ok := c.Get(contextKeySession).(*Session)
	if !ok {
		return nil
	}
	return session
}

// CurrentToken returns the browser session token for the request, or "".
// Plugins use it as the key for per-session view state.
func CurrentToken(c echo.Context) string {
	token, _ := c.Get(contextKeyToken).(string)
	return token
}
