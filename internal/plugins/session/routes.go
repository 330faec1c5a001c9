package session

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arlden/adpanel/internal/middleware"
)

// RegisterRoutes sets up the public session routes. Signup lives on the
// authenticated group and is registered in RegisterProtectedRoutes.
//
// POST /login is rate-limited to slow brute-force and credential stuffing.
func RegisterRoutes(e *echo.Echo, h *Handler, svc Service) {
	e.GET("/login", h.LoginForm, RedirectAuthenticated(svc))
	e.POST("/login", h.Login, middleware.RateLimit(10, time.Minute))
	e.POST("/logout", h.Logout)
}

// RegisterProtectedRoutes sets up session routes that require a session.
func RegisterProtectedRoutes(g *echo.Group, h *Handler) {
	g.GET("/signup", h.SignupForm)
	g.POST("/signup", h.Signup, middleware.RateLimit(5, time.Minute))
}
