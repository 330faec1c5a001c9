package app

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arlden/adpanel/internal/middleware"
	"github.com/arlden/adpanel/internal/plugins/campaigns"
	"github.com/arlden/adpanel/internal/plugins/dashboard"
	"github.com/arlden/adpanel/internal/plugins/media"
	"github.com/arlden/adpanel/internal/plugins/session"
	"github.com/arlden/adpanel/internal/templates/layouts"
)

// RegisterRoutes sets up all application routes. It constructs each
// plugin's services and handlers and delegates to the plugin's route
// registration function.
//
// This is the single place where all routes are aggregated.
func (a *App) RegisterRoutes() {
	e := a.Echo
	cfg := a.Config

	// --- Plugin services and handlers ---

	sessionSvc := session.NewService(a.Gateway, a.Redis, cfg.Session.TTL)
	sessionHandler := session.NewHandler(sessionSvc, a.Gateway)

	mediaSvc := media.NewService(cfg.Upload.MediaPath, cfg.Upload.MaxSize)
	mediaHandler := media.NewHandler(mediaSvc)

	campaignHandler := campaigns.NewHandler(a.Gateway, mediaSvc, cfg.Session.TTL)
	dashboardHandler := dashboard.NewHandler(a.Gateway, cfg.Session.TTL)

	// Layout injector: copies session data from the Echo context into the
	// Go context so Templ templates can render the sidebar and user info.
	middleware.LayoutInjector = func(c echo.Context, ctx context.Context) context.Context {
		if s := session.Current(c); s != nil {
			ctx = layouts.SetIsAuthenticated(ctx, true)
			ctx = layouts.SetUserName(ctx, s.Name)
			ctx = layouts.SetUserEmail(ctx, s.Email)
		}
		ctx = layouts.SetCSRFToken(ctx, middleware.GetCSRFToken(c))
		ctx = layouts.SetActivePath(ctx, c.Request().URL.Path)
		return ctx
	}

	// --- Public routes ---

	// Landing: straight to the dashboard; the auth middleware bounces
	// unauthenticated visitors to /login from there.
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	})

	// Health check endpoint for Docker health monitoring.
	e.GET("/healthz", func(c echo.Context) error {
		if err := a.Redis.Ping(c.Request().Context()).Err(); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Login/logout plus the stored creative files.
	session.RegisterRoutes(e, sessionHandler, sessionSvc)
	media.RegisterRoutes(e, mediaHandler)

	// --- Authenticated routes ---

	authed := e.Group("", session.RequireAuth(sessionSvc))

	session.RegisterProtectedRoutes(authed, sessionHandler)
	dashboard.RegisterRoutes(authed, dashboardHandler)

	// 10% margin on the upload limit for multipart encoding overhead.
	uploadLimit := media.BodyLimit(cfg.Upload.MaxSize + cfg.Upload.MaxSize/10)
	campaigns.RegisterRoutes(authed, campaignHandler, uploadLimit)
}
