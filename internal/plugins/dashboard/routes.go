package dashboard

import "github.com/labstack/echo/v4"

// RegisterRoutes wires the dashboard views into the authenticated route
// group.
func RegisterRoutes(g *echo.Group, h *Handler) {
	g.GET("/dashboard", h.Dashboard)
	g.GET("/dashboard/records", h.Records)
}
