package campaigns

import "github.com/labstack/echo/v4"

// RegisterRoutes wires the campaign views into the authenticated route
// group. uploadLimit caps the creative upload body size before the handler
// reads it into memory.
func RegisterRoutes(g *echo.Group, h *Handler, uploadLimit echo.MiddlewareFunc) {
	g.GET("/campaigns", h.List)
	g.POST("/campaigns/:id/delete", h.Delete)
	g.GET("/campaigns/:id/creatives", h.Preview)

	g.GET("/create", h.New)
	g.GET("/campaigns/edit/:id", h.Edit)
	g.POST("/campaigns/uploads", h.Upload, uploadLimit)
	g.POST("/campaigns/save", h.Save)
}
