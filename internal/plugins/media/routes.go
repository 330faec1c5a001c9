package media

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up the media serving route. Files are public: the
// URLs end up embedded in campaign records served to ad placements.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/media/*", h.Serve)
}

// BodyLimit returns middleware that rejects request bodies exceeding the
// given size in bytes. Applied to upload endpoints before the handler reads
// the body into memory.
func BodyLimit(maxBytes int64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().ContentLength > maxBytes {
				return echo.NewHTTPError(http.StatusRequestEntityTooLarge,
					fmt.Sprintf("request body too large; maximum is %d MB", maxBytes/(1024*1024)))
			}
			c.Request().Body = http.MaxBytesReader(c.Response(), c.Request().Body, maxBytes)
			return next(c)
		}
	}
}
