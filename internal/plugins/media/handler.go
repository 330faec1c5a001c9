package media

import (
	"github.com/labstack/echo/v4"
)

// Handler serves stored creative files.
type Handler struct {
	service Service
}

// NewHandler creates a new media handler.
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Serve serves a stored file (GET /media/*).
func (h *Handler) Serve(c echo.Context) error {
	diskPath, contentType, err := h.service.Resolve(c.Param("*"))
	if err != nil {
		return err
	}

	// UUID-based filenames never change, so the content is immutable.
	c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	c.Response().Header().Set("Content-Type", contentType)
	return c.File(diskPath)
}
