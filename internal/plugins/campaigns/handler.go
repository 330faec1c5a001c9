// Package campaigns implements the campaign list and edit views: the
// session's in-memory campaign collection, the paginated list, the
// create/edit form workflow, and the creative preview modal.
package campaigns

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arlden/adpanel/internal/apperror"
	"github.com/arlden/adpanel/internal/gateway"
	"github.com/arlden/adpanel/internal/middleware"
	"github.com/arlden/adpanel/internal/plugins/session"
	"github.com/arlden/adpanel/internal/state"
)

// Banner texts for the list and form views.
const (
	msgLoadFailed   = "Failed to load campaigns. Please try again later."
	msgNoCampaigns  = "No campaigns available."
	msgDeleteFailed = "Could not delete the campaign. Please try again."
	msgDetailFailed = "Failed to load campaign details."
	msgSaveFailed   = "Failed to save the campaign. Please try again."
	msgCreated      = "Campaign created successfully!"
	msgUpdated      = "Campaign updated successfully!"
)

// CreativeStore persists an uploaded creative and returns a displayable URL
// for it. Implemented by the media plugin.
type CreativeStore interface {
	Store(ctx context.Context, originalName, mimeType string, data []byte) (string, error)
}

// Handler handles HTTP requests for the campaign views. Per-session state
// (the list collection and the form working copy) is looked up by browser
// session token.
type Handler struct {
	gw    gateway.Client
	repos *state.Registry[*Repository]
	forms *state.Registry[*Form]
	store CreativeStore
}

// NewHandler creates a campaigns handler with fresh per-session registries.
// ttl bounds how long an idle session keeps its view state.
func NewHandler(gw gateway.Client, store CreativeStore, ttl time.Duration) *Handler {
	return &Handler{
		gw:    gw,
		repos: state.NewRegistry(ttl, func() *Repository { return NewRepository(gw) }),
		forms: state.NewRegistry(ttl, func() *Form { return NewForm(gw) }),
		store: store,
	}
}

// List renders the paginated campaign list (GET /campaigns?page=N).
// Every visit refreshes the collection from the remote service; page
// changes within the fetched collection are purely local.
func (h *Handler) List(c echo.Context) error {
	repo := h.repos.Get(session.CurrentToken(c))

	errMsg := ""
	if err := repo.Refresh(c.Request().Context()); err != nil {
		errMsg = msgLoadFailed
	} else if repo.State() == StateEmpty {
		errMsg = msgNoCampaigns
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	view := Paginate(repo.Campaigns(), PageSize, page)

	return middleware.Render(c, http.StatusOK, ListPage(view, errMsg, middleware.GetCSRFToken(c)))
}

// Delete removes a campaign (POST /campaigns/:id/delete). On success the
// entry disappears from the session's collection immediately; the page
// number is clamped in Paginate if the delete emptied the current page.
func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperror.NewBadRequest("invalid campaign id")
	}

	repo := h.repos.Get(session.CurrentToken(c))
	page, _ := strconv.Atoi(c.FormValue("page"))

	if err := repo.Remove(c.Request().Context(), id); err != nil {
		view := Paginate(repo.Campaigns(), PageSize, page)
		return middleware.Render(c, http.StatusOK, ListPage(view, msgDeleteFailed, middleware.GetCSRFToken(c)))
	}

	page = ClampPage(page, PageCount(repo.Len(), PageSize))
	return c.Redirect(http.StatusSeeOther, "/campaigns?page="+strconv.Itoa(page))
}

// Preview renders the creative preview modal for one campaign
// (GET /campaigns/:id/creatives). The modal shows exactly the normalized
// list of the requested campaign; opening it for another campaign fully
// replaces the displayed set.
func (h *Handler) Preview(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperror.NewBadRequest("invalid campaign id")
	}

	repo := h.repos.Get(session.CurrentToken(c))
	campaign, ok := repo.Find(id)
	if !ok {
		// Not in the session's collection (direct link, expired state):
		// fall back to a fetch.
		campaign, err = h.gw.GetCampaign(c.Request().Context(), id)
		if err != nil {
			return err
		}
	}

	return middleware.Render(c, http.StatusOK, CreativesModal(campaign.Creatives))
}

// New opens the form on a blank campaign (GET /create).
func (h *Handler) New(c echo.Context) error {
	form := h.forms.Get(session.CurrentToken(c))
	form.OpenNew()
	return middleware.Render(c, http.StatusOK, FormPage(form.Working(), "", "", middleware.GetCSRFToken(c)))
}

// Edit opens the form on an existing campaign (GET /campaigns/edit/:id).
// A failed load reports the failure and leaves the form's prior state.
func (h *Handler) Edit(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperror.NewBadRequest("invalid campaign id")
	}

	form := h.forms.Get(session.CurrentToken(c))
	if err := form.Open(c.Request().Context(), id); err != nil {
		return middleware.Render(c, http.StatusOK, FormPage(form.Working(), "", msgDetailFailed, middleware.GetCSRFToken(c)))
	}
	return middleware.Render(c, http.StatusOK, FormPage(form.Working(), "", "", middleware.GetCSRFToken(c)))
}

// Upload attaches creative images to the working copy
// (POST /campaigns/uploads). New references are appended to whatever was
// already attached, never replacing it, and the form re-renders with the
// grown preview grid.
func (h *Handler) Upload(c echo.Context) error {
	form := h.forms.Get(session.CurrentToken(c))
	csrfToken := middleware.GetCSRFToken(c)

	mf, err := c.MultipartForm()
	if err != nil {
		return middleware.Render(c, http.StatusOK, FormPage(form.Working(), "", "No files provided.", csrfToken))
	}

	var urls []string
	for _, file := range mf.File["creatives"] {
		src, err := file.Open()
		if err != nil {
			return apperror.NewInternal(err)
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return apperror.NewInternal(err)
		}

		url, err := h.store.Store(c.Request().Context(), file.Filename, file.Header.Get("Content-Type"), data)
		if err != nil {
			return middleware.Render(c, http.StatusOK, FormPage(form.Working(), "", apperror.SafeMessage(err), csrfToken))
		}
		urls = append(urls, url)
	}

	form.AppendCreatives(urls)
	return middleware.Render(c, http.StatusOK, FormPage(form.Working(), "", "", csrfToken))
}

// Save submits the working copy (POST /campaigns/save): a create when the
// working id is zero, an update otherwise. Success shows the matching
// message and navigates back to the list after a short delay; a remote
// validation failure shows the flattened field messages; anything else
// shows a generic retry banner.
func (h *Handler) Save(c echo.Context) error {
	form := h.forms.Get(session.CurrentToken(c))
	csrfToken := middleware.GetCSRFToken(c)

	daily, _ := strconv.ParseFloat(c.FormValue("daily_budget"), 64)
	total, _ := strconv.ParseFloat(c.FormValue("total_budget"), 64)
	form.SetFields(
		c.FormValue("name"),
		c.FormValue("from"),
		c.FormValue("to"),
		daily,
		total,
	)

	created, err := form.Save(c.Request().Context())
	if err != nil {
		errMsg := msgSaveFailed
		if apperror.IsType(err, apperror.TypeValidation) {
			errMsg = apperror.SafeMessage(err)
		}
		return middleware.Render(c, http.StatusOK, FormPage(form.Working(), "", errMsg, csrfToken))
	}

	successMsg := msgUpdated
	if created {
		successMsg = msgCreated
	}
	return middleware.Render(c, http.StatusOK, SavedPage(successMsg))
}
