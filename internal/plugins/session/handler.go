package session

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arlden/adpanel/internal/apperror"
	"github.com/arlden/adpanel/internal/gateway"
	"github.com/arlden/adpanel/internal/middleware"
)

// sessionCookieName is the HTTP cookie used to store the session token.
const sessionCookieName = "adpanel_session"

// Handler handles HTTP requests for login, logout, and account signup.
// Handlers are thin: they bind the request, call the service or gateway,
// and render the response.
type Handler struct {
	service Service
	gw      gateway.Client
}

// NewHandler creates a session handler.
func NewHandler(service Service, gw gateway.Client) *Handler {
	return &Handler{service: service, gw: gw}
}

// LoginForm renders the login page (GET /login). RedirectAuthenticated
// has already bounced logged-in users to the dashboard.
func (h *Handler) LoginForm(c echo.Context) error {
	csrfToken := middleware.GetCSRFToken(c)
	return middleware.Render(c, http.StatusOK, LoginPage(csrfToken, "", ""))
}

// Login processes the login form submission (POST /login).
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	token, err := h.service.Login(c.Request().Context(), gateway.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		// Re-render the login form with the error banner. A failed login
		// leaves the session guard's state untouched.
		csrfToken := middleware.GetCSRFToken(c)
		return middleware.Render(c, http.StatusOK, LoginPage(csrfToken, req.Email, loginErrorMessage(err)))
	}

	setSessionCookie(c, token)
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// loginErrorMessage picks the banner text for a failed login.
func loginErrorMessage(err error) string {
	if apperror.IsType(err, apperror.TypeNetwork) {
		return apperror.SafeMessage(err)
	}
	return "Invalid email or password."
}

// Logout invalidates the remote session (best-effort), clears the cookie,
// and forces navigation to the login view (POST /logout).
func (h *Handler) Logout(c echo.Context) error {
	if token := getSessionToken(c); token != "" {
		_ = h.service.Logout(c.Request().Context(), token)
	}
	clearSessionCookie(c)
	return c.Redirect(http.StatusSeeOther, "/login")
}

// SignupForm renders the account creation page (GET /signup). The view is
// protected: only authenticated staff create accounts.
func (h *Handler) SignupForm(c echo.Context) error {
	csrfToken := middleware.GetCSRFToken(c)
	return middleware.Render(c, http.StatusOK, SignupPage(csrfToken, &SignupRequest{}, "", ""))
}

// Signup processes the account creation form (POST /signup).
func (h *Handler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	csrfToken := middleware.GetCSRFToken(c)

	// Local check before calling the remote service.
	if req.Password != req.PasswordConfirmation {
		return middleware.Render(c, http.StatusOK, SignupPage(csrfToken, &req, "Passwords do not match.", ""))
	}

	err := h.gw.Register(c.Request().Context(), gateway.Registration{
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
		Role:                 req.Role,
	})
	if err != nil {
		errMsg := "Signup failed. Please try again."
		if appErr, ok := err.(*apperror.AppError); ok {
			errMsg = appErr.Message
		}
		return middleware.Render(c, http.StatusOK, SignupPage(csrfToken, &req, errMsg, ""))
	}

	return middleware.Render(c, http.StatusOK, SignupPage(csrfToken, &SignupRequest{}, "", "Signup successful!"))
}

// --- Cookie helpers ---

// getSessionToken reads the session token from the cookie.
func getSessionToken(c echo.Context) string {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	return cookie.Value
}

// setSessionCookie sets the session cookie on the response. The cookie is
// HttpOnly (JS can't read it), Secure if behind TLS, and SameSite=Lax.
func setSessionCookie(c echo.Context, token string) {
	req := c.Request()
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   req.TLS != nil || req.Header.Get("X-Forwarded-Proto") == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   30 * 24 * 60 * 60, // 30 days in seconds
	})
}

// clearSessionCookie removes the session cookie by setting MaxAge to -1.
func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
