package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/auth"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/config"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/middleware"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/queue"
	queue_publisher "github.com/ShrinivasInamdar/Carbon-Bazar/internal/service"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/session"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/utils"
)

// AuthHandler bundles dependencies for the credential flow endpoints.
type AuthHandler struct {
	Cfg config.Config
	Svc *auth.Service
}

func NewAuthHandler(cfg config.Config, svc *auth.Service) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Svc: svc}
}

// SignupForm renders the signup page.
func (h *AuthHandler) SignupForm(c echo.Context) error {
	return c.HTML(http.StatusOK, signupFormPage)
}

// LoginForm renders the login page.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.HTML(http.StatusOK, loginFormPage)
}

// Signup handles the registration form POST.  On success the browser is
// redirected to the login form, matching the original flow.  Failures come
// back as plain messages: the distinguishable outcomes (invalid input,
// duplicate, server error) are the contract, not the literal wording.
func (h *AuthHandler) Signup(c echo.Context) error {
	phone, _ := strconv.ParseUint(strings.TrimSpace(c.FormValue("phone")), 10, 64)
	in := auth.SignupInput{
		Name:         c.FormValue("name"),
		Email:        c.FormValue("email"),
		Password:     c.FormValue("password"),
		Phone:        phone,
		Location:     c.FormValue("location"),
		Organization: c.FormValue("organization"),
		Role:         c.FormValue("role"),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Svc.Signup(ctx, in)
	switch {
	case errors.Is(err, auth.ErrInvalidInput):
		return c.String(http.StatusBadRequest, "Missing or invalid field")
	case errors.Is(err, auth.ErrEmailOrPhoneTaken):
		return c.String(http.StatusConflict, "Email or phone already registered")
	case err != nil:
		return c.String(http.StatusInternalServerError, "Internal Server Error")
	}

	// Best effort: a lost event never fails the signup.
	go func() {
		_ = queue_publisher.PublishUserRegistered(context.Background(), queue.UserRegisteredEvent{
			UserID:       u.ID,
			Name:         u.Name,
			Email:        u.Email,
			Role:         u.Role,
			Organization: u.Organization,
			RegisteredAt: time.Now().UTC().Format(time.RFC3339),
		})
	}()

	return c.Redirect(http.StatusFound, "/login-form")
}

// Login verifies credentials, establishes a session and sets the signed
// session cookie.  "User not found" and "Invalid password" remain separate
// responses; the original service exposed both and the distinction is kept
// as a documented property of the flow.
func (h *AuthHandler) Login(c echo.Context) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	token, _, err := h.Svc.Login(ctx, email, password)
	switch {
	case errors.Is(err, auth.ErrUserNotFound):
		return c.String(http.StatusNotFound, "User not found")
	case errors.Is(err, auth.ErrInvalidPassword):
		return c.String(http.StatusUnauthorized, "Invalid password")
	case err != nil:
		return c.String(http.StatusInternalServerError, "Internal Server Error")
	}

	sealed, err := utils.SealSessionCookie(h.Cfg.SessionSecret, token, h.sessionTTL())
	if err != nil {
		log.Printf("login: seal cookie failed: %v", err)
		return c.String(http.StatusInternalServerError, "Internal Server Error")
	}
	c.SetCookie(h.sessionCookie(sealed, int(h.sessionTTL()/time.Second)))
	return c.Redirect(http.StatusFound, "/home")
}

// Home renders the landing page for an authenticated user.  SessionAuth has
// already resolved the identity; anonymous callers never reach this point.
func (h *AuthHandler) Home(c echo.Context) error {
	id, ok := c.Get(middleware.CtxIdentity).(session.Identity)
	if !ok {
		return c.Redirect(http.StatusFound, "/login-form")
	}
	page, err := renderHome(id)
	if err != nil {
		return c.String(http.StatusInternalServerError, "Internal Server Error")
	}
	return c.HTML(http.StatusOK, page)
}

// Logout destroys the session (if any) and clears the cookie.  It is
// deliberately tolerant: logging out without a session still redirects to
// the login form.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.CookieName); err == nil && cookie.Value != "" {
		if token, err := utils.OpenSessionCookie(h.Cfg.SessionSecret, cookie.Value); err == nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			h.Svc.Logout(ctx, token)
		}
	}
	c.SetCookie(h.sessionCookie("", -1))
	return c.Redirect(http.StatusFound, "/login-form")
}

// Me returns the authenticated identity as JSON for the single-page
// frontend.
func (h *AuthHandler) Me(c echo.Context) error {
	id, ok := c.Get(middleware.CtxIdentity).(session.Identity)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": id})
}

func (h *AuthHandler) sessionTTL() time.Duration {
	return time.Duration(h.Cfg.SessionTTLMin) * time.Minute
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.Cfg.Env == "prod",
		SameSite: http.SameSiteLaxMode,
	}
}
