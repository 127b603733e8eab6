package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/auth"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/config"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/handler"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/middleware"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/model"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/repository"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/router"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/session"
)

// memUserStore backs the auth service in handler tests; uniqueness is
// enforced the way the real table's indexes would.
type memUserStore struct {
	mu      sync.Mutex
	nextID  uint64
	byEmail map[string]model.User
	byPhone map[uint64]bool
}

func newMemUserStore() *memUserStore {
	return &memUserStore{byEmail: make(map[string]model.User), byPhone: make(map[uint64]bool)}
}

func (m *memUserStore) Create(_ context.Context, u model.User) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[u.Email]; ok || m.byPhone[u.Phone] {
		return model.User{}, repository.ErrDuplicateUser
	}
	m.nextID++
	u.ID = m.nextID
	m.byEmail[u.Email] = u
	m.byPhone[u.Phone] = true
	return u, nil
}

func (m *memUserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[email]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	cfg := config.Config{
		Env:           "test",
		SessionSecret: "test-secret",
		SessionTTLMin: 60,
		BcryptCost:    bcrypt.MinCost,
	}
	svc := auth.NewService(newMemUserStore(), session.NewMemoryStore(time.Hour), cfg.BcryptCost)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, svc), svc, cfg, nil)
	return e
}

func postForm(e *echo.Echo, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func get(e *echo.Echo, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func janeForm() url.Values {
	return url.Values{
		"name":     {"Jane"},
		"email":    {"jane@x.com"},
		"password": {"pw123"},
		"phone":    {"5551234"},
		"location": {"NY"},
		"role":     {"Buyer"},
	}
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.CookieName {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestForms(t *testing.T) {
	e := newTestServer(t)

	rec := get(e, "/signup-form")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/signup"`)

	rec = get(e, "/login-form")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/login"`)
}

func TestSignupLoginHomeLogout(t *testing.T) {
	e := newTestServer(t)

	// Signup redirects to the login form.
	rec := postForm(e, "/signup", janeForm())
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login-form", rec.Header().Get("Location"))

	// Login sets the session cookie and redirects home.
	rec = postForm(e, "/login", url.Values{"email": {"jane@x.com"}, "password": {"pw123"}})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/home", rec.Header().Get("Location"))
	cookie := sessionCookie(t, rec)
	assert.True(t, cookie.HttpOnly)

	// Home renders the current user.
	rec = get(e, "/home", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Welcome, Jane")
	assert.NotContains(t, rec.Body.String(), "pw123")

	// /v1/me returns the identity without the hash.
	rec = get(e, "/v1/me", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"jane@x.com"`)
	assert.NotContains(t, rec.Body.String(), "password")

	// Logout destroys the session.
	rec = get(e, "/logout", cookie)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login-form", rec.Header().Get("Location"))

	// The old cookie is now anonymous.
	rec = get(e, "/home", cookie)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login-form", rec.Header().Get("Location"))
}

func TestSignupDuplicateEmail(t *testing.T) {
	e := newTestServer(t)

	rec := postForm(e, "/signup", janeForm())
	require.Equal(t, http.StatusFound, rec.Code)

	form := janeForm()
	form.Set("phone", "5550000")
	rec = postForm(e, "/signup", form)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already registered")
}

func TestSignupMissingField(t *testing.T) {
	e := newTestServer(t)

	form := janeForm()
	form.Del("location")
	rec := postForm(e, "/signup", form)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignupBadPhone(t *testing.T) {
	e := newTestServer(t)

	form := janeForm()
	form.Set("phone", "not-a-number")
	rec := postForm(e, "/signup", form)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginFailuresAreDistinguishable(t *testing.T) {
	e := newTestServer(t)

	rec := postForm(e, "/signup", janeForm())
	require.Equal(t, http.StatusFound, rec.Code)

	// Unknown email and wrong password remain separate outcomes.
	rec = postForm(e, "/login", url.Values{"email": {"nobody@x.com"}, "password": {"pw123"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", rec.Body.String())

	rec = postForm(e, "/login", url.Values{"email": {"jane@x.com"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid password", rec.Body.String())
}

func TestHomeRequiresSession(t *testing.T) {
	e := newTestServer(t)

	rec := get(e, "/home")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login-form", rec.Header().Get("Location"))

	// A forged cookie fails the signature check and stays anonymous.
	rec = get(e, "/home", &http.Cookie{Name: middleware.CookieName, Value: "forged"})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login-form", rec.Header().Get("Location"))
}

func TestLogoutWithoutSession(t *testing.T) {
	e := newTestServer(t)

	rec := get(e, "/logout")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login-form", rec.Header().Get("Location"))
}
