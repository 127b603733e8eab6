package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/auth"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/config"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/handler"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/middleware"
)

// RegisterAuth registers the page-flow credential routes.  The form pages
// and the signup/login POSTs are open; /home, /logout and /v1/me sit behind
// the session middleware, which replaces the per-handler "if no session,
// redirect" checks of the original service.  The POST routes additionally
// carry the token bucket because each request costs a bcrypt round.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, svc *auth.Service, cfg config.Config, rdb *redis.Client) {
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e.GET("/signup-form", a.SignupForm)
	e.GET("/login-form", a.LoginForm)
	e.POST("/signup", a.Signup, limiter)
	e.POST("/login", a.Login, limiter)

	// Logout destroys whatever session the cookie names; it stays outside
	// the gate so an expired session still lands on the login form.
	e.GET("/logout", a.Logout)

	gate := middleware.SessionAuth(cfg.SessionSecret, svc)
	e.GET("/home", a.Home, gate)

	api := e.Group("/v1")
	api.Use(middleware.SessionAuthJSON(cfg.SessionSecret, svc))
	api.GET("/me", a.Me)
}
