package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/auth"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/config"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/handler"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/middleware"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/model"
)

// RegisterMarket registers the marketplace JSON routes.  Listing browse is
// public and cached; supplier and buyer operations require a session and
// the matching role.
func RegisterMarket(e *echo.Echo, m *handler.MarketHandler, s *handler.SupplierHandler, b *handler.BuyerHandler, svc *auth.Service, cfg config.Config, rdb *redis.Client) {
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	e.GET("/v1/listings", m.GetListings, cache)
	e.GET("/v1/listings/:id", m.GetListing, cache)

	gate := middleware.SessionAuthJSON(cfg.SessionSecret, svc)

	supplier := e.Group("/v1/supplier")
	supplier.Use(gate)
	supplier.Use(middleware.RequireRole(model.RoleSupplier, model.RoleAdmin))
	supplier.POST("/listings", s.CreateListing)
	supplier.GET("/listings", s.MyListings)
	supplier.GET("/dashboard", s.Dashboard)

	buyer := e.Group("/v1/buyer")
	buyer.Use(gate)
	buyer.Use(middleware.RequireRole(model.RoleBuyer, model.RoleAdmin))
	buyer.POST("/listings/:id/purchase", b.Purchase)
	buyer.GET("/purchases", b.MyPurchases)
	buyer.GET("/dashboard", b.Dashboard)
}
