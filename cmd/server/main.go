package main // Entry point package

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/auth"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/config"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/database"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/handler"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/queue"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/repository"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/router"
	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/session"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	listings := repository.NewListingRepo(db)
	purchases := repository.NewPurchaseRepo(db)

	// Redis backs sessions, the rate limiter and the response cache.  When
	// it is unreachable the service degrades: sessions fall back to the
	// in-process store and the middlewares pass requests through.
	rdb := config.NewRedisClient()
	ttl := time.Duration(cfg.SessionTTLMin) * time.Minute
	var sessions session.Store
	if rdb != nil {
		sessions = session.NewRedisStore(rdb, ttl)
	} else {
		log.Printf("redis unavailable; using in-process session store")
		sessions = session.NewMemoryStore(ttl)
	}

	svc := auth.NewService(users, sessions, cfg.BcryptCost)

	// Audit consumer runs for the life of the process and reconnects on
	// broker failures.
	go func() {
		if err := queue.StartAuditConsumer(); err != nil {
			log.Printf("audit consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, svc), svc, cfg, rdb)
	router.RegisterMarket(e,
		handler.NewMarketHandler(listings),
		handler.NewSupplierHandler(listings, purchases),
		handler.NewBuyerHandler(listings, purchases),
		svc, cfg, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
