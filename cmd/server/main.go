package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hall-reservation/internal/config"
	"github.com/iliyamo/hall-reservation/internal/database"
	"github.com/iliyamo/hall-reservation/internal/handler"
	"github.com/iliyamo/hall-reservation/internal/queue"
	"github.com/iliyamo/hall-reservation/internal/repository"
	"github.com/iliyamo/hall-reservation/internal/router"
	"github.com/iliyamo/hall-reservation/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	// Redis is optional: without it the catalog cache and rate limiter
	// become pass-through middleware.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, catalog cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	halls := repository.NewHallRepo(db)
	catalog := repository.NewCatalogRepo(db)
	reservations := repository.NewReservationRepo(db)

	authSvc := service.NewAuthService(users, halls, cfg.JWTSecret, cfg.TokenTTLMin, cfg.BcryptCost)
	userSvc := service.NewUserService(users, halls)
	reservationSvc := service.NewReservationService(users, halls, catalog, reservations)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(authSvc, userSvc), handler.NewUserHandler(userSvc), cfg.JWTSecret)
	router.RegisterReservations(e, handler.NewReservationHandler(reservationSvc), cfg.JWTSecret)
	router.RegisterCatalog(e, handler.NewCatalogHandler(halls, catalog), rdb)

	// Reservation events are consumed in the background; the consumer
	// reconnects on its own and never blocks request handling.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
