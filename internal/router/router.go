// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/hall-reservation/internal/config"
	"github.com/iliyamo/hall-reservation/internal/handler"
	"github.com/iliyamo/hall-reservation/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the signup/login endpoints under /v1/auth and
// the protected account endpoints under /v1, guarded by the JWT
// middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, u *handler.UserHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.PUT("/me", u.UpdateProfile)
	auth.GET("/favorites", u.Favorites)
	auth.POST("/favorites/:hallId", u.ToggleFavorite)
}

// RegisterReservations registers the reservation lifecycle endpoints.
// All of them require a valid session token.
func RegisterReservations(e *echo.Echo, r *handler.ReservationHandler, jwtSecret string) {
	g := e.Group("/v1/reservations")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.POST("", r.Create)
	g.GET("", r.List)
	g.GET("/:id", r.Get)
	g.POST("/:id/cancel", r.Cancel)
}

// RegisterCatalog registers the public browse endpoints for halls,
// services and offers. They are unauthenticated and sit behind the
// Redis response cache and the rate limiter; with no Redis client both
// middlewares pass requests through untouched.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, rdb *redis.Client) {
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	g := e.Group("/v1", limit, cache)
	g.GET("/halls", h.ListHalls)
	g.GET("/halls/:id", h.GetHall)
	g.GET("/services", h.ListServices)
	g.GET("/offers", h.ListOffers)
}
