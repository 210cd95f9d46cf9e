package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hall-reservation/internal/repository"
)

// CatalogHandler serves the public, read-only catalog: halls, services
// and offers. These routes carry no authentication and sit behind the
// Redis response cache and the rate limiter.
type CatalogHandler struct {
	Halls   *repository.HallRepo
	Catalog *repository.CatalogRepo
}

func NewCatalogHandler(halls *repository.HallRepo, catalog *repository.CatalogRepo) *CatalogHandler {
	if halls == nil || catalog == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{Halls: halls, Catalog: catalog}
}

// ListHalls handles GET /v1/halls.
func (h *CatalogHandler) ListHalls(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	halls, err := h.Halls.ListActive(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"halls": halls})
}

// GetHall handles GET /v1/halls/:id.
func (h *CatalogHandler) GetHall(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hall, err := h.Halls.GetByID(ctx, id)
	if err != nil {
		// A directly requested hall is the resource itself, not a
		// reference inside a write, so absence is a plain 404.
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, hall)
}

// ListServices handles GET /v1/services.
func (h *CatalogHandler) ListServices(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	services, err := h.Catalog.ListServices(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"services": services})
}

// ListOffers handles GET /v1/offers.
func (h *CatalogHandler) ListOffers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	offers, err := h.Catalog.ListOffers(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"offers": offers})
}
