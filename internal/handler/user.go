package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hall-reservation/internal/service"
)

// UserHandler exposes favorites and profile endpoints.
type UserHandler struct {
	Users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

// ToggleFavorite handles POST /v1/favorites/:hallId. The hall is added
// to the caller's favorites when absent and removed when present.
func (h *UserHandler) ToggleFavorite(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hallID, err := strconv.ParseUint(c.Param("hallId"), 10, 64)
	if err != nil || hallID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	favorites, added, err := h.Users.ToggleFavorite(ctx, userID, hallID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"favorited": added,
		"favorites": favorites,
	})
}

// Favorites handles GET /v1/favorites and returns the caller's favorite
// halls in insertion order, resolved where possible.
func (h *UserHandler) Favorites(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	refs, err := h.Users.Favorites(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"favorites": refs})
}

type editProfileReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UpdateProfile handles PUT /v1/me. Both name fields are required.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req editProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if req.FirstName == "" || req.LastName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_name/last_name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	info, err := h.Users.UpdateProfile(ctx, userID, req.FirstName, req.LastName)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, info)
}
