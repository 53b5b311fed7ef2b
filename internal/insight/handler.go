package insight

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"shop-insights-backend/internal/store"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/users/:id/profile", h.getProfile)
	app.Get("/api/v1/users/:id/recommendations", h.getRecommendations)
	app.Get("/api/v1/users/:id/similar", h.getSimilarUsers)
	app.Get("/api/v1/users/:id/next-purchase", h.getPrediction)
	app.Get("/api/v1/search", h.search)
}

func (h *Handler) getProfile(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid user id")
	}

	profile, err := h.service.BuildProfile(id)
	if err != nil {
		return storeError(c, err, "user not found")
	}
	return c.JSON(profile)
}

func (h *Handler) getRecommendations(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid user id")
	}
	limit := c.QueryInt("limit", 5)
	if limit < 1 || limit > 50 {
		return c.Status(fiber.StatusBadRequest).SendString("limit must be between 1 and 50")
	}

	recs, err := h.service.Recommend(id, limit)
	if err != nil {
		return storeError(c, err, "user not found")
	}
	return c.JSON(recs)
}

func (h *Handler) getSimilarUsers(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid user id")
	}
	limit := c.QueryInt("limit", 5)
	if limit < 1 || limit > 50 {
		return c.Status(fiber.StatusBadRequest).SendString("limit must be between 1 and 50")
	}

	similar, err := h.service.FindSimilar(id, limit)
	if err != nil {
		return storeError(c, err, "user not found")
	}
	return c.JSON(similar)
}

func (h *Handler) getPrediction(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid user id")
	}

	prediction, err := h.service.PredictNext(id)
	if err != nil {
		return storeError(c, err, "user not found")
	}
	if prediction == nil {
		return c.Status(fiber.StatusNotFound).SendString("insufficient order history")
	}
	return c.JSON(prediction)
}

func (h *Handler) search(c *fiber.Ctx) error {
	term := c.Query("q")
	if term == "" {
		return c.Status(fiber.StatusBadRequest).SendString("q is required")
	}
	userID := c.QueryInt("userId", 0)

	results, err := h.service.Search(term, userID)
	if err != nil {
		return storeError(c, err, "not found")
	}
	return c.JSON(results)
}

// storeError maps gateway failures onto HTTP statuses: absent rows are
// 404, a dead store is 503, anything else 500.
func storeError(c *fiber.Ctx, err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.Status(fiber.StatusNotFound).SendString(notFoundMsg)
	case errors.Is(err, store.ErrStoreUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).SendString("store unavailable")
	default:
		return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}
}
