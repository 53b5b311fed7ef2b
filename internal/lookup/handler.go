package lookup

import (
	"errors"
	"strconv"
	"strings"

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
	// batch routes first so `users?ids=` is not shadowed by the param route
	app.Get("/api/v1/users", h.getUsersBatch)
	app.Get("/api/v1/products", h.getProductsBatch)
	app.Get("/api/v1/orders", h.getOrdersBatch)
	app.Get("/api/v1/users/:id<[0-9]+>", h.getUser)
	app.Get("/api/v1/products/:id<[0-9]+>", h.getProduct)
	app.Get("/api/v1/orders/:id<[0-9]+>", h.getOrder)
}

func (h *Handler) getUser(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid id")
	}
	u, err := h.service.GetUser(id)
	if err != nil {
		return respondError(c, err, "user not found")
	}
	return c.JSON(u)
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid id")
	}
	p, err := h.service.GetProduct(id)
	if err != nil {
		return respondError(c, err, "product not found")
	}
	return c.JSON(p)
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid id")
	}
	o, err := h.service.GetOrder(id)
	if err != nil {
		return respondError(c, err, "order not found")
	}
	return c.JSON(o)
}

func (h *Handler) getUsersBatch(c *fiber.Ctx) error {
	ids, err := parseIDs(c.Query("ids"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}
	users, err := h.service.GetUsers(ids)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(users)
}

func (h *Handler) getProductsBatch(c *fiber.Ctx) error {
	ids, err := parseIDs(c.Query("ids"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}
	products, err := h.service.GetProducts(ids)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(products)
}

func (h *Handler) getOrdersBatch(c *fiber.Ctx) error {
	ids, err := parseIDs(c.Query("ids"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}
	orders, err := h.service.GetOrders(ids)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(orders)
}

// parseIDs turns "1,2,3" into unique ints, preserving first-seen order.
func parseIDs(raw string) ([]int, error) {
	if raw == "" {
		return nil, errors.New("ids is required")
	}
	parts := strings.Split(raw, ",")
	seen := make(map[int]bool, len(parts))
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.New("ids must be a comma-separated list of integers")
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

func respondError(c *fiber.Ctx, err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.Status(fiber.StatusNotFound).SendString(notFoundMsg)
	case errors.Is(err, store.ErrStoreUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).SendString("store unavailable")
	default:
		return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}
}
