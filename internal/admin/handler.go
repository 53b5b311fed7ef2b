package admin

import (
	"database/sql"
	"math/rand"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"shop-insights-backend/internal/config"
	"shop-insights-backend/internal/schema"
)

// Handler owns the admin surface: sign-in issuing a JWT and the
// schema/seed maintenance endpoints behind it.
type Handler struct {
	db  *sql.DB
	cfg config.Config
}

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func NewHandler(db *sql.DB, cfg config.Config) *Handler {
	return &Handler{db: db, cfg: cfg}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/sign-in", h.signIn)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/admin/reseed", h.reseed)

	// destructive reset — additionally gated by ALLOW_RESET_DATA=1
	app.Post("/admin/reset", h.reset)
}

func (h *Handler) signIn(c *fiber.Ctx) error {
	payload := new(signInRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if h.cfg.AdminPassword == "" ||
		payload.Username != h.cfg.AdminUser ||
		payload.Password != h.cfg.AdminPassword {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid credentials"})
	}

	claims := jwt.MapClaims{
		"sub":   payload.Username,
		"admin": true,
		"exp":   time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}

	return c.JSON(fiber.Map{"token": signed})
}

func (h *Handler) reseed(c *fiber.Ctx) error {
	cfg := schema.DefaultSeedConfig()
	if err := schema.Ensure(h.db); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	if err := schema.Seed(h.db, cfg, rng); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}

	counts, err := schema.Stats(h.db)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}
	return c.JSON(counts)
}

func (h *Handler) reset(c *fiber.Ctx) error {
	if os.Getenv("ALLOW_RESET_DATA") != "1" {
		return c.Status(fiber.StatusForbidden).SendString("reset not allowed")
	}
	if err := schema.Reset(h.db); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}
	return c.JSON(fiber.Map{"reset": true})
}
