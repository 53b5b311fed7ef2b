package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shop-insights-backend/internal/admin"
	"shop-insights-backend/internal/config"
	"shop-insights-backend/internal/insight"
	"shop-insights-backend/internal/lookup"
	"shop-insights-backend/internal/metrics"
	"shop-insights-backend/internal/schema"
	"shop-insights-backend/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New(fiber.Config{
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})
	setupCORS(app)
	app.Use(requestLog)
	app.Use(metrics.Middleware())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()

	if err := schema.Ensure(db); err != nil {
		log.Fatalf("schema setup: %v", err)
	}

	gateway := store.NewBreakerStore(store.NewPostgresStore(db))

	lookupHandler := lookup.NewHandler(lookup.NewService(gateway))
	lookupHandler.RegisterPublicRoutes(app)

	insightHandler := insight.NewHandler(insight.NewService(gateway))
	insightHandler.RegisterPublicRoutes(app)

	adminHandler := admin.NewHandler(db, cfg)
	adminHandler.RegisterPublicRoutes(app)

	app.Use("/admin", jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))
	adminHandler.RegisterProtectedRoutes(app)

	log.Printf("listening on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	log.Printf("%s %s -> %d (%s)", c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
	return err
}

func mustOpenDB(url string) *sql.DB {
	if url == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}
	return db
}
