// Command setup creates the schema, indexes and sample data the service
// reads from. Safe to re-run; pass -reset to wipe existing rows first.
package main

import (
	"database/sql"
	"flag"
	"log"
	"math/rand"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"shop-insights-backend/internal/config"
	"shop-insights-backend/internal/schema"
)

func main() {
	users := flag.Int("users", 0, "number of users to seed (default 100)")
	products := flag.Int("products", 0, "number of products to seed (default 50)")
	orders := flag.Int("orders", 0, "number of orders to seed (default 500)")
	reset := flag.Bool("reset", false, "truncate all tables before seeding")
	seed := flag.Int64("seed", 0, "random seed (default: current time)")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	if err := schema.Ensure(db); err != nil {
		log.Fatalf("schema setup: %v", err)
	}
	log.Print("tables and indexes created")

	if *reset {
		if err := schema.Reset(db); err != nil {
			log.Fatalf("reset: %v", err)
		}
		log.Print("existing data truncated")
	}

	seedCfg := schema.DefaultSeedConfig()
	if *users > 0 {
		seedCfg.Users = *users
	}
	if *products > 0 {
		seedCfg.Products = *products
	}
	if *orders > 0 {
		seedCfg.Orders = *orders
	}

	src := *seed
	if src == 0 {
		src = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(src))

	if err := schema.Seed(db, seedCfg, rng); err != nil {
		log.Fatalf("seed: %v", err)
	}

	counts, err := schema.Stats(db)
	if err != nil {
		log.Fatalf("stats: %v", err)
	}
	for _, table := range []string{"users", "products", "orders"} {
		log.Printf("%s: %d rows", table, counts[table])
	}
}
