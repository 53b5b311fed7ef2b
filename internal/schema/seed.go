package schema

import (
	"database/sql"
	"fmt"
	"math/rand"
	"time"
)

// SeedConfig controls sample-data volumes.
type SeedConfig struct {
	Users    int
	Products int
	Orders   int
}

func DefaultSeedConfig() SeedConfig {
	return SeedConfig{Users: 100, Products: 50, Orders: 500}
}

var (
	seedCategories = []string{"Electronics", "Clothing", "Books", "Home & Garden", "Sports", "Toys"}
	seedStatuses   = []string{"pending", "processing", "shipped", "delivered", "cancelled"}
)

// Seed populates the three tables with generated sample data. Existing
// rows are left in place; user/email collisions are skipped via
// ON CONFLICT so reseeding is harmless.
func Seed(db *sql.DB, cfg SeedConfig, rng *rand.Rand) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i := 1; i <= cfg.Users; i++ {
		// roughly 75% of users active
		isActive := rng.Intn(4) != 0
		_, err := tx.Exec(
			`INSERT INTO users (username, email, is_active) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
			fmt.Sprintf("user_%04d", i),
			fmt.Sprintf("user%04d@example.com", i),
			isActive,
		)
		if err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	}

	productIDs := make([]int, 0, cfg.Products)
	prices := make(map[int]float64, cfg.Products)
	for i := 1; i <= cfg.Products; i++ {
		price := roundCents(9.99 + rng.Float64()*(999.99-9.99))
		var id int
		err := tx.QueryRow(
			`INSERT INTO products (product_name, category, price, stock_quantity) VALUES ($1, $2, $3, $4) RETURNING product_id`,
			fmt.Sprintf("Product_%03d", i),
			seedCategories[rng.Intn(len(seedCategories))],
			price,
			rng.Intn(501),
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed products: %w", err)
		}
		productIDs = append(productIDs, id)
		prices[id] = price
	}

	userIDs, err := allUserIDs(tx)
	if err != nil {
		return fmt.Errorf("seed orders: %w", err)
	}
	if len(userIDs) == 0 || len(productIDs) == 0 {
		return tx.Commit()
	}

	baseDate := time.Now().AddDate(0, 0, -365)
	for i := 0; i < cfg.Orders; i++ {
		productID := productIDs[rng.Intn(len(productIDs))]
		quantity := 1 + rng.Intn(5)
		_, err := tx.Exec(
			`INSERT INTO orders (user_id, product_id, quantity, total_price, order_date, status) VALUES ($1, $2, $3, $4, $5, $6)`,
			userIDs[rng.Intn(len(userIDs))],
			productID,
			quantity,
			roundCents(prices[productID]*float64(quantity)),
			baseDate.AddDate(0, 0, rng.Intn(366)),
			seedStatuses[rng.Intn(len(seedStatuses))],
		)
		if err != nil {
			return fmt.Errorf("seed orders: %w", err)
		}
	}

	return tx.Commit()
}

// Reset truncates all three tables before reseeding.
func Reset(db *sql.DB) error {
	_, err := db.Exec(`TRUNCATE orders, products, users RESTART IDENTITY CASCADE`)
	return err
}

func allUserIDs(tx *sql.Tx) ([]int, error) {
	rows, err := tx.Query(`SELECT user_id FROM users ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func roundCents(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
