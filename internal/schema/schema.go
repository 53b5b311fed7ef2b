// Package schema owns the persisted tables the gateway reads from:
// DDL, indexes and sample-data seeding. The analytics side never touches
// any of this; it only consumes the store.Gateway contract.
package schema

import (
	"database/sql"
	"fmt"
)

var tableStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id SERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		is_active BOOLEAN DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		product_id SERIAL PRIMARY KEY,
		product_name TEXT NOT NULL,
		category TEXT NOT NULL,
		price DOUBLE PRECISION NOT NULL CHECK (price >= 0),
		stock_quantity INT DEFAULT 0 CHECK (stock_quantity >= 0),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		order_id SERIAL PRIMARY KEY,
		user_id INT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		product_id INT NOT NULL REFERENCES products(product_id) ON DELETE CASCADE,
		quantity INT NOT NULL CHECK (quantity > 0),
		total_price DOUBLE PRECISION NOT NULL,
		order_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		status TEXT DEFAULT 'pending'
	)`,
}

var indexStatements = []string{
	`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
	`CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)`,
	`CREATE INDEX IF NOT EXISTS idx_users_active ON users(is_active, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)`,
	`CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category_price ON products(category, price)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_product_id ON orders(product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_date ON orders(order_date)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_status_date ON orders(status, order_date)`,
}

// Ensure creates the tables and indexes when they are missing.
func Ensure(db *sql.DB) error {
	for _, stmt := range tableStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	for _, stmt := range indexStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

// Stats reports the row count per table.
func Stats(db *sql.DB) (map[string]int, error) {
	counts := make(map[string]int, 3)
	for _, table := range []string{"users", "products", "orders"} {
		var n int
		if err := db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
			return nil, err
		}
		counts[table] = n
	}
	return counts, nil
}
