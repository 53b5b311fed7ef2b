package store

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("record not found")
)

// User maps to the `users` table. Immutable from this service's point
// of view; rows are owned by the schema-setup side.
type User struct {
	ID        int       `json:"userId"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	IsActive  bool      `json:"isActive"`
}

// Product maps to the `products` table.
type Product struct {
	ID        int       `json:"productId"`
	Name      string    `json:"productName"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stockQuantity"`
	CreatedAt time.Time `json:"createdAt"`
}

// Order maps to the `orders` table. TotalPrice is the price at order
// time and may diverge from the product's current price.
type Order struct {
	ID         int       `json:"orderId"`
	UserID     int       `json:"userId"`
	ProductID  int       `json:"productId"`
	Quantity   int       `json:"quantity"`
	TotalPrice float64   `json:"totalPrice"`
	OrderDate  time.Time `json:"orderDate"`
	Status     string    `json:"status"`
}

// OrderDetail is an order joined with its user and product.
type OrderDetail struct {
	Order
	Username    string `json:"username"`
	Email       string `json:"email"`
	ProductName string `json:"productName"`
	Category    string `json:"category"`
}

// UserOrder is an order joined with product name, category and current
// unit price, as returned by OrdersForUser.
type UserOrder struct {
	Order
	ProductName string  `json:"productName"`
	Category    string  `json:"category"`
	UnitPrice   float64 `json:"unitPrice"`
}

// ProductPopularity is a product annotated with its historical order count.
type ProductPopularity struct {
	Product
	Popularity int `json:"popularity"`
}

// CategoryShopper is a user who ordered in at least one of a set of
// categories, with how many of those categories they hit.
type CategoryShopper struct {
	UserID           int    `json:"userId"`
	Username         string `json:"username"`
	SharedCategories int    `json:"sharedCategories"`
	TotalOrders      int    `json:"totalOrders"`
}

// Gateway is the narrow read API over the relational store. Every
// consumer takes a Gateway explicitly so tests can substitute the
// in-memory implementation. Absent ids surface as ErrNotFound (single
// reads) or are silently omitted (batch reads); any other error means
// the store itself is unavailable.
type Gateway interface {
	GetUser(id int) (User, error)
	GetProduct(id int) (Product, error)
	GetOrder(id int) (OrderDetail, error)

	GetUsersByIDs(ids []int) ([]User, error)
	GetProductsByIDs(ids []int) ([]Product, error)
	GetOrdersByIDs(ids []int) ([]Order, error)

	// OrdersForUser returns the user's orders newest-first, joined with
	// product name, category and current unit price.
	OrdersForUser(userID int) ([]UserOrder, error)

	// ProductsByCategories returns in-stock products from the given
	// categories ranked by popularity, skipping excluded product ids.
	ProductsByCategories(categories []string, exclude []int, limit int) ([]ProductPopularity, error)

	// PopularProducts returns the in-stock products with the highest
	// historical order counts.
	PopularProducts(limit int) ([]ProductPopularity, error)

	// SearchProducts matches name or category by case-insensitive
	// substring, ranked by popularity.
	SearchProducts(term string, limit int) ([]ProductPopularity, error)

	// ShoppersByCategories finds users other than excludeUserID who
	// ordered products in the given categories, ranked by
	// (distinct matching categories, total order count) descending.
	ShoppersByCategories(categories []string, excludeUserID int, limit int) ([]CategoryShopper, error)
}
