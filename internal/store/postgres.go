package store

import (
	"database/sql"

	"github.com/lib/pq"
)

// PostgresStore implements Gateway over database/sql. All methods are
// plain reads; the caller owns the *sql.DB lifecycle.
type PostgresStore struct {
	db *sql.DB
}

const (
	getUserQuery = `
		SELECT user_id, username, email, created_at, is_active
		FROM users
		WHERE user_id = $1
	`
	getProductQuery = `
		SELECT product_id, product_name, category, price, stock_quantity, created_at
		FROM products
		WHERE product_id = $1
	`
	getOrderQuery = `
		SELECT o.order_id, o.user_id, o.product_id, o.quantity, o.total_price, o.order_date, o.status,
		       u.username, u.email, p.product_name, p.category
		FROM orders o
		JOIN users u ON o.user_id = u.user_id
		JOIN products p ON o.product_id = p.product_id
		WHERE o.order_id = $1
	`
	usersByIDsQuery = `
		SELECT user_id, username, email, created_at, is_active
		FROM users
		WHERE user_id = ANY($1::int[])
	`
	productsByIDsQuery = `
		SELECT product_id, product_name, category, price, stock_quantity, created_at
		FROM products
		WHERE product_id = ANY($1::int[])
	`
	ordersByIDsQuery = `
		SELECT order_id, user_id, product_id, quantity, total_price, order_date, status
		FROM orders
		WHERE order_id = ANY($1::int[])
	`
	ordersForUserQuery = `
		SELECT o.order_id, o.user_id, o.product_id, o.quantity, o.total_price, o.order_date, o.status,
		       p.product_name, p.category, p.price
		FROM orders o
		JOIN products p ON o.product_id = p.product_id
		WHERE o.user_id = $1
		ORDER BY o.order_date DESC
	`
	productsByCategoriesQuery = `
		SELECT p.product_id, p.product_name, p.category, p.price, p.stock_quantity, p.created_at,
		       COUNT(o.order_id) AS popularity
		FROM products p
		LEFT JOIN orders o ON p.product_id = o.product_id
		WHERE p.category = ANY($1::text[])
		AND p.product_id <> ALL($2::int[])
		AND p.stock_quantity > 0
		GROUP BY p.product_id
		ORDER BY popularity DESC
		LIMIT $3
	`
	popularProductsQuery = `
		SELECT p.product_id, p.product_name, p.category, p.price, p.stock_quantity, p.created_at,
		       COUNT(o.order_id) AS popularity
		FROM products p
		LEFT JOIN orders o ON p.product_id = o.product_id
		WHERE p.stock_quantity > 0
		GROUP BY p.product_id
		ORDER BY popularity DESC
		LIMIT $1
	`
	searchProductsQuery = `
		SELECT p.product_id, p.product_name, p.category, p.price, p.stock_quantity, p.created_at,
		       COUNT(o.order_id) AS popularity
		FROM products p
		LEFT JOIN orders o ON p.product_id = o.product_id
		WHERE p.product_name ILIKE $1 OR p.category ILIKE $1
		GROUP BY p.product_id
		ORDER BY popularity DESC
		LIMIT $2
	`
	shoppersByCategoriesQuery = `
		SELECT u.user_id, u.username,
		       COUNT(DISTINCT p.category) AS shared_categories,
		       COUNT(o.order_id) AS total_orders
		FROM users u
		JOIN orders o ON u.user_id = o.user_id
		JOIN products p ON o.product_id = p.product_id
		WHERE u.user_id <> $1
		AND p.category = ANY($2::text[])
		GROUP BY u.user_id, u.username
		ORDER BY shared_categories DESC, total_orders DESC
		LIMIT $3
	`
)

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(scanner rowScanner) (User, error) {
	var u User
	if err := scanner.Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt, &u.IsActive); err != nil {
		return User{}, err
	}
	return u, nil
}

func scanProduct(scanner rowScanner) (Product, error) {
	var p Product
	if err := scanner.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Stock, &p.CreatedAt); err != nil {
		return Product{}, err
	}
	return p, nil
}

func scanOrder(scanner rowScanner) (Order, error) {
	var o Order
	if err := scanner.Scan(&o.ID, &o.UserID, &o.ProductID, &o.Quantity, &o.TotalPrice, &o.OrderDate, &o.Status); err != nil {
		return Order{}, err
	}
	return o, nil
}

func scanProductPopularity(scanner rowScanner) (ProductPopularity, error) {
	var p ProductPopularity
	if err := scanner.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Stock, &p.CreatedAt, &p.Popularity); err != nil {
		return ProductPopularity{}, err
	}
	return p, nil
}

func (s *PostgresStore) GetUser(id int) (User, error) {
	u, err := scanUser(s.db.QueryRow(getUserQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (s *PostgresStore) GetProduct(id int) (Product, error) {
	p, err := scanProduct(s.db.QueryRow(getProductQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (s *PostgresStore) GetOrder(id int) (OrderDetail, error) {
	var d OrderDetail
	err := s.db.QueryRow(getOrderQuery, id).Scan(
		&d.ID, &d.UserID, &d.ProductID, &d.Quantity, &d.TotalPrice, &d.OrderDate, &d.Status,
		&d.Username, &d.Email, &d.ProductName, &d.Category,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return OrderDetail{}, ErrNotFound
		}
		return OrderDetail{}, err
	}
	return d, nil
}

func (s *PostgresStore) GetUsersByIDs(ids []int) ([]User, error) {
	if len(ids) == 0 {
		return []User{}, nil
	}
	rows, err := s.db.Query(usersByIDsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]User, 0, len(ids))
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetProductsByIDs(ids []int) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}
	rows, err := s.db.Query(productsByIDsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetOrdersByIDs(ids []int) ([]Order, error) {
	if len(ids) == 0 {
		return []Order{}, nil
	}
	rows, err := s.db.Query(ordersByIDsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0, len(ids))
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *PostgresStore) OrdersForUser(userID int) ([]UserOrder, error) {
	rows, err := s.db.Query(ordersForUserQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]UserOrder, 0)
	for rows.Next() {
		var uo UserOrder
		if err := rows.Scan(
			&uo.ID, &uo.UserID, &uo.ProductID, &uo.Quantity, &uo.TotalPrice, &uo.OrderDate, &uo.Status,
			&uo.ProductName, &uo.Category, &uo.UnitPrice,
		); err != nil {
			return nil, err
		}
		out = append(out, uo)
	}
	return out, rows.Err()
}

func (s *PostgresStore) ProductsByCategories(categories []string, exclude []int, limit int) ([]ProductPopularity, error) {
	if len(categories) == 0 {
		return []ProductPopularity{}, nil
	}
	if exclude == nil {
		exclude = []int{}
	}
	rows, err := s.db.Query(productsByCategoriesQuery, pq.Array(categories), pq.Array(exclude), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPopularity(rows)
}

func (s *PostgresStore) PopularProducts(limit int) ([]ProductPopularity, error) {
	rows, err := s.db.Query(popularProductsQuery, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPopularity(rows)
}

func (s *PostgresStore) SearchProducts(term string, limit int) ([]ProductPopularity, error) {
	rows, err := s.db.Query(searchProductsQuery, "%"+term+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPopularity(rows)
}

func (s *PostgresStore) ShoppersByCategories(categories []string, excludeUserID int, limit int) ([]CategoryShopper, error) {
	if len(categories) == 0 {
		return []CategoryShopper{}, nil
	}
	rows, err := s.db.Query(shoppersByCategoriesQuery, excludeUserID, pq.Array(categories), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CategoryShopper, 0)
	for rows.Next() {
		var cs CategoryShopper
		if err := rows.Scan(&cs.UserID, &cs.Username, &cs.SharedCategories, &cs.TotalOrders); err != nil {
			return nil, err
		}
		out = append(out, cs)
	}
	return out, rows.Err()
}

func collectPopularity(rows *sql.Rows) ([]ProductPopularity, error) {
	out := make([]ProductPopularity, 0)
	for rows.Next() {
		p, err := scanProductPopularity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
