package store

import (
	"errors"
	"log"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

// ErrStoreUnavailable wraps the breaker's open-state error so callers can
// distinguish a dead store from a missing row.
var ErrStoreUnavailable = errors.New("store unavailable")

// BreakerStore decorates a Gateway with a circuit breaker so repeated
// store failures fail fast instead of piling up on a dead database.
// ErrNotFound is a successful read as far as the breaker is concerned.
type BreakerStore struct {
	next Gateway
	cb   *gobreaker.CircuitBreaker[any]
}

func NewBreakerStore(next Gateway) *BreakerStore {
	settings := gobreaker.Settings{
		Name:        "store",
		MaxRequests: 3,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("store breaker %s: %s -> %s", name, from, to)
		},
	}
	return &BreakerStore{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[any](settings),
	}
}

func execute[T any](b *BreakerStore, fn func() (T, error)) (T, error) {
	v, err := b.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, ErrStoreUnavailable
		}
		return zero, err
	}
	return v.(T), nil
}

func (b *BreakerStore) GetUser(id int) (User, error) {
	return execute(b, func() (User, error) { return b.next.GetUser(id) })
}

func (b *BreakerStore) GetProduct(id int) (Product, error) {
	return execute(b, func() (Product, error) { return b.next.GetProduct(id) })
}

func (b *BreakerStore) GetOrder(id int) (OrderDetail, error) {
	return execute(b, func() (OrderDetail, error) { return b.next.GetOrder(id) })
}

func (b *BreakerStore) GetUsersByIDs(ids []int) ([]User, error) {
	return execute(b, func() ([]User, error) { return b.next.GetUsersByIDs(ids) })
}

func (b *BreakerStore) GetProductsByIDs(ids []int) ([]Product, error) {
	return execute(b, func() ([]Product, error) { return b.next.GetProductsByIDs(ids) })
}

func (b *BreakerStore) GetOrdersByIDs(ids []int) ([]Order, error) {
	return execute(b, func() ([]Order, error) { return b.next.GetOrdersByIDs(ids) })
}

func (b *BreakerStore) OrdersForUser(userID int) ([]UserOrder, error) {
	return execute(b, func() ([]UserOrder, error) { return b.next.OrdersForUser(userID) })
}

func (b *BreakerStore) ProductsByCategories(categories []string, exclude []int, limit int) ([]ProductPopularity, error) {
	return execute(b, func() ([]ProductPopularity, error) {
		return b.next.ProductsByCategories(categories, exclude, limit)
	})
}

func (b *BreakerStore) PopularProducts(limit int) ([]ProductPopularity, error) {
	return execute(b, func() ([]ProductPopularity, error) { return b.next.PopularProducts(limit) })
}

func (b *BreakerStore) SearchProducts(term string, limit int) ([]ProductPopularity, error) {
	return execute(b, func() ([]ProductPopularity, error) { return b.next.SearchProducts(term, limit) })
}

func (b *BreakerStore) ShoppersByCategories(categories []string, excludeUserID int, limit int) ([]CategoryShopper, error) {
	return execute(b, func() ([]CategoryShopper, error) {
		return b.next.ShoppersByCategories(categories, excludeUserID, limit)
	})
}
