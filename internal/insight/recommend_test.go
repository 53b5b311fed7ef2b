package insight

import (
	"testing"

	"shop-insights-backend/internal/store"
)

func TestRecommend_ExcludesRecentOrders(t *testing.T) {
	m := store.NewMemoryStore()
	m.AddUser(store.User{ID: 1, Username: "buyer"})
	for i := 1; i <= 8; i++ {
		m.AddProduct(store.Product{ID: i, Name: "Gadget", Category: "Electronics", Price: 10, Stock: 3})
	}
	// popularity for products 5..8 from another user
	m.AddUser(store.User{ID: 2, Username: "other"})
	for i := 5; i <= 8; i++ {
		m.AddOrder(store.Order{ID: 100 + i, UserID: 2, ProductID: i, Quantity: 1, TotalPrice: 10, OrderDate: day(0)})
	}
	// target user recently bought products 1..5
	for i := 1; i <= 5; i++ {
		m.AddOrder(store.Order{ID: i, UserID: 1, ProductID: i, Quantity: 1, TotalPrice: 10, OrderDate: day(i)})
	}

	svc := NewService(m)
	recs, err := svc.Recommend(1, 5)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	recent := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true}
	for _, r := range recs {
		if recent[r.ID] {
			t.Fatalf("recommendation %d is in the recent-order window", r.ID)
		}
	}
	if len(recs) == 0 {
		t.Fatal("expected at least one recommendation")
	}
}

func TestRecommend_FallbackForNewUser(t *testing.T) {
	m := fixtureStore()
	// popularity: product 20 twice, product 10 once, via another user
	m.AddUser(store.User{ID: 2, Username: "other"})
	m.AddOrder(store.Order{ID: 1, UserID: 2, ProductID: 20, Quantity: 1, TotalPrice: 15, OrderDate: day(0)})
	m.AddOrder(store.Order{ID: 2, UserID: 2, ProductID: 20, Quantity: 1, TotalPrice: 15, OrderDate: day(1)})
	m.AddOrder(store.Order{ID: 3, UserID: 2, ProductID: 10, Quantity: 1, TotalPrice: 900, OrderDate: day(2)})

	svc := NewService(m)
	recs, err := svc.Recommend(1, 3) // user 1 has no orders
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	popular, err := m.PopularProducts(3)
	if err != nil {
		t.Fatalf("PopularProducts: %v", err)
	}
	if len(recs) != len(popular) {
		t.Fatalf("expected %d fallback items, got %d", len(popular), len(recs))
	}
	for i := range recs {
		if recs[i].ID != popular[i].ID {
			t.Fatalf("fallback order differs at %d: got %d, want %d", i, recs[i].ID, popular[i].ID)
		}
	}
}

func TestRecommend_FallbackForUnknownUser(t *testing.T) {
	m := fixtureStore()
	svc := NewService(m)
	recs, err := svc.Recommend(404, 3)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("expected popularity fallback for unknown user")
	}
}

func TestRecommend_ShortListWithoutBackfill(t *testing.T) {
	m := store.NewMemoryStore()
	m.AddUser(store.User{ID: 1, Username: "buyer"})
	m.AddProduct(store.Product{ID: 1, Name: "Keyboard", Category: "Electronics", Price: 40, Stock: 2})
	m.AddProduct(store.Product{ID: 2, Name: "Mouse", Category: "Electronics", Price: 20, Stock: 2})
	m.AddProduct(store.Product{ID: 3, Name: "Ball", Category: "Sports", Price: 9, Stock: 4})
	m.AddOrder(store.Order{ID: 1, UserID: 1, ProductID: 1, Quantity: 1, TotalPrice: 40, OrderDate: day(0)})

	svc := NewService(m)
	recs, err := svc.Recommend(1, 5)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	// only product 2 survives in the favorite category; Sports must not
	// be backfilled from popularity
	if len(recs) != 1 || recs[0].ID != 2 {
		t.Fatalf("expected only product 2, got %+v", recs)
	}
}

func TestRecommend_SkipsOutOfStock(t *testing.T) {
	m := store.NewMemoryStore()
	m.AddUser(store.User{ID: 1, Username: "buyer"})
	m.AddProduct(store.Product{ID: 1, Name: "Keyboard", Category: "Electronics", Price: 40, Stock: 2})
	m.AddProduct(store.Product{ID: 2, Name: "Mouse", Category: "Electronics", Price: 20, Stock: 0})
	m.AddOrder(store.Order{ID: 1, UserID: 1, ProductID: 1, Quantity: 1, TotalPrice: 40, OrderDate: day(0)})

	svc := NewService(m)
	recs, err := svc.Recommend(1, 5)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	for _, r := range recs {
		if r.Stock <= 0 {
			t.Fatalf("out-of-stock product %d recommended", r.ID)
		}
	}
}
