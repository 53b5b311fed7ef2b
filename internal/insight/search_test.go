package insight

import (
	"testing"

	"shop-insights-backend/internal/store"
)

// searchStore sets up an "Electronics" fan (user 1) plus two matching
// products with controllable popularity.
func searchStore(favPopularity, otherPopularity int) *store.MemoryStore {
	m := store.NewMemoryStore()
	m.AddUser(store.User{ID: 1, Username: "fan"})
	m.AddUser(store.User{ID: 2, Username: "crowd"})

	m.AddProduct(store.Product{ID: 1, Name: "Widget Alpha", Category: "Electronics", Price: 50, Stock: 5})
	m.AddProduct(store.Product{ID: 2, Name: "Widget Beta", Category: "Sports", Price: 50, Stock: 5})
	m.AddProduct(store.Product{ID: 3, Name: "Charger", Category: "Electronics", Price: 20, Stock: 5})

	// make Electronics the favorite category
	m.AddOrder(store.Order{ID: 1, UserID: 1, ProductID: 3, Quantity: 1, TotalPrice: 20, OrderDate: day(0)})

	id := 100
	for i := 0; i < favPopularity; i++ {
		m.AddOrder(store.Order{ID: id, UserID: 2, ProductID: 1, Quantity: 1, TotalPrice: 50, OrderDate: day(1)})
		id++
	}
	for i := 0; i < otherPopularity; i++ {
		m.AddOrder(store.Order{ID: id, UserID: 2, ProductID: 2, Quantity: 1, TotalPrice: 50, OrderDate: day(1)})
		id++
	}
	return m
}

func TestSearch_BoostCrossover(t *testing.T) {
	// 8 * 1.5 = 12 does not beat 12; ties keep the base popularity order
	svc := NewService(searchStore(8, 12))
	results, err := svc.Search("Widget", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ID != 2 {
		t.Fatalf("boosted 12.0 must not outrank plain 12, got first id %d", results[0].ID)
	}
	if results[1].Relevance != 12 {
		t.Fatalf("expected boosted relevance 12, got %v", results[1].Relevance)
	}

	// 9 * 1.5 = 13.5 beats 12
	svc = NewService(searchStore(9, 12))
	results, err = svc.Search("Widget", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if results[0].ID != 1 {
		t.Fatalf("expected boosted favorite first, got id %d", results[0].ID)
	}
	if results[0].Relevance != 13.5 {
		t.Fatalf("expected relevance 13.5, got %v", results[0].Relevance)
	}
}

func TestSearch_WithoutUserKeepsBaseOrder(t *testing.T) {
	svc := NewService(searchStore(8, 12))
	results, err := svc.Search("Widget", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if results[0].ID != 2 || results[1].ID != 1 {
		t.Fatalf("expected popularity order [2 1], got [%d %d]", results[0].ID, results[1].ID)
	}
	for _, r := range results {
		if r.Relevance != float64(r.Popularity) {
			t.Fatalf("relevance %v != popularity %d without personalization", r.Relevance, r.Popularity)
		}
	}
}

func TestSearch_UnknownUserFallsBack(t *testing.T) {
	svc := NewService(searchStore(8, 12))
	results, err := svc.Search("Widget", 999)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if results[0].ID != 2 {
		t.Fatalf("expected base ranking for unknown user, got first id %d", results[0].ID)
	}
}

func TestSearch_MatchesCategorySubstring(t *testing.T) {
	svc := NewService(searchStore(1, 1))
	results, err := svc.Search("electro", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 Electronics matches, got %d", len(results))
	}
	for _, r := range results {
		if r.Category != "Electronics" {
			t.Fatalf("unexpected category %q", r.Category)
		}
	}
}

func TestSearch_CapsAtTen(t *testing.T) {
	m := store.NewMemoryStore()
	for i := 1; i <= 15; i++ {
		m.AddProduct(store.Product{ID: i, Name: "Bulk Item", Category: "Books", Price: 5, Stock: 1})
	}
	svc := NewService(m)
	results, err := svc.Search("Bulk", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 10 {
		t.Fatalf("expected 10 results, got %d", len(results))
	}
}
