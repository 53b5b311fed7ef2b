package store

import (
	"sort"
	"strings"
	"sync"
)

// MemoryStore is an in-memory Gateway used by tests and for local runs
// without a database. Semantics mirror PostgresStore; ordering ties are
// stable on insertion order.
type MemoryStore struct {
	mu       sync.RWMutex
	users    []User
	products []Product
	orders   []Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make([]User, 0),
		products: make([]Product, 0),
		orders:   make([]Order, 0),
	}
}

func (m *MemoryStore) AddUser(u User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = append(m.users, u)
}

func (m *MemoryStore) AddProduct(p Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = append(m.products, p)
}

func (m *MemoryStore) AddOrder(o Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, o)
}

func (m *MemoryStore) GetUser(id int) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (m *MemoryStore) GetProduct(id int) (Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.productByID(id)
}

func (m *MemoryStore) productByID(id int) (Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (m *MemoryStore) GetOrder(id int) (OrderDetail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, o := range m.orders {
		if o.ID != id {
			continue
		}
		d := OrderDetail{Order: o}
		for _, u := range m.users {
			if u.ID == o.UserID {
				d.Username = u.Username
				d.Email = u.Email
			}
		}
		if p, err := m.productByID(o.ProductID); err == nil {
			d.ProductName = p.Name
			d.Category = p.Category
		}
		return d, nil
	}
	return OrderDetail{}, ErrNotFound
}

func (m *MemoryStore) GetUsersByIDs(ids []int) ([]User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	want := idSet(ids)
	out := make([]User, 0, len(ids))
	for _, u := range m.users {
		if want[u.ID] {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *MemoryStore) GetProductsByIDs(ids []int) ([]Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	want := idSet(ids)
	out := make([]Product, 0, len(ids))
	for _, p := range m.products {
		if want[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MemoryStore) GetOrdersByIDs(ids []int) ([]Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	want := idSet(ids)
	out := make([]Order, 0, len(ids))
	for _, o := range m.orders {
		if want[o.ID] {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *MemoryStore) OrdersForUser(userID int) ([]UserOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]UserOrder, 0)
	for _, o := range m.orders {
		if o.UserID != userID {
			continue
		}
		uo := UserOrder{Order: o}
		if p, err := m.productByID(o.ProductID); err == nil {
			uo.ProductName = p.Name
			uo.Category = p.Category
			uo.UnitPrice = p.Price
		}
		out = append(out, uo)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderDate.After(out[j].OrderDate)
	})
	return out, nil
}

func (m *MemoryStore) ProductsByCategories(categories []string, exclude []int, limit int) ([]ProductPopularity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(categories) == 0 {
		return []ProductPopularity{}, nil
	}
	cats := make(map[string]bool, len(categories))
	for _, c := range categories {
		cats[c] = true
	}
	skip := idSet(exclude)

	out := make([]ProductPopularity, 0)
	for _, p := range m.products {
		if !cats[p.Category] || skip[p.ID] || p.Stock <= 0 {
			continue
		}
		out = append(out, ProductPopularity{Product: p, Popularity: m.orderCount(p.ID)})
	}
	return topByPopularity(out, limit), nil
}

func (m *MemoryStore) PopularProducts(limit int) ([]ProductPopularity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ProductPopularity, 0)
	for _, p := range m.products {
		if p.Stock <= 0 {
			continue
		}
		out = append(out, ProductPopularity{Product: p, Popularity: m.orderCount(p.ID)})
	}
	return topByPopularity(out, limit), nil
}

func (m *MemoryStore) SearchProducts(term string, limit int) ([]ProductPopularity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	needle := strings.ToLower(term)
	out := make([]ProductPopularity, 0)
	for _, p := range m.products {
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Category), needle) {
			continue
		}
		out = append(out, ProductPopularity{Product: p, Popularity: m.orderCount(p.ID)})
	}
	return topByPopularity(out, limit), nil
}

func (m *MemoryStore) ShoppersByCategories(categories []string, excludeUserID int, limit int) ([]CategoryShopper, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(categories) == 0 {
		return []CategoryShopper{}, nil
	}
	cats := make(map[string]bool, len(categories))
	for _, c := range categories {
		cats[c] = true
	}

	type tally struct {
		seen   map[string]bool
		orders int
	}
	byUser := make(map[int]*tally)
	userOrder := make([]int, 0)
	for _, o := range m.orders {
		if o.UserID == excludeUserID {
			continue
		}
		p, err := m.productByID(o.ProductID)
		if err != nil || !cats[p.Category] {
			continue
		}
		t, ok := byUser[o.UserID]
		if !ok {
			t = &tally{seen: make(map[string]bool)}
			byUser[o.UserID] = t
			userOrder = append(userOrder, o.UserID)
		}
		t.seen[p.Category] = true
		t.orders++
	}

	out := make([]CategoryShopper, 0, len(byUser))
	for _, id := range userOrder {
		t := byUser[id]
		cs := CategoryShopper{UserID: id, SharedCategories: len(t.seen), TotalOrders: t.orders}
		for _, u := range m.users {
			if u.ID == id {
				cs.Username = u.Username
			}
		}
		out = append(out, cs)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SharedCategories != out[j].SharedCategories {
			return out[i].SharedCategories > out[j].SharedCategories
		}
		return out[i].TotalOrders > out[j].TotalOrders
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) orderCount(productID int) int {
	n := 0
	for _, o := range m.orders {
		if o.ProductID == productID {
			n++
		}
	}
	return n
}

func idSet(ids []int) map[int]bool {
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func topByPopularity(items []ProductPopularity, limit int) []ProductPopularity {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Popularity > items[j].Popularity
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
