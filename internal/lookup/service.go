package lookup

import "shop-insights-backend/internal/store"

// Service exposes the unique-ID read operations. Pure pass-through over
// the gateway; no business logic lives here.
type Service struct {
	store store.Gateway
}

func NewService(gw store.Gateway) *Service {
	return &Service{store: gw}
}

func (s *Service) GetUser(id int) (store.User, error) {
	return s.store.GetUser(id)
}

func (s *Service) GetProduct(id int) (store.Product, error) {
	return s.store.GetProduct(id)
}

func (s *Service) GetOrder(id int) (store.OrderDetail, error) {
	return s.store.GetOrder(id)
}

func (s *Service) GetUsers(ids []int) ([]store.User, error) {
	return s.store.GetUsersByIDs(ids)
}

func (s *Service) GetProducts(ids []int) ([]store.Product, error) {
	return s.store.GetProductsByIDs(ids)
}

func (s *Service) GetOrders(ids []int) ([]store.Order, error) {
	return s.store.GetOrdersByIDs(ids)
}
