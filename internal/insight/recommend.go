package insight

import (
	"errors"

	"shop-insights-backend/internal/store"
)

// Recommend returns up to limit products for the user. Users with no
// category signal (unknown id or empty history) get the global popularity
// list; everyone else gets popularity-ranked products from their favorite
// categories, minus anything in their recent-order window.
func (s *Service) Recommend(userID, limit int) ([]store.ProductPopularity, error) {
	profile, err := s.BuildProfile(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return s.store.PopularProducts(limit)
		}
		return nil, err
	}
	if len(profile.FavoriteCategories) == 0 {
		return s.store.PopularProducts(limit)
	}

	// Exclusion is bounded to the recent window, not full history.
	exclude := make([]int, 0, len(profile.RecentOrders))
	for _, o := range profile.RecentOrders {
		exclude = append(exclude, o.ProductID)
	}

	// Oversample 2x so enough candidates survive the exclusion filter.
	// If fewer than limit remain, the short list is returned as is.
	candidates, err := s.store.ProductsByCategories(profile.FavoriteCategories, exclude, 2*limit)
	if err != nil {
		return nil, err
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}
