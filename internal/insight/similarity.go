package insight

import (
	"errors"

	"shop-insights-backend/internal/store"
)

// FindSimilar returns up to limit users who ordered in the target user's
// favorite categories, ranked by (shared categories, total orders). A
// single-hop category overlap, not a true nearest-neighbor search: no
// weighting by recency or price.
func (s *Service) FindSimilar(userID, limit int) ([]SimilarUser, error) {
	profile, err := s.BuildProfile(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []SimilarUser{}, nil
		}
		return nil, err
	}
	if len(profile.FavoriteCategories) == 0 {
		return []SimilarUser{}, nil
	}

	// At most 3 categories enter the comparison, however many the
	// profile carries.
	cats := profile.FavoriteCategories
	if len(cats) > favoriteCategoryCap {
		cats = cats[:favoriteCategoryCap]
	}

	shoppers, err := s.store.ShoppersByCategories(cats, userID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]SimilarUser, 0, len(shoppers))
	for _, sh := range shoppers {
		out = append(out, SimilarUser{
			UserID:           sh.UserID,
			Username:         sh.Username,
			SharedCategories: sh.SharedCategories,
			TotalOrders:      sh.TotalOrders,
		})
	}
	return out, nil
}
