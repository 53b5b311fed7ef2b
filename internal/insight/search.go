package insight

import (
	"errors"
	"sort"

	"shop-insights-backend/internal/store"
)

const (
	searchCandidates    = 20
	searchResultCap     = 10
	favoriteBoostFactor = 1.5
)

// Search returns popularity-ranked products matching term. When userID is
// positive and that user has favorite categories, matches from those
// categories get their popularity boosted 1.5x and the list is re-sorted
// by the boosted relevance. Unknown user ids fall back to the plain
// ranking.
func (s *Service) Search(term string, userID int) ([]RankedProduct, error) {
	hits, err := s.store.SearchProducts(term, searchCandidates)
	if err != nil {
		return nil, err
	}

	results := make([]RankedProduct, 0, len(hits))
	for _, h := range hits {
		results = append(results, RankedProduct{
			Product:    h.Product,
			Popularity: h.Popularity,
			Relevance:  float64(h.Popularity),
		})
	}

	if userID > 0 {
		profile, err := s.BuildProfile(userID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		if err == nil && len(profile.FavoriteCategories) > 0 {
			favs := make(map[string]bool, len(profile.FavoriteCategories))
			for _, c := range profile.FavoriteCategories {
				favs[c] = true
			}
			for i := range results {
				if favs[results[i].Category] {
					results[i].Relevance = float64(results[i].Popularity) * favoriteBoostFactor
				}
			}
			sort.SliceStable(results, func(i, j int) bool {
				return results[i].Relevance > results[j].Relevance
			})
		}
	}

	if len(results) > searchResultCap {
		results = results[:searchResultCap]
	}
	return results, nil
}
