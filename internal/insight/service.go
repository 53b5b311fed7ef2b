package insight

import (
	"math"
	"sort"
	"time"

	"shop-insights-backend/internal/store"
)

const (
	favoriteCategoryCap = 3
	recentOrderWindow   = 5
)

// Service derives profiles, recommendations, similarity sets, predictions
// and personalized search rankings from the store. It holds no state
// across calls; every operation recomputes from current rows.
type Service struct {
	store store.Gateway
	now   func() time.Time
}

func NewService(gw store.Gateway) *Service {
	return &Service{store: gw, now: time.Now}
}

// BuildProfile aggregates the user's full order history into a Profile.
// Fails fast with store.ErrNotFound when the user does not exist.
func (s *Service) BuildProfile(userID int) (Profile, error) {
	u, err := s.store.GetUser(userID)
	if err != nil {
		return Profile{}, err
	}

	orders, err := s.store.OrdersForUser(userID)
	if err != nil {
		return Profile{}, err
	}

	var totalSpent float64
	counts := make(map[string]int)
	spend := make(map[string]float64)
	seen := make([]string, 0)
	for _, o := range orders {
		totalSpent += o.TotalPrice
		if _, ok := counts[o.Category]; !ok {
			seen = append(seen, o.Category)
		}
		counts[o.Category]++
		spend[o.Category] += o.TotalPrice
	}

	// Rank categories by order count, then category spend. The stable
	// sort keeps first-purchase order for full ties.
	sort.SliceStable(seen, func(i, j int) bool {
		if counts[seen[i]] != counts[seen[j]] {
			return counts[seen[i]] > counts[seen[j]]
		}
		return spend[seen[i]] > spend[seen[j]]
	})
	if len(seen) > favoriteCategoryCap {
		seen = seen[:favoriteCategoryCap]
	}

	totalOrders := len(orders)
	avg := 0.0
	if totalOrders > 0 {
		avg = totalSpent / float64(totalOrders)
	}

	recent := orders
	if len(recent) > recentOrderWindow {
		recent = recent[:recentOrderWindow]
	}

	return Profile{
		User:               u,
		TotalOrders:        totalOrders,
		TotalSpent:         round2(totalSpent),
		AvgOrderValue:      round2(avg),
		FavoriteCategories: seen,
		RecentOrders:       recent,
		Segment:            classifySegment(totalSpent, totalOrders),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
