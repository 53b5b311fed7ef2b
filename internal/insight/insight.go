package insight

import "shop-insights-backend/internal/store"

// Profile is a per-user aggregate of order history. Built fresh on every
// request and never persisted; downstream engines take it as input.
type Profile struct {
	User               store.User        `json:"user"`
	TotalOrders        int               `json:"totalOrders"`
	TotalSpent         float64           `json:"totalSpent"`
	AvgOrderValue      float64           `json:"avgOrderValue"`
	FavoriteCategories []string          `json:"favoriteCategories"`
	RecentOrders       []store.UserOrder `json:"recentOrders"`
	Segment            string            `json:"segment"`
}

// SimilarUser is another shopper sharing favorite categories with a
// profile, with the shared-category and total order counts that rank it.
type SimilarUser struct {
	UserID           int    `json:"userId"`
	Username         string `json:"username"`
	SharedCategories int    `json:"sharedCategories"`
	TotalOrders      int    `json:"totalOrders"`
}

// Prediction estimates when a user is likely to order next.
type Prediction struct {
	AvgDaysBetweenOrders   float64 `json:"avgDaysBetweenOrders"`
	DaysSinceLastOrder     int     `json:"daysSinceLastOrder"`
	PredictedDaysUntilNext float64 `json:"predictedDaysUntilNext"`
	LikelyCategory         string  `json:"likelyCategory,omitempty"`
	PurchaseProbability    float64 `json:"purchaseProbability"`
}

// RankedProduct is a search hit scored for a particular user. Relevance
// equals popularity unless the product's category is one of the user's
// favorites, in which case it carries the boost.
type RankedProduct struct {
	store.Product
	Popularity int     `json:"popularity"`
	Relevance  float64 `json:"relevance"`
}
