package insight

// Customer segments, coarsest first.
const (
	SegmentVIP        = "VIP"
	SegmentRegular    = "Regular"
	SegmentOccasional = "Occasional"
	SegmentNew        = "New"
)

// classifySegment maps lifetime spend and order count to a segment label.
// Rules are evaluated top to bottom, first match wins.
func classifySegment(totalSpent float64, totalOrders int) string {
	switch {
	case totalSpent > 2000 && totalOrders > 10:
		return SegmentVIP
	case totalSpent > 1000 || totalOrders > 5:
		return SegmentRegular
	case totalOrders > 0:
		return SegmentOccasional
	default:
		return SegmentNew
	}
}

// purchaseProbability is the ratio of days since the last order to the
// user's average gap, clamped to [0.1, 1.0]. The floor keeps us from ever
// asserting zero likelihood.
func purchaseProbability(daysSince int, avgDays float64) float64 {
	if avgDays == 0 {
		return 0.1
	}
	ratio := float64(daysSince) / avgDays
	if ratio < 0.1 {
		ratio = 0.1
	}
	if ratio > 1.0 {
		ratio = 1.0
	}
	return round2(ratio)
}
