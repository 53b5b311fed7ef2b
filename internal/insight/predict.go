package insight

// defaultOrderGapDays backs the average when the gap list degenerates to
// nothing usable. The >=2 orders guard already excludes that case, so
// this is a floor rather than a branch that should ever fire.
const defaultOrderGapDays = 30.0

// PredictNext estimates when the user will order again from the day-gaps
// between their most recent orders. Returns nil when the recent-order
// window holds fewer than two orders.
func (s *Service) PredictNext(userID int) (*Prediction, error) {
	profile, err := s.BuildProfile(userID)
	if err != nil {
		return nil, err
	}
	orders := profile.RecentOrders
	if len(orders) < 2 {
		return nil, nil
	}

	gaps := make([]float64, 0, len(orders)-1)
	for i := 0; i < len(orders)-1; i++ {
		d := orders[i].OrderDate.Sub(orders[i+1].OrderDate)
		days := int(d.Hours() / 24)
		if days < 0 {
			days = -days
		}
		gaps = append(gaps, float64(days))
	}

	avgGap := defaultOrderGapDays
	if len(gaps) > 0 {
		sum := 0.0
		for _, g := range gaps {
			sum += g
		}
		avgGap = sum / float64(len(gaps))
	}

	daysSince := int(s.now().Sub(orders[0].OrderDate).Hours() / 24)

	predicted := avgGap - float64(daysSince)
	if predicted < 0 {
		predicted = 0
	}

	p := &Prediction{
		AvgDaysBetweenOrders:   round1(avgGap),
		DaysSinceLastOrder:     daysSince,
		PredictedDaysUntilNext: round1(predicted),
		PurchaseProbability:    purchaseProbability(daysSince, avgGap),
	}
	if len(profile.FavoriteCategories) > 0 {
		p.LikelyCategory = profile.FavoriteCategories[0]
	}
	return p, nil
}
