package services

import (
	"heritage-itinerary-service/internal/domain"
	"math"
)

// PartitionDays splits an ordered tour into exactly max(1, dayCount) contiguous buckets.
//
// Day d ends at RoundToEven(itemsPerDay*d), clamped to the remaining range,
// and the last day absorbs whatever is left. When there are fewer POIs than
// days each early day still takes one POI, so the trailing days are the empty
// ones. Concatenating the buckets yields the input order unchanged.
func PartitionDays(ordered []*domain.POI, dayCount int) []domain.DayPlan {
	if dayCount < 1 {
		dayCount = 1
	}

	n := len(ordered)
	itemsPerDay := float64(n) / float64(dayCount)

	days := make([]domain.DayPlan, 0, dayCount)
	cursor := 0

	for d := 1; d <= dayCount; d++ {
		end := n
		if d < dayCount {
			end = int(math.RoundToEven(itemsPerDay * float64(d)))
			end = max(cursor, min(end, n))
			if itemsPerDay < 1 && end == cursor && cursor < n {
				end = cursor + 1
			}
		}

		items := make([]*domain.POI, end-cursor)
		copy(items, ordered[cursor:end])
		cursor = end

		days = append(days, newDayPlan(d, items))
	}

	return days
}

func newDayPlan(day int, items []*domain.POI) domain.DayPlan {
	plan := domain.DayPlan{
		Day:   day,
		Theme: DayTheme(items),
		Items: items,
	}
	for _, p := range items {
		plan.VisitHours += p.VisitHours()
		plan.TravelHours += p.TravelTimeHours
	}
	return plan
}
