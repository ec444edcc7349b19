package services

import "heritage-itinerary-service/internal/domain"

func ClassifyPace(poiCount int) domain.Pace {
	switch {
	case poiCount <= 1:
		return domain.PaceLeisurely
	case poiCount == 2:
		return domain.PaceComfortable
	case poiCount == 3:
		return domain.PaceIntense
	default:
		return domain.PaceOverloaded
	}
}
