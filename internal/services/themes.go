package services

import (
	"heritage-itinerary-service/internal/domain"
	"strings"
)

const FreeExplorationTheme = "free exploration"

const maxThemeNames = 3

// DayTheme derives a short label from the regions and categories of a day's POIs,
// e.g. "华县、渭南 · 传统戏剧". Days without either fall back to POI names.
func DayTheme(items []*domain.POI) string {
	if len(items) == 0 {
		return FreeExplorationTheme
	}

	var regions, categories, names []string
	for _, p := range items {
		regions = appendDistinct(regions, p.Region)
		categories = appendDistinct(categories, p.Category)
		names = appendDistinct(names, p.Name)
	}

	switch {
	case len(regions) > 0 && len(categories) > 0:
		return strings.Join(regions, "、") + " · " + strings.Join(categories, "、")
	case len(regions) > 0:
		return strings.Join(regions, "、")
	case len(categories) > 0:
		return strings.Join(categories, "、")
	case len(names) > 0:
		if len(names) > maxThemeNames {
			names = append(names[:maxThemeNames:maxThemeNames], "…")
		}
		return strings.Join(names, "、")
	default:
		return FreeExplorationTheme
	}
}

func appendDistinct(list []string, v string) []string {
	v = strings.TrimSpace(v)
	if v == "" {
		return list
	}
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
