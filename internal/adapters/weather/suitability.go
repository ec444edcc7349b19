package weather

// Travel suitability levels, best first.
const (
	SuitabilityExcellent = "非常适宜"
	SuitabilityGood      = "适宜"
	SuitabilityFair      = "一般"
	SuitabilityPoor      = "不太适宜"
	SuitabilityBad       = "不适宜"
)

var weatherDescriptions = map[int]string{
	0:  "晴朗",
	1:  "大部分晴朗",
	2:  "部分多云",
	3:  "阴天",
	45: "雾",
	48: "雾凇",
	51: "小毛毛雨",
	53: "中毛毛雨",
	55: "浓毛毛雨",
	56: "冻毛毛雨",
	57: "浓冻毛毛雨",
	61: "小雨",
	63: "中雨",
	65: "大雨",
	66: "冻雨",
	67: "大雨凇",
	71: "小雪",
	73: "中雪",
	75: "大雪",
	77: "雪粒",
	80: "小阵雨",
	81: "中阵雨",
	82: "强阵雨",
	85: "小阵雪",
	86: "中阵雪",
	95: "雷暴",
	96: "小冰雹",
	99: "大冰雹",
}

// DescribeWeatherCode maps a WMO weather code to a short description.
func DescribeWeatherCode(code int) string {
	if d, ok := weatherDescriptions[code]; ok {
		return d
	}
	return "未知天气"
}

// SuitabilityScore rates a day for sightseeing on a 0-100 scale.
// avgTemp is in °C, precipitation in mm and windSpeed in km/h.
func SuitabilityScore(avgTemp, precipitation, windSpeed float64) int {
	score := 100

	switch {
	case avgTemp < 0:
		score -= 30
	case avgTemp < 10:
		score -= 15
	case avgTemp > 35:
		score -= 20
	case avgTemp > 30:
		score -= 10
	}

	switch {
	case precipitation > 20:
		score -= 25
	case precipitation > 5:
		score -= 10
	}

	switch {
	case windSpeed > 40:
		score -= 20
	case windSpeed > 25:
		score -= 10
	}

	return max(0, score)
}

// SuitabilityLevel buckets a score into one of the Suitability* levels.
func SuitabilityLevel(score int) string {
	switch {
	case score >= 80:
		return SuitabilityExcellent
	case score >= 60:
		return SuitabilityGood
	case score >= 40:
		return SuitabilityFair
	case score >= 20:
		return SuitabilityPoor
	default:
		return SuitabilityBad
	}
}
