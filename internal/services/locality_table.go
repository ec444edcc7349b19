package services

import (
	"heritage-itinerary-service/internal/domain"
	"strings"
)

type locality struct {
	name  string
	coord domain.Coordinates
}

// DefaultOrigin is the regional default used when nothing else resolves (Xi'an).
var DefaultOrigin = domain.Coordinates{Lat: 34.3416, Lon: 108.9398}

// Known localities: Shaanxi counties, then prefectures, then major cities
// elsewhere. Order matters: the first substring match wins, so a query such
// as "渭南市华县" lands on the county rather than the prefecture.
var localities = []locality{
	{"兴平", domain.Coordinates{Lat: 34.2976, Lon: 108.4901}},
	{"韩城", domain.Coordinates{Lat: 35.4791, Lon: 110.4424}},
	{"华阴", domain.Coordinates{Lat: 34.5661, Lon: 110.0894}},
	{"华县", domain.Coordinates{Lat: 34.5124, Lon: 109.7323}},
	{"合阳", domain.Coordinates{Lat: 35.2389, Lon: 110.1492}},
	{"蒲城", domain.Coordinates{Lat: 34.9565, Lon: 109.5903}},
	{"富平", domain.Coordinates{Lat: 34.7519, Lon: 109.1801}},
	{"三原", domain.Coordinates{Lat: 34.6159, Lon: 108.9315}},
	{"泾阳", domain.Coordinates{Lat: 34.5325, Lon: 108.8435}},
	{"乾县", domain.Coordinates{Lat: 34.5294, Lon: 108.2426}},
	{"礼泉", domain.Coordinates{Lat: 34.4846, Lon: 108.4262}},
	{"永寿", domain.Coordinates{Lat: 34.6909, Lon: 108.1445}},
	{"彬县", domain.Coordinates{Lat: 35.0342, Lon: 108.0849}},
	{"长武", domain.Coordinates{Lat: 35.2061, Lon: 107.7955}},
	{"旬邑", domain.Coordinates{Lat: 35.1137, Lon: 108.3391}},
	{"淳化", domain.Coordinates{Lat: 34.7955, Lon: 108.5801}},
	{"武功", domain.Coordinates{Lat: 34.2594, Lon: 108.2033}},
	{"西安", domain.Coordinates{Lat: 34.3416, Lon: 108.9398}},
	{"咸阳", domain.Coordinates{Lat: 34.3296, Lon: 108.7089}},
	{"宝鸡", domain.Coordinates{Lat: 34.3616, Lon: 107.2365}},
	{"渭南", domain.Coordinates{Lat: 34.5023, Lon: 109.5099}},
	{"延安", domain.Coordinates{Lat: 36.5853, Lon: 109.4897}},
	{"汉中", domain.Coordinates{Lat: 33.0677, Lon: 107.0286}},
	{"榆林", domain.Coordinates{Lat: 38.2852, Lon: 109.7343}},
	{"安康", domain.Coordinates{Lat: 32.6849, Lon: 109.0293}},
	{"商洛", domain.Coordinates{Lat: 33.8697, Lon: 109.9404}},
	{"铜川", domain.Coordinates{Lat: 34.8960, Lon: 108.9459}},
	{"北京", domain.Coordinates{Lat: 39.9042, Lon: 116.4074}},
	{"上海", domain.Coordinates{Lat: 31.2304, Lon: 121.4737}},
	{"广州", domain.Coordinates{Lat: 23.1291, Lon: 113.2644}},
	{"深圳", domain.Coordinates{Lat: 22.5431, Lon: 114.0579}},
	{"成都", domain.Coordinates{Lat: 30.5728, Lon: 104.0668}},
	{"杭州", domain.Coordinates{Lat: 30.2741, Lon: 120.1551}},
	{"武汉", domain.Coordinates{Lat: 30.5928, Lon: 114.3055}},
	{"重庆", domain.Coordinates{Lat: 29.4316, Lon: 106.9123}},
	{"南京", domain.Coordinates{Lat: 32.0603, Lon: 118.7969}},
	{"天津", domain.Coordinates{Lat: 39.3434, Lon: 117.3616}},
	{"苏州", domain.Coordinates{Lat: 31.2990, Lon: 120.5853}},
	{"长沙", domain.Coordinates{Lat: 28.2282, Lon: 112.9388}},
	{"郑州", domain.Coordinates{Lat: 34.7466, Lon: 113.6254}},
}

// LookupLocality matches name against the static table.
// A match is either string containing the other; the first entry in table order wins.
func LookupLocality(name string) (domain.Coordinates, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Coordinates{}, false
	}

	for _, l := range localities {
		if strings.Contains(name, l.name) || strings.Contains(l.name, name) {
			return l.coord, true
		}
	}

	return domain.Coordinates{}, false
}
