package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"heritage-itinerary-service/internal/domain"
	"heritage-itinerary-service/internal/platform/obs"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	openMeteoBaseURL = "https://api.open-meteo.com/v1"
	maxForecastDays  = 16
	forecastTTL      = 30 * time.Minute
)

type openMeteoForecastResponse struct {
	Daily struct {
		Time             []string  `json:"time"`
		WeatherCode      []int     `json:"weather_code"`
		Temperature2mMax []float64 `json:"temperature_2m_max"`
		Temperature2mMin []float64 `json:"temperature_2m_min"`
		PrecipitationSum []float64 `json:"precipitation_sum"`
		WindSpeed10mMax  []float64 `json:"wind_speed_10m_max"`
	} `json:"daily"`
}

// OpenMeteo implements ports.ForecastProvider using the Open-Meteo daily forecast.
// Responses are memoized per rounded coordinate and day count.
type OpenMeteo struct {
	session *http.Client
	baseURL string
	cache   *gocache.Cache
}

func NewOpenMeteo(baseURL string, session *http.Client) *OpenMeteo {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = openMeteoBaseURL
	}
	if session == nil {
		session = &http.Client{Timeout: 10 * time.Second}
	}
	return &OpenMeteo{
		session: session,
		baseURL: strings.TrimRight(baseURL, "/"),
		cache:   gocache.New(forecastTTL, 2*forecastTTL),
	}
}

func (o *OpenMeteo) Forecast(ctx context.Context, coord domain.Coordinates, days int) (_ []domain.DayForecast, err error) {
	defer obs.Time(ctx, "weather.openmeteo.Forecast")(&err)

	if days <= 0 {
		return []domain.DayForecast{}, nil
	}
	days = min(days, maxForecastDays)

	cacheKey := fmt.Sprintf("forecast_%.4f_%.4f_%d", coord.Lat, coord.Lon, days)
	if cached, found := o.cache.Get(cacheKey); found {
		return cloneForecast(cached.([]domain.DayForecast)), nil
	}

	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%.4f", coord.Lat))
	params.Set("longitude", fmt.Sprintf("%.4f", coord.Lon))
	params.Set("daily", "weather_code,temperature_2m_max,temperature_2m_min,precipitation_sum,wind_speed_10m_max")
	params.Set("forecast_days", strconv.Itoa(days))
	params.Set("timezone", "Asia/Shanghai")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/forecast?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("forecast: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := o.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("forecast: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var data openMeteoForecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("forecast: decode response: %w", err)
	}

	out := toDayForecasts(data)
	o.cache.SetDefault(cacheKey, cloneForecast(out))
	return out, nil
}

func toDayForecasts(data openMeteoForecastResponse) []domain.DayForecast {
	d := data.Daily
	n := min(len(d.Time), len(d.Temperature2mMax), len(d.Temperature2mMin))

	out := make([]domain.DayForecast, 0, n)
	for i := 0; i < n; i++ {
		code := valueAt(d.WeatherCode, i)
		minTemp := round1(d.Temperature2mMin[i])
		maxTemp := round1(d.Temperature2mMax[i])
		precip := round1(valueAt(d.PrecipitationSum, i))
		wind := valueAt(d.WindSpeed10mMax, i)

		score := SuitabilityScore((minTemp+maxTemp)/2, precip, wind)
		out = append(out, domain.DayForecast{
			Condition:     DescribeWeatherCode(code),
			MinTemp:       minTemp,
			MaxTemp:       maxTemp,
			Suitability:   SuitabilityLevel(score),
			Precipitation: precip,
		})
	}
	return out
}

func valueAt[T int | float64](s []T, i int) T {
	var zero T
	if i < len(s) {
		return s[i]
	}
	return zero
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

func cloneForecast(in []domain.DayForecast) []domain.DayForecast {
	out := make([]domain.DayForecast, len(in))
	copy(out, in)
	return out
}
