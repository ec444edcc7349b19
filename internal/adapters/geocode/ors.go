package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"heritage-itinerary-service/internal/domain"
	"heritage-itinerary-service/internal/platform/obs"
	"net/http"
	"strings"
)

const orsBaseURL = "https://api.openrouteservice.org"

type orsGeocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// ORSGeocoder implements ports.Geocoder using OpenRouteService (/geocode/search).
// Results are restricted to China; the region hint is appended to the query text.
type ORSGeocoder struct {
	session *http.Client
	apiKey  string
	baseURL string
}

type ORSOption func(*ORSGeocoder)

func WithORSBaseURL(u string) ORSOption {
	return func(o *ORSGeocoder) { o.baseURL = u }
}

func WithORSHTTPClient(c *http.Client) ORSOption {
	return func(o *ORSGeocoder) { o.session = c }
}

func NewORSGeocoder(apiKey string, opts ...ORSOption) (*ORSGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	o := &ORSGeocoder{
		session: &http.Client{Timeout: defaultHTTPTimeout},
		apiKey:  apiKey,
		baseURL: orsBaseURL,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

func (o *ORSGeocoder) Geocode(ctx context.Context, text, regionHint string) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "geocode.ors")(&err)

	query := normalize(text)
	if query == "" {
		return domain.Coordinates{}, false, nil
	}
	if regionHint != "" && !strings.Contains(query, regionHint) {
		query = regionHint + " " + query
	}

	endpoint := o.baseURL + "/geocode/search"

	resp, err := doWithRetry(ctx, o.session, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Authorization", o.apiKey)
		req.Header.Set("Accept", "application/json")

		q := req.URL.Query()
		q.Set("text", query)
		q.Set("boundary.country", "CN")
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("ors geocode %q: execute request: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinates{}, false, fmt.Errorf("ors geocode %q: unexpected status: %d", query, resp.StatusCode)
	}

	var decoded orsGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("ors geocode %q: decode response: %w", query, err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, false, nil
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, false, fmt.Errorf("ors geocode %q: invalid coordinate format", query)
	}

	// GeoJSON order is [lon, lat].
	c := domain.Coordinates{Lon: coords[0], Lat: coords[1]}
	if !c.Valid() {
		return domain.Coordinates{}, false, nil
	}
	return c, true, nil
}
