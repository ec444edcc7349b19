package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"heritage-itinerary-service/internal/domain"
	"heritage-itinerary-service/internal/platform/obs"
	"net/http"
)

const baiduBaseURL = "https://api.map.baidu.com"

// Baidu status codes that mean the address simply was not found.
// Anything else non-zero is a key, quota or permission problem.
var baiduNoMatchStatus = map[int]struct{}{
	1: {},
	2: {},
}

type baiduResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Msg     string `json:"msg"`
	Result  struct {
		Location struct {
			Lng float64 `json:"lng"`
			Lat float64 `json:"lat"`
		} `json:"location"`
		Precise    int    `json:"precise"`
		Confidence int    `json:"confidence"`
		Level      string `json:"level"`
	} `json:"result"`
}

// BaiduStatusError reports a non-zero Baidu status other than a plain miss.
type BaiduStatusError struct {
	Status  int
	Message string
}

func (e *BaiduStatusError) Error() string {
	return fmt.Sprintf("baidu status %d: %s", e.Status, e.Message)
}

// BaiduGeocoder implements ports.Geocoder using the Baidu Map geocoding v3 API.
// It is safe for concurrent use.
type BaiduGeocoder struct {
	session *http.Client
	ak      string
	baseURL string
}

type BaiduOption func(*BaiduGeocoder)

func WithBaiduBaseURL(u string) BaiduOption {
	return func(b *BaiduGeocoder) { b.baseURL = u }
}

func WithBaiduHTTPClient(c *http.Client) BaiduOption {
	return func(b *BaiduGeocoder) { b.session = c }
}

func NewBaiduGeocoder(ak string, opts ...BaiduOption) (*BaiduGeocoder, error) {
	if ak == "" {
		return nil, errors.New("baidu map ak is empty")
	}

	b := &BaiduGeocoder{
		session: &http.Client{Timeout: defaultHTTPTimeout},
		ak:      ak,
		baseURL: baiduBaseURL,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

func (b *BaiduGeocoder) Geocode(ctx context.Context, text, regionHint string) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "geocode.baidu")(&err)

	query := normalize(text)
	if query == "" {
		return domain.Coordinates{}, false, nil
	}

	endpoint := b.baseURL + "/geocoding/v3/"

	resp, err := doWithRetry(ctx, b.session, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		q := req.URL.Query()
		q.Set("address", query)
		if regionHint != "" {
			q.Set("city", regionHint)
		}
		q.Set("output", "json")
		q.Set("ak", b.ak)
		req.URL.RawQuery = q.Encode()
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("baidu geocode %q: execute request: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinates{}, false, fmt.Errorf("baidu geocode %q: unexpected status: %d", query, resp.StatusCode)
	}

	var decoded baiduResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("baidu geocode %q: decode response: %w", query, err)
	}

	if decoded.Status != 0 {
		if _, ok := baiduNoMatchStatus[decoded.Status]; ok {
			return domain.Coordinates{}, false, nil
		}
		msg := decoded.Message
		if msg == "" {
			msg = decoded.Msg
		}
		return domain.Coordinates{}, false, fmt.Errorf("baidu geocode %q: %w", query, &BaiduStatusError{Status: decoded.Status, Message: msg})
	}

	c := domain.Coordinates{
		Lat: decoded.Result.Location.Lat,
		Lon: decoded.Result.Location.Lng,
	}
	if !c.Valid() {
		return domain.Coordinates{}, false, nil
	}
	return c, true, nil
}
