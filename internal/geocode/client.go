package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/forkcast-app/forkcast/internal/catalog"
)

// Client resolves a free-text query (ZIP, address, place name) to
// coordinates. A nil result with nil error means the query did not resolve.
type Client interface {
	Resolve(ctx context.Context, query string) (*catalog.Coordinates, error)
}

type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*catalog.Coordinates]
}

func NewHTTPClient(baseURL, token string) *HTTPClient {
	settings := gobreaker.Settings{
		Name:        "geocoder",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &HTTPClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		breaker:    gobreaker.NewCircuitBreaker[*catalog.Coordinates](settings),
	}
}

type geocodeResponse struct {
	Found bool    `json:"found"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

func (c *HTTPClient) Resolve(ctx context.Context, query string) (*catalog.Coordinates, error) {
	return c.breaker.Execute(func() (*catalog.Coordinates, error) {
		return c.doResolve(ctx, query)
	})
}

func (c *HTTPClient) doResolve(ctx context.Context, query string) (*catalog.Coordinates, error) {
	u := c.baseURL + "/v1/geocode?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("geocoder GET %s: %d %s", u, resp.StatusCode, string(body))
	}

	var gr geocodeResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return nil, err
	}
	if !gr.Found {
		return nil, nil
	}
	return &catalog.Coordinates{Lat: gr.Lat, Lng: gr.Lng}, nil
}
