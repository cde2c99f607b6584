package openmeteo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/couchcryptid/weather-data-etl/internal/domain"
)

// DefaultBaseURL is the Open-Meteo forecast endpoint.
const DefaultBaseURL = "https://api.open-meteo.com/v1/forecast"

// HourlyFields is the fixed list of hourly variables requested.
const HourlyFields = "temperature_2m,precipitation"

// Client implements pipeline.Fetcher against the Open-Meteo forecast API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates an Open-Meteo client. An empty baseURL selects
// DefaultBaseURL; a nil httpClient selects http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
	}
}

// Fetch requests hourly temperature and precipitation for loc. Any status
// code is returned as-is; only transport and read failures are errors.
func (c *Client) Fetch(ctx context.Context, loc domain.Location) (domain.Response, error) {
	params := url.Values{
		"latitude":  {formatCoord(loc.Lat)},
		"longitude": {formatCoord(loc.Lon)},
		"hourly":    {HourlyFields},
	}
	fullURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.Response{}, fmt.Errorf("create request: %w", err)
	}

	c.logger.Debug("requesting forecast", "url", fullURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Response{}, fmt.Errorf("forecast request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Response{}, fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("forecast response", "status_code", resp.StatusCode, "bytes", len(body))

	return domain.Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// formatCoord renders a coordinate in its shortest round-trip form, e.g. 40.71.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
