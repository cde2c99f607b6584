package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/weather-data-etl/internal/config"
	"github.com/couchcryptid/weather-data-etl/internal/domain"
	"github.com/couchcryptid/weather-data-etl/internal/pipeline"
)

func testConfig(upstream string) *config.Config {
	return &config.Config{
		RawPath:         "data/weather_data.json",
		ProcessedPath:   "data/processed_weather.csv",
		Latitude:        40.71,
		Longitude:       -74.01,
		OpenMeteoURL:    upstream,
		LogLevel:        "error",
		LogFormat:       "text",
		ShutdownTimeout: time.Second,
	}
}

func TestRuntime_FetchThenTransform(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "40.71", r.URL.Query().Get("latitude"))
		_, _ = w.Write([]byte(`{"hourly":{"time":["2024-01-01T00:00"],"temperature_2m":[5.0],"precipitation":[0.0]}}`))
	}))
	defer upstream.Close()

	fsys := afero.NewMemMapFs()
	rt, err := New(testConfig(upstream.URL), "weather_etl_test", fsys)
	require.NoError(t, err)

	assert.Equal(t, domain.Location{Lat: 40.71, Lon: -74.01}, rt.Location())
	assert.Equal(t, "data/weather_data.json", rt.RawRepository().Path())
	assert.Equal(t, "data/processed_weather.csv", rt.ProcessedRepository().Path())

	fetched := rt.FetchService().FetchAndSave(context.Background(), rt.Location())
	require.True(t, fetched.OK(), "fetch: %v", fetched.Err)

	transformed, err := rt.TransformService().TransformAndSave(context.Background())
	require.NoError(t, err)
	require.True(t, transformed.OK(), "transform: %v", transformed.Err)

	table, err := rt.ProcessedRepository().Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-01T00:00", "5.0", "0.0"}, table.Rows[0].Record())

	assert.NoError(t, rt.Close())
}

func TestRuntime_ClosePushesMetrics(t *testing.T) {
	var pushedPath string
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pushedPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer gateway.Close()

	cfg := testConfig("http://localhost:1/v1/forecast")
	cfg.PushgatewayURL = gateway.URL

	rt, err := New(cfg, "weather_etl_fetch", afero.NewMemMapFs())
	require.NoError(t, err)
	require.NoError(t, rt.Close())
	assert.Equal(t, "/metrics/job/weather_etl_fetch", pushedPath)
}

func TestRuntime_CloseReportsPushFailure(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer gateway.Close()

	cfg := testConfig("http://localhost:1/v1/forecast")
	cfg.PushgatewayURL = gateway.URL

	rt, err := New(cfg, "weather_etl_fetch", afero.NewMemMapFs())
	require.NoError(t, err)
	assert.Error(t, rt.Close())
}

func TestFetchMessage(t *testing.T) {
	assert.Equal(t, "✅ Weather data successfully fetched and saved!",
		FetchMessage(pipeline.Result{Status: pipeline.StatusSucceeded}))
	assert.Equal(t, "❌ Failed to fetch data. Status code: 404",
		FetchMessage(pipeline.Result{Status: pipeline.StatusFailed, Err: &domain.StatusError{Code: 404}}))
	assert.Equal(t, "❌ Failed to fetch data: fetch forecast: dial tcp: refused",
		FetchMessage(pipeline.Result{Status: pipeline.StatusFailed, Err: errors.New("fetch forecast: dial tcp: refused")}))
}

func TestTransformMessage(t *testing.T) {
	path := "data/processed_weather.csv"

	assert.Equal(t, "✅ Processed data saved to data/processed_weather.csv (24 rows)",
		TransformMessage(pipeline.Result{Status: pipeline.StatusSucceeded, Rows: 24}, path))

	missing := fmt.Errorf("transform: %w", &domain.MissingKeyError{Key: "precipitation"})
	assert.Equal(t, `❌ Missing key in data: "precipitation"`,
		TransformMessage(pipeline.Result{Status: pipeline.StatusFailed, Err: missing}, path))

	notFound := fmt.Errorf("load raw document: %w: data/weather_data.json", domain.ErrNotFound)
	assert.Contains(t, TransformMessage(pipeline.Result{Status: pipeline.StatusFailed, Err: notFound}, path),
		"❌ File not found")

	assert.Equal(t, "❌ Error during transformation: disk full",
		TransformMessage(pipeline.Result{Status: pipeline.StatusFailed, Err: errors.New("disk full")}, path))
}
