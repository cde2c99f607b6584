package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/couchcryptid/weather-data-etl/internal/domain"
	"github.com/couchcryptid/weather-data-etl/internal/observability"
)

// FetchService runs the fetch stage: Fetcher, then raw repository.
type FetchService struct {
	fetcher Fetcher
	raw     RawSaver
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewFetchService creates a FetchService.
func NewFetchService(f Fetcher, raw RawSaver, logger *slog.Logger, metrics *observability.Metrics) *FetchService {
	return &FetchService{
		fetcher: f,
		raw:     raw,
		logger:  logger,
		metrics: metrics,
	}
}

// FetchAndSave fetches the forecast for loc on a worker goroutine and blocks
// until it is done. On HTTP 200 the body is stored as the raw document; any
// other status leaves the stored document untouched and fails with a
// *domain.StatusError. Every failure, including a panic, is reported in the
// returned Result rather than propagated.
func (s *FetchService) FetchAndSave(ctx context.Context, loc domain.Location) Result {
	ctx, span := tracer.Start(ctx, "fetch_and_save", trace.WithAttributes(
		attribute.Float64("latitude", loc.Lat),
		attribute.Float64("longitude", loc.Lon),
	))
	defer span.End()

	res := Result{Stage: StageFetch, StartedAt: clock.Now()}
	res.Err = runWorker(func() error {
		return s.fetchAndSave(ctx, loc, &res)
	})

	span.SetAttributes(attribute.Int("http.status_code", res.StatusCode))
	finish(&res, span, s.logger, s.metrics)
	return res
}

func (s *FetchService) fetchAndSave(ctx context.Context, loc domain.Location, res *Result) error {
	resp, err := s.fetcher.Fetch(ctx, loc)
	if err != nil {
		return fmt.Errorf("fetch forecast: %w", err)
	}

	res.StatusCode = resp.StatusCode
	s.metrics.UpstreamResponses.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		return &domain.StatusError{Code: resp.StatusCode}
	}

	s.metrics.RawBytes.Set(float64(len(resp.Body)))

	doc, err := domain.DecodeRawDocument(bytes.NewReader(resp.Body))
	if err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if err := s.raw.Save(doc); err != nil {
		return fmt.Errorf("save raw document: %w", err)
	}
	return nil
}
