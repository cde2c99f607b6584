package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/couchcryptid/weather-data-etl/internal/domain"
	"github.com/couchcryptid/weather-data-etl/internal/observability"
)

// Fetcher retrieves the raw forecast for a location.
type Fetcher interface {
	Fetch(ctx context.Context, loc domain.Location) (domain.Response, error)
}

// Transformer reshapes a raw document into a processed table.
type Transformer interface {
	Transform(ctx context.Context, doc domain.RawDocument) (domain.ProcessedTable, error)
}

// RawSaver persists the raw document.
type RawSaver interface {
	Save(doc domain.RawDocument) error
}

// RawLoader reads back the raw document.
type RawLoader interface {
	Load() (domain.RawDocument, error)
}

// TableSaver persists the processed table.
type TableSaver interface {
	Save(table domain.ProcessedTable) error
}

// ErrPanic wraps a value recovered from a panicking stage.
var ErrPanic = errors.New("stage panicked")

// Stage names a pipeline stage.
type Stage string

const (
	StageFetch     Stage = "fetch"
	StageTransform Stage = "transform"
)

// Status is the outcome of a stage execution.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Result is the typed outcome of one stage execution.
type Result struct {
	Stage  Stage
	Status Status

	// StatusCode is the upstream HTTP status (fetch stage only; 0 when no
	// response was received).
	StatusCode int

	// Rows is the number of rows written (transform stage only).
	Rows int

	Err       error
	StartedAt time.Time
	Duration  time.Duration
}

// OK reports whether the stage succeeded.
func (r Result) OK() bool {
	return r.Status == StatusSucceeded
}

var tracer = otel.Tracer("github.com/couchcryptid/weather-data-etl/internal/pipeline")

// finish stamps the outcome of res and reports it to logs, metrics, and the span.
func finish(res *Result, span trace.Span, logger *slog.Logger, metrics *observability.Metrics) {
	res.Duration = clock.Since(res.StartedAt)
	res.Status = StatusSucceeded
	if res.Err != nil {
		res.Status = StatusFailed
	}

	stage := string(res.Stage)
	metrics.StageRuns.WithLabelValues(stage, string(res.Status)).Inc()
	metrics.StageDuration.WithLabelValues(stage).Observe(res.Duration.Seconds())

	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, res.Err.Error())
		logger.Error("stage failed", "stage", stage, "status_code", res.StatusCode, "duration", res.Duration, "error", res.Err)
		return
	}

	metrics.LastSuccess.WithLabelValues(stage).Set(float64(clock.Now().Unix()))
	span.SetStatus(codes.Ok, "")
	logger.Info("stage succeeded", "stage", stage, "status_code", res.StatusCode, "rows", res.Rows, "duration", res.Duration)
}
