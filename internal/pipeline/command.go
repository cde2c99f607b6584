package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/weather-data-etl/internal/domain"
	"github.com/couchcryptid/weather-data-etl/internal/observability"
)

// TransformCommand loads the raw document, transforms it, and saves the table.
type TransformCommand struct {
	raw         RawLoader
	transformer Transformer
	table       TableSaver
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// NewTransformCommand creates a TransformCommand.
func NewTransformCommand(raw RawLoader, t Transformer, table TableSaver, logger *slog.Logger, metrics *observability.Metrics) *TransformCommand {
	return &TransformCommand{
		raw:         raw,
		transformer: t,
		table:       table,
		logger:      logger,
		metrics:     metrics,
	}
}

// Execute runs load, transform, save synchronously. Nothing escapes it: every
// error and panic is logged and returned inside a failed Result. The table is
// only saved when the transform produced one.
func (c *TransformCommand) Execute(ctx context.Context) (res Result) {
	ctx, span := tracer.Start(ctx, "transform_and_save")
	defer span.End()

	res = Result{Stage: StageTransform, StartedAt: clock.Now()}
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
		if res.Err != nil {
			c.metrics.TransformErrors.WithLabelValues(failureReason(res.Err)).Inc()
		}
		finish(&res, span, c.logger, c.metrics)
	}()

	doc, err := c.raw.Load()
	if err != nil {
		res.Err = fmt.Errorf("load raw document: %w", err)
		return res
	}

	table, err := c.transformer.Transform(ctx, doc)
	if err != nil {
		res.Err = fmt.Errorf("transform: %w", err)
		return res
	}

	if err := c.table.Save(table); err != nil {
		res.Err = fmt.Errorf("save processed table: %w", err)
		return res
	}

	res.Rows = table.Len()
	c.metrics.RowsWritten.Set(float64(res.Rows))
	return res
}

// failureReason classifies a transform-stage error for metrics.
func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrParse):
		return "parse"
	case errors.Is(err, domain.ErrMissingKey):
		return "missing_key"
	case errors.Is(err, domain.ErrShape):
		return "shape"
	case errors.Is(err, domain.ErrLengthMismatch):
		return "length_mismatch"
	default:
		return "unexpected"
	}
}
