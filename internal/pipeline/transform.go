package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/couchcryptid/weather-data-etl/internal/domain"
)

// OpenMeteoTransformer implements Transformer for Open-Meteo hourly documents.
type OpenMeteoTransformer struct {
	logger *slog.Logger
}

// NewTransformer creates an OpenMeteoTransformer.
func NewTransformer(logger *slog.Logger) *OpenMeteoTransformer {
	return &OpenMeteoTransformer{logger: logger}
}

func (t *OpenMeteoTransformer) Transform(_ context.Context, doc domain.RawDocument) (domain.ProcessedTable, error) {
	table, err := domain.TransformHourly(doc)
	if err != nil {
		var mk *domain.MissingKeyError
		if errors.As(err, &mk) {
			t.logger.Warn("missing key in data", "key", mk.Key)
		}
		return domain.ProcessedTable{}, err
	}

	t.logger.Debug("data transformation successful", "rows", table.Len())
	return table, nil
}
