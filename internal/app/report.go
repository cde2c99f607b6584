package app

import (
	"errors"
	"fmt"

	"github.com/couchcryptid/weather-data-etl/internal/domain"
	"github.com/couchcryptid/weather-data-etl/internal/pipeline"
)

// FetchMessage renders a fetch Result for the terminal.
func FetchMessage(res pipeline.Result) string {
	if res.OK() {
		return "✅ Weather data successfully fetched and saved!"
	}
	var se *domain.StatusError
	if errors.As(res.Err, &se) {
		return fmt.Sprintf("❌ Failed to fetch data. Status code: %d", se.Code)
	}
	return fmt.Sprintf("❌ Failed to fetch data: %v", res.Err)
}

// TransformMessage renders a transform Result for the terminal.
func TransformMessage(res pipeline.Result, path string) string {
	if res.OK() {
		return fmt.Sprintf("✅ Processed data saved to %s (%d rows)", path, res.Rows)
	}

	var mk *domain.MissingKeyError
	switch {
	case errors.As(res.Err, &mk):
		return fmt.Sprintf("❌ Missing key in data: %q", mk.Key)
	case errors.Is(res.Err, domain.ErrNotFound):
		return fmt.Sprintf("❌ File not found: %v", res.Err)
	default:
		return fmt.Sprintf("❌ Error during transformation: %v", res.Err)
	}
}
