package file

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"

	"github.com/couchcryptid/weather-data-etl/internal/domain"
)

// DefaultProcessedPath is where the transform stage stores the table.
const DefaultProcessedPath = "data/processed_weather.csv"

// ProcessedRepository saves the processed table as CSV at a fixed path.
type ProcessedRepository struct {
	fs   afero.Fs
	path string
}

// NewProcessedRepository creates a repository for the table at path.
func NewProcessedRepository(fsys afero.Fs, path string) *ProcessedRepository {
	return &ProcessedRepository{fs: fsys, path: path}
}

// Path returns the storage location.
func (r *ProcessedRepository) Path() string {
	return r.path
}

// Save writes a header row followed by one row per observation, replacing
// any existing file.
func (r *ProcessedRepository) Save(table domain.ProcessedTable) error {
	return writeFile(r.fs, r.path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(domain.Columns); err != nil {
			return err
		}
		for _, row := range table.Rows {
			if err := cw.Write(row.Record()); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
}

// Load reads a table previously written by Save.
func (r *ProcessedRepository) Load() (domain.ProcessedTable, error) {
	f, err := openFile(r.fs, r.path)
	if err != nil {
		return domain.ProcessedTable{}, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return domain.ProcessedTable{}, fmt.Errorf("%w: read csv %s: %v", domain.ErrParse, r.path, err)
	}
	if len(records) == 0 {
		return domain.ProcessedTable{}, fmt.Errorf("%w: %s has no header", domain.ErrParse, r.path)
	}
	if got := strings.Join(records[0], ","); got != strings.Join(domain.Columns, ",") {
		return domain.ProcessedTable{}, fmt.Errorf("%w: unexpected header %q", domain.ErrParse, got)
	}

	rows := make([]domain.WeatherRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		temp, err := domain.ParseMeasurement(rec[1])
		if err != nil {
			return domain.ProcessedTable{}, fmt.Errorf("%w: line %d: %v", domain.ErrParse, i+2, err)
		}
		precip, err := domain.ParseMeasurement(rec[2])
		if err != nil {
			return domain.ProcessedTable{}, fmt.Errorf("%w: line %d: %v", domain.ErrParse, i+2, err)
		}
		rows = append(rows, domain.WeatherRow{Timestamp: rec[0], Temperature: temp, Precipitation: precip})
	}
	return domain.ProcessedTable{Rows: rows}, nil
}
