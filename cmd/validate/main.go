// Command validate checks that a processed weather CSV is a faithful
// rendering of the raw forecast document it was derived from. It re-derives
// the table from the raw JSON and compares row counts, timestamp order, and
// every measurement cell.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -raw data/weather_data.json \
//	  -processed data/processed_weather.csv
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/couchcryptid/weather-data-etl/internal/adapter/file"
	"github.com/couchcryptid/weather-data-etl/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	rawPath := flag.String("raw", file.DefaultRawPath, "path to the raw forecast JSON")
	processedPath := flag.String("processed", file.DefaultProcessedPath, "path to the processed CSV")
	flag.Parse()

	if code := run(afero.NewOsFs(), *rawPath, *processedPath, os.Stdout); code != 0 {
		os.Exit(code)
	}
}

func run(fsys afero.Fs, rawPath, processedPath string, out io.Writer) int {
	fmt.Fprintln(out, "=== Weather Data Integrity Validation ===")
	fmt.Fprintln(out)

	doc, err := file.NewRawRepository(fsys, rawPath).Load()
	if err != nil {
		fmt.Fprintf(out, "FATAL: load raw document: %v\n", err)
		return 1
	}

	// ── Run validation phases ──
	expected, derive := validateRawDocument(doc)
	actual, load := validateProcessedTable(fsys, processedPath)
	phases := []*phase{derive, load}
	if derive.passed() && load.passed() {
		phases = append(phases, validateParity(expected, actual))
	}

	// ── Report results ──
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Rows: %d raw, %d processed\n", expected.Len(), actual.Len())

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

// ── Phase 1: Raw Document ──
// Re-derives the expected table from the hourly arrays.

func validateRawDocument(doc domain.RawDocument) (domain.ProcessedTable, *phase) {
	p := &phase{name: "Phase 1: Raw Document (hourly arrays)"}

	table, err := domain.TransformHourly(doc)
	if err != nil {
		p.errorf("derive table: %v", err)
		return domain.ProcessedTable{}, p
	}
	if table.Len() == 0 {
		p.errorf("raw document has no hourly entries")
	}
	return table, p
}

// ── Phase 2: Processed Table ──
// Loads the CSV, checking header and cell syntax.

func validateProcessedTable(fsys afero.Fs, path string) (domain.ProcessedTable, *phase) {
	p := &phase{name: "Phase 2: Processed Table (CSV format)"}

	repo := file.NewProcessedRepository(fsys, path)
	table, err := repo.Load()
	if err != nil {
		p.errorf("load %s: %v", repo.Path(), err)
		return domain.ProcessedTable{}, p
	}

	for i := 1; i < table.Len(); i++ {
		prev, cur := table.Rows[i-1].Timestamp, table.Rows[i].Timestamp
		if cur <= prev {
			p.errorf("row %d: timestamp %q does not follow %q", i+1, cur, prev)
		}
	}
	return table, p
}

// ── Phase 3: Parity ──
// Compares the derived table with the stored one cell by cell.

func validateParity(expected, actual domain.ProcessedTable) *phase {
	p := &phase{name: "Phase 3: Parity (raw vs processed)"}

	if expected.Len() != actual.Len() {
		p.errorf("row count: raw has %d, processed has %d", expected.Len(), actual.Len())
	}

	n := min(expected.Len(), actual.Len())
	for i := 0; i < n; i++ {
		want, got := expected.Rows[i].Record(), actual.Rows[i].Record()
		for j, col := range domain.Columns {
			if want[j] != got[j] {
				p.errorf("row %d: column %q: raw=%q, processed=%q", i+1, col, want[j], got[j])
			}
		}
	}
	return p
}
