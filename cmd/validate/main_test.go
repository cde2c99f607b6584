package main

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	rawPath       = "data/weather_data.json"
	processedPath = "data/processed_weather.csv"
	rawDoc        = `{"hourly":{"time":["2024-01-01T00:00","2024-01-01T01:00"],"temperature_2m":[5.0,4.2],"precipitation":[0.0,null]}}`
)

func writeFixtures(t *testing.T, raw, processed string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, rawPath, []byte(raw), 0o644))
	if processed != "" {
		require.NoError(t, afero.WriteFile(fsys, processedPath, []byte(processed), 0o644))
	}
	return fsys
}

func TestRun_Pass(t *testing.T) {
	fsys := writeFixtures(t, rawDoc,
		"Timestamp,Temperature (°C),Precipitation (mm)\n"+
			"2024-01-01T00:00,5.0,0.0\n"+
			"2024-01-01T01:00,4.2,\n")

	var out bytes.Buffer
	assert.Equal(t, 0, run(fsys, rawPath, processedPath, &out))
	assert.Contains(t, out.String(), "All validations passed.")
	assert.Contains(t, out.String(), "Rows: 2 raw, 2 processed")
}

func TestRun_ValueMismatch(t *testing.T) {
	fsys := writeFixtures(t, rawDoc,
		"Timestamp,Temperature (°C),Precipitation (mm)\n"+
			"2024-01-01T00:00,5.0,0.0\n"+
			"2024-01-01T01:00,4.3,\n")

	var out bytes.Buffer
	assert.Equal(t, 1, run(fsys, rawPath, processedPath, &out))
	assert.Contains(t, out.String(), `row 2: column "Temperature (°C)": raw="4.2", processed="4.3"`)
}

func TestRun_RowCountMismatch(t *testing.T) {
	fsys := writeFixtures(t, rawDoc,
		"Timestamp,Temperature (°C),Precipitation (mm)\n"+
			"2024-01-01T00:00,5.0,0.0\n")

	var out bytes.Buffer
	assert.Equal(t, 1, run(fsys, rawPath, processedPath, &out))
	assert.Contains(t, out.String(), "row count: raw has 2, processed has 1")
}

func TestRun_OutOfOrderTimestamps(t *testing.T) {
	fsys := writeFixtures(t, rawDoc,
		"Timestamp,Temperature (°C),Precipitation (mm)\n"+
			"2024-01-01T01:00,4.2,\n"+
			"2024-01-01T00:00,5.0,0.0\n")

	var out bytes.Buffer
	assert.Equal(t, 1, run(fsys, rawPath, processedPath, &out))
	assert.Contains(t, out.String(), "does not follow")
}

func TestRun_MissingProcessed(t *testing.T) {
	fsys := writeFixtures(t, rawDoc, "")

	var out bytes.Buffer
	assert.Equal(t, 1, run(fsys, rawPath, processedPath, &out))
	assert.Contains(t, out.String(), "Phase 2: Processed Table")
	assert.Contains(t, out.String(), "load data/processed_weather.csv")
	assert.Contains(t, out.String(), "Validation FAILED.")
}

func TestRun_RawMissingKey(t *testing.T) {
	fsys := writeFixtures(t, `{"hourly":{"time":[]}}`,
		"Timestamp,Temperature (°C),Precipitation (mm)\n")

	var out bytes.Buffer
	assert.Equal(t, 1, run(fsys, rawPath, processedPath, &out))
	assert.Contains(t, out.String(), `missing key in data: "temperature_2m"`)
}

func TestRun_RawMissing(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 1, run(afero.NewMemMapFs(), rawPath, processedPath, &out))
	assert.Contains(t, out.String(), "FATAL: load raw document")
}
