package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Column names of the processed table, in output order.
const (
	ColumnTimestamp     = "Timestamp"
	ColumnTemperature   = "Temperature (°C)"
	ColumnPrecipitation = "Precipitation (mm)"
)

// Keys read from the raw Open-Meteo document.
const (
	KeyHourly        = "hourly"
	KeyTime          = "time"
	KeyTemperature2m = "temperature_2m"
	KeyPrecipitation = "precipitation"
)

// Columns lists the processed table header.
var Columns = []string{ColumnTimestamp, ColumnTemperature, ColumnPrecipitation}

// Location is a WGS-84 latitude/longitude pair in degrees. Values are not
// range-checked; the upstream API decides what it accepts.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// DefaultLocation is New York City.
var DefaultLocation = Location{Lat: 40.71, Lon: -74.01}

// Response is the status and body returned by the upstream for one request.
type Response struct {
	StatusCode int
	Body       []byte
}

// RawDocument is the untyped JSON object returned by the forecast API.
type RawDocument map[string]any

// DecodeRawDocument parses a single JSON object, keeping numbers as
// json.Number. Anything but whitespace after the object is an error.
func DecodeRawDocument(r io.Reader) (RawDocument, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc RawDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document is null", ErrParse)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", ErrParse)
	}
	return doc, nil
}

// Measurement is a numeric reading that may be absent (JSON null).
type Measurement struct {
	Value float64
	Valid bool
}

// Some returns a valid Measurement.
func Some(v float64) Measurement {
	return Measurement{Value: v, Valid: true}
}

// String formats the value the way the CSV output expects: integral values
// keep a trailing ".0", very small or very large magnitudes use exponent
// notation, and missing values are empty.
func (m Measurement) String() string {
	if !m.Valid {
		return ""
	}
	return formatFloat(m.Value)
}

// ParseMeasurement is the inverse of Measurement.String.
func ParseMeasurement(s string) (Measurement, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Measurement{}, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Measurement{}, err
	}
	return Some(v), nil
}

func formatFloat(v float64) string {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	if abs >= 1e16 || (abs != 0 && abs < 1e-4) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// WeatherRow is one hourly observation.
type WeatherRow struct {
	Timestamp     string
	Temperature   Measurement
	Precipitation Measurement
}

// Record returns the row as CSV fields in Columns order.
func (r WeatherRow) Record() []string {
	return []string{r.Timestamp, r.Temperature.String(), r.Precipitation.String()}
}

// ProcessedTable is the ordered hourly time series written by the transform stage.
type ProcessedTable struct {
	Rows []WeatherRow
}

// Len returns the number of rows.
func (t ProcessedTable) Len() int {
	return len(t.Rows)
}
