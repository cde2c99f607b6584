package domain

import (
	"encoding/json"
	"fmt"
)

// TransformHourly zips the hourly time, temperature_2m and precipitation arrays
// of an Open-Meteo document into a ProcessedTable, preserving source order.
//
// A key missing at any level yields a *MissingKeyError and no table. Keys that
// are present but hold the wrong type yield ErrShape, and arrays of differing
// lengths yield ErrLengthMismatch.
func TransformHourly(doc RawDocument) (ProcessedTable, error) {
	hourlyVal, ok := doc[KeyHourly]
	if !ok {
		return ProcessedTable{}, &MissingKeyError{Key: KeyHourly}
	}
	hourly, ok := hourlyVal.(map[string]any)
	if !ok {
		return ProcessedTable{}, fmt.Errorf("%w: %q is %T, want object", ErrShape, KeyHourly, hourlyVal)
	}

	times, err := lookupArray(hourly, KeyTime)
	if err != nil {
		return ProcessedTable{}, err
	}
	temps, err := lookupArray(hourly, KeyTemperature2m)
	if err != nil {
		return ProcessedTable{}, err
	}
	precip, err := lookupArray(hourly, KeyPrecipitation)
	if err != nil {
		return ProcessedTable{}, err
	}

	if len(temps) != len(times) || len(precip) != len(times) {
		return ProcessedTable{}, fmt.Errorf("%w: time=%d temperature_2m=%d precipitation=%d",
			ErrLengthMismatch, len(times), len(temps), len(precip))
	}

	rows := make([]WeatherRow, 0, len(times))
	for i := range times {
		ts, ok := times[i].(string)
		if !ok {
			return ProcessedTable{}, fmt.Errorf("%w: %s[%d] is %T, want string", ErrShape, KeyTime, i, times[i])
		}
		temp, err := toMeasurement(temps[i])
		if err != nil {
			return ProcessedTable{}, fmt.Errorf("%s[%d]: %w", KeyTemperature2m, i, err)
		}
		p, err := toMeasurement(precip[i])
		if err != nil {
			return ProcessedTable{}, fmt.Errorf("%s[%d]: %w", KeyPrecipitation, i, err)
		}
		rows = append(rows, WeatherRow{Timestamp: ts, Temperature: temp, Precipitation: p})
	}

	return ProcessedTable{Rows: rows}, nil
}

func lookupArray(obj map[string]any, key string) ([]any, error) {
	v, ok := obj[key]
	if !ok {
		return nil, &MissingKeyError{Key: key}
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %T, want array", ErrShape, key, v)
	}
	return arr, nil
}

// toMeasurement accepts json.Number (decoded documents), float64 (documents
// built in code or decoded without UseNumber) and nil.
func toMeasurement(v any) (Measurement, error) {
	switch n := v.(type) {
	case nil:
		return Measurement{}, nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return Measurement{}, fmt.Errorf("%w: %v", ErrShape, err)
		}
		return Some(f), nil
	case float64:
		return Some(n), nil
	case int:
		return Some(float64(n)), nil
	default:
		return Measurement{}, fmt.Errorf("%w: %T is not a number", ErrShape, v)
	}
}
