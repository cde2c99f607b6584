// Package domain models hourly weather observations from the Open-Meteo
// forecast API and their flattened, tabular form.
//
// # Data Source
//
// Observations come from https://api.open-meteo.com/v1/forecast, queried with
// latitude, longitude and hourly=temperature_2m,precipitation. The response is
// persisted verbatim as the raw document and later reshaped into a table.
//
// # Open-Meteo Hourly Conventions
//
// Hourly variables are returned column-wise, as parallel arrays under "hourly":
//
//	{
//	  "hourly": {
//	    "time":           ["2024-01-01T00:00", "2024-01-01T01:00", ...],
//	    "temperature_2m": [5.0, 4.8, ...],
//	    "precipitation":  [0.0, 0.1, ...]
//	  }
//	}
//
// Index i of every array describes the same hour. Timestamps are ISO 8601
// local times without a zone suffix (GMT unless a timezone parameter is sent)
// and are kept as strings. Units follow the API defaults: °C for
// temperature_2m and mm for precipitation. A value may be null when the model
// has no data for that hour.
//
// # Tabular Form
//
// [TransformHourly] zips the arrays row-wise into a [ProcessedTable] with the
// columns "Timestamp", "Temperature (°C)" and "Precipitation (mm)", in the
// order the API returned them. Rows are never re-sorted.
//
// Numbers in the raw document are decoded as [encoding/json.Number] so a saved
// and reloaded document is textually identical to what the API sent.
package domain
