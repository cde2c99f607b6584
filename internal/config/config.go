package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

var validate = validator.New()

// Config holds all pipeline settings, populated from environment variables.
type Config struct {
	RawPath       string `validate:"required"`
	ProcessedPath string `validate:"required"`

	// Location queried by the fetch stage.
	Latitude  float64
	Longitude float64

	OpenMeteoURL string        `validate:"required,url"`
	HTTPTimeout  time.Duration `validate:"gte=0"` // 0 = no client timeout

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json text"`

	// Optional batch-job observability sinks; empty disables them.
	PushgatewayURL  string `validate:"omitempty,url"`
	ZipkinURL       string `validate:"omitempty,url"`
	ShutdownTimeout time.Duration
}

// LoadDotEnv loads a .env file from the working directory, if any. Variables
// already set in the environment win.
func LoadDotEnv(paths ...string) error {
	return godotenv.Load(paths...)
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	lat, err := parseFloat("WEATHER_LATITUDE", "40.71")
	if err != nil {
		return nil, err
	}
	lon, err := parseFloat("WEATHER_LONGITUDE", "-74.01")
	if err != nil {
		return nil, err
	}

	httpTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("HTTP_TIMEOUT", "0s"))
	if err != nil {
		return nil, errors.New("invalid HTTP_TIMEOUT")
	}

	cfg := &Config{
		RawPath:         sharedcfg.EnvOrDefault("WEATHER_RAW_PATH", "data/weather_data.json"),
		ProcessedPath:   sharedcfg.EnvOrDefault("WEATHER_PROCESSED_PATH", "data/processed_weather.csv"),
		Latitude:        lat,
		Longitude:       lon,
		OpenMeteoURL:    sharedcfg.EnvOrDefault("OPEN_METEO_URL", "https://api.open-meteo.com/v1/forecast"),
		HTTPTimeout:     httpTimeout,
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
		PushgatewayURL:  sharedcfg.EnvOrDefault("PUSHGATEWAY_URL", ""),
		ZipkinURL:       sharedcfg.EnvOrDefault("ZIPKIN_URL", ""),
		ShutdownTimeout: shutdownTimeout,
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, describe(err)
	}

	return cfg, nil
}

func parseFloat(key, def string) (float64, error) {
	v, err := strconv.ParseFloat(sharedcfg.EnvOrDefault(key, def), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

// envNames maps struct fields to the variables that populate them so
// validation errors name what the operator has to fix.
var envNames = map[string]string{
	"RawPath":        "WEATHER_RAW_PATH",
	"ProcessedPath":  "WEATHER_PROCESSED_PATH",
	"OpenMeteoURL":   "OPEN_METEO_URL",
	"HTTPTimeout":    "HTTP_TIMEOUT",
	"LogLevel":       "LOG_LEVEL",
	"LogFormat":      "LOG_FORMAT",
	"PushgatewayURL": "PUSHGATEWAY_URL",
	"ZipkinURL":      "ZIPKIN_URL",
}

func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	name, ok := envNames[fe.Field()]
	if !ok {
		name = fe.Field()
	}
	if fe.Param() != "" {
		return fmt.Errorf("invalid %s: must satisfy %s=%s", name, fe.Tag(), fe.Param())
	}
	return fmt.Errorf("invalid %s: must satisfy %s", name, fe.Tag())
}
