// Package app wires configuration, observability, adapters, and pipeline
// stages for the command entry points.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/spf13/afero"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/couchcryptid/weather-data-etl/internal/adapter/file"
	"github.com/couchcryptid/weather-data-etl/internal/adapter/openmeteo"
	"github.com/couchcryptid/weather-data-etl/internal/config"
	"github.com/couchcryptid/weather-data-etl/internal/domain"
	"github.com/couchcryptid/weather-data-etl/internal/observability"
	"github.com/couchcryptid/weather-data-etl/internal/pipeline"
)

const serviceName = "weather-etl"

// Runtime holds the process-wide dependencies of one entry point.
type Runtime struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *observability.Metrics

	job             string
	fs              afero.Fs
	shutdownTracing observability.ShutdownFunc
}

// Bootstrap loads .env and the environment, then builds a Runtime. job names
// the batch job when metrics are pushed.
func Bootstrap(job string) (*Runtime, error) {
	if err := config.LoadDotEnv(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return New(cfg, job, afero.NewOsFs())
}

// New builds a Runtime on the given file system.
func New(cfg *config.Config, job string, fsys afero.Fs) (*Runtime, error) {
	logger := observability.NewLogger(cfg)

	shutdown, err := observability.InitTracing(cfg.ZipkinURL, serviceName)
	if err != nil {
		return nil, err
	}

	return &Runtime{
		Config:          cfg,
		Logger:          logger.With("job", job),
		Metrics:         observability.NewMetrics(),
		job:             job,
		fs:              fsys,
		shutdownTracing: shutdown,
	}, nil
}

// Location returns the configured coordinates.
func (r *Runtime) Location() domain.Location {
	return domain.Location{Lat: r.Config.Latitude, Lon: r.Config.Longitude}
}

// HTTPClient returns the traced transport used for upstream calls.
func (r *Runtime) HTTPClient() *http.Client {
	return &http.Client{
		Timeout:   r.Config.HTTPTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// RawRepository returns the raw document repository at the configured path.
func (r *Runtime) RawRepository() *file.RawRepository {
	return file.NewRawRepository(r.fs, r.Config.RawPath)
}

// ProcessedRepository returns the processed table repository at the configured path.
func (r *Runtime) ProcessedRepository() *file.ProcessedRepository {
	return file.NewProcessedRepository(r.fs, r.Config.ProcessedPath)
}

// FetchService builds the fetch stage.
func (r *Runtime) FetchService() *pipeline.FetchService {
	client := openmeteo.NewClient(r.Config.OpenMeteoURL, r.HTTPClient(), r.Logger)
	return pipeline.NewFetchService(client, r.RawRepository(), r.Logger, r.Metrics)
}

// TransformService builds the transform stage.
func (r *Runtime) TransformService() *pipeline.TransformService {
	cmd := pipeline.NewTransformCommand(
		r.RawRepository(),
		pipeline.NewTransformer(r.Logger),
		r.ProcessedRepository(),
		r.Logger,
		r.Metrics,
	)
	return pipeline.NewTransformService(cmd)
}

// Close pushes metrics (when a Pushgateway is configured) and flushes traces,
// bounded by the shutdown timeout.
func (r *Runtime) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), r.Config.ShutdownTimeout)
	defer cancel()

	var errs []error
	if r.Config.PushgatewayURL != "" {
		if err := observability.Push(ctx, r.Config.PushgatewayURL, r.job, r.Metrics); err != nil {
			r.Logger.Error("metrics push failed", "gateway", r.Config.PushgatewayURL, "error", err)
			errs = append(errs, err)
		}
	}
	if err := r.shutdownTracing(ctx); err != nil {
		r.Logger.Error("tracer shutdown failed", "error", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
