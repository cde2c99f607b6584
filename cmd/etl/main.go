// Command etl runs the fetch stage and, when it succeeds, the transform stage
// in one process.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/weather-data-etl/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	rt, err := app.Bootstrap("weather_etl")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	defer func() { _ = rt.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fetched := rt.FetchService().FetchAndSave(ctx, rt.Location())
	fmt.Println(app.FetchMessage(fetched))
	if !fetched.OK() {
		rt.Logger.Info("skipping transform after failed fetch")
		return 1
	}

	transformed, err := rt.TransformService().TransformAndSave(ctx)
	if err != nil {
		rt.Logger.Error("transform not scheduled", "error", err)
		fmt.Printf("❌ Transformation not started: %v\n", err)
		return 1
	}
	fmt.Println(app.TransformMessage(transformed, rt.ProcessedRepository().Path()))
	if !transformed.OK() {
		return 1
	}

	rt.Logger.Info("pipeline complete",
		"raw", rt.RawRepository().Path(),
		"processed", rt.ProcessedRepository().Path(),
		"rows", transformed.Rows,
		"duration", fetched.Duration+transformed.Duration,
	)
	return 0
}
