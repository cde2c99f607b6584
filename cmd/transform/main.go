// Command transform converts the stored raw forecast into the processed CSV
// table.
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
	rt, err := app.Bootstrap("weather_etl_transform")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	defer func() { _ = rt.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := rt.TransformService().TransformAndSave(ctx)
	if err != nil {
		rt.Logger.Error("transform not scheduled", "error", err)
		fmt.Printf("❌ Transformation not started: %v\n", err)
		return 1
	}

	fmt.Println(app.TransformMessage(res, rt.ProcessedRepository().Path()))
	if !res.OK() {
		return 1
	}
	return 0
}
