// Command fetch downloads the hourly forecast for the configured location and
// stores the raw JSON response.
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
	rt, err := app.Bootstrap("weather_etl_fetch")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	defer func() { _ = rt.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res := rt.FetchService().FetchAndSave(ctx, rt.Location())
	fmt.Println(app.FetchMessage(res))
	if !res.OK() {
		return 1
	}
	return 0
}
