// Command weather prints the current temperature, condition emoji and
// description for a city.
//
//	weather [-json] <city name>
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"weatherapp/internal/config"
	"weatherapp/internal/logging"
	"weatherapp/internal/model"
	"weatherapp/internal/service"
	"weatherapp/internal/weather"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, time.Local)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	os.Exit(run(context.Background(), cfg, logger, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("weather", flag.ContinueOnError)
	fs.SetOutput(stderr)
	asJSON := fs.Bool("json", false, "print the labels as JSON")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: weather [-json] <city name>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	city := strings.Join(fs.Args(), " ")

	provider, err := weather.NewOpenWeather(cfg.Weather)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	svc, err := service.NewWeatherService(provider, logger, prometheus.NewRegistry())
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	report, err := svc.Lookup(ctx, city)
	display := service.Present(report, err)
	if perr := printDisplay(stdout, display, *asJSON); perr != nil {
		fmt.Fprintln(stderr, perr)
		return 1
	}
	if err != nil {
		return 1
	}
	return 0
}

func printDisplay(w io.Writer, d model.Display, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}
	for _, line := range []string{d.Temperature, d.Emoji, d.Description} {
		if line == "" {
			continue
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
