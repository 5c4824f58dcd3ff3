package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"tracking/cmd"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

func main() {
	// A .env file is a convenience for local runs; the environment alone is
	// enough in any deployed setting.
	_ = godotenv.Load(".env")

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs := getConfigs()

	app, err := cmd.NewCompositionRoot(configs, logger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	ctx := context.Background()

	// Kick off the consent flow. The simulated user grants, which triggers
	// the first location fix and with it coverage and locality resolution.
	if err := app.AuthorizationController().RequestAuthorization(ctx); err != nil {
		logger.ErrorContext(ctx, "Authorization request failed", "error", err)
	}

	if err := app.JobManager().StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	go handleShutdown(app, logger)

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:             envOrDefault("HTTP_PORT", "8080"),
		ServiceAreasPath:     envOrDefault("SERVICE_AREAS_PATH", "configs/service_areas.yaml"),
		GeocoderBaseURL:      envOrDefault("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeocoderUserAgent:    envOrDefault("GEOCODER_USER_AGENT", "tracking/1.0"),
		StartStep:            envIntOrDefault("START_STEP", 0),
		ActorLatitude:        envFloatOrDefault("ACTOR_LAT", 37.7700),
		ActorLongitude:       envFloatOrDefault("ACTOR_LON", -122.4300),
		DestinationLatitude:  envFloatOrDefault("DESTINATION_LAT", 37.7849),
		DestinationLongitude: envFloatOrDefault("DESTINATION_LON", -122.4094),
		ProviderLatitude:     envFloatOrDefault("PROVIDER_LAT", 37.7749),
		ProviderLongitude:    envFloatOrDefault("PROVIDER_LON", -122.4194),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envFloatOrDefault(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func handleShutdown(app *cmd.CompositionRoot, logger *slog.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	app.JobManager().StopAll()
	os.Exit(0)
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	app.HTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
