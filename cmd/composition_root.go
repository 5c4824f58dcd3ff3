package cmd

import (
	"context"
	"fmt"
	"log/slog"

	trackinghttp "tracking/internal/adapters/in/http"
	"tracking/internal/adapters/out/nominatim"
	"tracking/internal/adapters/out/simlocation"
	"tracking/internal/core/domain/model/geofence"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/progress"
	"tracking/internal/core/domain/services"
	"tracking/internal/jobs"
)

// CompositionRoot wires the tracking core together: service areas feed the
// geofence engine, the Nominatim client feeds the geocode manager, the
// simulated provider feeds the authorization controller and the location
// monitor, and the tick jobs drive the progress engine.
//
// All components are singletons created once at construction.
type CompositionRoot struct {
	logger *slog.Logger

	geofenceEngine   services.GeofenceEngine
	geocodeManager   *services.GeocodeRequestManager
	authController   *services.LocationAuthorizationController
	locationMonitor  *services.LocationMonitor
	progressEngine   *services.OrderProgressEngine
	locationProvider *simlocation.Provider

	jobManager *jobs.JobManager
	httpServer *trackinghttp.Server
}

// NewCompositionRoot builds the full object graph from config.
func NewCompositionRoot(config Config, logger *slog.Logger) (*CompositionRoot, error) {
	areas, err := geofence.LoadServiceAreas(config.ServiceAreasPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load service areas: %w", err)
	}

	geofenceEngine, err := services.NewGeofenceEngine(areas)
	if err != nil {
		return nil, fmt.Errorf("failed to create geofence engine: %w", err)
	}

	geocoder := nominatim.NewClient(config.GeocoderBaseURL, config.GeocoderUserAgent)
	geocodeManager, err := services.NewGeocodeRequestManager(geocoder, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create geocode manager: %w", err)
	}

	locationMonitor, err := services.NewLocationMonitor(geofenceEngine, geocodeManager, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create location monitor: %w", err)
	}

	providerPosition, err := kernel.NewGeoPoint(config.ProviderLatitude, config.ProviderLongitude)
	if err != nil {
		return nil, fmt.Errorf("invalid provider position: %w", err)
	}
	locationProvider, err := simlocation.NewProvider(providerPosition)
	if err != nil {
		return nil, fmt.Errorf("failed to create location provider: %w", err)
	}

	authController, err := services.NewLocationAuthorizationController(locationProvider, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create authorization controller: %w", err)
	}

	// Close the callback loop: provider outcomes flow back into the
	// controller and the monitor.
	locationProvider.SetAuthorizationHandler(authController.OnAuthorizationChanged)
	locationProvider.SetLocationHandler(func(ctx context.Context, sample kernel.LocationSample) {
		if updateErr := locationMonitor.OnLocationUpdate(ctx, sample); updateErr != nil {
			logger.ErrorContext(ctx, "Location update failed", "error", updateErr)
		}
	})

	actor, err := kernel.NewGeoPoint(config.ActorLatitude, config.ActorLongitude)
	if err != nil {
		return nil, fmt.Errorf("invalid actor position: %w", err)
	}
	destination, err := kernel.NewGeoPoint(config.DestinationLatitude, config.DestinationLongitude)
	if err != nil {
		return nil, fmt.Errorf("invalid destination position: %w", err)
	}

	state, err := progress.NewProgress(progress.Step(config.StartStep), actor, destination)
	if err != nil {
		return nil, fmt.Errorf("failed to create progress: %w", err)
	}

	progressEngine, err := services.NewOrderProgressEngine(state, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create progress engine: %w", err)
	}

	root := &CompositionRoot{
		logger:           logger,
		geofenceEngine:   geofenceEngine,
		geocodeManager:   geocodeManager,
		authController:   authController,
		locationMonitor:  locationMonitor,
		progressEngine:   progressEngine,
		locationProvider: locationProvider,
		jobManager:       jobs.NewJobManager(progressEngine, logger),
		httpServer: trackinghttp.NewServer(
			progressEngine,
			authController,
			geocodeManager,
			locationMonitor,
			geofenceEngine,
		),
	}

	return root, nil
}

// AuthorizationController returns the location authorization controller.
func (c *CompositionRoot) AuthorizationController() *services.LocationAuthorizationController {
	return c.authController
}

// JobManager returns the tick job manager.
func (c *CompositionRoot) JobManager() *jobs.JobManager {
	return c.jobManager
}

// HTTPServer returns the HTTP surface.
func (c *CompositionRoot) HTTPServer() *trackinghttp.Server {
	return c.httpServer
}
