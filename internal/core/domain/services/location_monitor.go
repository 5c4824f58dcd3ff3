package services

import (
	"context"
	"log/slog"
	"sync"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
)

// Errors returned when a monitor is created without its collaborators.
var (
	ErrGeofenceEngineIsRequired = errs.NewValueIsRequiredError("geofence engine")
	ErrGeocodeManagerIsRequired = errs.NewValueIsRequiredError("geocode manager")
)

// LocationSnapshot is the monitor's published view of the latest position fix.
type LocationSnapshot struct {
	HasFix        bool
	Sample        kernel.LocationSample
	InServiceArea bool
}

// LocationMonitor consumes position fixes from the location provider's
// callback and fans each one out: the point is classified against the service
// areas and handed to the geocode manager for locality resolution.
//
// The monitor keeps only the latest fix; there is no history. Safe for
// concurrent use.
type LocationMonitor struct {
	geofence GeofenceEngine
	geocoder *GeocodeRequestManager
	logger   *slog.Logger

	mu       sync.Mutex
	snapshot LocationSnapshot
}

// NewLocationMonitor creates a monitor with no fix yet.
func NewLocationMonitor(
	geofence GeofenceEngine,
	geocoder *GeocodeRequestManager,
	logger *slog.Logger,
) (*LocationMonitor, error) {
	if len(geofence.Areas()) == 0 {
		return nil, ErrGeofenceEngineIsRequired
	}
	if geocoder == nil {
		return nil, ErrGeocodeManagerIsRequired
	}

	return &LocationMonitor{
		geofence: geofence,
		geocoder: geocoder,
		logger:   logger.With("component", "location_monitor"),
	}, nil
}

// Snapshot returns the latest published fix view.
func (m *LocationMonitor) Snapshot() LocationSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot
}

// OnLocationUpdate is the provider's location callback. The sample replaces
// the previous fix, is classified against the service areas, and starts
// locality resolution (superseding any resolution still in flight).
func (m *LocationMonitor) OnLocationUpdate(ctx context.Context, sample kernel.LocationSample) error {
	if err := sample.Validate(); err != nil {
		return err
	}

	point := sample.Point()
	covered := m.geofence.IsCovered(point)

	m.mu.Lock()
	m.snapshot = LocationSnapshot{
		HasFix:        true,
		Sample:        sample,
		InServiceArea: covered,
	}
	m.mu.Unlock()

	m.logger.InfoContext(ctx, "Location updated",
		"point", point.String(), "inServiceArea", covered)

	return m.geocoder.Resolve(ctx, point)
}
