package services

import (
	"tracking/internal/core/domain/model/geofence"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
)

// ErrNoServiceAreas is returned when a GeofenceEngine is created without any
// configured service areas.
var ErrNoServiceAreas = errs.NewValueIsRequiredError("service areas")

// GeofenceEngine is a domain service answering point-in-service-area
// containment over the fixed, configured area list.
//
// Semantics:
//   - union over all areas, no precedence between overlapping areas
//   - first match short-circuits
//   - area boundaries are inclusive (distance equal to radius is covered)
//
// The engine is stateless beyond the immutable area list and safe for
// concurrent use.
type GeofenceEngine struct {
	areas []geofence.ServiceArea
}

// NewGeofenceEngine creates a GeofenceEngine over the given areas.
// Every area must be properly constructed; the list must be non-empty.
func NewGeofenceEngine(areas []geofence.ServiceArea) (GeofenceEngine, error) {
	if len(areas) == 0 {
		return GeofenceEngine{}, ErrNoServiceAreas
	}

	for _, area := range areas {
		if err := area.Validate(); err != nil {
			return GeofenceEngine{}, err
		}
	}

	owned := make([]geofence.ServiceArea, len(areas))
	copy(owned, areas)
	return GeofenceEngine{areas: owned}, nil
}

// IsCovered reports whether point lies within any configured service area.
// An unconstructed point is never covered; validity of meaningful input is
// the caller's responsibility.
func (e GeofenceEngine) IsCovered(point kernel.GeoPoint) bool {
	_, covered := e.CoveringArea(point)
	return covered
}

// CoveringArea returns the first configured area containing point, in
// configuration order, and whether any area contains it.
func (e GeofenceEngine) CoveringArea(point kernel.GeoPoint) (geofence.ServiceArea, bool) {
	for _, area := range e.areas {
		contained, err := area.Contains(point)
		if err != nil {
			return geofence.ServiceArea{}, false
		}
		if contained {
			return area, true
		}
	}

	return geofence.ServiceArea{}, false
}

// Areas returns a copy of the configured service areas.
func (e GeofenceEngine) Areas() []geofence.ServiceArea {
	out := make([]geofence.ServiceArea, len(e.areas))
	copy(out, e.areas)
	return out
}
