package geofence

import (
	"errors"
	"fmt"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

// ErrServiceAreaIsNotConstructed is returned when attempting to use an
// improperly initialized ServiceArea.
var ErrServiceAreaIsNotConstructed = errs.NewValueIsRequiredError(
	"service area must be created via NewServiceArea constructor")

// ErrAreaNameIsRequired is returned when a service area is created without a name.
var ErrAreaNameIsRequired = errs.NewValueIsRequiredError("name")

// ServiceArea is a named circular geofence within which delivery is offered.
// It is an immutable value object loaded from configuration at startup and
// safely shared without locking.
type ServiceArea struct {
	name         string
	center       kernel.GeoPoint
	radiusMeters float64
	guard        guard.ConstructorGuard
}

// NewServiceArea creates a ServiceArea with the given name, center, and
// radius in meters.
//
// Parameters:
//   - name: human-readable area name (must be non-empty)
//   - center: center of the circular area (must be a valid coordinate)
//   - radiusMeters: area radius (must be positive)
//
// Returns:
//   - ServiceArea: a valid area instance
//   - error: validation error if any parameter is invalid
func NewServiceArea(name string, center kernel.GeoPoint, radiusMeters float64) (ServiceArea, error) {
	area := ServiceArea{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		area.setName(name),
		area.setCenter(center),
		area.setRadiusMeters(radiusMeters),
	); err != nil {
		return ServiceArea{}, err
	}

	return area, nil
}

// Validate checks if the ServiceArea was properly constructed.
func (a ServiceArea) Validate() error {
	return a.guard.Validate(ErrServiceAreaIsNotConstructed)
}

// Name returns the human-readable area name.
func (a ServiceArea) Name() string {
	return a.name
}

// Center returns the center coordinate of the area.
func (a ServiceArea) Center() kernel.GeoPoint {
	return a.center
}

// RadiusMeters returns the area radius in meters.
func (a ServiceArea) RadiusMeters() float64 {
	return a.radiusMeters
}

// String returns a human-readable representation of the area.
// Implements fmt.Stringer.
func (a ServiceArea) String() string {
	return fmt.Sprintf("ServiceArea(%s, %s, r=%.0fm)", a.name, a.center, a.radiusMeters)
}

// Contains reports whether point lies within the area. The boundary is
// inclusive: a point exactly one radius away from the center is covered.
func (a ServiceArea) Contains(point kernel.GeoPoint) (bool, error) {
	if err := a.Validate(); err != nil {
		return false, err
	}

	distance, err := a.center.DistanceMeters(point)
	if err != nil {
		return false, err
	}

	return distance <= a.radiusMeters, nil
}

func (a *ServiceArea) setName(name string) error {
	if name == "" {
		return ErrAreaNameIsRequired
	}

	a.name = name
	return nil
}

func (a *ServiceArea) setCenter(center kernel.GeoPoint) error {
	if err := center.Validate(); err != nil {
		return err
	}

	a.center = center
	return nil
}

func (a *ServiceArea) setRadiusMeters(radiusMeters float64) error {
	if radiusMeters <= 0 {
		return errs.NewValueIsRequiredError("radiusMeters")
	}

	a.radiusMeters = radiusMeters
	return nil
}
