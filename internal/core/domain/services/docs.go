// Package services contains the domain services of the tracking core:
// the geofence engine classifying fixes against service areas, the
// authorization controller running the consent state machine, the geocode
// request manager enforcing single-in-flight reverse geocoding, the progress
// engine driving the delivery pipeline off external ticks, and the location
// monitor fanning provider fixes out to the other services.
//
// Services are the concurrency boundary: each one serializes its own state
// and hands out value snapshots, so the model packages below stay
// single-writer.
package services
