// Package geofence defines the service-area model: named circular regions
// within which delivery is offered, plus the configuration loader that reads
// the fixed area list at startup. Containment over the whole list lives in
// the GeofenceEngine domain service.
package geofence
