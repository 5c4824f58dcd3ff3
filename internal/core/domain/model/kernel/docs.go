// Package kernel contains the shared value objects of the tracking domain.
//
// GeoPoint is a validated WGS-84 coordinate with great-circle distance and
// interpolation helpers; LocationSample pairs a coordinate with the time the
// fix was taken. Both are immutable, constructed only through their factory
// functions, and safe to share between goroutines.
package kernel
