// Package ports defines the interfaces through which the tracking core talks
// to its external collaborators: the location provider (permission surface
// and position fixes) and the reverse-geocoding capability. The core depends
// only on these interfaces; concrete adapters live under internal/adapters.
package ports
