package cmd

// Config carries the runtime settings of the tracking application.
// Values are read from the environment (optionally seeded from a .env file)
// with sensible defaults for local runs.
type Config struct {
	HTTPPort         string
	ServiceAreasPath string

	GeocoderBaseURL   string
	GeocoderUserAgent string

	StartStep int

	ActorLatitude  float64
	ActorLongitude float64

	DestinationLatitude  float64
	DestinationLongitude float64

	ProviderLatitude  float64
	ProviderLongitude float64
}
