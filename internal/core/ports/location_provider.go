package ports

import "context"

// LocationProvider is the external capability that owns the permission
// surface and the position fixes. Both operations are fire-and-forget: their
// outcomes arrive asynchronously through callbacks registered with the
// provider (an authorization-status change, a new location sample), never as
// return values here.
type LocationProvider interface {
	// RequestAuthorization prompts the external permission surface.
	// It does not change any tracked state itself; the answer is delivered
	// through the provider's authorization callback.
	RequestAuthorization(ctx context.Context) error

	// RequestLocation asks for a single position fix, delivered through the
	// provider's location callback.
	RequestLocation(ctx context.Context) error
}
