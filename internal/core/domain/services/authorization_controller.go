package services

import (
	"context"
	"log/slog"
	"sync"

	"tracking/internal/core/domain/model/authorization"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"
)

// ErrLocationProviderIsRequired is returned when a controller is created
// without a location provider.
var ErrLocationProviderIsRequired = errs.NewValueIsRequiredError("location provider")

// LocationAuthorizationController tracks the user's consent to supply
// location and drives the one side effect the consent machine has: a single
// location refresh on each transition into Authorized.
//
// The controller never changes state on its own. RequestAuthorization only
// pokes the external permission surface; the answer arrives asynchronously
// through OnAuthorizationChanged, which is also how settings changes made
// outside the app show up.
//
// The controller is the sole writer of its status; readers get value
// snapshots. Safe for concurrent use.
type LocationAuthorizationController struct {
	provider ports.LocationProvider
	logger   *slog.Logger

	mu     sync.Mutex
	status authorization.Status
}

// NewLocationAuthorizationController creates a controller starting in
// NotDetermined.
func NewLocationAuthorizationController(
	provider ports.LocationProvider,
	logger *slog.Logger,
) (*LocationAuthorizationController, error) {
	if provider == nil {
		return nil, ErrLocationProviderIsRequired
	}

	return &LocationAuthorizationController{
		provider: provider,
		logger:   logger.With("component", "authorization_controller"),
		status:   authorization.NotDetermined,
	}, nil
}

// Status returns the current authorization state snapshot.
func (c *LocationAuthorizationController) Status() authorization.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// RequestAuthorization prompts the external permission surface. The call has
// no effect on the tracked state; a status change, if any, arrives later via
// OnAuthorizationChanged.
func (c *LocationAuthorizationController) RequestAuthorization(ctx context.Context) error {
	return c.provider.RequestAuthorization(ctx)
}

// OnAuthorizationChanged is the provider's status callback. It maps the
// provider vocabulary onto the four-value enum (unknown values degrade to
// NotDetermined) and, on a transition into Authorized, requests exactly one
// location refresh. Transitions into Denied or Restricted request nothing.
//
// A refresh failure is logged and swallowed: permission state is already
// correct at that point, and location errors degrade to "no fix" rather than
// propagate.
func (c *LocationAuthorizationController) OnAuthorizationChanged(
	ctx context.Context,
	providerStatus authorization.ProviderStatus,
) {
	newStatus := authorization.StatusFromProvider(providerStatus)

	c.mu.Lock()
	oldStatus := c.status
	c.status = newStatus
	c.mu.Unlock()

	if oldStatus == newStatus {
		return
	}

	c.logger.InfoContext(ctx, "Authorization status changed",
		"from", oldStatus.String(), "to", newStatus.String())

	if newStatus.CanRequestLocation() {
		if err := c.provider.RequestLocation(ctx); err != nil {
			c.logger.ErrorContext(ctx, "Location refresh after authorization failed", "error", err)
		}
	}
}
