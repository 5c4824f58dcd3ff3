// Package simlocation implements the LocationProvider port with a simulated
// device: authorization prompts are always granted and location requests
// deliver a fixed configured coordinate. It stands in for a real positioning
// stack so the tracking core runs end to end without one.
package simlocation

import (
	"context"
	"sync"
	"time"

	"tracking/internal/core/domain/model/authorization"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"
)

// Handlers mirror the callback surface of a real positioning stack:
// outcomes are delivered through them, never as return values of the
// request calls.
type (
	AuthorizationHandler func(ctx context.Context, status authorization.ProviderStatus)
	LocationHandler      func(ctx context.Context, sample kernel.LocationSample)
)

// ErrNoLocationHandler is returned when a fix is requested before a location
// handler is registered.
var ErrNoLocationHandler = errs.NewValueIsRequiredError("location handler")

// Provider is a simulated location provider. It always grants authorization
// and answers every location request with the configured position, stamped at
// request time.
//
// Callbacks run synchronously on the caller's goroutine. Safe for concurrent
// use.
type Provider struct {
	mu            sync.Mutex
	position      kernel.GeoPoint
	clock         func() time.Time
	authorization AuthorizationHandler
	location      LocationHandler
}

var _ ports.LocationProvider = (*Provider)(nil)

// NewProvider creates a provider that reports the given position.
func NewProvider(position kernel.GeoPoint) (*Provider, error) {
	if err := position.Validate(); err != nil {
		return nil, err
	}

	return &Provider{
		position: position,
		clock:    time.Now,
	}, nil
}

// SetAuthorizationHandler registers the callback receiving authorization
// status changes.
func (p *Provider) SetAuthorizationHandler(handler AuthorizationHandler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.authorization = handler
}

// SetLocationHandler registers the callback receiving position fixes.
func (p *Provider) SetLocationHandler(handler LocationHandler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.location = handler
}

// SetPosition changes the position delivered by subsequent fixes.
func (p *Provider) SetPosition(position kernel.GeoPoint) error {
	if err := position.Validate(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.position = position
	return nil
}

// RequestAuthorization simulates the permission prompt. The simulated user
// always grants; the answer arrives through the authorization handler.
func (p *Provider) RequestAuthorization(ctx context.Context) error {
	p.mu.Lock()
	handler := p.authorization
	p.mu.Unlock()

	if handler != nil {
		handler(ctx, authorization.ProviderAuthorized)
	}
	return nil
}

// RequestLocation delivers the configured position through the location
// handler, stamped with the current time.
func (p *Provider) RequestLocation(ctx context.Context) error {
	p.mu.Lock()
	position := p.position
	handler := p.location
	now := p.clock()
	p.mu.Unlock()

	if handler == nil {
		return ErrNoLocationHandler
	}

	sample, err := kernel.NewLocationSample(position, now)
	if err != nil {
		return err
	}

	handler(ctx, sample)
	return nil
}
