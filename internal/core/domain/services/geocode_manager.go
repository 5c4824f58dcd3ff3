package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"
)

// ErrGeocoderIsRequired is returned when a manager is created without a
// geocoder.
var ErrGeocoderIsRequired = errs.NewValueIsRequiredError("geocoder")

// GeocodeResult is the published outcome of reverse geocoding. Callers only
// ever see "has a locality" or "does not"; failure and cancellation are
// indistinguishable from outside by design.
type GeocodeResult struct {
	Locality string
	Known    bool
}

// GeocodeRequestManager wraps a single reverse-geocoding capability with
// cancel-on-supersede semantics: at most one request is logically current,
// a newer Resolve cancels the older request before it can publish, and a
// superseded request's result is discarded unconditionally even if it still
// arrives.
//
// Publication policy on failure or cancellation: the previously published
// locality stays in place (stale-but-present); absence is published only when
// a request succeeds without any usable name, or when there was never a
// value.
//
// Safe for concurrent use. The manager is the sole writer of its published
// result.
type GeocodeRequestManager struct {
	geocoder ports.Geocoder
	timeout  time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	activeID uuid.UUID
	cancel   context.CancelFunc
	result   GeocodeResult
}

// GeocodeManagerOption configures a GeocodeRequestManager.
type GeocodeManagerOption func(*GeocodeRequestManager)

// WithGeocodeTimeout bounds each reverse-geocode request. The reference
// behavior has no timeout; a zero duration keeps it that way.
func WithGeocodeTimeout(timeout time.Duration) GeocodeManagerOption {
	return func(m *GeocodeRequestManager) {
		m.timeout = timeout
	}
}

// NewGeocodeRequestManager creates a manager around the given geocoder.
func NewGeocodeRequestManager(
	geocoder ports.Geocoder,
	logger *slog.Logger,
	opts ...GeocodeManagerOption,
) (*GeocodeRequestManager, error) {
	if geocoder == nil {
		return nil, ErrGeocoderIsRequired
	}

	manager := &GeocodeRequestManager{
		geocoder: geocoder,
		logger:   logger.With("component", "geocode_manager"),
	}

	for _, opt := range opts {
		opt(manager)
	}

	return manager, nil
}

// Result returns the currently published geocode outcome.
func (m *GeocodeRequestManager) Result() GeocodeResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.result
}

// Resolve starts reverse geocoding for point. Any request still in flight is
// cancelled first (best effort, without waiting for it to finish); its
// eventual result, if it arrives anyway, is dropped before publication.
//
// The call returns once the new request is dispatched; the outcome is
// published asynchronously and read via Result.
func (m *GeocodeRequestManager) Resolve(ctx context.Context, point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}

	requestCtx, cancel := m.newRequestContext(ctx)
	requestID := uuid.New()

	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
	}
	m.activeID = requestID
	m.cancel = cancel
	m.mu.Unlock()

	go m.run(requestCtx, requestID, point)
	return nil
}

// CancelPending cancels any in-flight request without issuing a new one.
// The published result is left untouched.
func (m *GeocodeRequestManager) CancelPending() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.activeID = uuid.Nil
}

func (m *GeocodeRequestManager) newRequestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.timeout > 0 {
		return context.WithTimeout(ctx, m.timeout)
	}
	return context.WithCancel(ctx)
}

// run performs one reverse-geocode request and publishes its outcome if, and
// only if, the request is still the active one.
func (m *GeocodeRequestManager) run(ctx context.Context, requestID uuid.UUID, point kernel.GeoPoint) {
	placemark, err := m.geocoder.ReverseGeocode(ctx, point)

	m.mu.Lock()
	defer m.mu.Unlock()

	// Identity check before publishing: a superseded request must never be
	// observable, no matter when its result arrives.
	if m.activeID != requestID {
		return
	}
	m.activeID = uuid.Nil
	m.cancel = nil

	if err != nil {
		// Failure and cancellation look identical from outside: keep the
		// previously published value in place, or stay absent.
		m.logger.DebugContext(ctx, "Reverse geocoding did not complete", "error", err)
		return
	}

	locality := placemark.Locality
	if locality == "" {
		locality = placemark.AdministrativeArea
	}

	if locality == "" {
		m.result = GeocodeResult{}
		return
	}

	m.result = GeocodeResult{Locality: locality, Known: true}
}
