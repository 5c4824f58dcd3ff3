package authorization

import (
	"fmt"

	"tracking/internal/pkg/errs"
)

// Status represents the user's consent to supply location data.
// Exactly one value is live for the session; it is mutated only by the
// external provider's callback, never by the app itself.
//
// State transitions:
//
//	NotDetermined ──┬──> Authorized
//	                ├──> Denied
//	                └──> Restricted
//
// Denied and Restricted are not user-recoverable from inside the app; leaving
// them requires an external system-settings action, which arrives here as a
// fresh provider callback, not as a transition this model performs.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// NotDetermined is the initial status before the user has answered the
	// permission prompt. Unknown provider vocabulary also maps here, failing
	// open to the safest state.
	NotDetermined

	// Denied indicates the user declined to share location.
	Denied

	// Restricted indicates a policy outside the user's control blocks
	// location access.
	Restricted

	// Authorized indicates location may be requested. Terminal success.
	Authorized
)

// ProviderStatus is the raw authorization vocabulary of the external location
// provider. It is deliberately open-ended: providers evolve, and values this
// model has never seen must degrade safely rather than error.
type ProviderStatus string

// Known provider status values.
const (
	ProviderNotDetermined ProviderStatus = "notDetermined"
	ProviderDenied        ProviderStatus = "denied"
	ProviderRestricted    ProviderStatus = "restricted"
	ProviderAuthorized    ProviderStatus = "authorized"
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:       "Unknown",
		NotDetermined: "NotDetermined",
		Denied:        "Denied",
		Restricted:    "Restricted",
		Authorized:    "Authorized",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		NotDetermined: "NotDetermined",
		Denied:        "Denied",
		Restricted:    "Restricted",
		Authorized:    "Authorized",
	}
}

// StatusFromProvider maps the provider's status vocabulary onto the four-value
// enum. Unknown or future provider values map to NotDetermined rather than
// erroring, so an unrecognized status can never lock the app out of asking.
func StatusFromProvider(provider ProviderStatus) Status {
	switch provider {
	case ProviderAuthorized:
		return Authorized
	case ProviderDenied:
		return Denied
	case ProviderRestricted:
		return Restricted
	case ProviderNotDetermined:
		return NotDetermined
	default:
		return NotDetermined
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: NotDetermined, Denied, Restricted, Authorized.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Returns "Unknown" for invalid status values. Implements fmt.Stringer and is
// safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// CanRequestLocation reports whether location fixes may be requested under
// this status. Only Authorized permits location requests.
func (s Status) CanRequestLocation() bool {
	return s == Authorized
}

// IsUserRecoverable reports whether the user can still grant authorization
// from inside the app. Denied and Restricted require leaving to a system
// settings surface; NotDetermined can still be prompted.
func (s Status) IsUserRecoverable() bool {
	return s == NotDetermined
}
