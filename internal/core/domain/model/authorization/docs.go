// Package authorization models the user's location-consent state and the
// mapping from the external provider's status vocabulary onto it. The enum is
// deliberately closed; unrecognized provider values fail open to
// NotDetermined so the app can always prompt again.
package authorization
