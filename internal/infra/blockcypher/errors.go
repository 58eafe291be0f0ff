package blockcypher

import (
	"errors"
	"fmt"
	"net/http"
)

// Provider failures are surfaced as typed errors so callers can react
// (retry, surface to the user) instead of guessing from strings. This is
// the opposite contract from the webhook reconciler, which must absorb.
var (
	// ErrNotFound: the requested resource does not exist on the provider.
	ErrNotFound = errors.New("blockcypher: resource not found")

	// ErrRateLimited: the provider throttled the request.
	ErrRateLimited = errors.New("blockcypher: rate limited")

	// ErrInvalidRequest: the provider rejected the request as malformed.
	ErrInvalidRequest = errors.New("blockcypher: invalid request")

	// ErrProviderUnavailable: the provider failed or could not be reached.
	ErrProviderUnavailable = errors.New("blockcypher: provider unavailable")

	// ErrUnsupportedNetwork: the network symbol has no base URL mapping.
	ErrUnsupportedNetwork = errors.New("blockcypher: unsupported network")
)

// apiError is the error body the provider attaches to failed requests.
type apiError struct {
	Error string `json:"error"`
}

// classifyStatus maps an HTTP response status to the typed error taxonomy.
func classifyStatus(status int, detail string) error {
	var base error
	switch {
	case status == http.StatusNotFound:
		base = ErrNotFound
	case status == http.StatusTooManyRequests:
		base = ErrRateLimited
	case status >= 400 && status < 500:
		base = ErrInvalidRequest
	default:
		base = ErrProviderUnavailable
	}

	if detail == "" {
		return fmt.Errorf("%w (http %d)", base, status)
	}

	return fmt.Errorf("%w (http %d): %s", base, status, detail)
}
