package callback

import (
	"errors"
	"fmt"
)

// ErrMissingCode is returned when Twitch redirects back to us without a 'code'
var ErrMissingCode = errors.New("Missing authorization code")

// UpstreamError is returned when Twitch reports an error (e.g. 'access_denied' if the
// user declined to authorize our app)
type UpstreamError struct {
	Reason string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Authorization error: %s", e.Reason)
}

// InvalidEndpointError is returned for requests to any path other than the Twitch
// callback path
type InvalidEndpointError struct {
	Path string
}

func (e *InvalidEndpointError) Error() string {
	return fmt.Sprintf("Invalid callback endpoint: %s", e.Path)
}

// validateCallback checks the parameters of an incoming redirect, in order of
// precedence: an upstream error takes priority over a missing code, which takes
// priority over an unrecognized path
func validateCallback(path, upstreamError, code string) error {
	if upstreamError != "" {
		return &UpstreamError{Reason: upstreamError}
	}
	if code == "" {
		return ErrMissingCode
	}
	if path != CallbackPath {
		return &InvalidEndpointError{Path: path}
	}
	return nil
}
