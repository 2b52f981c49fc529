package source

import (
	"errors"
	"fmt"
)

// ErrUnsupportedSource is the only error the aggregation core surfaces
// to its callers; everything else degrades to fallback data inside the
// adapters.
var ErrUnsupportedSource = errors.New("source: unsupported source id")

// TransportError classifies connection and timeout failures, including
// unexpected HTTP status codes.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "transport error: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// FormatError classifies payloads that decode but have an unexpected
// shape.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string { return "upstream format error: " + e.Err.Error() }
func (e *FormatError) Unwrap() error { return e.Err }

// UpstreamError classifies an explicit failure flag carried in an
// otherwise successful HTTP response.
type UpstreamError struct {
	Reason string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream failure flag: %s", e.Reason)
}

// AuthError classifies a rejected credential exchange.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string { return "auth error: " + e.Err.Error() }
func (e *AuthError) Unwrap() error { return e.Err }

// ConfigError classifies an absent required credential. Adapters that
// hit it skip the network entirely.
type ConfigError struct {
	Missing string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config missing: %s", e.Missing)
}

// Classify names the taxonomy bucket of err, for degradation logs.
func Classify(err error) string {
	var (
		transport *TransportError
		format    *FormatError
		upstream  *UpstreamError
		auth      *AuthError
		config    *ConfigError
	)
	switch {
	case errors.As(err, &config):
		return "config_missing"
	case errors.As(err, &auth):
		return "auth"
	case errors.As(err, &upstream):
		return "upstream_failure_flag"
	case errors.As(err, &format):
		return "upstream_format"
	case errors.As(err, &transport):
		return "transport"
	default:
		return "unclassified"
	}
}
