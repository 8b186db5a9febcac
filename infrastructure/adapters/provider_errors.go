package adapters

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ProviderError is an upstream failure remapped to a message that names the
// failing provider and the fault class, so stage responses stay readable
// without leaking raw provider payloads.
type ProviderError struct {
	Provider string
	Kind     ProviderErrorKind
	cause    error
}

type ProviderErrorKind string

const (
	ProviderErrorQuota     ProviderErrorKind = "quota"
	ProviderErrorAuth      ProviderErrorKind = "auth"
	ProviderErrorTransport ProviderErrorKind = "transport"
)

func (e *ProviderError) Error() string {
	switch e.Kind {
	case ProviderErrorQuota:
		return fmt.Sprintf("%s quota exceeded, check your plan and billing details", e.Provider)
	case ProviderErrorAuth:
		return fmt.Sprintf("%s rejected the configured API key", e.Provider)
	default:
		return fmt.Sprintf("%s request failed: %v", e.Provider, e.cause)
	}
}

func (e *ProviderError) Unwrap() error {
	return e.cause
}

// ClassifyProviderError inspects the shape of an upstream failure and wraps
// it. Quota and auth faults are recognized from the HTTP status or from the
// well-known markers providers embed in their error bodies; everything else
// is a transport fault.
func ClassifyProviderError(provider string, err error) *ProviderError {
	var httpErr *HTTPStatusError
	if errors.As(err, &httpErr) {
		switch {
		case httpErr.StatusCode == http.StatusTooManyRequests,
			strings.Contains(httpErr.Body, "insufficient_quota"),
			strings.Contains(httpErr.Body, "quota_exceeded"):
			return &ProviderError{Provider: provider, Kind: ProviderErrorQuota, cause: err}
		case httpErr.StatusCode == http.StatusUnauthorized,
			httpErr.StatusCode == http.StatusForbidden,
			strings.Contains(httpErr.Body, "invalid_api_key"):
			return &ProviderError{Provider: provider, Kind: ProviderErrorAuth, cause: err}
		}
	}
	return &ProviderError{Provider: provider, Kind: ProviderErrorTransport, cause: err}
}
