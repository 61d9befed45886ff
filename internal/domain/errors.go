package domain

import "fmt"

// ErrorKind classifies resolution failures.
type ErrorKind string

const (
	// KindInvalidInput marks bad caller input. Never retried.
	KindInvalidInput ErrorKind = "invalid_input"
	// KindProviderNotConfigured marks a missing provider credential.
	// A deployment defect, surfaced immediately.
	KindProviderNotConfigured ErrorKind = "provider_not_configured"
	// KindNotFound marks an address with no provider match. A legitimate,
	// expected outcome rather than a system fault.
	KindNotFound ErrorKind = "not_found"
	// KindProviderError marks a transient network or provider fault.
	// A candidate for caller-level retry; never retried here.
	KindProviderError ErrorKind = "provider_error"
	// KindValidation marks a whole-batch rejection before any work starts.
	KindValidation ErrorKind = "validation"
)

// ResolveError describes why an address (or a whole batch) could not be
// resolved. The message is safe to surface to users as-is.
type ResolveError struct {
	Kind    ErrorKind
	Address string
	Message string
	Err     error
}

func (e *ResolveError) Error() string { return e.Message }

func (e *ResolveError) Unwrap() error { return e.Err }

// ErrInvalidInput reports an empty or whitespace-only address.
func ErrInvalidInput(address string) *ResolveError {
	return &ResolveError{
		Kind:    KindInvalidInput,
		Address: address,
		Message: "address must be a non-empty string",
	}
}

// ErrProviderNotConfigured reports a resolution attempted without a
// configured geocoding provider.
func ErrProviderNotConfigured(address string) *ResolveError {
	return &ResolveError{
		Kind:    KindProviderNotConfigured,
		Address: address,
		Message: "geocoding provider is not configured",
	}
}

// ErrNotFound reports an address the provider returned no matches for.
func ErrNotFound(address string) *ResolveError {
	return &ResolveError{
		Kind:    KindNotFound,
		Address: address,
		Message: fmt.Sprintf("no results found for %q", address),
	}
}

// ErrProvider wraps a provider or transport failure for one address.
func ErrProvider(address string, err error) *ResolveError {
	return &ResolveError{
		Kind:    KindProviderError,
		Address: address,
		Message: fmt.Sprintf("geocoding %q failed: %v", address, err),
		Err:     err,
	}
}

// ErrBatchValidation rejects a whole batch before any work starts.
func ErrBatchValidation(message string) *ResolveError {
	return &ResolveError{
		Kind:    KindValidation,
		Message: message,
	}
}
