package highlightly

import (
	stderrors "errors"
	"fmt"

	crerr "github.com/cockroachdb/errors"
)

var errHighlightlyTransient = crerr.New("highlightly transient failure")

// ErrorKind classifies a provider failure. Auth and forbidden failures are
// terminal; rate-limit and network failures are retried until the retry
// budget is spent, at which point the call surfaces as retry-exhausted.
type ErrorKind string

const (
	KindAuth           ErrorKind = "AUTH_ERROR"
	KindForbidden      ErrorKind = "FORBIDDEN"
	KindRateLimit      ErrorKind = "RATE_LIMIT"
	KindNetwork        ErrorKind = "NETWORK_ERROR"
	KindRetryExhausted ErrorKind = "RETRY_EXHAUSTED"
	KindDecode         ErrorKind = "DECODE_ERROR"
	KindUnknown        ErrorKind = "UNKNOWN"
)

type ProviderError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	cause      error
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("highlightly %s: %s", e.Kind, e.Message)
	}
	if e.cause != nil {
		return fmt.Sprintf("highlightly %s: %v", e.Kind, e.cause)
	}
	return fmt.Sprintf("highlightly %s", e.Kind)
}

func (e *ProviderError) Unwrap() error {
	return e.cause
}

func (e *ProviderError) Is(target error) bool {
	return target == errHighlightlyTransient && (e.Retryable() || e.Kind == KindRetryExhausted)
}

func (e *ProviderError) Retryable() bool {
	switch e.Kind {
	case KindRateLimit, KindNetwork, KindUnknown:
		return true
	default:
		return false
	}
}

// IsTransient reports whether err is a provider failure that callers may
// retry later, including a spent retry budget.
func IsTransient(err error) bool {
	return stderrors.Is(err, errHighlightlyTransient)
}

// KindOf extracts the error kind from any error produced by this package.
func KindOf(err error) ErrorKind {
	var pe *ProviderError
	if stderrors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

func classifyStatus(code int) ErrorKind {
	switch {
	case code == 401:
		return KindAuth
	case code == 403:
		return KindForbidden
	case code == 429:
		return KindRateLimit
	case code >= 500:
		return KindNetwork
	default:
		return KindUnknown
	}
}
