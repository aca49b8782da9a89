package deploy

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// Kind classifies a deployment failure. Kinds decide retry behavior: some
// are retried locally with a bounded backoff, the rest abort immediately.
type Kind string

const (
	// KindConfig is missing or invalid input. Local, non-retryable.
	KindConfig Kind = "ConfigError"
	// KindPermission is an authorization failure. Non-retryable, user-actionable.
	KindPermission Kind = "PermissionError"
	// KindAlreadyExists is a duplicate-create rejection from the provider.
	// Surfaced, never swallowed.
	KindAlreadyExists Kind = "AlreadyExistsError"
	// KindDependency is a downstream reference that is not yet consistent.
	// Retryable a bounded number of times.
	KindDependency Kind = "DependencyError"
	// KindRemoteService is a generic provider failure. Retryable with
	// backoff up to a cap, then surfaced.
	KindRemoteService Kind = "RemoteServiceError"
	// KindPolling is a transient status-observation failure.
	KindPolling Kind = "PollingError"
	// KindDeploymentFailed is an authoritative terminal failure reported by
	// the provider. Non-retryable.
	KindDeploymentFailed Kind = "DeploymentFailed"
	// KindTimeout is a locally enforced deadline exceeded while polling.
	// Non-retryable and distinct from KindDeploymentFailed.
	KindTimeout Kind = "TimeoutError"
)

// Retryable reports whether failures of this kind may be retried locally.
func (k Kind) Retryable() bool {
	switch k {
	case KindDependency, KindRemoteService, KindPolling:
		return true
	default:
		return false
	}
}

// Error attaches the originating stage and a failure kind to an underlying
// cause, so callers can decide on cleanup without parsing messages.
type Error struct {
	Stage string
	Kind  Kind
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Stage, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err with its originating stage and kind.
func NewError(stage string, kind Kind, err error) *Error {
	return &Error{Stage: stage, Kind: kind, Err: err}
}

// AsError extracts a deployment *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	ok := errors.As(err, &de)
	return de, ok
}

// accessDeniedCodes are the provider error codes treated as authorization
// failures across all services.
var accessDeniedCodes = map[string]bool{
	"AccessDenied":          true,
	"AccessDeniedException": true,
	"UnauthorizedOperation": true,
}

// isAccessDenied reports whether the provider rejected the call for lack of
// permissions.
func isAccessDenied(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return accessDeniedCodes[apiErr.ErrorCode()]
	}
	return false
}
