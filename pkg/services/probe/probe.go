// Package probe defines the narrow contract between the assessment
// engine and the cloud API calls that gather evidence. The engine only
// sees the shape defined here, never raw provider output.
package probe

import (
	"context"
	"errors"

	"github.com/aws/smithy-go"
)

// ErrorCategory is the failure hint carried by a probe result.
type ErrorCategory int

const (
	ErrorNone ErrorCategory = iota
	// ErrorAuthorization marks an IAM-style denial: the call itself was
	// rejected, so the run is structurally unable to perform the check.
	ErrorAuthorization
	ErrorOther
)

// Result is the outcome of a single probe invocation.
type Result struct {
	OK       bool
	Category ErrorCategory
	// Err holds the raw failure for operator follow-up. Never parsed.
	Err error
	// Payload is the provider response, opaque to the engine. Only the
	// check's own evidence extractor looks inside.
	Payload any
}

// Func is one blocking probe invocation. Implementations must return
// rather than panic on provider failure.
type Func func(ctx context.Context) Result

// Succeeded wraps a provider response in a successful result.
func Succeeded(payload any) Result {
	return Result{OK: true, Payload: payload}
}

// Failed categorizes err and wraps it in a failed result.
func Failed(err error) Result {
	return Result{OK: false, Category: Categorize(err), Err: err}
}

// deniedCodes are the API error codes AWS services use for
// authorization failures.
var deniedCodes = map[string]struct{}{
	"AccessDenied":          {},
	"AccessDeniedException": {},
	"AuthorizationError":    {},
	"UnauthorizedOperation": {},
	"UnauthorizedAccess":    {},
	"Forbidden":             {},
}

// Categorize maps a provider error to an ErrorCategory.
func Categorize(err error) ErrorCategory {
	if err == nil {
		return ErrorNone
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if _, ok := deniedCodes[apiErr.ErrorCode()]; ok {
			return ErrorAuthorization
		}
	}
	return ErrorOther
}
