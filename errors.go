package netsuite

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/tphakala/go-netsuite/internal/api"
)

// Sentinel errors for common failure modes.
var (
	ErrNoCredentials   = errors.New("netsuite: no credentials configured")
	ErrNoAccount       = errors.New("netsuite: no account configured")
	ErrSearchExhausted = errors.New("netsuite: paginated search already iterated")
)

// NetSuite status and fault codes mapped to typed errors.
var (
	authenticationCodes = []string{
		"INVALID_LOGIN",
		"INVALID_LOGIN_ATTEMPT",
		"INVALID_LOGIN_CREDENTIALS",
		"INVALID_ROLE",
		"INVALID_ACCOUNT",
		"ACCT_TEMP_UNAVAILABLE",
	}
	notFoundCodes = []string{
		"RCRD_DSNT_EXIST",
		"INVALID_KEY_OR_REF",
	}
	rateLimitCodes = []string{
		"WS_CONCUR_SESSION_DISALLWD",
		"WS_REQUEST_BLOCKED",
		"EXCEEDED_REQUEST_LIMIT",
	}
)

// RemoteCallError represents any failure reported by, or while talking to,
// the SuiteTalk service.
type RemoteCallError struct {
	Operation  string
	StatusCode int
	Code       string
	Message    string
	RequestID  string

	// Err is the underlying transport error, if any.
	Err error
}

func (e *RemoteCallError) Error() string {
	var b strings.Builder
	b.WriteString("netsuite: ")
	if e.Operation != "" {
		b.WriteString(e.Operation)
		b.WriteString(" failed: ")
	}
	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.RequestID != "" {
		fmt.Fprintf(&b, " (request_id=%s)", e.RequestID)
	}
	return b.String()
}

// Unwrap returns the underlying transport error.
func (e *RemoteCallError) Unwrap() error {
	return e.Err
}

// AuthenticationError indicates rejected credentials (HTTP 401/403 or a login fault).
type AuthenticationError struct {
	RemoteCallError
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("netsuite: authentication failed: %s", e.Message)
}

// As implements error unwrapping for errors.As to match *RemoteCallError.
func (e *AuthenticationError) As(target any) bool {
	if t, ok := target.(**RemoteCallError); ok {
		*t = &e.RemoteCallError
		return true
	}
	return false
}

// NotFoundError indicates the service reported no matching record.
type NotFoundError struct {
	RemoteCallError
	RecordType string
	InternalID string
	ExternalID string
}

func (e *NotFoundError) Error() string {
	switch {
	case e.RecordType != "" && e.InternalID != "":
		return fmt.Sprintf("netsuite: %s not found: internalId=%s", e.RecordType, e.InternalID)
	case e.RecordType != "" && e.ExternalID != "":
		return fmt.Sprintf("netsuite: %s not found: externalId=%s", e.RecordType, e.ExternalID)
	default:
		return fmt.Sprintf("netsuite: record not found: %s", e.Message)
	}
}

// As implements error unwrapping for errors.As to match *RemoteCallError.
func (e *NotFoundError) As(target any) bool {
	if t, ok := target.(**RemoteCallError); ok {
		*t = &e.RemoteCallError
		return true
	}
	return false
}

// RateLimitError indicates the account's concurrency or request limit was hit.
type RateLimitError struct {
	RemoteCallError
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("netsuite: rate limit exceeded, retry after %s", e.RetryAfter)
	}
	return "netsuite: rate limit exceeded"
}

// As implements error unwrapping for errors.As to match *RemoteCallError.
func (e *RateLimitError) As(target any) bool {
	if t, ok := target.(**RemoteCallError); ok {
		*t = &e.RemoteCallError
		return true
	}
	return false
}

// ValidationError indicates invalid arguments detected before any remote call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("netsuite: validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("netsuite: validation error: %s", e.Message)
}

// InvalidPageError indicates a page index outside [1, TotalPages].
type InvalidPageError struct {
	Page       int
	TotalPages int
}

func (e *InvalidPageError) Error() string {
	return fmt.Sprintf("netsuite: page %d out of range [1, %d]", e.Page, e.TotalPages)
}

// UnimplementedOperationError indicates an operation the SDK does not support
// for a record type.
type UnimplementedOperationError struct {
	Operation  string
	RecordType string
}

func (e *UnimplementedOperationError) Error() string {
	return fmt.Sprintf("netsuite: %s not implemented for %s", e.Operation, e.RecordType)
}

// transportError wraps a transport failure as a RemoteCallError.
func transportError(op string, err error) error {
	return &RemoteCallError{
		Operation: op,
		Message:   err.Error(),
		Err:       err,
	}
}

// parseFault converts a fault or HTTP error response into the appropriate error type.
func parseFault(op string, resp *api.Response) error {
	base := RemoteCallError{
		Operation:  op,
		StatusCode: resp.StatusCode,
		RequestID:  resp.RequestID,
	}

	if resp.Fault != nil {
		base.Code = resp.Fault.DetailCode()
		if base.Code == "" {
			base.Code = resp.Fault.Code
		}
		base.Message = resp.Fault.String
	} else {
		// Fallback to raw body if no fault was decoded
		base.Message = strings.TrimSpace(string(resp.Body))
		if base.Message == "" {
			base.Message = http.StatusText(resp.StatusCode)
		}
	}

	return classify(base, resp)
}

// statusError converts an unsuccessful platformCore:status element into an error.
// It returns nil when the status reports success.
func statusError(op string, resp *api.Response, status *api.Node) error {
	if status == nil {
		return &RemoteCallError{
			Operation:  op,
			StatusCode: resp.StatusCode,
			RequestID:  resp.RequestID,
			Message:    "response carries no status",
		}
	}
	if success, _ := status.Attr("isSuccess"); success == "true" {
		return nil
	}

	base := RemoteCallError{
		Operation:  op,
		StatusCode: resp.StatusCode,
		RequestID:  resp.RequestID,
	}
	// The first ERROR detail wins; warnings precede errors in some responses.
	for _, detail := range status.Children("statusDetail") {
		typ, _ := detail.Attr("type")
		if base.Code == "" || typ == "ERROR" {
			base.Code = detail.Child("code").Text()
			base.Message = detail.Child("message").Text()
		}
		if typ == "ERROR" {
			break
		}
	}
	if base.Message == "" {
		base.Message = "operation unsuccessful"
	}

	return classify(base, resp)
}

func classify(base RemoteCallError, resp *api.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden,
		slices.Contains(authenticationCodes, base.Code):
		return &AuthenticationError{RemoteCallError: base}
	case slices.Contains(notFoundCodes, base.Code):
		return &NotFoundError{RemoteCallError: base}
	case resp.StatusCode == http.StatusTooManyRequests, slices.Contains(rateLimitCodes, base.Code):
		return &RateLimitError{
			RemoteCallError: base,
			RetryAfter:      parseRetryAfter(resp.Headers.Get("Retry-After")),
		}
	default:
		return &base
	}
}

// parseRetryAfter parses the Retry-After header value.
// It handles both seconds (integer) and HTTP-date formats.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}

	if seconds, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Duration(seconds) * time.Second
	}

	if t, err := time.Parse(time.RFC1123, value); err == nil {
		duration := time.Until(t)
		if duration > 0 {
			return duration
		}
	}

	return 0
}
