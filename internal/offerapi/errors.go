package offerapi

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind categorises a failed submission.
type Kind int

const (
	KindTimeout Kind = iota + 1
	KindUnsupportedMediaType
	KindUnauthenticated
	KindForbidden
	KindServerError
	KindHTTPStatus
	KindConnection
	KindInvalidResponse
	KindInvalidRequest
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindUnsupportedMediaType:
		return "unsupported_media_type"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindServerError:
		return "server_error"
	case KindHTTPStatus:
		return "http_status"
	case KindConnection:
		return "connection"
	case KindInvalidResponse:
		return "invalid_response"
	case KindInvalidRequest:
		return "invalid_request"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is returned by Client.Submit for every failure.
type Error struct {
	Kind Kind
	// Status is the HTTP status code, 0 when no response was received.
	Status int
	// Body holds the error response when it was valid JSON.
	Body json.RawMessage
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindTimeout:
		return "request timeout: offers API is not responding"
	case KindUnsupportedMediaType:
		return "unsupported media type: ensure Content-Type is application/json"
	case KindUnauthenticated:
		return "authentication failed: recruiter ID is missing"
	case KindForbidden:
		return "access denied: no permission to create offers"
	case KindServerError:
		return "server error: please check all required fields"
	case KindConnection:
		return fmt.Sprintf("connection failed: %v", e.Err)
	case KindInvalidResponse:
		return fmt.Sprintf("invalid response: %v", e.Err)
	case KindInvalidRequest:
		return fmt.Sprintf("invalid request: %v", e.Err)
	}
	return fmt.Sprintf("offers API returned %d", e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

// kindForStatus maps a non-2xx status to its category.
func kindForStatus(status int) Kind {
	switch status {
	case 415:
		return KindUnsupportedMediaType
	case 401:
		return KindUnauthenticated
	case 403:
		return KindForbidden
	case 500:
		return KindServerError
	}
	return KindHTTPStatus
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
