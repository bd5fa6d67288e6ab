package domain

import "errors"

// Repository sentinels. Adapters translate driver errors into these.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// User-visible messages.
const (
	MsgMissingFields      = "Missing required fields"
	MsgInvalidPayload     = "Invalid request body"
	MsgUserNotFound       = "User not found"
	MsgInvalidPassword    = "Invalid password"
	MsgInvalidOTP         = "Invalid OTP code"
	MsgOTPExpired         = "OTP code has expired"
	MsgOTPSendFailed      = "Failed to send OTP"
	MsgTooManyOTPRequests = "Too many OTP requests"
	MsgEmailTaken         = "Email already registered"
	MsgNotAuthorized      = "Not authorized to access this route"
	MsgInvalidUserHeader  = "Invalid user header format"
)

// ErrorKind classifies every failure surfaced to callers.
type ErrorKind int

const (
	InternalError ErrorKind = iota
	ValidationError
	UnauthorizedError
	ForbiddenError
	NotFoundError
	ConflictError
	RateLimitedError
)

func (k ErrorKind) String() string {
	switch k {
	case ValidationError:
		return "validation"
	case UnauthorizedError:
		return "unauthorized"
	case ForbiddenError:
		return "forbidden"
	case NotFoundError:
		return "not_found"
	case ConflictError:
		return "conflict"
	case RateLimitedError:
		return "rate_limited"
	default:
		return "internal"
	}
}

// Error is the tagged failure returned by services.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string) error   { return NewError(ValidationError, message) }
func NotFound(message string) error     { return NewError(NotFoundError, message) }
func Unauthorized(message string) error { return NewError(UnauthorizedError, message) }
func Forbidden(message string) error    { return NewError(ForbiddenError, message) }
func Conflict(message string) error     { return NewError(ConflictError, message) }
func RateLimited(message string) error  { return NewError(RateLimitedError, message) }

// Internal wraps an unexpected failure, keeping the cause text visible to the caller.
func Internal(err error) error {
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	return &Error{Kind: InternalError, Message: "An error occurred: " + err.Error(), Err: err}
}

// InternalMessage is an internal failure with a fixed message.
func InternalMessage(message string, err error) error {
	return &Error{Kind: InternalError, Message: message, Err: err}
}

// KindOf returns the kind of err, defaulting to InternalError for untagged errors.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return InternalError
}
