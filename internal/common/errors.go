package common

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Service-level failure taxonomy. Services return these (optionally wrapped);
// handlers translate them to HTTP exactly once via RespondError.
var (
	ErrNotFound        = errors.New("not found")
	ErrNotAuthorized   = errors.New("not authorized")
	ErrForbidden       = errors.New("forbidden")
	ErrUnitUnavailable = errors.New("unit is not available")
	ErrDuplicateRating = errors.New("property already rated")
	ErrDuplicateEmail  = errors.New("user already exists")
	ErrInviteExhausted = errors.New("invite code generation exhausted retries")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidPassword = errors.New("invalid email or password")
)

// NotFoundError carries the missing resource's name so the handler can say
// which entity was absent. errors.Is(err, ErrNotFound) matches it.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NotFound builds a resource-specific not-found error.
func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// RespondError translates a service error into the standard JSON error
// envelope. Unexpected errors become opaque 500s; the caller logs details.
func RespondError(c echo.Context, err error) error {
	var notFound *NotFoundError
	switch {
	case errors.As(err, &notFound):
		return SendNotFoundError(c, notFound.Resource)
	case errors.Is(err, ErrNotFound):
		return SendNotFoundError(c, "Resource")
	case errors.Is(err, ErrNotAuthorized):
		return SendUnauthorizedError(c)
	case errors.Is(err, ErrForbidden):
		return SendForbiddenError(c, err.Error())
	case errors.Is(err, ErrUnitUnavailable):
		return SendClientError(c, "Unit is not available")
	case errors.Is(err, ErrDuplicateRating):
		return SendConflictError(c, "You have already rated this property")
	case errors.Is(err, ErrDuplicateEmail):
		return SendClientError(c, "User already exists")
	case errors.Is(err, ErrInvalidPassword):
		return c.JSON(http.StatusUnauthorized, CreateErrorResponse("UNAUTHORIZED", "Invalid email or password", nil))
	case errors.Is(err, ErrInvalidInput):
		return SendClientError(c, err.Error())
	default:
		return SendServerError(c, "Operation could not be completed")
	}
}
