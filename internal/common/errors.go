package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound       = errors.New("requested resource not found")
	ErrUnauthorized   = errors.New("unauthorized access")
	ErrBadRequest     = errors.New("bad request")
	ErrConflict       = errors.New("resource conflict") // e.g., email already registered
	ErrInternalServer = errors.New("internal server error")
	ErrValidation     = errors.New("validation failed")

	// Client-facing sentinels. Their text is part of the HTTP contract and
	// goes to the response body verbatim.
	ErrInvalidCredentials = errors.New("Invalid credentials")     //nolint:staticcheck // contract text
	ErrMissingFields      = errors.New("Missing required fields") //nolint:staticcheck // contract text
	ErrUserExists         = errors.New("User already exists")     //nolint:staticcheck // contract text
)

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrInvalidCredentials) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrValidation) || errors.Is(err, ErrMissingFields) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrConflict) || errors.Is(err, ErrUserExists) {
		return http.StatusConflict
	}

	// pgx unique violation maps to conflict when the postgres store is in use.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return http.StatusConflict
		}
	}

	return http.StatusInternalServerError
}

// ClientMessage returns the error text safe to surface to the caller.
// Unexpected errors collapse to a generic message.
func ClientMessage(err error) string {
	if HTTPStatusFromError(err) == http.StatusInternalServerError {
		return "Internal server error"
	}
	return err.Error()
}

// Errorf creates a new error with formatting, useful for wrapping.
func Errorf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
