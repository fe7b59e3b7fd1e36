package errors

import (
	stderrors "errors"
	"net/http"
)

const (
	CodeFormat     = "FORMAT_ERROR"
	CodeParse      = "PARSE_ERROR"
	CodeLoad       = "LOAD_ERROR"
	CodeConstraint = "CONSTRAINT_ERROR"
	CodeConfig     = "CONFIG_ERROR"
)

// Pipeline error classes
var (
	// ErrFormat - file does not match the positional layout of its variant
	ErrFormat = New(
		CodeFormat,
		"File does not match the expected column layout",
		http.StatusUnprocessableEntity,
	)

	// ErrParse - started_at (or another strict field) could not be parsed
	ErrParse = New(
		CodeParse,
		"Row could not be parsed",
		http.StatusUnprocessableEntity,
	)

	// ErrLoad - bulk load rejected a file
	ErrLoad = New(
		CodeLoad,
		"Bulk load failed",
		http.StatusInternalServerError,
	)

	// ErrConstraint - referential integrity could not be installed
	ErrConstraint = New(
		CodeConstraint,
		"Constraint violation",
		http.StatusConflict,
	)

	// ErrConfig - sources or options the run cannot start with
	ErrConfig = New(
		CodeConfig,
		"Invalid pipeline configuration",
		http.StatusBadRequest,
	)
)

// API errors
var (
	ErrStationNotFound = New(
		"STATION_NOT_FOUND",
		"Station not found",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)

// Is and As re-export the standard helpers so callers need a single import
func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target any) bool { return stderrors.As(err, target) }
