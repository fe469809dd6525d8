// Package server provides the HTTP API for scanning documents against job
// descriptions.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/ats-scanner/internal/fetch"
	"github.com/jonathan/ats-scanner/internal/ingestion"
	"github.com/jonathan/ats-scanner/internal/keywords"
)

// RequestError indicates a malformed or invalid request.
type RequestError struct {
	Field   string
	Message string
}

func (e *RequestError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid request: %s", e.Message)
	}
	return fmt.Sprintf("invalid request: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		reqErr    *RequestError
		cfgErr    *keywords.ConfigError
		verrs     validator.ValidationErrors
		decodeErr *ingestion.DecodeError
		fetchErr  *fetch.Error
	)

	switch {
	case errors.As(err, &reqErr), errors.As(err, &cfgErr), errors.As(err, &verrs):
		return http.StatusBadRequest
	case errors.As(err, &decodeErr), errors.Is(err, ingestion.ErrContentExtractionFailed):
		return http.StatusUnprocessableEntity
	case errors.As(err, &fetchErr), errors.Is(err, ingestion.ErrHTTPRequestFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
