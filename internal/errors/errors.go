package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrFileNotFound is returned when a file record or its on-disk content is missing.
	ErrFileNotFound = errors.New("file not found")
	// ErrForbidden is returned when a user operates on a file they do not own.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidFileName is returned when a supplied file name fails validation.
	ErrInvalidFileName = errors.New("invalid file name")
	// ErrPreviewNotFound is returned when a file has no preview to serve.
	ErrPreviewNotFound = errors.New("preview not found")
	// ErrStorageWrite is returned when writing uploaded content to disk fails.
	ErrStorageWrite = errors.New("storage write failed")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrFileNotFound):
		return NewHTTPError(http.StatusNotFound, ErrFileNotFound.Error(), "FILE_NOT_FOUND")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, ErrForbidden.Error(), "FORBIDDEN")
	case errors.Is(err, ErrInvalidFileName):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_FILE_NAME")
	case errors.Is(err, ErrPreviewNotFound):
		return NewHTTPError(http.StatusNotFound, ErrPreviewNotFound.Error(), "PREVIEW_NOT_FOUND")
	case errors.Is(err, ErrStorageWrite):
		return NewHTTPError(http.StatusInternalServerError, "failed to store file", "STORAGE_WRITE_FAILED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
