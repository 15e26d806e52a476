package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/tictacgo/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidIdentity    = "INVALID_IDENTITY"
	CodeInvalidMark        = "INVALID_MARK"
	CodeMarkLocked         = "MARK_LOCKED"
	CodeNoIdentity         = "NO_IDENTITY"
	CodeInvalidPosition    = "INVALID_POSITION"
	CodeCellOccupied       = "CELL_OCCUPIED"
	CodeGameComplete       = "GAME_COMPLETE"
	CodeIllegalMove        = "ILLEGAL_MOVE"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeGameNotFinished    = "GAME_NOT_FINISHED"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Code returns the API code for err, e.g. the reason a move was ignored
func Code(err error) string {
	return toHTTPError(err).apiError.Code
}

// Status returns the HTTP status WriteError would use for err
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrInvalidIdentity):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidIdentity, "Identity must not be empty"}}
	case errors.Is(err, model.ErrInvalidMark):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidMark, "Mark must be X or O"}}
	case errors.Is(err, model.ErrMarkLocked):
		return &httpError{http.StatusConflict, APIError{CodeMarkLocked, "Mark can only be changed before the first move"}}
	case errors.Is(err, model.ErrInvalidPosition):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPosition, "Position must be 0-8"}}
	case errors.Is(err, model.ErrCellOccupied):
		return &httpError{http.StatusConflict, APIError{CodeCellOccupied, "Cell is already occupied"}}
	case errors.Is(err, model.ErrGameComplete):
		return &httpError{http.StatusConflict, APIError{CodeGameComplete, "Game is already complete"}}
	case errors.Is(err, model.ErrIllegalMove):
		return &httpError{http.StatusConflict, APIError{CodeIllegalMove, "Illegal move"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrGameNotFinished):
		return &httpError{http.StatusConflict, APIError{CodeGameNotFinished, "Game is not finished"}}
	case errors.Is(err, model.ErrStorageFault):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeStorageUnavailable, "Storage is unavailable"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewNoIdentityError is returned when an endpoint needs a signed-in user
func NewNoIdentityError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeNoIdentity, "Sign in to use this endpoint"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
