package handler

import (
	"net/http"

	"github.com/mcoot/tictacgo/internal/api/apierr"
	"github.com/mcoot/tictacgo/internal/model"
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// isFatal reports whether err should fail the request. Storage warnings are
// returned to the client in the response body instead.
func isFatal(err error) bool {
	return err != nil && !model.IsWarning(err)
}
