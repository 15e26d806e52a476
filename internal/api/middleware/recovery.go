package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/tictacgo/internal/api/apierr"
	"github.com/mcoot/tictacgo/internal/middleware"
)

// Recovery answers handler panics with a JSON INTERNAL_ERROR body
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
