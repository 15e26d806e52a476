package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/tictacgo/internal/middleware"
)

// Logging logs one line per API request
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger.With(slog.String("component", "api")))
}
