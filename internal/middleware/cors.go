package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func CORS(log *zap.Logger, allowedOrigins []string) func(http.Handler) http.Handler {
	// empty means allow all (development)
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	log.Info("cors configured", zap.Strings("allowedOrigins", allowedOrigins))

	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", "X-Request-Id"},
		ExposedHeaders:   []string{"Link", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
