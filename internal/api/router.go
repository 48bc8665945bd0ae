// Package api wires the HTTP surface: router, middleware, and server
// lifecycle.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/pondmetrics/capcast/internal/api/handlers"
	"github.com/pondmetrics/capcast/pkg/logger"
)

// NewRouter creates and configures the HTTP router
func NewRouter(playerHandler *handlers.PlayerHandler, predictHandler *handlers.PredictHandler, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Player and contract lookups
	api.HandleFunc("/players", playerHandler.List).Methods("GET")
	api.HandleFunc("/players/search", playerHandler.Search).Methods("GET")
	api.HandleFunc("/players/{id:[0-9]+}", playerHandler.Get).Methods("GET")
	api.HandleFunc("/players/{id:[0-9]+}/contracts", playerHandler.GetContracts).Methods("GET")
	api.HandleFunc("/players/{id:[0-9]+}/cap-years", playerHandler.GetCapYears).Methods("GET")
	api.HandleFunc("/contracts", playerHandler.ListContracts).Methods("GET")

	// Prediction endpoint
	api.HandleFunc("/ml/predict", predictHandler.Predict).Methods("POST")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "capcast-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
