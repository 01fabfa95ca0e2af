// Package httpserver exposes the WebSocket endpoint together with the
// operational routes.
package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

// NewRouter mounts sessions on /ws next to /health and /metrics.
func NewRouter(log *slog.Logger, sessions http.Handler, db *badger.DB) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", health(db))
	r.Handle("/ws", sessions)
	return r
}

func health(db *badger.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		response := HealthResponse{Status: "healthy", Storage: "pass"}
		status := http.StatusOK
		if db == nil || db.IsClosed() {
			response = HealthResponse{Status: "degraded", Storage: "fail"}
			status = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// requestLogger logs one line per request once it completed. Upgraded
// sessions are logged when the socket closes.
func requestLogger(log *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				log.Debug("Request completed",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"latency", time.Since(start),
					"request_id", middleware.GetReqID(r.Context()),
					"remote_addr", r.RemoteAddr)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// NewServer wraps the router with the read timeouts of a public listener.
// No write timeout is set since sessions are long lived.
func NewServer(address string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
