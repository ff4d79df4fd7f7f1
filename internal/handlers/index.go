package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/tapin/internal/logger"
)

//go:generate mockgen -source=index.go -destination=mock_index_test.go -package=handlers

// Pinger checks the database connection.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse reports service health
// swagger:model HealthResponse
type HealthResponse struct {
	// default: ok
	Status string `json:"status"`
}

// NewIndexHandler returns the API root handler.
// @Summary API root
// @Tags system
// @Produce json
// @Success 200 {object} handlers.MessageResponse
// @Router / [get]
func NewIndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, MessageResponse{Message: "Tapin Backend API Root"})
	}
}

// NewHealthHandler returns a handler that reports ok while the database answers.
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} handlers.HealthResponse
// @Failure 503 {object} handlers.HealthResponse
// @Router /api/health [get]
func NewHealthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			logger.Log.Errorw("database ping failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}
