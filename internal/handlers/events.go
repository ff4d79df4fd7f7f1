package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/tapin/internal/models"
	"github.com/sbilibin2017/tapin/internal/services"
)

//go:generate mockgen -source=events.go -destination=mock_events_test.go -package=handlers

// EventSearcher searches third-party event APIs.
type EventSearcher interface {
	Search(ctx context.Context, q models.EventQuery) (*services.EventSearchResult, error)
}

// EventsResponse lists events found across providers
// swagger:model EventsResponse
type EventsResponse struct {
	Events []models.ExternalEvent `json:"events"`
	// Provider name to failure message
	Errors map[string]string `json:"errors"`
}

// NewSearchEventsHandler returns an HTTP handler searching external events.
// @Summary Search external events
// @Description Queries Ticketmaster, SeatGeek and SerpApi. A failing provider is reported in errors.
// @Tags events
// @Produce json
// @Param city query string true "City"
// @Param state query string false "State code"
// @Param keyword query string false "Keyword"
// @Success 200 {object} handlers.EventsResponse
// @Failure 400 {object} handlers.ErrorResponse "city required"
// @Router /events [get]
func NewSearchEventsHandler(svc EventSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		q := models.EventQuery{
			City:    query.Get("city"),
			State:   query.Get("state"),
			Keyword: query.Get("keyword"),
		}

		res, err := svc.Search(r.Context(), q)
		if err != nil {
			writeServiceError(w, err, "city", q.City)
			return
		}

		writeJSON(w, http.StatusOK, EventsResponse{Events: res.Events, Errors: res.Errors})
	}
}
