package facades

import (
	"context"
	"net/url"
	"strconv"

	"github.com/sbilibin2017/tapin/internal/logger"
	"github.com/sbilibin2017/tapin/internal/models"
)

const seatGeekURL = "https://api.seatgeek.com/2/events"

// SeatGeekFacade searches the SeatGeek platform API.
type SeatGeekFacade struct {
	httpFacade
	clientID string
	perPage  int
}

// NewSeatGeekFacade creates a SeatGeek provider.
func NewSeatGeekFacade(clientID string, opts ...Opt) *SeatGeekFacade {
	return &SeatGeekFacade{
		httpFacade: newHTTPFacade(models.SourceSeatGeek, seatGeekURL, opts...),
		clientID:   clientID,
		perPage:    20,
	}
}

type seatGeekResponse struct {
	Events []struct {
		ID          int64  `json:"id"`
		Title       string `json:"title"`
		URL         string `json:"url"`
		DatetimeUTC string `json:"datetime_utc"`
		Venue       struct {
			Name string `json:"name"`
			City string `json:"city"`
		} `json:"venue"`
		Performers []struct {
			Image string `json:"image"`
		} `json:"performers"`
	} `json:"events"`
}

// Search returns events in the queried city.
func (f *SeatGeekFacade) Search(ctx context.Context, q models.EventQuery) ([]models.ExternalEvent, error) {
	params := url.Values{}
	params.Set("client_id", f.clientID)
	params.Set("venue.city", q.City)
	params.Set("per_page", strconv.Itoa(f.perPage))
	if q.State != "" {
		params.Set("venue.state", q.State)
	}
	if q.Keyword != "" {
		params.Set("q", q.Keyword)
	}

	var resp seatGeekResponse
	if err := f.getJSON(ctx, params, &resp); err != nil {
		logger.Log.Errorw("failed to fetch events from SeatGeek", "city", q.City, "error", err)
		return nil, err
	}

	events := make([]models.ExternalEvent, 0, len(resp.Events))
	for _, e := range resp.Events {
		ev := models.ExternalEvent{
			Source:     models.SourceSeatGeek,
			ExternalID: strconv.FormatInt(e.ID, 10),
			Title:      e.Title,
			URL:        e.URL,
			Venue:      e.Venue.Name,
			City:       e.Venue.City,
			StartsAt:   e.DatetimeUTC,
		}
		if ev.City == "" {
			ev.City = q.City
		}
		if len(e.Performers) > 0 {
			ev.ImageURL = e.Performers[0].Image
		}
		events = append(events, ev)
	}
	return events, nil
}
