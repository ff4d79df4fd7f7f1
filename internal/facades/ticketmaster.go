package facades

import (
	"context"
	"net/url"
	"strconv"

	"github.com/sbilibin2017/tapin/internal/logger"
	"github.com/sbilibin2017/tapin/internal/models"
)

const ticketmasterURL = "https://app.ticketmaster.com/discovery/v2/events.json"

// TicketmasterFacade searches the Ticketmaster Discovery API.
type TicketmasterFacade struct {
	httpFacade
	apiKey string
	size   int
}

// NewTicketmasterFacade creates a Ticketmaster provider.
func NewTicketmasterFacade(apiKey string, opts ...Opt) *TicketmasterFacade {
	return &TicketmasterFacade{
		httpFacade: newHTTPFacade(models.SourceTicketmaster, ticketmasterURL, opts...),
		apiKey:     apiKey,
		size:       20,
	}
}

type ticketmasterResponse struct {
	Embedded struct {
		Events []struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			URL   string `json:"url"`
			Dates struct {
				Start struct {
					DateTime  string `json:"dateTime"`
					LocalDate string `json:"localDate"`
				} `json:"start"`
			} `json:"dates"`
			Images []struct {
				URL string `json:"url"`
			} `json:"images"`
			Embedded struct {
				Venues []struct {
					Name string `json:"name"`
					City struct {
						Name string `json:"name"`
					} `json:"city"`
				} `json:"venues"`
			} `json:"_embedded"`
		} `json:"events"`
	} `json:"_embedded"`
}

// Search returns events in the queried city.
func (f *TicketmasterFacade) Search(ctx context.Context, q models.EventQuery) ([]models.ExternalEvent, error) {
	params := url.Values{}
	params.Set("apikey", f.apiKey)
	params.Set("city", q.City)
	params.Set("size", strconv.Itoa(f.size))
	if q.State != "" {
		params.Set("stateCode", q.State)
	}
	if q.Keyword != "" {
		params.Set("keyword", q.Keyword)
	}

	var resp ticketmasterResponse
	if err := f.getJSON(ctx, params, &resp); err != nil {
		logger.Log.Errorw("failed to fetch events from Ticketmaster", "city", q.City, "error", err)
		return nil, err
	}

	events := make([]models.ExternalEvent, 0, len(resp.Embedded.Events))
	for _, e := range resp.Embedded.Events {
		ev := models.ExternalEvent{
			Source:     models.SourceTicketmaster,
			ExternalID: e.ID,
			Title:      e.Name,
			URL:        e.URL,
			City:       q.City,
			StartsAt:   e.Dates.Start.DateTime,
		}
		if ev.StartsAt == "" {
			ev.StartsAt = e.Dates.Start.LocalDate
		}
		if len(e.Images) > 0 {
			ev.ImageURL = e.Images[0].URL
		}
		if len(e.Embedded.Venues) > 0 {
			ev.Venue = e.Embedded.Venues[0].Name
			if city := e.Embedded.Venues[0].City.Name; city != "" {
				ev.City = city
			}
		}
		events = append(events, ev)
	}
	return events, nil
}
