package facades

import (
	"context"
	"net/url"
	"strings"

	"github.com/sbilibin2017/tapin/internal/logger"
	"github.com/sbilibin2017/tapin/internal/models"
)

const (
	serpAPIURL     = "https://serpapi.com/search.json"
	defaultKeyword = "volunteer"
)

// SerpAPIFacade searches Google Events through SerpApi.
type SerpAPIFacade struct {
	httpFacade
	apiKey string
}

// NewSerpAPIFacade creates a SerpApi provider.
func NewSerpAPIFacade(apiKey string, opts ...Opt) *SerpAPIFacade {
	return &SerpAPIFacade{
		httpFacade: newHTTPFacade(models.SourceSerpAPI, serpAPIURL, opts...),
		apiKey:     apiKey,
	}
}

type serpAPIResponse struct {
	EventsResults []struct {
		Title string `json:"title"`
		Link  string `json:"link"`
		Date  struct {
			StartDate string `json:"start_date"`
			When      string `json:"when"`
		} `json:"date"`
		Address []string `json:"address"`
		Venue   struct {
			Name string `json:"name"`
		} `json:"venue"`
		Thumbnail string `json:"thumbnail"`
	} `json:"events_results"`
}

// serpAPIQuery builds the free-text Google Events query, e.g. "volunteer events in Houston, TX".
func serpAPIQuery(q models.EventQuery) string {
	keyword := q.Keyword
	if keyword == "" {
		keyword = defaultKeyword
	}
	where := q.City
	if q.State != "" {
		where += ", " + q.State
	}
	return keyword + " events in " + where
}

// Search returns events in the queried city.
func (f *SerpAPIFacade) Search(ctx context.Context, q models.EventQuery) ([]models.ExternalEvent, error) {
	params := url.Values{}
	params.Set("engine", "google_events")
	params.Set("q", serpAPIQuery(q))
	params.Set("api_key", f.apiKey)

	var resp serpAPIResponse
	if err := f.getJSON(ctx, params, &resp); err != nil {
		logger.Log.Errorw("failed to fetch events from SerpApi", "city", q.City, "error", err)
		return nil, err
	}

	events := make([]models.ExternalEvent, 0, len(resp.EventsResults))
	for _, e := range resp.EventsResults {
		startsAt := e.Date.When
		if startsAt == "" {
			startsAt = e.Date.StartDate
		}
		events = append(events, models.ExternalEvent{
			Source:     models.SourceSerpAPI,
			ExternalID: e.Link,
			Title:      e.Title,
			URL:        e.Link,
			Venue:      firstNonEmpty(e.Venue.Name, strings.Join(e.Address, ", ")),
			City:       q.City,
			StartsAt:   startsAt,
			ImageURL:   e.Thumbnail,
		})
	}
	return events, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
