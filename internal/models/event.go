package models

// External event sources
const (
	SourceTicketmaster = "ticketmaster"
	SourceSeatGeek     = "seatgeek"
	SourceSerpAPI      = "serpapi"
)

// ExternalEvent is an event found through a third-party discovery API.
// swagger:model ExternalEvent
type ExternalEvent struct {
	Source     string `json:"source" example:"ticketmaster"`
	ExternalID string `json:"external_id" example:"vvG1zZ9pKjXqAe"`
	Title      string `json:"title" example:"Food bank volunteer day"`
	URL        string `json:"url"`
	Venue      string `json:"venue" example:"NRG Park"`
	City       string `json:"city" example:"Houston"`
	StartsAt   string `json:"starts_at" example:"2025-11-01T10:00:00Z"`
	ImageURL   string `json:"image_url"`
}

// EventQuery describes an external event search.
type EventQuery struct {
	City    string
	State   string
	Keyword string
}

// ListingChange is the message published when a listing is created, updated or deleted.
type ListingChange struct {
	EventID   string   `json:"event_id"`
	Type      string   `json:"type"` // listing.created, listing.updated, listing.deleted
	Timestamp int64    `json:"timestamp"`
	ListingID int64    `json:"listing_id"`
	OwnerID   *int64   `json:"owner_id"`
	Listing   *Listing `json:"listing,omitempty"`
}

// Listing change types
const (
	ListingCreated = "listing.created"
	ListingUpdated = "listing.updated"
	ListingDeleted = "listing.deleted"
)
