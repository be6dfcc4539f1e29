package models

// Venue represents a place that hosts shows.
type Venue struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	City               string `json:"city"`
	State              string `json:"state"`
	Address            string `json:"address"`
	Phone              string `json:"phone"`
	ImageLink          string `json:"image_link"`
	FacebookLink       string `json:"facebook_link"`
	Genres             Genres `json:"genres"`
	Website            string `json:"website"`
	SeekingTalent      bool   `json:"seeking_talent"`
	SeekingDescription string `json:"seeking_description"`
}

// VenueSummary is the listing projection of a venue.
type VenueSummary struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	City             string `json:"city,omitempty"`
	State            string `json:"state,omitempty"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}
