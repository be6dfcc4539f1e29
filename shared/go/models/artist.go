package models

// Artist represents a performer who plays shows.
type Artist struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	City               string `json:"city"`
	State              string `json:"state"`
	Phone              string `json:"phone"`
	Genres             Genres `json:"genres"`
	Website            string `json:"website"`
	ImageLink          string `json:"image_link"`
	FacebookLink       string `json:"facebook_link"`
	SeekingVenue       bool   `json:"seeking_venue"`
	SeekingDescription string `json:"seeking_description"`
}

// ArtistSummary is the listing projection of an artist.
type ArtistSummary struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}
