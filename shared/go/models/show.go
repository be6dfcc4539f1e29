package models

import "time"

// Show is a scheduled event joining one venue and one artist.
type Show struct {
	ID        int64     `json:"id"`
	VenueID   int64     `json:"venue_id"`
	ArtistID  int64     `json:"artist_id"`
	StartTime time.Time `json:"start_time"`
}

// ShowDetail includes the venue and artist columns needed by listings.
// Populated via JOIN queries (not stored in the shows table).
type ShowDetail struct {
	Show
	VenueName       string `json:"venue_name"`
	VenueImageLink  string `json:"venue_image_link"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
}

// ShowWindow bounds a show query by start time. Both bounds are strict and
// either may be nil.
type ShowWindow struct {
	After  *time.Time
	Before *time.Time
}

// Upcoming selects shows starting strictly after now.
func Upcoming(now time.Time) ShowWindow {
	return ShowWindow{After: &now}
}

// Past selects shows that started strictly before now.
func Past(now time.Time) ShowWindow {
	return ShowWindow{Before: &now}
}
