package models

import "strings"

// Genres is an ordered set of genre names.
type Genres []string

// GenreChoices lists the genres offered by the venue and artist forms.
var GenreChoices = []string{
	"Alternative",
	"Blues",
	"Classical",
	"Country",
	"Electronic",
	"Folk",
	"Funk",
	"Hip-Hop",
	"Heavy Metal",
	"Instrumental",
	"Jazz",
	"Musical Theatre",
	"Pop",
	"Punk",
	"R&B",
	"Reggae",
	"Rock n Roll",
	"Soul",
	"Other",
}

// NormalizeGenres trims each value, drops empties and keeps the first
// occurrence of duplicates. The result is never nil.
func NormalizeGenres(values []string) Genres {
	out := make(Genres, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// ParseLegacyGenres splits the comma-joined representation used before
// genres were stored as an array.
func ParseLegacyGenres(joined string) Genres {
	if strings.TrimSpace(joined) == "" {
		return Genres{}
	}
	return NormalizeGenres(strings.Split(joined, ","))
}
