// Package forms binds and validates the urlencoded submissions of the venue,
// artist and show forms.
package forms

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"venuebook/shared/go/models"
)

// StartTimeLayouts are the accepted formats of a show start time, tried in
// order. Values without a zone are read as UTC.
var StartTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
}

// FieldErrors maps a form field name to the message shown next to it.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// Schema describes a form to the template rendering it.
type Schema struct {
	Fields       []string `json:"fields"`
	Required     []string `json:"required"`
	GenreChoices []string `json:"genre_choices,omitempty"`
}

// Schemas served by the create and edit form routes.
var (
	VenueSchema = Schema{
		Fields: []string{
			"name", "city", "state", "address", "phone", "image_link", "facebook_link",
			"genres", "website", "seeking_talent", "seeking_description",
		},
		Required:     []string{"name", "city", "state", "address"},
		GenreChoices: models.GenreChoices,
	}
	ArtistSchema = Schema{
		Fields: []string{
			"name", "city", "state", "phone", "genres", "website", "image_link",
			"facebook_link", "seeking_venue", "seeking_description",
		},
		Required:     []string{"name", "city", "state"},
		GenreChoices: models.GenreChoices,
	}
	ShowSchema = Schema{
		Fields:   []string{"artist_id", "venue_id", "start_time"},
		Required: []string{"artist_id", "venue_id", "start_time"},
	}
)

type venueForm struct {
	Name               string   `form:"name" validate:"required,max=120"`
	City               string   `form:"city" validate:"required,max=120"`
	State              string   `form:"state" validate:"required,max=120"`
	Address            string   `form:"address" validate:"required,max=120"`
	Phone              string   `form:"phone" validate:"max=120"`
	ImageLink          string   `form:"image_link" validate:"omitempty,http_url,max=500"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,http_url,max=120"`
	Genres             []string `form:"genres" validate:"dive,genre"`
	Website            string   `form:"website" validate:"omitempty,http_url,max=120"`
	SeekingDescription string   `form:"seeking_description" validate:"max=500"`
}

type artistForm struct {
	Name               string   `form:"name" validate:"required,max=120"`
	City               string   `form:"city" validate:"required,max=120"`
	State              string   `form:"state" validate:"required,max=120"`
	Phone              string   `form:"phone" validate:"max=120"`
	Genres             []string `form:"genres" validate:"dive,genre"`
	Website            string   `form:"website" validate:"omitempty,http_url,max=120"`
	ImageLink          string   `form:"image_link" validate:"omitempty,http_url,max=500"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,http_url,max=120"`
	SeekingDescription string   `form:"seeking_description" validate:"max=500"`
}

type showForm struct {
	ArtistID  string `form:"artist_id" validate:"required,number"`
	VenueID   string `form:"venue_id" validate:"required,number"`
	StartTime string `form:"start_time" validate:"required,start_time"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	_ = v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		return isGenreChoice(fl.Field().String())
	})
	_ = v.RegisterValidation("start_time", func(fl validator.FieldLevel) bool {
		_, err := ParseStartTime(fl.Field().String())
		return err == nil
	})
	return v
}

// ParseVenue binds a submitted venue form. Validation problems are returned
// as FieldErrors.
func ParseVenue(values url.Values) (models.Venue, error) {
	f := venueForm{
		Name:               field(values, "name"),
		City:               field(values, "city"),
		State:              field(values, "state"),
		Address:            field(values, "address"),
		Phone:              field(values, "phone"),
		ImageLink:          field(values, "image_link"),
		FacebookLink:       field(values, "facebook_link"),
		Genres:             multiField(values, "genres"),
		Website:            field(values, "website"),
		SeekingDescription: field(values, "seeking_description"),
	}
	if err := check(f); err != nil {
		return models.Venue{}, err
	}

	return models.Venue{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Genres:             models.NormalizeGenres(f.Genres),
		Website:            f.Website,
		SeekingTalent:      Checked(values, "seeking_talent"),
		SeekingDescription: f.SeekingDescription,
	}, nil
}

// ParseArtist binds a submitted artist form. Validation problems are returned
// as FieldErrors.
func ParseArtist(values url.Values) (models.Artist, error) {
	f := artistForm{
		Name:               field(values, "name"),
		City:               field(values, "city"),
		State:              field(values, "state"),
		Phone:              field(values, "phone"),
		Genres:             multiField(values, "genres"),
		Website:            field(values, "website"),
		ImageLink:          field(values, "image_link"),
		FacebookLink:       field(values, "facebook_link"),
		SeekingDescription: field(values, "seeking_description"),
	}
	if err := check(f); err != nil {
		return models.Artist{}, err
	}

	return models.Artist{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		Genres:             models.NormalizeGenres(f.Genres),
		Website:            f.Website,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		SeekingVenue:       Checked(values, "seeking_venue"),
		SeekingDescription: f.SeekingDescription,
	}, nil
}

// ParseShow binds a submitted show form. Validation problems are returned as
// FieldErrors.
func ParseShow(values url.Values) (models.Show, error) {
	f := showForm{
		ArtistID:  field(values, "artist_id"),
		VenueID:   field(values, "venue_id"),
		StartTime: field(values, "start_time"),
	}
	if err := check(f); err != nil {
		return models.Show{}, err
	}

	problems := FieldErrors{}
	artistID, err := strconv.ParseInt(f.ArtistID, 10, 64)
	if err != nil || artistID <= 0 {
		problems["artist_id"] = "Enter a valid ID."
	}
	venueID, err := strconv.ParseInt(f.VenueID, 10, 64)
	if err != nil || venueID <= 0 {
		problems["venue_id"] = "Enter a valid ID."
	}
	if len(problems) > 0 {
		return models.Show{}, problems
	}

	start, _ := ParseStartTime(f.StartTime)
	return models.Show{ArtistID: artistID, VenueID: venueID, StartTime: start}, nil
}

// ParseStartTime reads a start time in any of StartTimeLayouts.
func ParseStartTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range StartTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised start time %q", raw)
}

// Checked reports whether a checkbox-style field was submitted switched on.
func Checked(values url.Values, name string) bool {
	if _, ok := values[name]; !ok {
		return false
	}
	switch strings.ToLower(field(values, name)) {
	case "", "false", "0", "off":
		return false
	default:
		return true
	}
}

func check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	problems := FieldErrors{}
	for _, fe := range verrs {
		name := fe.Field()
		if i := strings.IndexByte(name, '['); i >= 0 {
			name = name[:i]
		}
		if _, exists := problems[name]; exists {
			continue
		}
		problems[name] = message(fe)
	}
	return problems
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "http_url":
		return "Enter a valid http or https URL."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "genre":
		return fmt.Sprintf("%q is not a valid choice.", fe.Value())
	case "number":
		return "Enter a valid ID."
	case "start_time":
		return "Enter a date and time as YYYY-MM-DD HH:MM:SS."
	default:
		return "Invalid value."
	}
}

func field(values url.Values, name string) string {
	return strings.TrimSpace(values.Get(name))
}

func multiField(values url.Values, name string) []string {
	out := []string{}
	for _, v := range values[name] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func isGenreChoice(genre string) bool {
	for _, choice := range models.GenreChoices {
		if genre == choice {
			return true
		}
	}
	return false
}
