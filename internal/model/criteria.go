package model

import (
	"strings"

	"cloud.google.com/go/civil"
)

// ViewMode selects the summary shape of a search result page.
type ViewMode string

const (
	ViewMosaic ViewMode = "MOSAICO"
	ViewList   ViewMode = "LISTA"
)

// ParseViewMode maps a client supplied value to a ViewMode.
// Anything other than "LISTA" (case-insensitive) is the mosaic view.
func ParseViewMode(s string) ViewMode {
	if strings.EqualFold(strings.TrimSpace(s), string(ViewList)) {
		return ViewList
	}
	return ViewMosaic
}

// Schedule window tags accepted by FilterCriteria.Schedule.
const (
	ScheduleDay   = "DIURNO"
	ScheduleNight = "NOCTURNO"
)

// FilterCriteria carries the optional values of an advanced search.
// Nil pointers and blank strings mean the filter is not applied.
type FilterCriteria struct {
	Text      string
	Location  string
	Category  string
	DateFrom  *civil.Date
	DateTo    *civil.Date
	Featured  *bool
	Free      *bool
	Modality  string
	Organizer string
	PriceMin  *float64
	PriceMax  *float64
	Schedule  string
	Service   string
	Available *bool

	// IncludeInactive drops the implicit "published only" restriction.
	IncludeInactive bool

	SortBy  string
	SortDir string
	View    ViewMode
	Page    *int
	Size    *int
}

// DatesValid reports whether DateFrom is not after DateTo.
// Either bound being absent is always valid.
func (c FilterCriteria) DatesValid() bool {
	if c.DateFrom != nil && c.DateTo != nil {
		return !c.DateFrom.After(*c.DateTo)
	}
	return true
}

// HasFilters reports whether at least one filter value is present.
func (c FilterCriteria) HasFilters() bool {
	return !blank(c.Text) ||
		!blank(c.Location) ||
		!blank(c.Category) ||
		c.DateFrom != nil ||
		c.DateTo != nil ||
		c.Featured != nil ||
		c.Free != nil ||
		!blank(c.Modality) ||
		!blank(c.Organizer) ||
		c.PriceMin != nil ||
		c.PriceMax != nil ||
		!blank(c.Schedule) ||
		!blank(c.Service) ||
		c.Available != nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
