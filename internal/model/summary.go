package model

import (
	"encoding/json"

	"cloud.google.com/go/civil"
)

// MosaicSummary is the card shown in the mosaic view.
type MosaicSummary struct {
	ID            string      `json:"id"`
	CoverImage    string      `json:"cover_image,omitempty"`
	Title         string      `json:"title"`
	Category      string      `json:"category"`
	Date          civil.Date  `json:"date"`
	Time          *civil.Time `json:"time,omitempty"`
	Neighborhood  string      `json:"neighborhood"`
	FullAddress   string      `json:"full_address"`
	OrganizerName string      `json:"organizer_name"`
	Price         string      `json:"price"`
	Featured      bool        `json:"featured"`
	Modality      Modality    `json:"modality"`
	Available     bool        `json:"available"`
}

// ListSummary is the compact row shown in the list view.
type ListSummary struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Date          civil.Date  `json:"date"`
	Time          *civil.Time `json:"time,omitempty"`
	Neighborhood  string      `json:"neighborhood"`
	FullAddress   string      `json:"full_address"`
	OrganizerName string      `json:"organizer_name"`
	Category      string      `json:"category"`
	Price         string      `json:"price"`
	Featured      bool        `json:"featured"`
	Available     bool        `json:"available"`
}

// ResultPage is one page of search results. Exactly one of Mosaic or
// List is populated, matching View.
type ResultPage struct {
	View       ViewMode
	Mosaic     []MosaicSummary
	List       []ListSummary
	Page       int
	Size       int
	TotalItems int
	TotalPages int
}

// MarshalJSON writes the summaries of the active view under "items".
// An empty page encodes as an empty array, never null.
func (p ResultPage) MarshalJSON() ([]byte, error) {
	var items any = p.Mosaic
	if p.View == ViewList {
		items = p.List
		if p.List == nil {
			items = []ListSummary{}
		}
	} else if p.Mosaic == nil {
		items = []MosaicSummary{}
	}
	return json.Marshal(struct {
		View       ViewMode `json:"view"`
		Items      any      `json:"items"`
		Page       int      `json:"page"`
		Size       int      `json:"size"`
		TotalItems int      `json:"total_items"`
		TotalPages int      `json:"total_pages"`
	}{p.View, items, p.Page, p.Size, p.TotalItems, p.TotalPages})
}

// Len returns the number of summaries on the page.
func (p *ResultPage) Len() int {
	if p.View == ViewList {
		return len(p.List)
	}
	return len(p.Mosaic)
}

// EventState is the public state shown on the event detail page.
type EventState string

const (
	StateActive    EventState = "ACTIVO"
	StateCancelled EventState = "CANCELADO"
	StateFinished  EventState = "FINALIZADO"
)

// EventDetail is the full public view of a single event.
type EventDetail struct {
	Event
	IsFree       bool       `json:"is_free"`
	State        EventState `json:"state"`
	StateMessage string     `json:"state_message,omitempty"`
}
