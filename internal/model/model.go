// Package model defines the core domain types for the events catalog.
package model

import (
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// FreePrice is the price descriptor that marks an event as free of charge.
const FreePrice = "gratuito"

// Status is the lifecycle state of an event.
type Status string

const (
	StatusPublished Status = "PUBLISHED"
	StatusCancelled Status = "CANCELLED"
	StatusSuspended Status = "SUSPENDED"
	StatusDraft     Status = "DRAFT"
)

// Modality describes how attendees take part in an event.
type Modality string

const (
	ModalityInPerson Modality = "PRESENCIAL"
	ModalityVirtual  Modality = "VIRTUAL"
	ModalityHybrid   Modality = "HIBRIDA"
)

// Valid reports whether m is one of the known modalities.
func (m Modality) Valid() bool {
	switch m {
	case ModalityInPerson, ModalityVirtual, ModalityHybrid:
		return true
	}
	return false
}

// OccurrenceStatus is the state of a single occurrence of an event.
type OccurrenceStatus string

const (
	OccurrencePublished OccurrenceStatus = "PUBLISHED"
	OccurrenceCancelled OccurrenceStatus = "CANCELLED"
	OccurrenceSuspended OccurrenceStatus = "SUSPENDED"
)

// Location is where an event takes place.
type Location struct {
	FullAddress     string `json:"full_address"`
	Neighborhood    string `json:"neighborhood"`
	DetailedAddress string `json:"detailed_address"`
	MapLink         string `json:"map_link,omitempty"`
}

// Organizer identifies who runs an event.
type Organizer struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Identification string `json:"identification"`
	Email          string `json:"email"`
}

// Occurrence is one scheduled session of an event.
type Occurrence struct {
	Number int              `json:"number"`
	Date   civil.Date       `json:"date"`
	Time   civil.Time       `json:"time"`
	Status OccurrenceStatus `json:"status"`
}

// Event is a catalog entry. Occurrences are kept ordered by Number.
type Event struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Date        civil.Date   `json:"date"`
	Time        civil.Time   `json:"time"`
	Modality    Modality     `json:"modality"`
	Capacity    *int         `json:"capacity,omitempty"`
	Price       string       `json:"price"`
	Featured    bool         `json:"featured"`
	Status      Status       `json:"status"`
	CoverImage  string       `json:"cover_image,omitempty"`
	Services    []string     `json:"services"`
	Location    Location     `json:"location"`
	Organizer   Organizer    `json:"organizer"`
	Occurrences []Occurrence `json:"occurrences"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// IsFree reports whether the price descriptor is the free marker.
// The check is purely textual: any other descriptor counts as priced.
func (e *Event) IsFree() bool {
	return strings.EqualFold(e.Price, FreePrice)
}

// NumericPrice returns the price as a number. Free events and
// descriptors that are not numbers yield zero.
func (e *Event) NumericPrice() float64 {
	if e.IsFree() {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(e.Price), 64)
	if err != nil {
		return 0
	}
	return v
}

// FirstOccurrenceTime returns the time of the lowest-numbered occurrence.
func (e *Event) FirstOccurrenceTime() (civil.Time, bool) {
	if len(e.Occurrences) == 0 {
		return civil.Time{}, false
	}
	first := e.Occurrences[0]
	for _, o := range e.Occurrences[1:] {
		if o.Number < first.Number {
			first = o
		}
	}
	return first.Time, true
}

// HasOccurrenceFrom reports whether any occurrence falls on or after day.
func (e *Event) HasOccurrenceFrom(day civil.Date) bool {
	for _, o := range e.Occurrences {
		if !o.Date.Before(day) {
			return true
		}
	}
	return false
}

// CreateEventRequest is the payload for creating a new event.
type CreateEventRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Category    string              `json:"category"`
	Date        civil.Date          `json:"date"`
	Time        civil.Time          `json:"time"`
	Modality    Modality            `json:"modality"`
	Capacity    *int                `json:"capacity,omitempty"`
	Price       string              `json:"price"`
	Featured    bool                `json:"featured"`
	CoverImage  string              `json:"cover_image"`
	Services    []string            `json:"services"`
	Location    Location            `json:"location"`
	Organizer   Organizer           `json:"organizer"`
	Occurrences []OccurrenceRequest `json:"occurrences"`
}

// OccurrenceRequest describes one occurrence in a CreateEventRequest.
type OccurrenceRequest struct {
	Number int        `json:"number"`
	Date   civil.Date `json:"date"`
	Time   civil.Time `json:"time"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
