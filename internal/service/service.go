// Package service implements the catalog's business logic: search
// orchestration, validation and mapping between the HTTP layer and the
// event data sources.
package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Shivanand-hulikatti/events-catalog/internal/model"
	"github.com/Shivanand-hulikatti/events-catalog/internal/repository"
)

// EventStore is the write side of an event store.
type EventStore interface {
	Create(ctx context.Context, event model.Event) (*model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
}

// EventService handles event creation and the public detail view.
type EventService struct {
	settings
	events EventStore
}

// NewEventService constructs an EventService with its dependencies.
func NewEventService(events EventStore, opts ...Option) *EventService {
	return &EventService{settings: newSettings(opts), events: events}
}

// CreateEvent validates the request and delegates to the store. Events
// are published on creation; without explicit occurrences a single one
// is created from the event's own date and time.
func (s *EventService) CreateEvent(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	event, err := newEvent(req)
	if err != nil {
		return nil, err
	}
	created, err := s.events.Create(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	s.log.InfoContext(ctx, "event created", "id", created.ID, "title", created.Title)
	return created, nil
}

// GetEvent returns the public detail of a single event.
func (s *EventService) GetEvent(ctx context.Context, id string) (*model.EventDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, invalid("id", "event id is required")
	}
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	detail := &model.EventDetail{Event: *event, IsFree: event.IsFree()}
	today := s.today()
	switch {
	case event.Status == model.StatusCancelled:
		detail.State = model.StateCancelled
		detail.StateMessage = "This event has been cancelled."
	case event.Date.Before(today) && !event.HasOccurrenceFrom(today):
		detail.State = model.StateFinished
		detail.StateMessage = "This event has already taken place."
	default:
		detail.State = model.StateActive
	}
	return detail, nil
}

func newEvent(req model.CreateEventRequest) (model.Event, error) {
	title := strings.TrimSpace(req.Title)
	switch n := utf8.RuneCountInString(title); {
	case n == 0:
		return model.Event{}, invalid("title", "title is required")
	case n < 5 || n > 200:
		return model.Event{}, invalid("title", "title must be between 5 and 200 characters")
	}
	description := strings.TrimSpace(req.Description)
	if utf8.RuneCountInString(description) < 10 {
		return model.Event{}, invalid("description", "description must have at least 10 characters")
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return model.Event{}, invalid("category", "category is required")
	}
	if !req.Date.IsValid() {
		return model.Event{}, invalid("date", "date is required")
	}
	if !req.Time.IsValid() {
		return model.Event{}, invalid("time", "time is not valid")
	}
	modality := model.Modality(strings.ToUpper(strings.TrimSpace(string(req.Modality))))
	if !modality.Valid() {
		return model.Event{}, invalid("modality", "modality must be PRESENCIAL, VIRTUAL or HIBRIDA")
	}
	price, err := normalizePrice(req.Price)
	if err != nil {
		return model.Event{}, err
	}
	if req.Capacity != nil && *req.Capacity <= 0 {
		return model.Event{}, invalid("capacity", "capacity must be a positive integer")
	}
	if req.Capacity != nil && *req.Capacity > 100_000 {
		return model.Event{}, invalid("capacity", "capacity cannot exceed 100,000")
	}

	loc := model.Location{
		FullAddress:     strings.TrimSpace(req.Location.FullAddress),
		Neighborhood:    strings.TrimSpace(req.Location.Neighborhood),
		DetailedAddress: strings.TrimSpace(req.Location.DetailedAddress),
		MapLink:         strings.TrimSpace(req.Location.MapLink),
	}
	if loc.FullAddress == "" {
		return model.Event{}, invalid("location.full_address", "full address is required")
	}
	if loc.Neighborhood == "" {
		return model.Event{}, invalid("location.neighborhood", "neighborhood is required")
	}

	org := model.Organizer{
		Name:           strings.TrimSpace(req.Organizer.Name),
		Phone:          strings.TrimSpace(req.Organizer.Phone),
		Identification: strings.TrimSpace(req.Organizer.Identification),
		Email:          strings.TrimSpace(strings.ToLower(req.Organizer.Email)),
	}
	if org.Name == "" {
		return model.Event{}, invalid("organizer.name", "organizer name is required")
	}
	if org.Email != "" && !isValidEmail(org.Email) {
		return model.Event{}, invalid("organizer.email", "organizer email is not a valid email address")
	}

	occurrences, err := buildOccurrences(req)
	if err != nil {
		return model.Event{}, err
	}

	services := make([]string, 0, len(req.Services))
	for _, name := range req.Services {
		if name = strings.TrimSpace(name); name != "" && !slices.Contains(services, name) {
			services = append(services, name)
		}
	}

	return model.Event{
		Title:       title,
		Description: description,
		Category:    category,
		Date:        req.Date,
		Time:        req.Time,
		Modality:    modality,
		Capacity:    req.Capacity,
		Price:       price,
		Featured:    req.Featured,
		Status:      model.StatusPublished,
		CoverImage:  strings.TrimSpace(req.CoverImage),
		Services:    services,
		Location:    loc,
		Organizer:   org,
		Occurrences: occurrences,
	}, nil
}

// normalizePrice accepts the free marker or a non-negative number. Blank
// means free.
func normalizePrice(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" || strings.EqualFold(p, model.FreePrice) {
		return model.FreePrice, nil
	}
	v, err := strconv.ParseFloat(p, 64)
	if err != nil || v < 0 {
		return "", invalid("price", `price must be "gratuito" or a non-negative number`)
	}
	return p, nil
}

func buildOccurrences(req model.CreateEventRequest) ([]model.Occurrence, error) {
	if len(req.Occurrences) == 0 {
		return []model.Occurrence{{
			Number: 1,
			Date:   req.Date,
			Time:   req.Time,
			Status: model.OccurrencePublished,
		}}, nil
	}

	out := make([]model.Occurrence, 0, len(req.Occurrences))
	seen := make(map[int]bool, len(req.Occurrences))
	for i, o := range req.Occurrences {
		n := o.Number
		if n <= 0 {
			n = i + 1
		}
		if seen[n] {
			return nil, invalid("occurrences", fmt.Sprintf("occurrence number %d is repeated", n))
		}
		seen[n] = true
		if !o.Date.IsValid() {
			return nil, invalid("occurrences", fmt.Sprintf("occurrence %d has no valid date", n))
		}
		if !o.Time.IsValid() {
			return nil, invalid("occurrences", fmt.Sprintf("occurrence %d has no valid time", n))
		}
		out = append(out, model.Occurrence{
			Number: n,
			Date:   o.Date,
			Time:   o.Time,
			Status: model.OccurrencePublished,
		})
	}
	slices.SortFunc(out, func(a, b model.Occurrence) int { return cmp.Compare(a.Number, b.Number) })
	return out, nil
}

// isValidEmail does a basic structural check.
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}
