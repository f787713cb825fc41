package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Shivanand-hulikatti/events-catalog/internal/filter"
	"github.com/Shivanand-hulikatti/events-catalog/internal/model"
)

// MemoryEventRepository keeps events in memory and evaluates predicates
// with filter.Predicate.Match.
type MemoryEventRepository struct {
	mu     sync.RWMutex
	events []model.Event
}

// NewMemoryEventRepository constructs a MemoryEventRepository holding events.
func NewMemoryEventRepository(events ...model.Event) *MemoryEventRepository {
	r := &MemoryEventRepository{}
	for _, e := range events {
		r.events = append(r.events, clone(e))
	}
	return r
}

// Create stores a copy of event under a generated UUID.
func (r *MemoryEventRepository) Create(_ context.Context, event model.Event) (*model.Event, error) {
	now := time.Now().UTC()
	event.ID = uuid.New().String()
	event.CreatedAt = now
	event.UpdatedAt = now

	r.mu.Lock()
	r.events = append(r.events, clone(event))
	r.mu.Unlock()

	out := clone(event)
	return &out, nil
}

// GetByID returns a single event or ErrNotFound.
func (r *MemoryEventRepository) GetByID(_ context.Context, id string) (*model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.events {
		if e.ID == id {
			out := clone(e)
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

// FindMatching returns one page of events matching pred in the given order
// together with the total number of matches.
func (r *MemoryEventRepository) FindMatching(ctx context.Context, pred filter.Predicate, order filter.Order, page, size int) ([]model.Event, int, error) {
	matched, err := r.FindAll(ctx, pred, order)
	if err != nil {
		return nil, 0, err
	}
	total := len(matched)
	start := min(filter.Offset(page, size), total)
	end := start + min(max(size, 0), total-start)
	return matched[start:end], total, nil
}

// FindAll returns every event matching pred in the given order.
func (r *MemoryEventRepository) FindAll(ctx context.Context, pred filter.Predicate, order filter.Order) ([]model.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	matched := []model.Event{}
	for i := range r.events {
		if pred.Match(&r.events[i]) {
			matched = append(matched, clone(r.events[i]))
		}
	}
	r.mu.RUnlock()

	order.Sort(matched)
	return matched, nil
}

func clone(e model.Event) model.Event {
	e.Services = slices.Clone(e.Services)
	e.Occurrences = slices.Clone(e.Occurrences)
	if e.Capacity != nil {
		c := *e.Capacity
		e.Capacity = &c
	}
	return e
}
