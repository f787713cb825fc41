// Package repository implements the event data sources used by the search core.
// EventRepository runs composed predicates as SQL over PostgreSQL through pgx;
// MemoryEventRepository evaluates them directly against records held in memory.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanand-hulikatti/events-catalog/internal/filter"
	"github.com/Shivanand-hulikatti/events-catalog/internal/model"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var eventColumns = []string{
	"e.id", "e.title", "e.description", "e.category", "e.event_date", "e.event_time",
	"e.modality", "e.capacity", "e.price", "e.featured", "e.status", "e.cover_image",
	"e.full_address", "e.neighborhood", "e.detailed_address", "e.map_link",
	"e.organizer_name", "e.organizer_phone", "e.organizer_identification", "e.organizer_email",
	"e.created_at", "e.updated_at",
}

// EventRepository handles persistence for events.
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts a new event with its services and occurrences in one
// transaction and returns it with a generated UUID.
func (r *EventRepository) Create(ctx context.Context, event model.Event) (*model.Event, error) {
	now := time.Now().UTC()
	event.ID = uuid.New().String()
	event.CreatedAt = now
	event.UpdatedAt = now

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	sql, args, err := insertEventQuery(event).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert event: %w", err)
	}
	if _, err = tx.Exec(ctx, sql, args...); err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	for _, name := range event.Services {
		_, err = tx.Exec(ctx,
			`INSERT INTO event_services (event_id, name) VALUES ($1, $2)`,
			event.ID, name,
		)
		if err != nil {
			return nil, fmt.Errorf("insert event service: %w", err)
		}
	}

	for _, o := range event.Occurrences {
		_, err = tx.Exec(ctx,
			`INSERT INTO event_occurrences (event_id, number, occurrence_date, occurrence_time, status)
			 VALUES ($1, $2, $3, $4, $5)`,
			event.ID, o.Number, o.Date.String(), o.Time.String(), string(o.Status),
		)
		if err != nil {
			return nil, fmt.Errorf("insert event occurrence: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return &event, nil
}

// GetByID returns a single event or ErrNotFound.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	sql, args, err := psql.Select(eventColumns...).
		From("events e").
		Where(sq.Eq{"e.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get event: %w", err)
	}

	e, err := scanEvent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	events := []model.Event{*e}
	if err := r.loadChildren(ctx, events); err != nil {
		return nil, err
	}
	return &events[0], nil
}

// FindMatching returns one page of events matching pred in the given order
// together with the total number of matches.
func (r *EventRepository) FindMatching(ctx context.Context, pred filter.Predicate, order filter.Order, page, size int) ([]model.Event, int, error) {
	sql, args, err := countQuery(pred).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count events: %w", err)
	}
	var total int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}
	if total == 0 || filter.Offset(page, size) >= total {
		return []model.Event{}, total, nil
	}

	events, err := r.query(ctx, pageQuery(pred, order, page, size))
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// FindAll returns every event matching pred in the given order.
func (r *EventRepository) FindAll(ctx context.Context, pred filter.Predicate, order filter.Order) ([]model.Event, error) {
	return r.query(ctx, selectQuery(pred, order))
}

func (r *EventRepository) query(ctx context.Context, q sq.SelectBuilder) ([]model.Event, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list events: %w", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := []model.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	if err := r.loadChildren(ctx, events); err != nil {
		return nil, err
	}
	return events, nil
}

// loadChildren fills services and occurrences for events in two queries.
func (r *EventRepository) loadChildren(ctx context.Context, events []model.Event) error {
	if len(events) == 0 {
		return nil
	}
	index := make(map[string]int, len(events))
	ids := make([]string, len(events))
	for i := range events {
		index[events[i].ID] = i
		ids[i] = events[i].ID
		events[i].Services = []string{}
		events[i].Occurrences = []model.Occurrence{}
	}

	sql, args, err := psql.Select("event_id", "name").
		From("event_services").
		Where(sq.Eq{"event_id": ids}).
		OrderBy("event_id", "name").
		ToSql()
	if err != nil {
		return fmt.Errorf("build list services: %w", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("list services: %w", err)
	}
	for rows.Next() {
		var eventID, name string
		if err := rows.Scan(&eventID, &name); err != nil {
			rows.Close()
			return fmt.Errorf("scan service: %w", err)
		}
		i := index[eventID]
		events[i].Services = append(events[i].Services, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("list services: %w", err)
	}

	sql, args, err = psql.Select("event_id", "number", "occurrence_date", "occurrence_time", "status").
		From("event_occurrences").
		Where(sq.Eq{"event_id": ids}).
		OrderBy("event_id", "number").
		ToSql()
	if err != nil {
		return fmt.Errorf("build list occurrences: %w", err)
	}
	rows, err = r.db.Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("list occurrences: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			eventID, status string
			number          int
			date            time.Time
			clock           pgtype.Time
		)
		if err := rows.Scan(&eventID, &number, &date, &clock, &status); err != nil {
			return fmt.Errorf("scan occurrence: %w", err)
		}
		i := index[eventID]
		events[i].Occurrences = append(events[i].Occurrences, model.Occurrence{
			Number: number,
			Date:   civil.DateOf(date),
			Time:   civilTime(clock),
			Status: model.OccurrenceStatus(status),
		})
	}
	return rows.Err()
}

// ─── Query builders ───────────────────────────────────────────────────────────

func selectQuery(pred filter.Predicate, order filter.Order) sq.SelectBuilder {
	return psql.Select(eventColumns...).
		From("events e").
		Where(pred).
		OrderBy(order.OrderBy()...)
}

func pageQuery(pred filter.Predicate, order filter.Order, page, size int) sq.SelectBuilder {
	return selectQuery(pred, order).
		Limit(uint64(max(size, 0))).
		Offset(uint64(filter.Offset(page, size)))
}

func countQuery(pred filter.Predicate) sq.SelectBuilder {
	return psql.Select("COUNT(*)").
		From("events e").
		Where(pred)
}

func insertEventQuery(e model.Event) sq.InsertBuilder {
	return psql.Insert("events").
		Columns(
			"id", "title", "description", "category", "event_date", "event_time",
			"modality", "capacity", "price", "featured", "status", "cover_image",
			"full_address", "neighborhood", "detailed_address", "map_link",
			"organizer_name", "organizer_phone", "organizer_identification", "organizer_email",
			"created_at", "updated_at",
		).
		Values(
			e.ID, e.Title, e.Description, e.Category, e.Date.String(), e.Time.String(),
			string(e.Modality), e.Capacity, e.Price, e.Featured, string(e.Status), e.CoverImage,
			e.Location.FullAddress, e.Location.Neighborhood, e.Location.DetailedAddress, e.Location.MapLink,
			e.Organizer.Name, e.Organizer.Phone, e.Organizer.Identification, e.Organizer.Email,
			e.CreatedAt, e.UpdatedAt,
		)
}

// ─── Scanning ─────────────────────────────────────────────────────────────────

func scanEvent(row pgx.Row) (*model.Event, error) {
	var (
		e                  model.Event
		date               time.Time
		clock              pgtype.Time
		modality, status   string
		coverImage, mapLnk *string
	)
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Category, &date, &clock,
		&modality, &e.Capacity, &e.Price, &e.Featured, &status, &coverImage,
		&e.Location.FullAddress, &e.Location.Neighborhood, &e.Location.DetailedAddress, &mapLnk,
		&e.Organizer.Name, &e.Organizer.Phone, &e.Organizer.Identification, &e.Organizer.Email,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Date = civil.DateOf(date)
	e.Time = civilTime(clock)
	e.Modality = model.Modality(modality)
	e.Status = model.Status(status)
	if coverImage != nil {
		e.CoverImage = *coverImage
	}
	if mapLnk != nil {
		e.Location.MapLink = *mapLnk
	}
	return &e, nil
}

func civilTime(t pgtype.Time) civil.Time {
	if !t.Valid {
		return civil.Time{}
	}
	return civil.TimeOf(time.Unix(0, 0).UTC().Add(time.Duration(t.Microseconds) * time.Microsecond))
}
