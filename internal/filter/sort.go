package filter

import (
	"slices"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/Shivanand-hulikatti/events-catalog/internal/model"
)

// SortField names an orderable event attribute.
type SortField string

const (
	SortByDate      SortField = "date"
	SortByTitle     SortField = "title"
	SortByFeatured  SortField = "featured"
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
	SortByTime      SortField = "time"
)

// Direction is an ordering direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// SortKey orders by one field.
type SortKey struct {
	Field SortField
	Dir   Direction
}

// Order is a list of sort keys applied left to right. Event id is the
// implicit final key so pages are stable.
type Order []SortKey

// By returns a single-key Order.
func By(field SortField, dir Direction) Order {
	return Order{{Field: field, Dir: dir}}
}

// Then appends a key to o.
func (o Order) Then(field SortField, dir Direction) Order {
	return append(slices.Clip(o), SortKey{Field: field, Dir: dir})
}

// sortAliases maps accepted request values, lower-cased, to fields.
var sortAliases = map[string]SortField{
	"date":      SortByDate,
	"fecha":     SortByDate,
	"title":     SortByTitle,
	"titulo":    SortByTitle,
	"featured":  SortByFeatured,
	"destacado": SortByFeatured,
	"createdat": SortByCreatedAt,
}

// ResolveSort maps a requested field and direction to an Order. Unknown
// fields sort by date and unknown directions are ascending.
func ResolveSort(field, dir string) Order {
	f, ok := sortAliases[strings.ToLower(strings.TrimSpace(field))]
	if !ok {
		f = SortByDate
	}
	d := Asc
	if strings.EqualFold(strings.TrimSpace(dir), string(Desc)) {
		d = Desc
	}
	return By(f, d)
}

var sortColumns = map[SortField]string{
	SortByDate:      "e.event_date",
	SortByTitle:     "e.title",
	SortByFeatured:  "e.featured",
	SortByCreatedAt: "e.created_at",
	SortByUpdatedAt: "e.updated_at",
	SortByTime:      "e.event_time",
}

// OrderBy renders o as ORDER BY clauses for the "e" alias.
func (o Order) OrderBy() []string {
	clauses := make([]string, 0, len(o)+1)
	for _, k := range o {
		col, ok := sortColumns[k.Field]
		if !ok {
			col = sortColumns[SortByDate]
		}
		clauses = append(clauses, col+" "+string(k.direction()))
	}
	return append(clauses, "e.id ASC")
}

// Compare orders a before b (negative), after (positive) or equal (zero).
func (o Order) Compare(a, b *model.Event) int {
	for _, k := range o {
		c := compareField(k.Field, a, b)
		if k.direction() == Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return strings.Compare(a.ID, b.ID)
}

// Sort orders events in place.
func (o Order) Sort(events []model.Event) {
	slices.SortStableFunc(events, func(a, b model.Event) int {
		return o.Compare(&a, &b)
	})
}

func (k SortKey) direction() Direction {
	if k.Dir == Desc {
		return Desc
	}
	return Asc
}

func compareField(f SortField, a, b *model.Event) int {
	switch f {
	case SortByTitle:
		return strings.Compare(a.Title, b.Title)
	case SortByFeatured:
		return compareBool(a.Featured, b.Featured)
	case SortByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case SortByUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	case SortByTime:
		return compareInt64(clock(a.Time), clock(b.Time))
	}
	return compareDate(a.Date, b.Date)
}

func compareDate(a, b civil.Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	}
	return -1
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
