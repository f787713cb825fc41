package handler

import (
	"net/url"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/Shivanand-hulikatti/events-catalog/internal/model"
	"github.com/Shivanand-hulikatti/events-catalog/internal/service"
)

// query reads typed values out of url.Values and keeps the first parse error.
type query struct {
	values url.Values
	err    *service.ValidationError
}

func newQuery(v url.Values) *query {
	return &query{values: v}
}

// Err returns the first parse failure, or nil.
func (q *query) Err() error {
	if q.err == nil {
		return nil
	}
	return q.err
}

func (q *query) fail(key, msg string) {
	if q.err == nil {
		q.err = &service.ValidationError{Field: key, Message: msg}
	}
}

func (q *query) str(key string) string {
	return strings.TrimSpace(q.values.Get(key))
}

func (q *query) date(key string) *civil.Date {
	s := q.str(key)
	if s == "" {
		return nil
	}
	d, err := civil.ParseDate(s)
	if err != nil {
		q.fail(key, key+" must be a date formatted YYYY-MM-DD")
		return nil
	}
	return &d
}

func (q *query) boolean(key string) *bool {
	s := q.str(key)
	if s == "" {
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		q.fail(key, key+" must be true or false")
		return nil
	}
	return &b
}

func (q *query) integer(key string) *int {
	s := q.str(key)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		q.fail(key, key+" must be an integer")
		return nil
	}
	return &n
}

func (q *query) float(key string) *float64 {
	s := q.str(key)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		q.fail(key, key+" must be a number")
		return nil
	}
	return &f
}

// parseCriteria reads the advanced search parameters.
func parseCriteria(v url.Values) (model.FilterCriteria, error) {
	q := newQuery(v)
	text := q.str("text")
	if text == "" {
		text = q.str("q")
	}
	c := model.FilterCriteria{
		Text:      text,
		Location:  q.str("location"),
		Category:  q.str("category"),
		DateFrom:  q.date("date_from"),
		DateTo:    q.date("date_to"),
		Featured:  q.boolean("featured"),
		Free:      q.boolean("free"),
		Modality:  q.str("modality"),
		Organizer: q.str("organizer"),
		PriceMin:  q.float("price_min"),
		PriceMax:  q.float("price_max"),
		Schedule:  q.str("schedule"),
		Service:   q.str("service"),
		Available: q.boolean("available"),
		SortBy:    q.str("sort"),
		SortDir:   q.str("dir"),
		View:      model.ParseViewMode(q.str("view")),
		Page:      q.integer("page"),
		Size:      q.integer("size"),
	}
	if inactive := q.boolean("include_inactive"); inactive != nil {
		c.IncludeInactive = *inactive
	}
	return c, q.Err()
}
