package filter

import (
	"strings"
	"time"

	"cloud.google.com/go/civil"
	sq "github.com/Masterminds/squirrel"

	"github.com/Shivanand-hulikatti/events-catalog/internal/model"
	"github.com/Shivanand-hulikatti/events-catalog/internal/textnorm"
)

// Columns of the events table, aliased as "e".
const (
	colTitle           = "e.title"
	colDescription     = "e.description"
	colCategory        = "e.category"
	colDate            = "e.event_date"
	colModality        = "e.modality"
	colPrice           = "e.price"
	colFeatured        = "e.featured"
	colStatus          = "e.status"
	colNeighborhood    = "e.neighborhood"
	colFullAddress     = "e.full_address"
	colDetailedAddress = "e.detailed_address"
	colOrganizerName   = "e.organizer_name"
)

// firstOccurrenceTime selects the time of the lowest-numbered occurrence.
const firstOccurrenceTime = "(SELECT o.occurrence_time FROM event_occurrences o WHERE o.event_id = e.id ORDER BY o.number ASC LIMIT 1)"

var (
	dayStart = civil.Time{Hour: 6}
	dayEnd   = civil.Time{Hour: 18}
)

// Text matches the title, description or organizer name.
func Text(t string) Predicate {
	if isBlank(t) {
		return True()
	}
	t = strings.TrimSpace(t)
	return leaf{
		name: "text",
		match: func(e *model.Event) bool {
			return textnorm.ContainsAny(t, e.Title, e.Description, e.Organizer.Name)
		},
		sql: likeAny(t, colTitle, colDescription, colOrganizerName),
	}
}

// Location matches the neighborhood, full address or detailed address.
func Location(l string) Predicate {
	if isBlank(l) {
		return True()
	}
	l = strings.TrimSpace(l)
	return leaf{
		name: "location",
		match: func(e *model.Event) bool {
			return textnorm.ContainsAny(l, e.Location.Neighborhood, e.Location.FullAddress, e.Location.DetailedAddress)
		},
		sql: likeAny(l, colNeighborhood, colFullAddress, colDetailedAddress),
	}
}

// Category matches the category exactly, including case.
func Category(c string) Predicate {
	if isBlank(c) {
		return True()
	}
	return leaf{
		name:  "category",
		match: func(e *model.Event) bool { return e.Category == c },
		sql:   sq.Eq{colCategory: c},
	}
}

// DateFrom matches events on or after d.
func DateFrom(d *civil.Date) Predicate {
	if d == nil {
		return True()
	}
	day := *d
	return leaf{
		name:  "dateFrom",
		match: func(e *model.Event) bool { return !e.Date.Before(day) },
		sql:   sq.GtOrEq{colDate: day.String()},
	}
}

// DateTo matches events on or before d.
func DateTo(d *civil.Date) Predicate {
	if d == nil {
		return True()
	}
	day := *d
	return leaf{
		name:  "dateTo",
		match: func(e *model.Event) bool { return !e.Date.After(day) },
		sql:   sq.LtOrEq{colDate: day.String()},
	}
}

// DateRange matches events between the present bounds, inclusive.
func DateRange(from, to *civil.Date) Predicate {
	return And(DateFrom(from), DateTo(to))
}

// OnDate matches events dated exactly d.
func OnDate(d civil.Date) Predicate {
	return DateRange(&d, &d)
}

// Featured matches the featured flag.
func Featured(b *bool) Predicate {
	if b == nil {
		return True()
	}
	want := *b
	return leaf{
		name:  "featured",
		match: func(e *model.Event) bool { return e.Featured == want },
		sql:   sq.Eq{colFeatured: want},
	}
}

// Status matches the lifecycle status.
func Status(s model.Status) Predicate {
	if s == "" {
		return True()
	}
	return leaf{
		name:  "status:" + string(s),
		match: func(e *model.Event) bool { return e.Status == s },
		sql:   sq.Eq{colStatus: string(s)},
	}
}

// OnlyActive matches published events.
func OnlyActive() Predicate {
	return Status(model.StatusPublished)
}

// Free matches events whose price descriptor is (or, with false, is not)
// the free marker.
func Free(b *bool) Predicate {
	if b == nil {
		return True()
	}
	if *b {
		return leaf{
			name:  "free",
			match: func(e *model.Event) bool { return textnorm.Normalize(e.Price) == model.FreePrice },
			sql:   sq.Expr("lower(unaccent("+colPrice+")) = ?", model.FreePrice),
		}
	}
	return leaf{
		name:  "paid",
		match: func(e *model.Event) bool { return textnorm.Normalize(e.Price) != model.FreePrice },
		sql:   sq.Expr("lower(unaccent("+colPrice+")) <> ?", model.FreePrice),
	}
}

// Modality matches the modality ignoring case.
func Modality(m string) Predicate {
	if isBlank(m) {
		return True()
	}
	want := strings.ToUpper(strings.TrimSpace(m))
	return leaf{
		name:  "modality",
		match: func(e *model.Event) bool { return strings.ToUpper(string(e.Modality)) == want },
		sql:   sq.Expr("upper("+colModality+") = ?", want),
	}
}

// Upcoming matches events dated today or later.
func Upcoming(today civil.Date) Predicate {
	return leaf{
		name:  "upcoming",
		match: func(e *model.Event) bool { return !e.Date.Before(today) },
		sql:   sq.GtOrEq{colDate: today.String()},
	}
}

// Organizer matches the organizer name.
func Organizer(o string) Predicate {
	if isBlank(o) {
		return True()
	}
	o = strings.TrimSpace(o)
	return leaf{
		name:  "organizer",
		match: func(e *model.Event) bool { return textnorm.Contains(e.Organizer.Name, o) },
		sql:   likeAny(o, colOrganizerName),
	}
}

// Keywords splits k on whitespace and requires every token to appear in
// the title, description, category, organizer name or neighborhood.
func Keywords(k string) Predicate {
	tokens := strings.Fields(k)
	if len(tokens) == 0 {
		return True()
	}
	preds := make([]Predicate, 0, len(tokens))
	for _, tok := range tokens {
		preds = append(preds, leaf{
			name: "keyword:" + tok,
			match: func(e *model.Event) bool {
				return textnorm.ContainsAny(tok, e.Title, e.Description, e.Category, e.Organizer.Name, e.Location.Neighborhood)
			},
			sql: likeAny(tok, colTitle, colDescription, colCategory, colOrganizerName, colNeighborhood),
		})
	}
	return And(preds...)
}

// PriceRange keeps the catalog's historical price policy: a minimum admits
// every non-free event and a maximum admits every free event. The numeric
// bounds themselves are not compared.
func PriceRange(minPrice, maxPrice *float64) Predicate {
	if minPrice == nil && maxPrice == nil {
		return True()
	}
	yes, no := true, false
	var parts []Predicate
	if minPrice != nil {
		parts = append(parts, Free(&no))
	}
	if maxPrice != nil {
		parts = append(parts, Free(&yes))
	}
	return or(parts...)
}

// Schedule matches on the time of the first occurrence. DIURNO is
// 06:00 to 18:00 inclusive, NOCTURNO is after 18:00 or before 06:00.
// Events without occurrences never match; unknown tags match everything.
func Schedule(tag string) Predicate {
	switch strings.ToUpper(strings.TrimSpace(tag)) {
	case model.ScheduleDay:
		return leaf{
			name: "schedule:day",
			match: func(e *model.Event) bool {
				t, ok := e.FirstOccurrenceTime()
				return ok && clock(t) >= clock(dayStart) && clock(t) <= clock(dayEnd)
			},
			sql: sq.Expr(firstOccurrenceTime+" BETWEEN ? AND ?", dayStart.String(), dayEnd.String()),
		}
	case model.ScheduleNight:
		return leaf{
			name: "schedule:night",
			match: func(e *model.Event) bool {
				t, ok := e.FirstOccurrenceTime()
				return ok && (clock(t) > clock(dayEnd) || clock(t) < clock(dayStart))
			},
			sql: sq.Expr("("+firstOccurrenceTime+" > ? OR "+firstOccurrenceTime+" < ?)", dayEnd.String(), dayStart.String()),
		}
	}
	return True()
}

// Service matches events offering an amenity whose name contains name.
func Service(name string) Predicate {
	if isBlank(name) {
		return True()
	}
	name = strings.TrimSpace(name)
	return leaf{
		name: "service",
		match: func(e *model.Event) bool {
			return textnorm.ContainsAny(name, e.Services...)
		},
		sql: sq.Expr(
			"EXISTS (SELECT 1 FROM event_services s WHERE s.event_id = e.id AND lower(unaccent(s.name)) LIKE ? ESCAPE '\\')",
			likePattern(name),
		),
	}
}

// Available matches published events dated today or later, or with false
// everything else.
func Available(b *bool, today civil.Date) Predicate {
	if b == nil {
		return True()
	}
	available := And(OnlyActive(), Upcoming(today))
	if *b {
		return available
	}
	return Not(available)
}

// HasUpcomingOccurrence matches events with at least one occurrence dated
// today or later.
func HasUpcomingOccurrence(today civil.Date) Predicate {
	return leaf{
		name:  "upcomingOccurrence",
		match: func(e *model.Event) bool { return e.HasOccurrenceFrom(today) },
		sql: sq.Expr(
			"EXISTS (SELECT 1 FROM event_occurrences o WHERE o.event_id = e.id AND o.occurrence_date >= ?)",
			today.String(),
		),
	}
}

func likeAny(needle string, cols ...string) sq.Sqlizer {
	pattern := likePattern(needle)
	disj := make(sq.Or, 0, len(cols))
	for _, c := range cols {
		disj = append(disj, sq.Expr("lower(unaccent("+c+")) LIKE ? ESCAPE '\\'", pattern))
	}
	if len(disj) == 1 {
		return disj[0]
	}
	return disj
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(needle string) string {
	return "%" + likeEscaper.Replace(textnorm.Normalize(needle)) + "%"
}

// clock returns the nanoseconds elapsed since midnight.
func clock(t civil.Time) int64 {
	return int64(t.Hour)*int64(time.Hour) +
		int64(t.Minute)*int64(time.Minute) +
		int64(t.Second)*int64(time.Second) +
		int64(t.Nanosecond)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
