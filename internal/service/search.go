package service

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Shivanand-hulikatti/events-catalog/internal/filter"
	"github.com/Shivanand-hulikatti/events-catalog/internal/model"
	"github.com/Shivanand-hulikatti/events-catalog/internal/telemetry"
)

const (
	// CarouselSize is the most events the home carousel shows.
	CarouselSize = 3
	// FeaturedPageSize is the default page size of FeaturedEvents.
	FeaturedPageSize = 10
	// UpcomingDays is the default look-ahead window of UpcomingEvents.
	UpcomingDays = 30
)

// EventSource is the read side of an event store. Implementations must
// evaluate pred exactly and order results by order.
type EventSource interface {
	FindMatching(ctx context.Context, pred filter.Predicate, order filter.Order, page, size int) ([]model.Event, int, error)
	FindAll(ctx context.Context, pred filter.Predicate, order filter.Order) ([]model.Event, error)
}

// SearchService answers every public catalog search.
type SearchService struct {
	settings
	events EventSource
}

// NewSearchService constructs a SearchService over events.
func NewSearchService(events EventSource, opts ...Option) *SearchService {
	return &SearchService{settings: newSettings(opts), events: events}
}

// Search runs an advanced search and returns one page in the requested view.
func (s *SearchService) Search(ctx context.Context, c model.FilterCriteria) (_ *model.ResultPage, err error) {
	ctx, span := startSpan(ctx, "SearchService.Search")
	defer func() { endSpan(span, err) }()

	if !c.DatesValid() {
		return nil, invalid("date_from", "date_from must not be after date_to")
	}

	today := s.today()
	pred := filter.Compose(c, today)
	order := filter.ResolveSort(c.SortBy, c.SortDir)
	view := model.ParseViewMode(string(c.View))
	page := filter.ResolvePage(c.Page)
	size := filter.ResolvePageSize(c.Size, view)

	span.SetAttributes(attribute.Bool("search.has_filters", c.HasFilters()))
	s.log.DebugContext(ctx, "advanced search", "has_filters", c.HasFilters(), "sort_by", c.SortBy)

	return s.page(ctx, span, pred, order, view, page, size, today)
}

// SearchByKeywords matches published events whose text fields contain
// every whitespace separated word of text. Featured events come first.
func (s *SearchService) SearchByKeywords(ctx context.Context, text string, page, size *int, view model.ViewMode) (_ *model.ResultPage, err error) {
	ctx, span := startSpan(ctx, "SearchService.SearchByKeywords")
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(text) == "" {
		return nil, invalid("q", "search text is required")
	}

	today := s.today()
	pred := filter.And(filter.OnlyActive(), filter.Keywords(text))
	order := filter.By(filter.SortByFeatured, filter.Desc).Then(filter.SortByDate, filter.Asc)
	view = model.ParseViewMode(string(view))

	return s.page(ctx, span, pred, order, view, filter.ResolvePage(page), filter.ResolvePageSize(size, view), today)
}

// SearchByLocation returns upcoming published events whose neighborhood or
// address contains text, soonest first.
func (s *SearchService) SearchByLocation(ctx context.Context, text string) (_ []model.MosaicSummary, err error) {
	ctx, span := startSpan(ctx, "SearchService.SearchByLocation")
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(text) == "" {
		return nil, invalid("q", "location is required")
	}

	today := s.today()
	pred := filter.And(filter.OnlyActive(), filter.Upcoming(today), filter.Location(text))
	return s.mosaic(ctx, span, pred, filter.By(filter.SortByDate, filter.Asc), today)
}

// SearchByDate returns the published events held on date, earliest first.
func (s *SearchService) SearchByDate(ctx context.Context, date *civil.Date) (_ []model.MosaicSummary, err error) {
	ctx, span := startSpan(ctx, "SearchService.SearchByDate")
	defer func() { endSpan(span, err) }()

	if date == nil {
		return nil, invalid("date", "date is required")
	}

	today := s.today()
	pred := filter.And(filter.OnlyActive(), filter.OnDate(*date))
	return s.mosaic(ctx, span, pred, filter.By(filter.SortByTime, filter.Asc), today)
}

// SearchByDateRange returns published events dated within [from, to].
// Either bound may be nil.
func (s *SearchService) SearchByDateRange(ctx context.Context, from, to *civil.Date) (_ []model.MosaicSummary, err error) {
	ctx, span := startSpan(ctx, "SearchService.SearchByDateRange")
	defer func() { endSpan(span, err) }()

	if !(model.FilterCriteria{DateFrom: from, DateTo: to}).DatesValid() {
		return nil, invalid("from", "from must not be after to")
	}

	today := s.today()
	pred := filter.And(filter.OnlyActive(), filter.DateRange(from, to))
	return s.mosaic(ctx, span, pred, filter.By(filter.SortByDate, filter.Asc), today)
}

// FeaturedCarousel returns up to CarouselSize featured published events
// that still have an occurrence ahead, most recently updated first.
func (s *SearchService) FeaturedCarousel(ctx context.Context) (_ []model.MosaicSummary, err error) {
	ctx, span := startSpan(ctx, "SearchService.FeaturedCarousel")
	defer func() { endSpan(span, err) }()

	today := s.today()
	yes := true
	pred := filter.And(filter.OnlyActive(), filter.Featured(&yes), filter.HasUpcomingOccurrence(today))
	order := filter.By(filter.SortByUpdatedAt, filter.Desc)

	events, err := s.events.FindAll(ctx, pred, order)
	if err != nil {
		return nil, fmt.Errorf("find carousel events: %w", err)
	}
	events = events[:min(len(events), CarouselSize)]
	span.SetAttributes(attribute.Int("search.results", len(events)))
	return toMosaics(events, today), nil
}

// UpcomingEvents pages through published events dated between today and
// today+days. days <= 0 uses UpcomingDays.
func (s *SearchService) UpcomingEvents(ctx context.Context, days int, page, size *int, view model.ViewMode) (_ *model.ResultPage, err error) {
	ctx, span := startSpan(ctx, "SearchService.UpcomingEvents")
	defer func() { endSpan(span, err) }()

	if days <= 0 {
		days = UpcomingDays
	}
	today := s.today()
	until := today.AddDays(days)
	pred := filter.And(filter.OnlyActive(), filter.Upcoming(today), filter.DateTo(&until))
	view = model.ParseViewMode(string(view))

	return s.page(ctx, span, pred, filter.By(filter.SortByDate, filter.Asc), view,
		filter.ResolvePage(page), filter.ResolvePageSize(size, view), today)
}

// FeaturedEvents pages through upcoming featured events in the mosaic view.
func (s *SearchService) FeaturedEvents(ctx context.Context, page, size *int) (_ *model.ResultPage, err error) {
	ctx, span := startSpan(ctx, "SearchService.FeaturedEvents")
	defer func() { endSpan(span, err) }()

	n := FeaturedPageSize
	if size != nil && *size > 0 {
		n = *size
	}
	today := s.today()
	yes := true
	pred := filter.And(filter.OnlyActive(), filter.Featured(&yes), filter.Upcoming(today))

	return s.page(ctx, span, pred, filter.By(filter.SortByDate, filter.Asc), model.ViewMosaic,
		filter.ResolvePage(page), n, today)
}

func (s *SearchService) page(
	ctx context.Context,
	span trace.Span,
	pred filter.Predicate,
	order filter.Order,
	view model.ViewMode,
	page, size int,
	today civil.Date,
) (*model.ResultPage, error) {
	terms := filter.Terms(pred)
	span.SetAttributes(
		attribute.StringSlice("search.filters", terms),
		attribute.String("search.view", string(view)),
		attribute.Int("search.page", page),
		attribute.Int("search.size", size),
	)

	events, total, err := s.events.FindMatching(ctx, pred, order, page, size)
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	s.log.DebugContext(ctx, "search",
		"filters", terms,
		"view", view,
		"page", page,
		"size", size,
		"total", total,
	)
	span.SetAttributes(attribute.Int("search.total", total))

	result := &model.ResultPage{
		View:       view,
		Page:       page,
		Size:       size,
		TotalItems: total,
		TotalPages: filter.TotalPages(total, size),
	}
	if view == model.ViewList {
		result.List = toList(events, today)
	} else {
		result.Mosaic = toMosaics(events, today)
	}
	return result, nil
}

func (s *SearchService) mosaic(ctx context.Context, span trace.Span, pred filter.Predicate, order filter.Order, today civil.Date) ([]model.MosaicSummary, error) {
	terms := filter.Terms(pred)
	span.SetAttributes(attribute.StringSlice("search.filters", terms))

	events, err := s.events.FindAll(ctx, pred, order)
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	s.log.DebugContext(ctx, "search", "filters", terms, "total", len(events))
	span.SetAttributes(attribute.Int("search.results", len(events)))
	return toMosaics(events, today), nil
}

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return telemetry.Global().T().Start(ctx, name)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
