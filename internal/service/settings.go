package service

import (
	"log/slog"
	"time"

	"cloud.google.com/go/civil"
)

// settings holds what every service shares: the wall clock, the catalog's
// time zone and the logger.
type settings struct {
	now func() time.Time
	loc *time.Location
	log *slog.Logger
}

func newSettings(opts []Option) settings {
	s := settings{now: time.Now, loc: time.Local, log: slog.Default()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// today is the calendar day of now in loc.
func (s settings) today() civil.Date {
	return civil.DateOf(s.now().In(s.loc))
}

// Option configures a service.
type Option func(*settings)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the time zone that decides which calendar day is today.
func WithLocation(loc *time.Location) Option {
	return func(s *settings) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}
