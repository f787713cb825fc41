package filter

import (
	"cloud.google.com/go/civil"

	"github.com/Shivanand-hulikatti/events-catalog/internal/model"
)

// Compose builds the conjunction of one predicate per present field of c.
// Published-only is always part of it unless c.IncludeInactive is set.
// today anchors the availability filter.
func Compose(c model.FilterCriteria, today civil.Date) Predicate {
	active := True()
	if !c.IncludeInactive {
		active = OnlyActive()
	}
	return And(
		active,
		Text(c.Text),
		Location(c.Location),
		Category(c.Category),
		DateFrom(c.DateFrom),
		DateTo(c.DateTo),
		Featured(c.Featured),
		Free(c.Free),
		Modality(c.Modality),
		Organizer(c.Organizer),
		PriceRange(c.PriceMin, c.PriceMax),
		Schedule(c.Schedule),
		Service(c.Service),
		Available(c.Available, today),
	)
}
