package service

import (
	"cloud.google.com/go/civil"

	"github.com/Shivanand-hulikatti/events-catalog/internal/model"
)

// isAvailable reports whether a summary should be shown as bookable.
// Events dated yesterday or earlier are not.
func isAvailable(e *model.Event, today civil.Date) bool {
	return e.Status == model.StatusPublished && e.Date.After(today.AddDays(-1))
}

func firstTime(e *model.Event) *civil.Time {
	t, ok := e.FirstOccurrenceTime()
	if !ok {
		return nil
	}
	return &t
}

func toMosaic(e *model.Event, today civil.Date) model.MosaicSummary {
	return model.MosaicSummary{
		ID:            e.ID,
		CoverImage:    e.CoverImage,
		Title:         e.Title,
		Category:      e.Category,
		Date:          e.Date,
		Time:          firstTime(e),
		Neighborhood:  e.Location.Neighborhood,
		FullAddress:   e.Location.FullAddress,
		OrganizerName: e.Organizer.Name,
		Price:         e.Price,
		Featured:      e.Featured,
		Modality:      e.Modality,
		Available:     isAvailable(e, today),
	}
}

func toMosaics(events []model.Event, today civil.Date) []model.MosaicSummary {
	out := make([]model.MosaicSummary, len(events))
	for i := range events {
		out[i] = toMosaic(&events[i], today)
	}
	return out
}

func toList(events []model.Event, today civil.Date) []model.ListSummary {
	out := make([]model.ListSummary, len(events))
	for i := range events {
		e := &events[i]
		out[i] = model.ListSummary{
			ID:            e.ID,
			Title:         e.Title,
			Date:          e.Date,
			Time:          firstTime(e),
			Neighborhood:  e.Location.Neighborhood,
			FullAddress:   e.Location.FullAddress,
			OrganizerName: e.Organizer.Name,
			Category:      e.Category,
			Price:         e.Price,
			Featured:      e.Featured,
			Available:     isAvailable(e, today),
		}
	}
	return out
}
