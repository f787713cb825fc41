package main

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/Shivanand-hulikatti/events-catalog/internal/model"
	"github.com/Shivanand-hulikatti/events-catalog/internal/service"
)

// seed fills an empty in-memory catalog with a handful of events around today.
func seed(ctx context.Context, svc *service.EventService, loc *time.Location) error {
	today := civil.DateOf(time.Now().In(loc))
	capacity := 300

	reqs := []model.CreateEventRequest{
		{
			Title:       "Concierto de música andina",
			Description: "Agrupaciones locales interpretan música andina tradicional.",
			Category:    "Música",
			Date:        today.AddDays(3),
			Time:        civil.Time{Hour: 19},
			Modality:    model.ModalityInPerson,
			Capacity:    &capacity,
			Price:       model.FreePrice,
			Featured:    true,
			Services:    []string{"Parqueadero", "Baños"},
			Location: model.Location{
				FullAddress:  "Calle 10 # 5-51, Teatro Municipal",
				Neighborhood: "La Candelaria",
			},
			Organizer: model.Organizer{Name: "Secretaría de Cultura", Email: "cultura@example.org"},
		},
		{
			Title:       "Taller de fotografía urbana",
			Description: "Recorrido guiado para aprender composición y luz natural.",
			Category:    "Educación",
			Date:        today.AddDays(7),
			Time:        civil.Time{Hour: 9, Minute: 30},
			Modality:    model.ModalityHybrid,
			Price:       "25000",
			Services:    []string{"Refrigerio"},
			Location: model.Location{
				FullAddress:  "Carrera 7 # 22-10",
				Neighborhood: "Chapinero",
			},
			Organizer: model.Organizer{Name: "Colectivo Lente Abierto"},
		},
		{
			Title:       "Feria gastronómica de barrio",
			Description: "Cocineros del barrio comparten platos típicos y recetas familiares.",
			Category:    "Gastronomía",
			Date:        today.AddDays(14),
			Time:        civil.Time{Hour: 12},
			Modality:    model.ModalityInPerson,
			Price:       model.FreePrice,
			Featured:    true,
			Services:    []string{"Zona infantil", "Baños"},
			Location: model.Location{
				FullAddress:  "Parque principal de Usaquén",
				Neighborhood: "Usaquén",
			},
			Organizer: model.Organizer{Name: "Junta de Acción Comunal"},
			Occurrences: []model.OccurrenceRequest{
				{Number: 1, Date: today.AddDays(14), Time: civil.Time{Hour: 12}},
				{Number: 2, Date: today.AddDays(15), Time: civil.Time{Hour: 12}},
			},
		},
	}

	for _, req := range reqs {
		if _, err := svc.CreateEvent(ctx, req); err != nil {
			return fmt.Errorf("seed %q: %w", req.Title, err)
		}
	}
	return nil
}
