package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"cloud.google.com/go/civil"

	"github.com/Shivanand-hulikatti/events-catalog/internal/filter"
	"github.com/Shivanand-hulikatti/events-catalog/internal/model"
)

var day = civil.Date{Year: 2026, Month: 5, Day: 1}

func seedEvents(n int) []model.Event {
	events := make([]model.Event, n)
	for i := range events {
		events[i] = model.Event{
			ID:       fmt.Sprintf("ev-%02d", i),
			Title:    fmt.Sprintf("Evento %d", i),
			Date:     day.AddDays(i),
			Status:   model.StatusPublished,
			Services: []string{"Parqueadero"},
		}
	}
	return events
}

func TestMemoryFindMatchingPages(t *testing.T) {
	repo := NewMemoryEventRepository(seedEvents(25)...)
	ctx := context.Background()
	order := filter.ResolveSort("date", "asc")

	tests := []struct {
		page, size int
		wantLen    int
		wantFirst  string
	}{
		{0, 10, 10, "ev-00"},
		{1, 10, 10, "ev-10"},
		{2, 10, 5, "ev-20"},
		{3, 10, 0, ""},
		{1<<62 + 1, 2, 0, ""},
		{math.MaxInt, 10, 0, ""},
	}
	for _, tt := range tests {
		got, total, err := repo.FindMatching(ctx, filter.True(), order, tt.page, tt.size)
		if err != nil {
			t.Fatalf("FindMatching: %v", err)
		}
		if total != 25 {
			t.Errorf("page %d: total = %d, want 25", tt.page, total)
		}
		if len(got) != tt.wantLen {
			t.Fatalf("page %d: len = %d, want %d", tt.page, len(got), tt.wantLen)
		}
		if tt.wantLen > 0 && got[0].ID != tt.wantFirst {
			t.Errorf("page %d: first = %s, want %s", tt.page, got[0].ID, tt.wantFirst)
		}
	}
}

func TestMemoryFindAllFiltersAndOrders(t *testing.T) {
	events := seedEvents(5)
	events[2].Status = model.StatusCancelled
	repo := NewMemoryEventRepository(events...)

	got, err := repo.FindAll(context.Background(), filter.OnlyActive(), filter.By(filter.SortByDate, filter.Desc))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"ev-04", "ev-03", "ev-01", "ev-00"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Errorf("got[%d] = %s, want %s", i, got[i].ID, want[i])
		}
	}
}

func TestMemoryReturnsCopies(t *testing.T) {
	repo := NewMemoryEventRepository(seedEvents(1)...)
	ctx := context.Background()

	got, err := repo.FindAll(ctx, filter.True(), filter.Order{})
	if err != nil {
		t.Fatal(err)
	}
	got[0].Services[0] = "mutated"

	again, err := repo.GetByID(ctx, "ev-00")
	if err != nil {
		t.Fatal(err)
	}
	if again.Services[0] != "Parqueadero" {
		t.Errorf("stored event was mutated through a returned copy")
	}
}

func TestMemoryCreateAndGet(t *testing.T) {
	repo := NewMemoryEventRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, model.Event{Title: "Nuevo", Status: model.StatusPublished})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Errorf("Create should assign id and timestamps: %+v", created)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Nuevo" {
		t.Errorf("title = %q", got.Title)
	}

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryHonorsContext(t *testing.T) {
	repo := NewMemoryEventRepository(seedEvents(3)...)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := repo.FindMatching(ctx, filter.True(), filter.Order{}, 0, 10); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
