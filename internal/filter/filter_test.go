package filter

import (
	"strings"
	"testing"

	"cloud.google.com/go/civil"

	"github.com/Shivanand-hulikatti/events-catalog/internal/model"
)

var today = civil.Date{Year: 2026, Month: 3, Day: 10}

func ptr[T any](v T) *T { return &v }

// newEvent returns a published, paid, in-person event dated today with a
// single 10:00 occurrence. Callers adjust the fields under test.
func newEvent(id string) model.Event {
	return model.Event{
		ID:          id,
		Title:       "Evento " + id,
		Description: "Descripción del evento " + id,
		Category:    "General",
		Date:        today,
		Time:        civil.Time{Hour: 10},
		Modality:    model.ModalityInPerson,
		Price:       "15000",
		Status:      model.StatusPublished,
		Location: model.Location{
			FullAddress:  "Calle 1 # 2-3",
			Neighborhood: "Centro",
		},
		Organizer: model.Organizer{Name: "Organizador " + id},
		Occurrences: []model.Occurrence{
			{Number: 1, Date: today, Time: civil.Time{Hour: 10}, Status: model.OccurrencePublished},
		},
	}
}

func TestTextPredicate(t *testing.T) {
	e := newEvent("a")
	e.Title = "Festival de Música"
	e.Organizer.Name = "Corporación Cultural"

	tests := []struct {
		text string
		want bool
	}{
		{"musica", true},
		{"  MÚSICA ", true},
		{"corporacion", true},
		{"evento a", true},
		{"teatro", false},
	}
	for _, tt := range tests {
		if got := Text(tt.text).Match(&e); got != tt.want {
			t.Errorf("Text(%q).Match = %v, want %v", tt.text, got, tt.want)
		}
	}
	if !IsTrue(Text("   ")) {
		t.Error("blank text should be the identity predicate")
	}
}

func TestLocationPredicate(t *testing.T) {
	e := newEvent("a")
	e.Location = model.Location{
		FullAddress:     "Carrera 43A # 1-50",
		Neighborhood:    "El Poblado",
		DetailedAddress: "Centro Comercial Santafé, piso 2",
	}
	for _, q := range []string{"poblado", "43a", "santafe"} {
		if !Location(q).Match(&e) {
			t.Errorf("Location(%q) should match", q)
		}
	}
	if Location("laureles").Match(&e) {
		t.Error("Location(laureles) should not match")
	}
}

func TestCategoryIsCaseSensitive(t *testing.T) {
	e := newEvent("a")
	e.Category = "Música"
	if !Category("Música").Match(&e) {
		t.Error("exact category should match")
	}
	if Category("música").Match(&e) {
		t.Error("category must compare case-sensitively")
	}
}

func TestDatePredicates(t *testing.T) {
	e := newEvent("a")
	before, after := today.AddDays(-1), today.AddDays(1)

	tests := []struct {
		name string
		p    Predicate
		want bool
	}{
		{"from today", DateFrom(&today), true},
		{"from tomorrow", DateFrom(&after), false},
		{"to today", DateTo(&today), true},
		{"to yesterday", DateTo(&before), false},
		{"range around", DateRange(&before, &after), true},
		{"range open start", DateRange(nil, &today), true},
		{"range after", DateRange(&after, nil), false},
		{"on date", OnDate(today), true},
		{"on other date", OnDate(after), false},
		{"upcoming", Upcoming(today), true},
		{"upcoming from tomorrow", Upcoming(after), false},
	}
	for _, tt := range tests {
		if got := tt.p.Match(&e); got != tt.want {
			t.Errorf("%s: Match = %v, want %v", tt.name, got, tt.want)
		}
	}
	if !IsTrue(DateRange(nil, nil)) {
		t.Error("DateRange without bounds should be the identity predicate")
	}
}

func TestFreeScenario(t *testing.T) {
	x := newEvent("x")
	x.Price = "gratuito"
	y := newEvent("y")
	y.Price = "15000"

	free, paid := Free(ptr(true)), Free(ptr(false))
	if !free.Match(&x) || free.Match(&y) {
		t.Error("Free(true) should match only the free event")
	}
	if paid.Match(&x) || !paid.Match(&y) {
		t.Error("Free(false) should match only the paid event")
	}

	x.Price = "GRATUITO"
	if !free.Match(&x) {
		t.Error("free marker should be case-insensitive")
	}
}

func TestFeaturedStatusModality(t *testing.T) {
	e := newEvent("a")
	e.Featured = true
	e.Modality = model.ModalityVirtual

	if !Featured(ptr(true)).Match(&e) || Featured(ptr(false)).Match(&e) {
		t.Error("Featured mismatch")
	}
	if !OnlyActive().Match(&e) {
		t.Error("published event should be active")
	}
	e.Status = model.StatusDraft
	if OnlyActive().Match(&e) {
		t.Error("draft event should not be active")
	}
	if !Status(model.StatusDraft).Match(&e) {
		t.Error("Status(DRAFT) should match")
	}
	if !Modality("virtual").Match(&e) || Modality("HIBRIDA").Match(&e) {
		t.Error("Modality mismatch")
	}
}

func TestOrganizerAndService(t *testing.T) {
	e := newEvent("a")
	e.Organizer.Name = "Fundación Ñandú"
	e.Services = []string{"Parqueadero", "Baños públicos"}

	if !Organizer("fundacion nandu").Match(&e) {
		t.Error("Organizer should match normalized")
	}
	if Organizer("alcaldia").Match(&e) {
		t.Error("Organizer should not match")
	}
	if !Service("banos").Match(&e) {
		t.Error("Service should match normalized amenity")
	}
	if Service("wifi").Match(&e) {
		t.Error("Service should not match")
	}
	e.Services = nil
	if Service("banos").Match(&e) {
		t.Error("event without services should not match")
	}
}

func TestKeywords(t *testing.T) {
	a := newEvent("a")
	a.Title = "Festival de Música"
	b := newEvent("b")
	b.Title = "Feria Gastronomica"
	b.Description = "Platos típicos"
	b.Organizer.Name = "Cocineros"

	p := Keywords("musica")
	if !p.Match(&a) {
		t.Error("keywords should match the accented title")
	}
	if p.Match(&b) {
		t.Error("keywords should not match an unrelated event")
	}

	// Every token has to appear somewhere.
	a.Location.Neighborhood = "Laureles"
	if !Keywords("festival laureles").Match(&a) {
		t.Error("tokens across fields should match")
	}
	if Keywords("festival poblado").Match(&a) {
		t.Error("a missing token should fail the match")
	}
}

func TestKeywordsExactTitle(t *testing.T) {
	titles := []string{"Noche de Jazz", "Teatro al Parque", "Exposición Botánica"}
	for _, title := range titles {
		e := newEvent("t")
		e.Title = title
		for _, q := range []string{title, strings.ToUpper(title), strings.ToLower(title)} {
			if !Keywords(q).Match(&e) {
				t.Errorf("Keywords(%q) should match title %q", q, title)
			}
		}
	}

	disjoint := model.Event{Title: "zzz", Description: "zzz", Category: "zzz"}
	if Keywords("Noche de Jazz").Match(&disjoint) {
		t.Error("keywords should not match an event sharing no substring")
	}
}

func TestPriceRange(t *testing.T) {
	free := newEvent("f")
	free.Price = "gratuito"
	paid := newEvent("p")
	paid.Price = "50000"

	tests := []struct {
		name           string
		minP, maxP     *float64
		wantFree, want bool
	}{
		{"min only admits paid", ptr(100000.0), nil, false, true},
		{"max only admits free", nil, ptr(10.0), true, false},
		{"both admit either", ptr(1.0), ptr(2.0), true, true},
	}
	for _, tt := range tests {
		p := PriceRange(tt.minP, tt.maxP)
		if got := p.Match(&free); got != tt.wantFree {
			t.Errorf("%s: free event Match = %v, want %v", tt.name, got, tt.wantFree)
		}
		if got := p.Match(&paid); got != tt.want {
			t.Errorf("%s: paid event Match = %v, want %v", tt.name, got, tt.want)
		}
	}
	if !IsTrue(PriceRange(nil, nil)) {
		t.Error("no bounds should be the identity predicate")
	}
}

func TestScheduleScenario(t *testing.T) {
	e := newEvent("a")
	e.Occurrences = []model.Occurrence{{Number: 1, Date: today, Time: civil.Time{Hour: 19}}}

	if !Schedule("NOCTURNO").Match(&e) {
		t.Error("19:00 should be night")
	}
	if Schedule("DIURNO").Match(&e) {
		t.Error("19:00 should not be day")
	}
}

func TestScheduleBoundaries(t *testing.T) {
	tests := []struct {
		at         civil.Time
		day, night bool
	}{
		{civil.Time{Hour: 6}, true, false},
		{civil.Time{Hour: 18}, true, false},
		{civil.Time{Hour: 18, Minute: 1}, false, true},
		{civil.Time{Hour: 5, Minute: 59}, false, true},
		{civil.Time{Hour: 12}, true, false},
	}
	for _, tt := range tests {
		e := newEvent("a")
		e.Occurrences = []model.Occurrence{{Number: 1, Date: today, Time: tt.at}}
		if got := Schedule("diurno").Match(&e); got != tt.day {
			t.Errorf("DIURNO at %s = %v, want %v", tt.at, got, tt.day)
		}
		if got := Schedule("nocturno").Match(&e); got != tt.night {
			t.Errorf("NOCTURNO at %s = %v, want %v", tt.at, got, tt.night)
		}
	}
}

func TestScheduleUsesFirstOccurrence(t *testing.T) {
	e := newEvent("a")
	e.Occurrences = []model.Occurrence{
		{Number: 2, Date: today, Time: civil.Time{Hour: 10}},
		{Number: 1, Date: today, Time: civil.Time{Hour: 20}},
	}
	if !Schedule("NOCTURNO").Match(&e) {
		t.Error("occurrence number 1 decides the schedule")
	}

	e.Occurrences = nil
	if Schedule("DIURNO").Match(&e) || Schedule("NOCTURNO").Match(&e) {
		t.Error("events without occurrences never match a schedule")
	}
	if !IsTrue(Schedule("MATUTINO")) || !IsTrue(Schedule("")) {
		t.Error("unknown schedule tags are the identity predicate")
	}
}

func TestAvailable(t *testing.T) {
	e := newEvent("a")
	yes, no := Available(ptr(true), today), Available(ptr(false), today)

	if !yes.Match(&e) || no.Match(&e) {
		t.Error("published event dated today is available")
	}
	e.Date = today.AddDays(-1)
	if yes.Match(&e) || !no.Match(&e) {
		t.Error("event dated yesterday is not available")
	}
	e.Date = today.AddDays(5)
	e.Status = model.StatusCancelled
	if yes.Match(&e) || !no.Match(&e) {
		t.Error("cancelled event is not available")
	}
	if !IsTrue(Available(nil, today)) {
		t.Error("absent flag is the identity predicate")
	}
}

func TestHasUpcomingOccurrence(t *testing.T) {
	e := newEvent("a")
	e.Date = today.AddDays(-10)
	e.Occurrences = []model.Occurrence{
		{Number: 1, Date: today.AddDays(-10)},
		{Number: 2, Date: today.AddDays(2)},
	}
	if !HasUpcomingOccurrence(today).Match(&e) {
		t.Error("a later occurrence should qualify")
	}
	e.Occurrences = e.Occurrences[:1]
	if HasUpcomingOccurrence(today).Match(&e) {
		t.Error("only past occurrences should not qualify")
	}
}

func TestAndIdentity(t *testing.T) {
	if !IsTrue(And()) {
		t.Error("And() should be True")
	}
	if !IsTrue(And(True(), True(), nil)) {
		t.Error("And of identities should be True")
	}
	active := OnlyActive()
	if got := And(True(), active, True()); len(Terms(got)) != 1 {
		t.Errorf("And should drop identities, got terms %v", Terms(got))
	}
	nested := And(And(Featured(ptr(true)), OnlyActive()), Category("X"))
	if got := Terms(nested); len(got) != 3 {
		t.Errorf("nested conjunctions should flatten, got %v", got)
	}
}

func TestNot(t *testing.T) {
	e := newEvent("a")
	if Not(OnlyActive()).Match(&e) {
		t.Error("Not should negate")
	}
	sql, args, err := Not(OnlyActive()).ToSql()
	if err != nil {
		t.Fatal(err)
	}
	if sql != "NOT (e.status = ?)" || len(args) != 1 {
		t.Errorf("sql = %q args = %v", sql, args)
	}
}
