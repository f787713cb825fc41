package textnorm

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"Música", "musica"},
		{"MÚSICA", "musica"},
		{"Gastronómica", "gastronomica"},
		{"Ñandú", "nandu"},
		{"ça va", "ca va"},
		{"plain ascii", "plain ascii"},
		{"Poblado  ", "poblado  "},
		{"Øresund", "oresund"},
		{"Łódź", "lodz"},
		{"Straße", "strasse"},
		{"Æsir Œuvre", "aesir oeuvre"},
		{"Þórr Đakovo", "thorr dakovo"},
		{"İstanbul", "istanbul"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"", "Festival de Música", "İstanbul", "ÀÉÎÕÜ", "straße", "é", "日本語", "Crème Brûlée", "Øresund", "Łódź", "ẞ",
	}
	for _, s := range inputs {
		once := Normalize(s)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", s, once, twice)
		}
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		haystack, needle string
		want             bool
	}{
		{"Festival de Música", "musica", true},
		{"Festival de Música", "MÚSICA", true},
		{"Feria Gastronomica", "musica", false},
		{"anything", "", true},
	}
	for _, tt := range tests {
		if got := Contains(tt.haystack, tt.needle); got != tt.want {
			t.Errorf("Contains(%q, %q) = %v, want %v", tt.haystack, tt.needle, got, tt.want)
		}
	}
}

func TestContainsAny(t *testing.T) {
	if !ContainsAny("poblado", "Centro", "El Poblado") {
		t.Error("expected a match in the second field")
	}
	if ContainsAny("poblado", "Centro", "Laureles") {
		t.Error("expected no match")
	}
	if ContainsAny("x") {
		t.Error("no fields never match")
	}
}

func TestContainsFoldsUndecomposableLetters(t *testing.T) {
	tests := []struct {
		haystack, needle string
	}{
		{"Feria de Øresund", "oresund"},
		{"Teatro Łódź", "LODZ"},
		{"Calle Große", "grosse"},
	}
	for _, tt := range tests {
		if !Contains(tt.haystack, tt.needle) {
			t.Errorf("Contains(%q, %q) = false", tt.haystack, tt.needle)
		}
	}
}
