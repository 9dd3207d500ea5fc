package scraper

import (
	"reflect"
	"testing"
)

func TestSplitCommas(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"commas", "usado,recondicionado", []string{"usado", "recondicionado"}},
		{"semicolons", "usado;recondicionado", []string{"usado", "recondicionado"}},
		{"mixed", "usado;capa,pelicula", []string{"usado", "capa", "pelicula"}},
		{"whitespace trimmed", "usado, capa", []string{"usado", "capa"}},
		{"empty cell", "", nil},
		{"lone delimiter", ";", nil},
		{"whitespace only token", "usado, ,capa", []string{"usado", "capa"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitCommas.Split(tt.raw)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split(%q) = %#v, want %#v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSplitCommaSpace(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"comma space", "usado, recondicionado", []string{"usado", "recondicionado"}},
		{"semicolons inside", "usado;capa, pelicula", []string{"usado", "capa", "pelicula"}},
		{"spaced semicolons trimmed", "usado ; capa, pelicula", []string{"usado", "capa", "pelicula"}},
		{"bare comma not split", "usado,capa", []string{"usado,capa"}},
		{"empty cell", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitCommaSpace.Split(tt.raw)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split(%q) = %#v, want %#v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDefaultProfiles(t *testing.T) {
	profiles := DefaultProfiles("https://g", "https://ml", "https://amz")

	if len(profiles) != 3 {
		t.Fatalf("got %d profiles, want 3", len(profiles))
	}

	wantOrder := []string{"Google Shopping", "Mercado Livre", "Amazon"}
	for i, want := range wantOrder {
		if profiles[i].Name != want {
			t.Errorf("profiles[%d].Name = %q, want %q", i, profiles[i].Name, want)
		}
	}

	google := profiles[0]
	if google.WaitForInput {
		t.Error("Google Shopping should not wait for its search input")
	}
	if google.SecondaryNav == nil {
		t.Error("Google Shopping needs a secondary navigation step")
	}

	for _, p := range profiles[1:] {
		if !p.WaitForInput {
			t.Errorf("%s should wait for its search input", p.Name)
		}
		if p.SecondaryNav != nil {
			t.Errorf("%s should not have a secondary navigation step", p.Name)
		}
	}

	slugs := map[string]string{
		"Google Shopping": "Google_Shopping",
		"Mercado Livre":   "Mercado_Livre",
		"Amazon":          "Amazon",
	}
	for _, p := range profiles {
		if p.Slug != slugs[p.Name] {
			t.Errorf("%s slug = %q, want %q", p.Name, p.Slug, slugs[p.Name])
		}
	}
}
