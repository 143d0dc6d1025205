package domain

import (
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "simple word",
			in:   "Insertion",
			want: "insertion",
		},
		{
			name: "spaces become hyphens",
			in:   "Espaces verts",
			want: "espaces-verts",
		},
		{
			name: "accents folded",
			in:   "Bâtiment & Écoconstruction",
			want: "batiment-ecoconstruction",
		},
		{
			name: "consecutive separators collapsed",
			in:   "Nettoyage -- industriel",
			want: "nettoyage-industriel",
		},
		{
			name: "leading and trailing separators trimmed",
			in:   " (Autre) ",
			want: "autre",
		},
		{
			name: "apostrophes",
			in:   "Services à l'entreprise",
			want: "services-a-l-entreprise",
		},
		{
			name: "digits preserved",
			in:   "Réseau 2000",
			want: "reseau-2000",
		},
		{
			name: "empty string",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestUserFullName(t *testing.T) {
	u := &User{FirstName: "Jeanne", LastName: "Martin"}
	if got := u.FullName(); got != "Jeanne Martin" {
		t.Errorf("FullName() = %q", got)
	}

	u = &User{LastName: "Martin"}
	if got := u.FullName(); got != "Martin" {
		t.Errorf("FullName() = %q", got)
	}
}
