package resolve

import "testing"

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name     string
		location string
		want     string
	}{
		{
			name:     "relative item path",
			location: "/items/123456-nike-air-max-90",
			want:     "nike air max 90",
		},
		{
			name:     "absolute URL",
			location: "https://www.vinted.fr/items/987-robe-zara-fleurie",
			want:     "robe zara fleurie",
		},
		{
			name:     "query string excluded",
			location: "/items/55-wool-scarf?homepage_session_id=abc",
			want:     "wool scarf",
		},
		{
			name:     "single word slug",
			location: "/items/55-scarf",
			want:     "scarf",
		},
		{
			name:     "no slug after the ID",
			location: "/items/123456",
			want:     "",
		},
		{
			name:     "challenge redirect without item path",
			location: "https://www.vinted.fr/?next=items",
			want:     "",
		},
		{
			name:     "empty location",
			location: "",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractKeywords(tt.location); got != tt.want {
				t.Errorf("ExtractKeywords(%q) = %q, want %q", tt.location, got, tt.want)
			}
		})
	}
}
