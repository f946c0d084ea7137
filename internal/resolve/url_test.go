package resolve

import (
	"testing"
)

func TestParseItemURL(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		wantID      int64
		wantCountry string
	}{
		{
			name:        "plain item URL",
			url:         "https://www.vinted.fr/items/3421567890",
			wantID:      3421567890,
			wantCountry: "fr",
		},
		{
			name:        "item URL with slug",
			url:         "https://www.vinted.de/items/123456-nike-air-max-90",
			wantID:      123456,
			wantCountry: "de",
		},
		{
			name:        "two-part locale suffix",
			url:         "https://www.vinted.co.uk/items/987654-vintage-barbour-jacket",
			wantID:      987654,
			wantCountry: "uk",
		},
		{
			name:        "missing scheme",
			url:         "www.vinted.it/items/555",
			wantID:      555,
			wantCountry: "it",
		},
		{
			name:        "query string and fragment ignored",
			url:         "https://www.vinted.pl/items/777-sukienka?referrer=catalog#photos",
			wantID:      777,
			wantCountry: "pl",
		},
		{
			name:        "catalog path under items prefix",
			url:         "https://www.vinted.fr/catalog/items/123",
			wantID:      123,
			wantCountry: "fr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := ParseItemURL(tt.url, "fr")
			if ref == nil {
				t.Fatalf("ParseItemURL(%q) = nil, want reference", tt.url)
			}
			if ref.ID != tt.wantID {
				t.Errorf("ID = %d, want %d", ref.ID, tt.wantID)
			}
			if ref.CountryCode != tt.wantCountry {
				t.Errorf("CountryCode = %q, want %q", ref.CountryCode, tt.wantCountry)
			}
		})
	}
}

func TestParseItemURLRejectsNonItemURLs(t *testing.T) {
	urls := []string{
		"",
		"https://www.vinted.fr",
		"https://www.vinted.fr/catalog?search_text=jacket",
		"https://www.vinted.fr/items/not-a-number",
		"https://www.example.com/items/123",
		"https://notvinted.fr/items/123",
	}

	for _, u := range urls {
		if ref := ParseItemURL(u, "fr"); ref != nil {
			t.Errorf("ParseItemURL(%q) = %+v, want nil", u, ref)
		}
	}
}

func TestParseItemURLLocaleFallback(t *testing.T) {
	// An unknown locale suffix should fall back to the provided country,
	// deterministically, rather than fail the parse.
	ref := ParseItemURL("https://www.vinted.xyz/items/42", "de")
	if ref == nil {
		t.Fatal("expected a reference for unknown locale suffix")
	}
	if ref.CountryCode != "de" {
		t.Errorf("CountryCode = %q, want fallback %q", ref.CountryCode, "de")
	}

	// And to fr when the fallback itself is not a supported code.
	ref = ParseItemURL("https://www.vinted.xyz/items/42", "zz")
	if ref == nil {
		t.Fatal("expected a reference for unknown locale suffix")
	}
	if ref.CountryCode != "fr" {
		t.Errorf("CountryCode = %q, want %q", ref.CountryCode, "fr")
	}
}

func TestParseSellerURL(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		wantID       int64
		wantUsername string
		wantCountry  string
	}{
		{
			name:        "numeric member token is an ID",
			url:         "https://www.vinted.fr/member/12345678",
			wantID:      12345678,
			wantCountry: "fr",
		},
		{
			name:         "non-numeric token is a username",
			url:          "https://www.vinted.de/member/sneaker_queen",
			wantUsername: "sneaker_queen",
			wantCountry:  "de",
		},
		{
			name:        "id with trailing slug segment",
			url:         "https://www.vinted.co.uk/member/98765/closet",
			wantID:      98765,
			wantCountry: "uk",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := ParseSellerURL(tt.url, "fr")
			if ref == nil {
				t.Fatalf("ParseSellerURL(%q) = nil, want reference", tt.url)
			}
			if ref.ID != tt.wantID {
				t.Errorf("ID = %d, want %d", ref.ID, tt.wantID)
			}
			if ref.Username != tt.wantUsername {
				t.Errorf("Username = %q, want %q", ref.Username, tt.wantUsername)
			}
			if ref.CountryCode != tt.wantCountry {
				t.Errorf("CountryCode = %q, want %q", ref.CountryCode, tt.wantCountry)
			}
		})
	}
}

func TestParseSellerURLRejectsNonProfileURLs(t *testing.T) {
	urls := []string{
		"",
		"https://www.vinted.fr/items/123456",
		"https://www.vinted.fr/member",
		"https://www.example.com/member/123",
	}

	for _, u := range urls {
		if ref := ParseSellerURL(u, "fr"); ref != nil {
			t.Errorf("ParseSellerURL(%q) = %+v, want nil", u, ref)
		}
	}
}
