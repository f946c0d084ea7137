package vinted

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNumberToInt64(t *testing.T) {
	tests := []struct {
		name string
		in   json.Number
		want int64
	}{
		{name: "integer", in: json.Number("123456"), want: 123456},
		{name: "float is truncated", in: json.Number("12.7"), want: 12},
		{name: "empty", in: json.Number(""), want: 0},
		{name: "garbage", in: json.Number("abc"), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := numberToInt64(tt.in); got != tt.want {
				t.Errorf("numberToInt64(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestNumberToFloat(t *testing.T) {
	tests := []struct {
		name string
		in   json.Number
		want float64
	}{
		{name: "decimal", in: json.Number("45.50"), want: 45.5},
		{name: "integer", in: json.Number("10"), want: 10},
		{name: "empty", in: json.Number(""), want: 0},
		{name: "garbage", in: json.Number("x"), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := numberToFloat(tt.in); got != tt.want {
				t.Errorf("numberToFloat(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestReputationToRating(t *testing.T) {
	tests := []struct {
		name string
		in   json.Number
		want float64
	}{
		{name: "perfect", in: json.Number("1"), want: 5},
		{name: "typical", in: json.Number("0.96"), want: 4.8},
		{name: "zero", in: json.Number("0"), want: 0},
		{name: "missing", in: json.Number(""), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reputationToRating(tt.in); got != tt.want {
				t.Errorf("reputationToRating(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestConvertItemFromSearchPayload(t *testing.T) {
	// Search entries carry string IDs, no created_at_ts and only a cover
	// photo; the listing time comes from the photo upload timestamp.
	raw := apiItem{
		ID:             json.Number("123456"),
		Title:          "Nike Air Max 90",
		Price:          apiPrice{Amount: json.Number("45.50"), CurrencyCode: "EUR"},
		BrandTitle:     "Nike",
		SizeTitle:      "42",
		Status:         "very_good",
		FavouriteCount: json.Number("12"),
		ViewCount:      json.Number("230"),
		URL:            "https://www.vinted.fr/items/123456-nike-air-max-90",
	}
	raw.Photo = &apiPhoto{URL: "https://images.vinted.net/123456.jpg"}
	raw.Photo.HighResolution.Timestamp = json.Number("1717243200")

	item := convertItem(&raw, "fr")

	if item.ID != 123456 {
		t.Errorf("ID = %d, want 123456", item.ID)
	}
	if item.Price != 45.5 || item.Currency != "EUR" {
		t.Errorf("Price = %v %s, want 45.5 EUR", item.Price, item.Currency)
	}
	if item.FavouriteCount != 12 || item.ViewCount != 230 {
		t.Errorf("engagement = %d/%d, want 12/230", item.FavouriteCount, item.ViewCount)
	}
	if len(item.Photos) != 1 || item.Photos[0] != "https://images.vinted.net/123456.jpg" {
		t.Errorf("Photos = %v, want the cover photo", item.Photos)
	}
	if !item.CreatedAt.Equal(time.Unix(1717243200, 0)) {
		t.Errorf("CreatedAt = %v, want the photo timestamp", item.CreatedAt)
	}
}

func TestConvertItemPrefersDetailTimestamp(t *testing.T) {
	raw := apiItem{
		ID:          json.Number("1"),
		Title:       "Jacket",
		CreatedAtTS: json.Number("1700000000"),
	}
	raw.Photo = &apiPhoto{URL: "x.jpg"}
	raw.Photo.HighResolution.Timestamp = json.Number("1600000000")

	item := convertItem(&raw, "fr")
	if !item.CreatedAt.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("CreatedAt = %v, want created_at_ts over the photo timestamp", item.CreatedAt)
	}
}

func TestConvertItemCurrencyFallback(t *testing.T) {
	raw := apiItem{ID: json.Number("1"), Title: "Sukienka"}

	item := convertItem(&raw, "pl")
	if item.Currency != "PLN" {
		t.Errorf("Currency = %q, want the marketplace currency PLN", item.Currency)
	}
}

func TestConditionStatusIDs(t *testing.T) {
	want := map[string]string{
		"new_with_tags":    "6",
		"new_without_tags": "1",
		"very_good":        "2",
		"good":             "3",
		"satisfactory":     "4",
	}

	for cond, id := range want {
		if got := conditionStatusIDs[cond]; got != id {
			t.Errorf("conditionStatusIDs[%q] = %q, want %q", cond, got, id)
		}
	}
	if len(conditionStatusIDs) != len(want) {
		t.Errorf("conditionStatusIDs has %d entries, want %d", len(conditionStatusIDs), len(want))
	}
}

func TestSortOrders(t *testing.T) {
	for _, order := range []string{"relevance", "price_low_to_high", "price_high_to_low", "newest_first"} {
		if !sortOrders[order] {
			t.Errorf("sort order %q should be accepted", order)
		}
	}
	if sortOrders["cheapest"] {
		t.Error("unknown sort orders must be rejected")
	}
}
