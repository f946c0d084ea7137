package models

import "time"

// Provenance records which pipeline stage produced a resolved item.
type Provenance string

const (
	// ProvenanceRedirectSearch means the item was reconciled from search
	// results using keywords recovered from the redirect slug.
	ProvenanceRedirectSearch Provenance = "redirect+search"
	// ProvenanceCore means the item came from a direct API lookup.
	ProvenanceCore Provenance = "core"
)

// ItemReference is the minimal key needed to fetch an item: a numeric ID and
// the marketplace country it lives on.
type ItemReference struct {
	ID          int64  `json:"id"`
	CountryCode string `json:"countryCode"`
}

// Item is a single listing as returned by catalog search. All fields are
// request-scoped; nothing here is persisted.
type Item struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Price          float64   `json:"price"`
	Currency       string    `json:"currency"`
	Brand          string    `json:"brand,omitempty"`
	Size           string    `json:"size,omitempty"`
	Condition      string    `json:"condition,omitempty"`
	FavouriteCount int       `json:"favouriteCount"`
	ViewCount      int       `json:"viewCount"`
	URL            string    `json:"url"`
	Photos         []string  `json:"photos,omitempty"`
	SellerUsername string    `json:"seller,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}

// ResolvedItem is the caller-facing item shape produced by the resolution
// pipeline. Provenance is carried for observability; it does not change
// behavior.
type ResolvedItem struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Price          string     `json:"price"`
	Brand          string     `json:"brand,omitempty"`
	Size           string     `json:"size,omitempty"`
	Condition      string     `json:"condition,omitempty"`
	FavouriteCount int        `json:"favourites"`
	URL            string     `json:"url"`
	Photos         []string   `json:"photos"`
	Seller         *Seller    `json:"seller,omitempty"`
	Provenance     Provenance `json:"_source"`
}

// Seller is the compact seller block attached to a resolved item.
type Seller struct {
	ID       int64   `json:"id,omitempty"`
	Username string  `json:"username"`
	Rating   float64 `json:"rating,omitempty"`
}

// ItemLookup is the result of a full resolution attempt. Exactly one of Item
// and NotFound is set: a missing item is an expected business outcome (sold
// or removed listings), not an error.
type ItemLookup struct {
	Item     *ResolvedItem `json:"item,omitempty"`
	NotFound *NotFound     `json:"notFound,omitempty"`
}

// NotFound is the structured terminal result when every resolution stage has
// been exhausted. It always carries a human-readable explanation and a
// suggested alternative action.
type NotFound struct {
	Error      string `json:"error"`
	Suggestion string `json:"suggestion"`
}

// SearchResult is the caller-facing search response.
type SearchResult struct {
	TotalFound int    `json:"totalFound"`
	Returned   int    `json:"returned"`
	Country    string `json:"country"`
	Items      []Item `json:"items"`
}
