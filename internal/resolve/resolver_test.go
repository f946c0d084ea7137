package resolve

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kazkn/vinted-scout/internal/models"
	"github.com/kazkn/vinted-scout/internal/vinted"
)

// fakeItemAPI scripts the search and direct-lookup responses.
type fakeItemAPI struct {
	searchResult *models.SearchResult
	searchErr    error
	searchQuery  string

	detail    *vinted.ItemDetail
	detailErr error
	getCalled bool
}

func (f *fakeItemAPI) SearchItems(ctx context.Context, params vinted.SearchParams) (*models.SearchResult, error) {
	f.searchQuery = params.Query
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if f.searchResult != nil {
		return f.searchResult, nil
	}
	return &models.SearchResult{Country: params.Country}, nil
}

func (f *fakeItemAPI) GetItem(ctx context.Context, id int64, country string) (*vinted.ItemDetail, error) {
	f.getCalled = true
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	return f.detail, nil
}

// redirectServer stands in for the marketplace edge: every item request gets
// a redirect to the slugged canonical path.
func redirectServer(t *testing.T, location string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if location != "" {
			w.Header().Set("Location", location)
			w.WriteHeader(http.StatusTemporaryRedirect)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestResolver(t *testing.T, api ItemAPI, baseURL string) *Resolver {
	t.Helper()
	prober, err := NewProber("", 2*time.Second)
	if err != nil {
		t.Fatalf("NewProber: %v", err)
	}
	r := NewResolver(api, prober)
	r.baseURL = baseURL
	return r
}

func TestResolveViaRedirectSearch(t *testing.T) {
	server := redirectServer(t, "/items/123456-nike-air-max-90")

	api := &fakeItemAPI{
		searchResult: &models.SearchResult{
			Items: []models.Item{
				{ID: 999, Title: "Other sneaker", Price: 30, Currency: "EUR"},
				{
					ID:             123456,
					Title:          "Nike Air Max 90",
					Price:          45.5,
					Currency:       "EUR",
					FavouriteCount: 12,
					URL:            "https://www.vinted.fr/items/123456-nike-air-max-90",
					SellerUsername: "sneaker_queen",
				},
			},
		},
	}

	resolver := newTestResolver(t, api, server.URL)
	lookup := resolver.Resolve(context.Background(), models.ItemReference{ID: 123456, CountryCode: "fr"})

	if lookup.NotFound != nil {
		t.Fatalf("unexpected not-found: %+v", lookup.NotFound)
	}
	item := lookup.Item
	if item == nil {
		t.Fatal("lookup carries no item")
	}
	if item.ID != 123456 {
		t.Errorf("ID = %d, want 123456", item.ID)
	}
	if item.Provenance != models.ProvenanceRedirectSearch {
		t.Errorf("Provenance = %q, want %q", item.Provenance, models.ProvenanceRedirectSearch)
	}
	if item.Price != "45.5 EUR" {
		t.Errorf("Price = %q, want %q", item.Price, "45.5 EUR")
	}
	if item.Seller == nil || item.Seller.Username != "sneaker_queen" {
		t.Errorf("Seller = %+v, want username sneaker_queen", item.Seller)
	}
	if api.searchQuery != "nike air max 90" {
		t.Errorf("search query = %q, want slug keywords", api.searchQuery)
	}
	if api.getCalled {
		t.Error("direct lookup must not run once the search stage matched")
	}
}

func TestResolveRedirectWithoutSlugFallsBack(t *testing.T) {
	// Challenge-style redirect: no item slug to search for.
	server := redirectServer(t, "https://www.vinted.fr/?next=challenge")

	api := &fakeItemAPI{
		detail: &vinted.ItemDetail{
			Item: models.Item{ID: 42, Title: "Wool scarf", Price: 12, Currency: "EUR"},
		},
	}

	resolver := newTestResolver(t, api, server.URL)
	lookup := resolver.Resolve(context.Background(), models.ItemReference{ID: 42, CountryCode: "fr"})

	if lookup.Item == nil {
		t.Fatalf("expected a resolved item, got %+v", lookup.NotFound)
	}
	if lookup.Item.Provenance != models.ProvenanceCore {
		t.Errorf("Provenance = %q, want %q", lookup.Item.Provenance, models.ProvenanceCore)
	}
}

func TestResolveSearchMissFallsBackToDirectLookup(t *testing.T) {
	server := redirectServer(t, "/items/42-wool-scarf")

	api := &fakeItemAPI{
		// The slug search returns results, none with the wanted ID.
		searchResult: &models.SearchResult{
			Items: []models.Item{{ID: 7, Title: "Different scarf"}},
		},
		detail: &vinted.ItemDetail{
			Item:   models.Item{ID: 42, Title: "Wool scarf", Price: 12, Currency: "EUR"},
			Seller: &models.Seller{ID: 9, Username: "knits4u", Rating: 4.8},
		},
	}

	resolver := newTestResolver(t, api, server.URL)
	lookup := resolver.Resolve(context.Background(), models.ItemReference{ID: 42, CountryCode: "fr"})

	if lookup.Item == nil {
		t.Fatalf("expected a resolved item, got %+v", lookup.NotFound)
	}
	if lookup.Item.ID != 42 {
		t.Errorf("ID = %d, want 42", lookup.Item.ID)
	}
	if lookup.Item.Provenance != models.ProvenanceCore {
		t.Errorf("Provenance = %q, want %q", lookup.Item.Provenance, models.ProvenanceCore)
	}
	if lookup.Item.Seller == nil || lookup.Item.Seller.Username != "knits4u" {
		t.Errorf("Seller = %+v, want knits4u", lookup.Item.Seller)
	}
}

func TestResolveProbeFailureStillTriesDirectLookup(t *testing.T) {
	// No server: the probe target refuses connections.
	api := &fakeItemAPI{
		detail: &vinted.ItemDetail{
			Item: models.Item{ID: 42, Title: "Wool scarf", Price: 12, Currency: "EUR"},
		},
	}

	resolver := newTestResolver(t, api, "http://127.0.0.1:1")
	lookup := resolver.Resolve(context.Background(), models.ItemReference{ID: 42, CountryCode: "fr"})

	if lookup.Item == nil {
		t.Fatalf("expected the direct-lookup fallback to succeed, got %+v", lookup.NotFound)
	}
	if lookup.Item.Provenance != models.ProvenanceCore {
		t.Errorf("Provenance = %q, want %q", lookup.Item.Provenance, models.ProvenanceCore)
	}
}

func TestResolveNeverReturnsMismatchedItem(t *testing.T) {
	server := redirectServer(t, "/items/42-wool-scarf")

	api := &fakeItemAPI{
		searchResult: &models.SearchResult{
			Items: []models.Item{{ID: 7, Title: "Different scarf"}},
		},
		// Direct lookup answers with the wrong record.
		detail: &vinted.ItemDetail{
			Item: models.Item{ID: 7, Title: "Different scarf", Price: 5},
		},
	}

	resolver := newTestResolver(t, api, server.URL)
	lookup := resolver.Resolve(context.Background(), models.ItemReference{ID: 42, CountryCode: "fr"})

	if lookup.Item != nil {
		t.Fatalf("resolved item %d for request 42; mismatched IDs must never surface", lookup.Item.ID)
	}
	if lookup.NotFound == nil {
		t.Fatal("expected a structured not-found")
	}
}

func TestResolveExhaustedStagesYieldStructuredNotFound(t *testing.T) {
	api := &fakeItemAPI{
		searchErr: fmt.Errorf("search unavailable"),
		detailErr: fmt.Errorf("blocked (status 403)"),
	}

	resolver := newTestResolver(t, api, "http://127.0.0.1:1")
	lookup := resolver.Resolve(context.Background(), models.ItemReference{ID: 314159, CountryCode: "fr"})

	if lookup.Item != nil {
		t.Fatalf("unexpected item: %+v", lookup.Item)
	}
	nf := lookup.NotFound
	if nf == nil {
		t.Fatal("expected a structured not-found payload")
	}
	if !strings.Contains(nf.Error, "314159") {
		t.Errorf("not-found error %q does not name the item ID", nf.Error)
	}
	if nf.Suggestion == "" {
		t.Error("not-found payload is missing the suggestion")
	}
}

func TestResolveFillsMissingDescriptionAndURL(t *testing.T) {
	server := redirectServer(t, "/items/42-wool-scarf")

	api := &fakeItemAPI{
		searchResult: &models.SearchResult{
			Items: []models.Item{{ID: 42, Title: "Wool scarf", Price: 12, Currency: "EUR"}},
		},
	}

	resolver := newTestResolver(t, api, server.URL)
	lookup := resolver.Resolve(context.Background(), models.ItemReference{ID: 42, CountryCode: "fr"})

	if lookup.Item == nil {
		t.Fatalf("expected a resolved item, got %+v", lookup.NotFound)
	}
	if lookup.Item.Description != "wool scarf" {
		t.Errorf("Description = %q, want the slug keywords", lookup.Item.Description)
	}
	if lookup.Item.URL != server.URL+"/items/42" {
		t.Errorf("URL = %q, want the probed item URL", lookup.Item.URL)
	}
}
