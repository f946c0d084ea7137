package resolve

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/kazkn/vinted-scout/internal/metrics"
	"github.com/kazkn/vinted-scout/internal/models"
	"github.com/kazkn/vinted-scout/internal/vinted"
)

// slugSearchPageSize is deliberately large: the slug keywords are the item's
// own title, so one big page maximizes the odds of an exact ID match.
const slugSearchPageSize = 96

// ItemAPI is the slice of the marketplace client the resolver needs.
type ItemAPI interface {
	SearchItems(ctx context.Context, params vinted.SearchParams) (*models.SearchResult, error)
	GetItem(ctx context.Context, id int64, country string) (*vinted.ItemDetail, error)
}

type stageOutcome int

const (
	outcomeMatched stageOutcome = iota
	outcomeNotApplicable
	outcomeFailed
)

// stageResult is the tagged outcome of one pipeline stage.
type stageResult struct {
	outcome stageOutcome
	item    *models.ResolvedItem
	reason  string
}

func matched(item *models.ResolvedItem) stageResult {
	return stageResult{outcome: outcomeMatched, item: item}
}

func notApplicable(reason string) stageResult {
	return stageResult{outcome: outcomeNotApplicable, reason: reason}
}

func failed(reason string) stageResult {
	return stageResult{outcome: outcomeFailed, reason: reason}
}

type stage struct {
	name string
	run  func(ctx context.Context, ref models.ItemReference) stageResult
}

// Resolver chains the resolution stages: redirect probe + slug search first,
// direct lookup second. Each stage fails independently; the whole operation
// only reports not-found once every stage is exhausted.
type Resolver struct {
	api    ItemAPI
	prober *Prober

	// baseURL overrides the canonical marketplace origin; tests point it at
	// a local server.
	baseURL string
}

func NewResolver(api ItemAPI, prober *Prober) *Resolver {
	return &Resolver{api: api, prober: prober}
}

// Resolve runs the pipeline for one item reference. The result either
// carries an item whose ID equals ref.ID, or a structured not-found payload;
// it never carries both and never panics on missing items.
func (r *Resolver) Resolve(ctx context.Context, ref models.ItemReference) *models.ItemLookup {
	stages := []stage{
		{name: string(models.ProvenanceRedirectSearch), run: r.viaRedirectSearch},
		{name: string(models.ProvenanceCore), run: r.viaDirectLookup},
	}

	for _, st := range stages {
		res := st.run(ctx, ref)
		switch res.outcome {
		case outcomeMatched:
			metrics.ResolveStagesTotal.WithLabelValues(st.name, "matched").Inc()
			log.Printf("[resolve] item %d resolved via %s", ref.ID, st.name)
			return &models.ItemLookup{Item: res.item}
		case outcomeNotApplicable:
			metrics.ResolveStagesTotal.WithLabelValues(st.name, "skipped").Inc()
			log.Printf("[resolve] item %d: %s stage skipped: %s", ref.ID, st.name, res.reason)
		case outcomeFailed:
			metrics.ResolveStagesTotal.WithLabelValues(st.name, "failed").Inc()
			log.Printf("[resolve] item %d: %s stage failed: %s", ref.ID, st.name, res.reason)
		}
	}

	metrics.ResolveNotFoundTotal.Inc()
	return &models.ItemLookup{NotFound: &models.NotFound{
		Error:      fmt.Sprintf("Item %d not found. It may have been sold or removed.", ref.ID),
		Suggestion: "Try the item search with keywords instead.",
	}}
}

// viaRedirectSearch probes the item URL for its redirect, turns the slug
// into keywords, and scans a locale-scoped search for the exact ID.
func (r *Resolver) viaRedirectSearch(ctx context.Context, ref models.ItemReference) stageResult {
	itemURL := r.itemURL(ref)

	location, err := r.prober.Probe(ctx, itemURL)
	if err != nil {
		return failed(err.Error())
	}

	keywords := ExtractKeywords(location)
	if keywords == "" {
		return notApplicable(fmt.Sprintf("no slug in redirect location %q", location))
	}
	log.Printf("[resolve] item %d: redirect location=%q keywords=%q", ref.ID, location, keywords)

	result, err := r.api.SearchItems(ctx, vinted.SearchParams{
		Country: ref.CountryCode,
		Query:   keywords,
		PerPage: slugSearchPageSize,
	})
	if err != nil {
		return failed(fmt.Sprintf("slug search: %v", err))
	}

	for i := range result.Items {
		if !sameItemID(result.Items[i].ID, ref.ID) {
			continue
		}
		it := &result.Items[i]

		resolved := &models.ResolvedItem{
			ID:             ref.ID,
			Title:          it.Title,
			Description:    it.Description,
			Price:          formatPrice(it.Price, it.Currency),
			Brand:          it.Brand,
			Size:           it.Size,
			Condition:      it.Condition,
			FavouriteCount: it.FavouriteCount,
			URL:            it.URL,
			Photos:         it.Photos,
			Provenance:     models.ProvenanceRedirectSearch,
		}
		if resolved.Description == "" {
			resolved.Description = keywords
		}
		if resolved.URL == "" {
			resolved.URL = itemURL
		}
		if it.SellerUsername != "" {
			resolved.Seller = &models.Seller{Username: it.SellerUsername}
		}
		return matched(resolved)
	}

	return failed(fmt.Sprintf("item %d not in %d search results for %q", ref.ID, len(result.Items), keywords))
}

// viaDirectLookup asks the item API for the record straight up. This is the
// fallback: direct lookups are the ones the anti-bot challenge guards.
func (r *Resolver) viaDirectLookup(ctx context.Context, ref models.ItemReference) stageResult {
	detail, err := r.api.GetItem(ctx, ref.ID, ref.CountryCode)
	if err != nil {
		return failed(err.Error())
	}
	if detail == nil || detail.Item.Title == "" {
		return failed("direct lookup returned an empty item")
	}
	if !sameItemID(detail.Item.ID, ref.ID) {
		return failed(fmt.Sprintf("direct lookup returned item %d, wanted %d", detail.Item.ID, ref.ID))
	}

	it := detail.Item
	return matched(&models.ResolvedItem{
		ID:             ref.ID,
		Title:          it.Title,
		Description:    it.Description,
		Price:          formatPrice(it.Price, it.Currency),
		Brand:          it.Brand,
		Size:           it.Size,
		Condition:      it.Condition,
		FavouriteCount: it.FavouriteCount,
		URL:            it.URL,
		Photos:         it.Photos,
		Seller:         detail.Seller,
		Provenance:     models.ProvenanceCore,
	})
}

// itemURL builds the public item URL the probe targets.
func (r *Resolver) itemURL(ref models.ItemReference) string {
	base := r.baseURL
	if base == "" {
		base = "https://" + vinted.DomainFor(ref.CountryCode)
	}
	return base + "/items/" + strconv.FormatInt(ref.ID, 10)
}

// sameItemID compares item IDs both numerically and as normalized strings;
// upstream IDs arrive as numbers or numeric-looking strings depending on the
// endpoint.
func sameItemID(got, want int64) bool {
	return got == want ||
		strconv.FormatInt(got, 10) == strconv.FormatInt(want, 10)
}

// formatPrice renders "12.5 EUR" the way the public operations expose
// prices.
func formatPrice(amount float64, currency string) string {
	if currency == "" {
		currency = "EUR"
	}
	return strconv.FormatFloat(amount, 'f', -1, 64) + " " + currency
}
