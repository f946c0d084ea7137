package services

import (
	"context"
	"fmt"

	"github.com/kazkn/vinted-scout/internal/models"
	"github.com/kazkn/vinted-scout/internal/resolve"
	"github.com/kazkn/vinted-scout/internal/vinted"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// SearchArgs is the argument bag for the item search operation.
type SearchArgs struct {
	Query      string
	Country    string
	PriceMin   float64
	PriceMax   float64
	BrandIDs   []int
	CategoryID int
	Conditions []string
	SortBy     string
	Limit      int
}

// GetItemArgs is the argument bag for the get-item operation. Exactly one of
// ItemID and URL must be provided.
type GetItemArgs struct {
	ItemID  int64
	URL     string
	Country string
}

// ItemService implements the search and get-item operations.
type ItemService struct {
	client         *vinted.Client
	resolver       *resolve.Resolver
	defaultCountry string
}

func NewItemService(client *vinted.Client, resolver *resolve.Resolver, defaultCountry string) *ItemService {
	if !vinted.IsSupported(defaultCountry) {
		defaultCountry = "fr"
	}
	return &ItemService{
		client:         client,
		resolver:       resolver,
		defaultCountry: defaultCountry,
	}
}

// Search validates the argument bag and runs a catalog search. Defaults:
// country fr, page size 20 capped at 100.
func (s *ItemService) Search(ctx context.Context, args SearchArgs) (*models.SearchResult, error) {
	if args.Query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidArgs)
	}

	country := args.Country
	if country == "" {
		country = s.defaultCountry
	}
	if !vinted.IsSupported(country) {
		return nil, fmt.Errorf("%w: unsupported country %q", ErrInvalidArgs, country)
	}

	limit := args.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	return s.client.SearchItems(ctx, vinted.SearchParams{
		Country:    country,
		Query:      args.Query,
		CategoryID: args.CategoryID,
		BrandIDs:   args.BrandIDs,
		PriceMin:   args.PriceMin,
		PriceMax:   args.PriceMax,
		Conditions: args.Conditions,
		SortBy:     args.SortBy,
		PerPage:    limit,
		Page:       1,
	})
}

// Get resolves one item from an ID or a public URL via the resolution
// pipeline. A terminal not-found comes back inside the lookup, not as an
// error; errors are reserved for invalid input.
func (s *ItemService) Get(ctx context.Context, args GetItemArgs) (*models.ItemLookup, error) {
	var ref *models.ItemReference

	switch {
	case args.URL != "":
		ref = resolve.ParseItemURL(args.URL, s.defaultCountry)
		if ref == nil {
			return nil, fmt.Errorf("%w: invalid item URL: %s", ErrInvalidArgs, args.URL)
		}
	case args.ItemID > 0:
		country := args.Country
		if !vinted.IsSupported(country) {
			country = s.defaultCountry
		}
		ref = &models.ItemReference{ID: args.ItemID, CountryCode: country}
	default:
		return nil, fmt.Errorf("%w: either itemId or url must be provided", ErrInvalidArgs)
	}

	return s.resolver.Resolve(ctx, *ref), nil
}
