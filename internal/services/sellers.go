package services

import (
	"context"
	"fmt"

	"github.com/kazkn/vinted-scout/internal/models"
	"github.com/kazkn/vinted-scout/internal/resolve"
	"github.com/kazkn/vinted-scout/internal/vinted"
)

// GetSellerArgs is the argument bag for the get-seller operation. Exactly
// one of SellerID and URL must be provided.
type GetSellerArgs struct {
	SellerID     int64
	URL          string
	Country      string
	IncludeItems *bool // nil means true
	ItemLimit    int
}

// SellerService implements the get-seller operation.
type SellerService struct {
	client         *vinted.Client
	defaultCountry string
}

func NewSellerService(client *vinted.Client, defaultCountry string) *SellerService {
	if !vinted.IsSupported(defaultCountry) {
		defaultCountry = "fr"
	}
	return &SellerService{client: client, defaultCountry: defaultCountry}
}

// Get fetches a seller profile from an ID or a public profile URL. Profile
// URLs carrying a username instead of a numeric ID go through the external
// username lookup first.
func (s *SellerService) Get(ctx context.Context, args GetSellerArgs) (*models.SellerProfile, error) {
	var sellerID int64
	var country string

	switch {
	case args.URL != "":
		ref := resolve.ParseSellerURL(args.URL, s.defaultCountry)
		if ref == nil {
			return nil, fmt.Errorf("%w: invalid seller URL: %s", ErrInvalidArgs, args.URL)
		}
		country = ref.CountryCode
		if ref.ID > 0 {
			sellerID = ref.ID
		} else {
			id, err := s.client.ResolveUsername(ctx, ref.Username, country)
			if err != nil {
				return nil, fmt.Errorf("could not resolve username %q: %w", ref.Username, err)
			}
			sellerID = id
		}
	case args.SellerID > 0:
		sellerID = args.SellerID
		country = args.Country
		if !vinted.IsSupported(country) {
			country = s.defaultCountry
		}
	default:
		return nil, fmt.Errorf("%w: either sellerId or url must be provided", ErrInvalidArgs)
	}

	itemLimit := 0
	if args.IncludeItems == nil || *args.IncludeItems {
		itemLimit = args.ItemLimit
		if itemLimit <= 0 {
			itemLimit = defaultPageSize
		}
		if itemLimit > maxPageSize {
			itemLimit = maxPageSize
		}
	}

	return s.client.GetSeller(ctx, sellerID, country, itemLimit)
}
