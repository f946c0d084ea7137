package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/kazkn/vinted-scout/internal/models"
	"github.com/kazkn/vinted-scout/internal/vinted"
)

const (
	// favouriteWeight is the fixed design constant weighting favourites 10x
	// over views in the engagement score.
	favouriteWeight = 10.0
	viewWeight      = 1.0

	// recencyWindowHours is the window over which the recency bonus decays
	// linearly to zero.
	recencyWindowHours = 7 * 24

	// trendingFetchCap bounds how many newest-first items one trending call
	// pulls from search.
	trendingFetchCap = 48
)

// TrendingArgs is the argument bag for the get-trending operation.
type TrendingArgs struct {
	Query      string
	Country    string
	CategoryID int
	Limit      int
}

// TrendService implements the get-trending operation: newest-first search
// plus the pure engagement-velocity scoring.
type TrendService struct {
	client         *vinted.Client
	defaultCountry string
}

func NewTrendService(client *vinted.Client, defaultCountry string) *TrendService {
	if !vinted.IsSupported(defaultCountry) {
		defaultCountry = "fr"
	}
	return &TrendService{client: client, defaultCountry: defaultCountry}
}

// ScoreTrend computes the derived engagement-velocity fields for one item at
// the given instant. Pure: same item and clock always produce the same
// score.
func ScoreTrend(item models.Item, now time.Time) models.TrendingItem {
	hoursListed := now.Sub(item.CreatedAt).Hours()
	// Floor at one hour so just-listed items don't divide toward infinity.
	if hoursListed < 1 {
		hoursListed = 1
	}

	favsGrowthRate := round2(float64(item.FavouriteCount) / hoursListed)
	viewsGrowthRate := round2(float64(item.ViewCount) / hoursListed)

	recencyBonus := 1 - hoursListed/recencyWindowHours
	if recencyBonus < 0 {
		recencyBonus = 0
	}

	engagementScore := favsGrowthRate*favouriteWeight + viewsGrowthRate*viewWeight
	trendScore := round1(engagementScore * (1 + recencyBonus))

	return models.TrendingItem{
		ItemID:          item.ID,
		Title:           item.Title,
		URL:             item.URL,
		Price:           item.Price,
		Currency:        item.Currency,
		FavouriteCount:  item.FavouriteCount,
		ViewCount:       item.ViewCount,
		FavsGrowthRate:  favsGrowthRate,
		ViewsGrowthRate: viewsGrowthRate,
		TrendScore:      trendScore,
		ListedHoursAgo:  round1(hoursListed),
	}
}

// RankTrending scores every item, sorts descending by trend score (stable,
// so ties keep their original relative order) and truncates to limit.
func RankTrending(items []models.Item, now time.Time, limit int) []models.TrendingItem {
	scored := make([]models.TrendingItem, 0, len(items))
	for _, item := range items {
		scored = append(scored, ScoreTrend(item, now))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].TrendScore > scored[j].TrendScore
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// Trending fetches a newest-first slice of the catalog and ranks it by
// engagement velocity.
func (s *TrendService) Trending(ctx context.Context, args TrendingArgs) (*models.TrendingResult, error) {
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

	perPage := limit * 2
	if perPage > trendingFetchCap {
		perPage = trendingFetchCap
	}

	result, err := s.client.SearchItems(ctx, vinted.SearchParams{
		Country:    country,
		Query:      args.Query,
		CategoryID: args.CategoryID,
		SortBy:     "newest_first",
		PerPage:    perPage,
		Page:       1,
	})
	if err != nil {
		return nil, fmt.Errorf("trending search failed: %w", err)
	}

	return &models.TrendingResult{
		Country: country,
		Query:   args.Query,
		Items:   RankTrending(result.Items, time.Now(), limit),
	}, nil
}
