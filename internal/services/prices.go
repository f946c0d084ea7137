package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/kazkn/vinted-scout/internal/models"
	"github.com/kazkn/vinted-scout/internal/vinted"
)

// defaultCompareCountries is the country set used when the caller doesn't
// pick one.
var defaultCompareCountries = []string{"fr", "de", "it", "es", "nl", "pl"}

// CompareArgs is the argument bag for the compare-prices operation.
type CompareArgs struct {
	Query     string
	Countries []string
	Limit     int // items analyzed per country
}

// PriceService implements the compare-prices operation: one locale-scoped
// search per country, aggregated and reduced to an arbitrage signal.
type PriceService struct {
	client *vinted.Client
}

func NewPriceService(client *vinted.Client) *PriceService {
	return &PriceService{client: client}
}

// AggregateCountry reduces one country's search results to price statistics.
// Immutable once produced; a country with no items gets ItemCount 0 and the
// marketplace's own currency.
func AggregateCountry(country string, items []models.Item) models.CountryPriceAggregate {
	agg := models.CountryPriceAggregate{
		CountryCode: country,
		Currency:    vinted.CurrencyFor(country),
	}

	prices := make([]float64, 0, len(items))
	for _, item := range items {
		if item.Price <= 0 {
			continue
		}
		prices = append(prices, item.Price)
		if item.Currency != "" {
			agg.Currency = item.Currency
		}
	}
	if len(prices) == 0 {
		return agg
	}

	sort.Float64s(prices)

	var total float64
	for _, p := range prices {
		total += p
	}

	agg.ItemCount = len(prices)
	agg.AvgPrice = round2(total / float64(len(prices)))
	agg.MedianPrice = round2(median(prices))
	agg.MinPrice = round2(prices[0])
	agg.MaxPrice = round2(prices[len(prices)-1])
	return agg
}

// BuildComparison reduces per-country aggregates over an identical query to
// the arbitrage signal. Countries with zero matched items stay in the report
// but are excluded from best-buy/best-sell consideration.
func BuildComparison(query string, aggregates []models.CountryPriceAggregate) models.PriceComparison {
	cmp := models.PriceComparison{
		Query:       query,
		Comparisons: aggregates,
	}

	var best, worst *models.CountryPriceAggregate
	for i := range aggregates {
		agg := &aggregates[i]
		if agg.ItemCount == 0 {
			continue
		}
		if best == nil || agg.AvgPrice < best.AvgPrice {
			best = agg
		}
		if worst == nil || agg.AvgPrice > worst.AvgPrice {
			worst = agg
		}
	}

	if best != nil && worst != nil {
		cmp.BestBuyCountry = best.CountryCode
		cmp.BestSellCountry = worst.CountryCode
		if best.AvgPrice > 0 {
			cmp.ArbitrageSpreadPct = round1((worst.AvgPrice - best.AvgPrice) / best.AvgPrice * 100)
		}
	}
	return cmp
}

// Compare runs the compare-prices operation. A failed search for one
// country is logged and reported as a zero-count aggregate rather than
// failing the whole comparison.
func (s *PriceService) Compare(ctx context.Context, args CompareArgs) (*models.PriceComparison, error) {
	if args.Query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidArgs)
	}

	countries := args.Countries
	if len(countries) == 0 {
		countries = defaultCompareCountries
	}
	for _, country := range countries {
		if !vinted.IsSupported(country) {
			return nil, fmt.Errorf("%w: unsupported country %q", ErrInvalidArgs, country)
		}
	}

	limit := args.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	aggregates := make([]models.CountryPriceAggregate, 0, len(countries))
	for _, country := range countries {
		result, err := s.client.SearchItems(ctx, vinted.SearchParams{
			Country: country,
			Query:   args.Query,
			PerPage: limit,
			Page:    1,
		})
		if err != nil {
			log.Printf("[prices] search failed for %s: %v", country, err)
			aggregates = append(aggregates, AggregateCountry(country, nil))
			continue
		}
		aggregates = append(aggregates, AggregateCountry(country, result.Items))
	}

	cmp := BuildComparison(args.Query, aggregates)
	return &cmp, nil
}

// median assumes prices is sorted ascending and non-empty.
func median(prices []float64) float64 {
	n := len(prices)
	if n%2 == 1 {
		return prices[n/2]
	}
	return (prices[n/2-1] + prices[n/2]) / 2
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
