package models

// TrendingItem extends a listing with derived engagement-velocity fields.
// Everything here is recomputed from the source item and wall-clock time on
// every call; derived fields are never persisted or mutated independently.
type TrendingItem struct {
	ItemID          int64   `json:"itemId"`
	Title           string  `json:"title"`
	URL             string  `json:"url"`
	Price           float64 `json:"price"`
	Currency        string  `json:"currency"`
	FavouriteCount  int     `json:"favourites"`
	ViewCount       int     `json:"views"`
	FavsGrowthRate  float64 `json:"favsPerHour"`
	ViewsGrowthRate float64 `json:"viewsPerHour"`
	TrendScore      float64 `json:"trendScore"`
	ListedHoursAgo  float64 `json:"listedHoursAgo"`
}

// TrendingResult is the get-trending operation response.
type TrendingResult struct {
	Country string         `json:"country"`
	Query   string         `json:"query,omitempty"`
	Items   []TrendingItem `json:"trendingItems"`
}

// CountryPriceAggregate summarizes prices for one country over an identical
// query. Immutable once produced. A country with no matched items is still
// reported, with ItemCount 0 and zeroed statistics.
type CountryPriceAggregate struct {
	CountryCode string  `json:"country"`
	AvgPrice    float64 `json:"avgPrice"`
	MedianPrice float64 `json:"medianPrice"`
	MinPrice    float64 `json:"minPrice"`
	MaxPrice    float64 `json:"maxPrice"`
	Currency    string  `json:"currency"`
	ItemCount   int     `json:"itemCount"`
}

// PriceComparison is the compare-prices operation response.
type PriceComparison struct {
	Query              string                  `json:"query"`
	Comparisons        []CountryPriceAggregate `json:"countries"`
	BestBuyCountry     string                  `json:"bestBuyCountry"`
	BestSellCountry    string                  `json:"bestSellCountry"`
	ArbitrageSpreadPct float64                 `json:"arbitrageSpreadPct"`
}
