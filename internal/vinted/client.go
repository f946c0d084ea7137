// Package vinted implements the Vinted marketplace API client.
//
// The client owns everything the browsing core treats as opaque: anonymous
// session warmup per country domain, request pacing, the outbound
// concurrency ceiling, and the username lookup cache. It is constructed once
// at process start and shared by every operation; it holds no per-request
// state.
package vinted

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/kazkn/vinted-scout/internal/metrics"
	"github.com/kazkn/vinted-scout/internal/models"
)

const (
	defaultTimeout = 30 * time.Second

	// browserUserAgent is sent on every request; the catalog API rejects
	// obviously non-browser agents.
	browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	usernameCacheSize = 256
)

// SearchParams describes one catalog search.
type SearchParams struct {
	Country    string
	Query      string
	CategoryID int
	BrandIDs   []int
	PriceMin   float64
	PriceMax   float64
	Conditions []string
	SortBy     string
	PerPage    int
	Page       int
}

// ItemDetail is a full item record from a direct lookup, including the
// seller block that search results omit.
type ItemDetail struct {
	Item   models.Item
	Seller *models.Seller
}

// Client is the shared Vinted API handle.
type Client struct {
	http      *http.Client
	limiter   *rate.Limiter
	sem       chan struct{}
	anonID    string
	userAgent string

	// usernames caches resolved username -> seller ID lookups. Session and
	// lookup internals are this client's own concern; the entities it
	// returns stay request-scoped.
	usernames *lru.Cache[string, int64]

	mu     sync.Mutex
	warmed map[string]bool // domains with an established anonymous session
}

// NewClient creates the shared client handle. maxConcurrency bounds
// simultaneous outbound requests; requestDelay is the minimum spacing
// between consecutive requests.
func NewClient(maxConcurrency int, requestDelay time.Duration) *Client {
	if maxConcurrency <= 0 {
		maxConcurrency = 3
	}
	if requestDelay <= 0 {
		requestDelay = 500 * time.Millisecond
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		log.Fatalf("[vinted] failed to create cookie jar: %v", err)
	}

	usernames, err := lru.New[string, int64](usernameCacheSize)
	if err != nil {
		log.Fatalf("[vinted] failed to create username cache: %v", err)
	}

	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
			Jar:     jar,
		},
		limiter:   rate.NewLimiter(rate.Every(requestDelay), 1),
		sem:       make(chan struct{}, maxConcurrency),
		anonID:    uuid.New().String(),
		userAgent: browserUserAgent,
		usernames: usernames,
		warmed:    make(map[string]bool),
	}
}

// acquire blocks until a concurrency slot and a rate token are available.
func (c *Client) acquire(ctx context.Context) error {
	select {
	case c.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := c.limiter.Wait(ctx); err != nil {
		<-c.sem
		return err
	}
	return nil
}

func (c *Client) release() {
	<-c.sem
}

// ensureSession performs a one-time homepage GET against the country domain
// so the API cookies end up in the jar. Best effort: a failed warmup is
// logged and the API call proceeds anyway.
func (c *Client) ensureSession(ctx context.Context, domain string) {
	c.mu.Lock()
	done := c.warmed[domain]
	if !done {
		c.warmed[domain] = true
	}
	c.mu.Unlock()
	if done {
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://"+domain+"/", nil)
	if err != nil {
		return
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("[vinted] session warmup failed for %s: %v", domain, err)
		return
	}
	resp.Body.Close()
}

// apiGet performs one authenticated GET against /api/v2 and decodes the JSON
// response into out.
func (c *Client) apiGet(ctx context.Context, domain, path string, query url.Values, endpoint string, out any) error {
	if err := c.acquire(ctx); err != nil {
		return err
	}
	defer c.release()

	c.ensureSession(ctx, domain)

	reqURL := "https://" + domain + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("X-Anon-Id", c.anonID)

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	metrics.APIRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusForbidden {
		// Datadome challenge page instead of JSON.
		return fmt.Errorf("vinted API blocked the request (status 403)")
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("vinted API error: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ---------- catalog search ----------

// conditionStatusIDs maps public condition names to catalog status IDs.
var conditionStatusIDs = map[string]string{
	"new_with_tags":    "6",
	"new_without_tags": "1",
	"very_good":        "2",
	"good":             "3",
	"satisfactory":     "4",
}

// sortOrders is the set of catalog order values the API accepts.
var sortOrders = map[string]bool{
	"relevance":         true,
	"price_low_to_high": true,
	"price_high_to_low": true,
	"newest_first":      true,
}

type apiPhoto struct {
	URL            string `json:"url"`
	HighResolution struct {
		Timestamp json.Number `json:"timestamp"`
	} `json:"high_resolution"`
}

type apiPrice struct {
	Amount       json.Number `json:"amount"`
	CurrencyCode string      `json:"currency_code"`
}

// apiItem covers both catalog search entries and the item detail payload.
// Numeric fields arrive as numbers or numeric strings depending on the
// endpoint, so everything goes through json.Number.
type apiItem struct {
	ID             json.Number `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Price          apiPrice    `json:"price"`
	BrandTitle     string      `json:"brand_title"`
	SizeTitle      string      `json:"size_title"`
	Status         string      `json:"status"`
	FavouriteCount json.Number `json:"favourite_count"`
	ViewCount      json.Number `json:"view_count"`
	URL            string      `json:"url"`
	CreatedAtTS    json.Number `json:"created_at_ts"`
	Photo          *apiPhoto   `json:"photo"`
	Photos         []apiPhoto  `json:"photos"`
	User           *apiUser    `json:"user"`
}

type searchAPIResponse struct {
	Items      []apiItem `json:"items"`
	Pagination struct {
		TotalEntries json.Number `json:"total_entries"`
	} `json:"pagination"`
}

// SearchItems runs a locale-scoped catalog search.
func (c *Client) SearchItems(ctx context.Context, params SearchParams) (*models.SearchResult, error) {
	country := params.Country
	if !IsSupported(country) {
		country = "fr"
	}
	perPage := params.PerPage
	if perPage <= 0 {
		perPage = 20
	}
	page := params.Page
	if page <= 0 {
		page = 1
	}

	query := url.Values{}
	query.Set("search_text", params.Query)
	query.Set("per_page", strconv.Itoa(perPage))
	query.Set("page", strconv.Itoa(page))
	if params.CategoryID > 0 {
		query.Set("catalog_ids", strconv.Itoa(params.CategoryID))
	}
	for _, id := range params.BrandIDs {
		query.Add("brand_ids[]", strconv.Itoa(id))
	}
	if params.PriceMin > 0 {
		query.Set("price_from", formatAmount(params.PriceMin))
	}
	if params.PriceMax > 0 {
		query.Set("price_to", formatAmount(params.PriceMax))
	}
	for _, cond := range params.Conditions {
		if id, ok := conditionStatusIDs[cond]; ok {
			query.Add("status_ids[]", id)
		}
	}
	if sortOrders[params.SortBy] {
		query.Set("order", params.SortBy)
	}

	var resp searchAPIResponse
	if err := c.apiGet(ctx, DomainFor(country), "/api/v2/catalog/items", query, "search", &resp); err != nil {
		return nil, fmt.Errorf("search failed for %q: %w", params.Query, err)
	}

	items := make([]models.Item, 0, len(resp.Items))
	for i := range resp.Items {
		items = append(items, convertItem(&resp.Items[i], country))
	}

	return &models.SearchResult{
		TotalFound: int(numberToInt64(resp.Pagination.TotalEntries)),
		Returned:   len(items),
		Country:    country,
		Items:      items,
	}, nil
}

// GetItem fetches a single item record directly. Direct lookups hit the
// anti-bot challenge far more often than catalog search; callers are
// expected to treat failures as recoverable.
func (c *Client) GetItem(ctx context.Context, id int64, country string) (*ItemDetail, error) {
	var resp struct {
		Item apiItem `json:"item"`
	}
	path := "/api/v2/items/" + strconv.FormatInt(id, 10)
	if err := c.apiGet(ctx, DomainFor(country), path, nil, "item", &resp); err != nil {
		return nil, fmt.Errorf("get item %d failed: %w", id, err)
	}

	detail := &ItemDetail{Item: convertItem(&resp.Item, country)}
	if resp.Item.User != nil {
		detail.Seller = &models.Seller{
			ID:       numberToInt64(resp.Item.User.ID),
			Username: resp.Item.User.Login,
			Rating:   reputationToRating(resp.Item.User.FeedbackReputation),
		}
	}
	return detail, nil
}

// ---------- sellers ----------

type apiUser struct {
	ID                 json.Number `json:"id"`
	Login              string      `json:"login"`
	FeedbackReputation json.Number `json:"feedback_reputation"`
	FeedbackCount      json.Number `json:"feedback_count"`
	ItemCount          json.Number `json:"item_count"`
	GivenItemCount     json.Number `json:"given_item_count"`
	FollowersCount     json.Number `json:"followers_count"`
	FollowingCount     json.Number `json:"following_count"`
	CountryTitle       string      `json:"country_title"`
	City               string      `json:"city"`
	CreatedAt          string      `json:"created_at"`
	ProfileURL         string      `json:"profile_url"`
	Verification       struct {
		Email    struct{ Valid bool `json:"valid"` } `json:"email"`
		Facebook struct{ Valid bool `json:"valid"` } `json:"facebook"`
		Google   struct{ Valid bool `json:"valid"` } `json:"google"`
		Phone    struct{ Valid bool `json:"valid"` } `json:"phone"`
	} `json:"verification"`
}

// GetSeller fetches a seller profile and, when itemLimit > 0, their most
// recent listings.
func (c *Client) GetSeller(ctx context.Context, id int64, country string, itemLimit int) (*models.SellerProfile, error) {
	domain := DomainFor(country)
	userPath := "/api/v2/users/" + strconv.FormatInt(id, 10)

	var resp struct {
		User apiUser `json:"user"`
	}
	if err := c.apiGet(ctx, domain, userPath, nil, "seller", &resp); err != nil {
		return nil, fmt.Errorf("get seller %d failed: %w", id, err)
	}

	u := &resp.User
	profile := &models.SellerProfile{
		ID:             numberToInt64(u.ID),
		Username:       u.Login,
		ProfileURL:     u.ProfileURL,
		Rating:         reputationToRating(u.FeedbackReputation),
		RatingCount:    int(numberToInt64(u.FeedbackCount)),
		ItemCount:      int(numberToInt64(u.ItemCount)),
		SoldItemCount:  int(numberToInt64(u.GivenItemCount)),
		FollowerCount:  int(numberToInt64(u.FollowersCount)),
		FollowingCount: int(numberToInt64(u.FollowingCount)),
		Country:        u.CountryTitle,
		City:           u.City,
		MemberSince:    u.CreatedAt,
		Verifications:  verificationList(u),
	}
	if profile.ProfileURL == "" {
		profile.ProfileURL = "https://" + domain + "/member/" + strconv.FormatInt(id, 10)
	}

	if itemLimit > 0 {
		query := url.Values{}
		query.Set("per_page", strconv.Itoa(itemLimit))
		query.Set("order", "newest_first")

		var itemsResp struct {
			Items []apiItem `json:"items"`
		}
		if err := c.apiGet(ctx, domain, userPath+"/items", query, "seller_items", &itemsResp); err != nil {
			// Profile without listings is still useful.
			log.Printf("[vinted] seller %d items fetch failed: %v", id, err)
		} else {
			for i := range itemsResp.Items {
				profile.RecentItems = append(profile.RecentItems, convertItem(&itemsResp.Items[i], country))
			}
		}
	}

	return profile, nil
}

// ResolveUsername maps a public username to a seller ID via user search.
// Results are cached; the mapping is stable upstream.
func (c *Client) ResolveUsername(ctx context.Context, username, country string) (int64, error) {
	key := country + "/" + strings.ToLower(username)
	if id, ok := c.usernames.Get(key); ok {
		return id, nil
	}

	query := url.Values{}
	query.Set("search_text", username)
	query.Set("per_page", "5")

	var resp struct {
		Users []apiUser `json:"users"`
	}
	if err := c.apiGet(ctx, DomainFor(country), "/api/v2/users", query, "user_search", &resp); err != nil {
		return 0, fmt.Errorf("username lookup for %q failed: %w", username, err)
	}

	for i := range resp.Users {
		if strings.EqualFold(resp.Users[i].Login, username) {
			id := numberToInt64(resp.Users[i].ID)
			if id > 0 {
				c.usernames.Add(key, id)
				return id, nil
			}
		}
	}
	return 0, fmt.Errorf("username %q not found", username)
}

// ---------- conversion helpers ----------

// convertItem maps the upstream payload to the transient domain item.
func convertItem(raw *apiItem, country string) models.Item {
	item := models.Item{
		ID:             numberToInt64(raw.ID),
		Title:          raw.Title,
		Description:    raw.Description,
		Price:          numberToFloat(raw.Price.Amount),
		Currency:       raw.Price.CurrencyCode,
		Brand:          raw.BrandTitle,
		Size:           raw.SizeTitle,
		Condition:      raw.Status,
		FavouriteCount: int(numberToInt64(raw.FavouriteCount)),
		ViewCount:      int(numberToInt64(raw.ViewCount)),
		URL:            raw.URL,
	}
	if item.Currency == "" {
		item.Currency = CurrencyFor(country)
	}
	if raw.User != nil {
		item.SellerUsername = raw.User.Login
	}

	for i := range raw.Photos {
		item.Photos = append(item.Photos, raw.Photos[i].URL)
	}
	if len(item.Photos) == 0 && raw.Photo != nil && raw.Photo.URL != "" {
		item.Photos = append(item.Photos, raw.Photo.URL)
	}

	// Listing time: the detail payload carries created_at_ts; search entries
	// only expose the upload timestamp of the cover photo.
	if ts := numberToInt64(raw.CreatedAtTS); ts > 0 {
		item.CreatedAt = time.Unix(ts, 0)
	} else if raw.Photo != nil {
		if ts := numberToInt64(raw.Photo.HighResolution.Timestamp); ts > 0 {
			item.CreatedAt = time.Unix(ts, 0)
		}
	}
	return item
}

func verificationList(u *apiUser) []string {
	var out []string
	if u.Verification.Email.Valid {
		out = append(out, "email")
	}
	if u.Verification.Phone.Valid {
		out = append(out, "phone")
	}
	if u.Verification.Facebook.Valid {
		out = append(out, "facebook")
	}
	if u.Verification.Google.Valid {
		out = append(out, "google")
	}
	return out
}

// reputationToRating converts the 0..1 feedback reputation to a 0..5 rating.
func reputationToRating(n json.Number) float64 {
	rep := numberToFloat(n)
	if rep <= 0 {
		return 0
	}
	return float64(int(rep*5*100+0.5)) / 100
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// numberToInt64 converts a json.Number to int64, returning 0 on error.
// Some endpoints return numeric fields as strings or floats.
func numberToInt64(n json.Number) int64 {
	if n == "" {
		return 0
	}
	v, err := n.Int64()
	if err != nil {
		f, err2 := n.Float64()
		if err2 != nil {
			i, _ := strconv.ParseInt(string(n), 10, 64)
			return i
		}
		return int64(f)
	}
	return v
}

// numberToFloat converts a json.Number to float64, returning 0 on error.
func numberToFloat(n json.Number) float64 {
	if n == "" {
		return 0
	}
	f, err := n.Float64()
	if err != nil {
		return 0
	}
	return f
}
