// Package resolve recovers canonical item records from bare IDs or public
// URLs. Direct item lookups sit behind an anti-bot challenge, but the
// marketplace leaks an item's search slug via an HTTP redirect issued before
// the challenge runs; this package exploits that to reconcile items through
// catalog search, falling back to the direct lookup when it has to.
package resolve

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kazkn/vinted-scout/internal/models"
	"github.com/kazkn/vinted-scout/internal/vinted"
)

// hostPattern extracts the locale suffix from a vinted.* hostname,
// e.g. "www.vinted.co.uk" -> "co.uk".
var hostPattern = regexp.MustCompile(`(?:^|\.)vinted\.([a-z]+(?:\.[a-z]+)?)$`)

// leadingDigits matches the numeric ID at the start of a path segment,
// covering both "/items/123" and "/items/123-some-slug".
var leadingDigits = regexp.MustCompile(`^(\d+)`)

// ParseItemURL parses a public item URL into an item reference. It returns
// nil when the URL is not an item URL; that is the caller's signal, not an
// error. Locale suffixes missing from the table fall back to fallbackCountry.
func ParseItemURL(rawURL, fallbackCountry string) *models.ItemReference {
	host, segments := splitMarketplaceURL(rawURL)
	if host == "" || len(segments) == 0 {
		return nil
	}

	// The item ID is the leading number of the trailing path segment.
	m := leadingDigits.FindStringSubmatch(segments[len(segments)-1])
	if m == nil {
		return nil
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || id <= 0 {
		return nil
	}

	return &models.ItemReference{
		ID:          id,
		CountryCode: countryForHost(host, fallbackCountry),
	}
}

// ParseSellerURL parses a public profile URL (/member/<token>) into a
// seller reference. A fully numeric token is a seller ID; anything else is a
// username that needs an external lookup. Returns nil for non-profile URLs.
func ParseSellerURL(rawURL, fallbackCountry string) *models.SellerReference {
	host, segments := splitMarketplaceURL(rawURL)
	if host == "" {
		return nil
	}

	token := ""
	for i, seg := range segments {
		if seg == "member" && i+1 < len(segments) {
			token = segments[i+1]
			break
		}
	}
	if token == "" {
		return nil
	}

	ref := &models.SellerReference{CountryCode: countryForHost(host, fallbackCountry)}
	if id, err := strconv.ParseInt(token, 10, 64); err == nil && id > 0 {
		ref.ID = id
	} else {
		ref.Username = token
	}
	return ref
}

// splitMarketplaceURL returns the hostname and non-empty path segments of a
// URL, tolerating missing schemes. The hostname must match the marketplace
// pattern; otherwise it returns ("", nil).
func splitMarketplaceURL(rawURL string) (string, []string) {
	s := strings.TrimSpace(rawURL)
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")

	// Cut query and fragment before splitting the path.
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}

	host, path, _ := strings.Cut(s, "/")
	if !hostPattern.MatchString(host) {
		return "", nil
	}

	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return host, segments
}

// countryForHost maps a marketplace hostname to its canonical country code.
// Unknown locale suffixes deliberately fall back rather than fail, matching
// prior behavior.
func countryForHost(host, fallbackCountry string) string {
	if m := hostPattern.FindStringSubmatch(host); m != nil {
		if code, ok := vinted.CountryForSuffix(m[1]); ok {
			return code
		}
	}
	if vinted.IsSupported(fallbackCountry) {
		return fallbackCountry
	}
	return "fr"
}
