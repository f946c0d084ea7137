package vinted

// Country describes one Vinted marketplace region: its domain, currency and
// primary language.
type Country struct {
	Code     string `json:"code"`
	Domain   string `json:"domain"`
	Currency string `json:"currency"`
	Language string `json:"language"`
	Name     string `json:"name"`
}

// countries is the fixed table of the 19 supported Vinted marketplaces,
// keyed by canonical country code.
var countries = map[string]Country{
	"fr": {Code: "fr", Domain: "www.vinted.fr", Currency: "EUR", Language: "fr", Name: "France"},
	"de": {Code: "de", Domain: "www.vinted.de", Currency: "EUR", Language: "de", Name: "Germany"},
	"uk": {Code: "uk", Domain: "www.vinted.co.uk", Currency: "GBP", Language: "en", Name: "United Kingdom"},
	"it": {Code: "it", Domain: "www.vinted.it", Currency: "EUR", Language: "it", Name: "Italy"},
	"es": {Code: "es", Domain: "www.vinted.es", Currency: "EUR", Language: "es", Name: "Spain"},
	"nl": {Code: "nl", Domain: "www.vinted.nl", Currency: "EUR", Language: "nl", Name: "Netherlands"},
	"pl": {Code: "pl", Domain: "www.vinted.pl", Currency: "PLN", Language: "pl", Name: "Poland"},
	"pt": {Code: "pt", Domain: "www.vinted.pt", Currency: "EUR", Language: "pt", Name: "Portugal"},
	"be": {Code: "be", Domain: "www.vinted.be", Currency: "EUR", Language: "fr", Name: "Belgium"},
	"at": {Code: "at", Domain: "www.vinted.at", Currency: "EUR", Language: "de", Name: "Austria"},
	"lt": {Code: "lt", Domain: "www.vinted.lt", Currency: "EUR", Language: "lt", Name: "Lithuania"},
	"cz": {Code: "cz", Domain: "www.vinted.cz", Currency: "CZK", Language: "cs", Name: "Czechia"},
	"sk": {Code: "sk", Domain: "www.vinted.sk", Currency: "EUR", Language: "sk", Name: "Slovakia"},
	"hu": {Code: "hu", Domain: "www.vinted.hu", Currency: "HUF", Language: "hu", Name: "Hungary"},
	"ro": {Code: "ro", Domain: "www.vinted.ro", Currency: "RON", Language: "ro", Name: "Romania"},
	"hr": {Code: "hr", Domain: "www.vinted.hr", Currency: "EUR", Language: "hr", Name: "Croatia"},
	"fi": {Code: "fi", Domain: "www.vinted.fi", Currency: "EUR", Language: "fi", Name: "Finland"},
	"dk": {Code: "dk", Domain: "www.vinted.dk", Currency: "DKK", Language: "da", Name: "Denmark"},
	"se": {Code: "se", Domain: "www.vinted.se", Currency: "SEK", Language: "sv", Name: "Sweden"},
}

// domainSuffixes maps the locale suffix of a vinted.* hostname to the
// canonical country code. Most suffixes equal the code; co.uk is the
// exception.
var domainSuffixes = map[string]string{
	"fr": "fr", "de": "de", "co.uk": "uk", "it": "it", "es": "es",
	"nl": "nl", "pl": "pl", "pt": "pt", "be": "be", "at": "at",
	"lt": "lt", "cz": "cz", "sk": "sk", "hu": "hu", "ro": "ro",
	"hr": "hr", "fi": "fi", "dk": "dk", "se": "se",
}

// listOrder keeps Countries() output deterministic.
var listOrder = []string{
	"fr", "de", "uk", "it", "es", "nl", "pl", "pt", "be", "at",
	"lt", "cz", "sk", "hu", "ro", "hr", "fi", "dk", "se",
}

// IsSupported reports whether code is one of the supported country codes.
func IsSupported(code string) bool {
	_, ok := countries[code]
	return ok
}

// DomainFor returns the marketplace hostname for a country code, falling
// back to the French domain for unknown codes.
func DomainFor(code string) string {
	if c, ok := countries[code]; ok {
		return c.Domain
	}
	return countries["fr"].Domain
}

// CurrencyFor returns the marketplace currency for a country code, EUR for
// unknown codes.
func CurrencyFor(code string) string {
	if c, ok := countries[code]; ok {
		return c.Currency
	}
	return "EUR"
}

// CountryForSuffix maps a vinted.* domain suffix (e.g. "co.uk") to its
// canonical country code.
func CountryForSuffix(suffix string) (string, bool) {
	code, ok := domainSuffixes[suffix]
	return code, ok
}

// Countries returns the full country table in a stable order.
func Countries() []Country {
	out := make([]Country, 0, len(listOrder))
	for _, code := range listOrder {
		out = append(out, countries[code])
	}
	return out
}
