package locale

import "strings"

const (
	DefaultCountryCode = "IN"
)

type Country struct {
	Code           string   // ISO 3166-1 alpha-2 country code (e.g., "IN", "US")
	Name           string   // Human-readable country name
	Language       string   // BCP 47 tag driving digit grouping (e.g., "en-IN")
	CurrencySymbol string   // Symbol prefixed to formatted amounts
	PhonePrefixes  []string // Valid phone number prefixes (e.g., ["+91", "91"])
}

var (
	Countries = map[string]Country{
		"IN": {
			Code:           "IN",
			Name:           "India",
			Language:       "en-IN",
			CurrencySymbol: "₹",
			PhonePrefixes:  []string{"+91", "91"},
		},
		"US": {
			Code:           "US",
			Name:           "United States",
			Language:       "en-US",
			CurrencySymbol: "$",
			PhonePrefixes:  []string{"+1", "1"},
		},
	}
)

// Default returns the storefront's home country. Prices, phone parsing and
// digit grouping all fall back to it.
func Default() Country {
	return Countries[DefaultCountryCode]
}

func Lookup(code string) (Country, bool) {
	c, ok := Countries[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}
