package locale

import "strings"

func InferCountryFromPhone(phone string) *Country {
	normalized := strings.TrimSpace(phone)

	for _, country := range Countries {
		for _, prefix := range country.PhonePrefixes {
			if strings.HasPrefix(normalized, prefix) {
				return &country
			}
		}
	}

	return nil
}

// RegionForPhone returns the region used to parse a phone number, falling
// back to the default country when no prefix matches.
func RegionForPhone(phone string) string {
	if c := InferCountryFromPhone(phone); c != nil {
		return c.Code
	}
	return DefaultCountryCode
}
