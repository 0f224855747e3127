// Package sanitizer normalizes free text that crosses a trust or format
// boundary: user input from the admin forms, identifiers derived from names,
// and phone numbers used for the messaging hand-off.
//
// Functions never fail. Invalid input is reduced to the closest valid value,
// usually the empty string.
//
// Normalization includes:
//   - Slugs: lowercase, hyphen-delimited ASCII ("Men's Shoes" becomes "mens-shoes")
//   - Input text: trimmed, script blocks and markup tags removed
//   - Whitespace: runs collapsed to a single space, ends trimmed
//   - Phone numbers: digits only for deep links, E.164 for storage
//   - Random strings: alphanumeric tokens for slug suffixes (not for secrets)
package sanitizer
