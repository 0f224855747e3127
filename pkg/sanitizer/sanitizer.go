package sanitizer

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reWhitespaceRun = regexp.MustCompile(`[\s\p{Zs}]+`)
	reNotSlugChar   = regexp.MustCompile(`[^a-z0-9-]+`)
	reHyphenRun     = regexp.MustCompile(`-{2,}`)

	reScriptBlock = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	reMarkupTag   = regexp.MustCompile(`<[^>]*>`)
)

// foldDiacritics maps accented Latin letters to their base letter ("é" -> "e").
// Letters without a decomposition are left alone and dropped later by the slug
// alphabet filter.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func GenerateSlug(text string) string {
	p := Pipeline{
		strings.ToLower,
		strings.TrimSpace,
		foldDiacritics,
		func(s string) string { return reWhitespaceRun.ReplaceAllString(s, "-") },
		func(s string) string { return reNotSlugChar.ReplaceAllString(s, "") },
		func(s string) string { return reHyphenRun.ReplaceAllString(s, "-") },
		func(s string) string { return strings.Trim(s, "-") },
	}
	return p.Apply(text)
}

// SanitizeInput strips script blocks and markup tags from user supplied text.
// It does not decode entities and does not look inside attributes; it is a
// filter for plain-text fields, not an HTML sanitizer.
func SanitizeInput(text string) string {
	p := Pipeline{
		strings.TrimSpace,
		func(s string) string { return reScriptBlock.ReplaceAllString(s, "") },
		func(s string) string { return reMarkupTag.ReplaceAllString(s, "") },
	}
	return p.Apply(text)
}

// SanitizeValue applies SanitizeInput to strings and returns every other value
// unchanged, so callers must not assume a string comes back.
func SanitizeValue(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	return SanitizeInput(s)
}

func SanitizeSlice(values []string, strategy Strategy) []string {
	seen := make(map[string]struct{})
	out := []string{}

	for _, v := range values {
		s := strategy(v)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out
}
