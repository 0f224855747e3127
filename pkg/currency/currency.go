// Package currency converts between display prices ("₹12,000") and whole
// currency amounts.
//
// The codec is asymmetric on purpose: Parse is permissive and returns 0 for
// anything it does not recognise, Format is total over every integer amount.
// Fractional (minor) units are not supported.
package currency

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"storefront/pkg/locale"
)

type Codec struct {
	symbol  string
	printer *message.Printer
	pattern *regexp.Regexp
}

func NewCodec(country locale.Country) *Codec {
	tag, err := language.Parse(country.Language)
	if err != nil {
		tag = language.English
	}
	return &Codec{
		symbol:  country.CurrencySymbol,
		printer: message.NewPrinter(tag),
		pattern: regexp.MustCompile(`^` + regexp.QuoteMeta(country.CurrencySymbol) + `\s?(\d+(?:,\d+)*)$`),
	}
}

var defaultCodec = NewCodec(locale.Default())

func Default() *Codec {
	return defaultCodec
}

func (c *Codec) Symbol() string {
	return c.symbol
}

// Parse returns the amount encoded in s, or 0 when s is not the currency
// symbol followed by digit groups.
func (c *Codec) Parse(s string) int64 {
	amount, _ := c.parse(s)
	return amount
}

func (c *Codec) parse(s string) (int64, bool) {
	m := c.pattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	amount, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}

// ParseValue is Parse for loosely typed input: anything that is not a string
// is 0.
func (c *Codec) ParseValue(v any) int64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	return c.Parse(s)
}

func (c *Codec) Format(amount int64) string {
	return c.symbol + c.printer.Sprintf("%d", amount)
}

// FormatValue formats any numeric value, rounding floats to whole units.
// Non-numeric and non-finite input yields the zero amount.
func (c *Codec) FormatValue(v any) string {
	switch n := v.(type) {
	case int:
		return c.Format(int64(n))
	case int8:
		return c.Format(int64(n))
	case int16:
		return c.Format(int64(n))
	case int32:
		return c.Format(int64(n))
	case int64:
		return c.Format(n)
	case uint:
		return c.formatFloat(float64(n))
	case uint8:
		return c.Format(int64(n))
	case uint16:
		return c.Format(int64(n))
	case uint32:
		return c.Format(int64(n))
	case uint64:
		return c.formatFloat(float64(n))
	case float32:
		return c.formatFloat(float64(n))
	case float64:
		return c.formatFloat(n)
	default:
		return c.Format(0)
	}
}

func (c *Codec) formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return c.Format(0)
	}
	return c.Format(int64(math.Round(f)))
}

// Canonicalize rewrites a price typed by an admin into canonical form. A bare
// number without the symbol is accepted. The boolean is false when no amount
// could be read.
func (c *Codec) Canonicalize(s string) (string, int64, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, c.symbol) {
		s = c.symbol + s
	}
	amount, ok := c.parse(s)
	if !ok {
		return "", 0, false
	}
	return c.Format(amount), amount, true
}

func Parse(s string) int64 {
	return defaultCodec.Parse(s)
}

func ParseValue(v any) int64 {
	return defaultCodec.ParseValue(v)
}

func Format(amount int64) string {
	return defaultCodec.Format(amount)
}

func FormatValue(v any) string {
	return defaultCodec.FormatValue(v)
}

func Canonicalize(s string) (string, int64, bool) {
	return defaultCodec.Canonicalize(s)
}
