package currency

import (
	"math"
	"testing"

	"storefront/pkg/locale"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{name: "grouped thousands", input: "₹12,000", want: 12000},
		{name: "indian lakh grouping", input: "₹1,50,000", want: 150000},
		{name: "no grouping", input: "₹999", want: 999},
		{name: "zero", input: "₹0", want: 0},
		{name: "surrounding whitespace", input: " ₹45,500 ", want: 45500},
		{name: "space after symbol", input: "₹ 2,500", want: 2500},
		{name: "missing symbol", input: "12,000", want: 0},
		{name: "decimal amount", input: "₹12.50", want: 0},
		{name: "negative amount", input: "₹-5", want: 0},
		{name: "other currency", input: "$12", want: 0},
		{name: "symbol only", input: "₹", want: 0},
		{name: "leading comma", input: "₹,100", want: 0},
		{name: "trailing comma", input: "₹100,", want: 0},
		{name: "overflow", input: "₹99,999,999,999,999,999,999", want: 0},
		{name: "empty", input: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.input); got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseValue_NonString(t *testing.T) {
	inputs := []any{nil, 12000, int64(5), 12.5, true, []byte("₹12"), struct{}{}}
	for _, in := range inputs {
		if got := ParseValue(in); got != 0 {
			t.Errorf("ParseValue(%#v) = %d, want 0", in, got)
		}
	}
	if got := ParseValue("₹5"); got != 5 {
		t.Errorf("ParseValue(\"₹5\") = %d, want 5", got)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{12000, "₹12,000"},
		{45500, "₹45,500"},
		{1000, "₹1,000"},
		{999, "₹999"},
		{0, "₹0"},
		{150000, "₹1,50,000"},
		{1234567, "₹12,34,567"},
		{10000000, "₹1,00,00,000"},
	}

	for _, tt := range tests {
		if got := Format(tt.amount); got != tt.want {
			t.Errorf("Format(%d) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{name: "int", input: 12000, want: "₹12,000"},
		{name: "int32", input: int32(5), want: "₹5"},
		{name: "float rounds", input: 999.6, want: "₹1,000"},
		{name: "NaN", input: math.NaN(), want: "₹0"},
		{name: "positive infinity", input: math.Inf(1), want: "₹0"},
		{name: "negative infinity", input: math.Inf(-1), want: "₹0"},
		{name: "string", input: "12", want: "₹0"},
		{name: "nil", input: nil, want: "₹0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatValue(tt.input); got != tt.want {
				t.Errorf("FormatValue(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRoundTrip_Canonical(t *testing.T) {
	canonical := []string{"₹12,000", "₹999", "₹0", "₹45,500", "₹7", "₹10,001"}
	for _, s := range canonical {
		if got := Format(Parse(s)); got != s {
			t.Errorf("Format(Parse(%q)) = %q", s, got)
		}
	}
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		input      string
		wantString string
		wantAmount int64
		wantOK     bool
	}{
		{"12000", "₹12,000", 12000, true},
		{"₹12000", "₹12,000", 12000, true},
		{" ₹ 2,500 ", "₹2,500", 2500, true},
		{"abc", "", 0, false},
		{"", "", 0, false},
		{"12.99", "", 0, false},
	}

	for _, tt := range tests {
		s, amount, ok := Canonicalize(tt.input)
		if s != tt.wantString || amount != tt.wantAmount || ok != tt.wantOK {
			t.Errorf("Canonicalize(%q) = (%q, %d, %v), want (%q, %d, %v)",
				tt.input, s, amount, ok, tt.wantString, tt.wantAmount, tt.wantOK)
		}
	}
}

func TestCodec_OtherLocale(t *testing.T) {
	c := NewCodec(locale.Countries["US"])
	if got := c.Format(1234567); got != "$1,234,567" {
		t.Errorf("Format(1234567) = %q, want $1,234,567", got)
	}
	if got := c.Parse("$1,234,567"); got != 1234567 {
		t.Errorf("Parse($1,234,567) = %d, want 1234567", got)
	}
	if got := c.Parse("₹100"); got != 0 {
		t.Errorf("Parse(₹100) = %d, want 0", got)
	}
}
