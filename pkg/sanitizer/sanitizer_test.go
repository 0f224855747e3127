package sanitizer

import (
	"reflect"
	"regexp"
	"strings"
	"testing"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "punctuation and padding",
			input: "  Men's Shoes!! ",
			want:  "mens-shoes",
		},
		{
			name:  "simple words",
			input: "Hello World",
			want:  "hello-world",
		},
		{
			name:  "hyphen runs collapse",
			input: "a -- b",
			want:  "a-b",
		},
		{
			name:  "leading and trailing hyphens trimmed",
			input: "---Leading and trailing---",
			want:  "leading-and-trailing",
		},
		{
			name:  "symbols between words",
			input: "Rock & Roll",
			want:  "rock-roll",
		},
		{
			name:  "digits kept",
			input: "100% Cotton T-Shirt",
			want:  "100-cotton-t-shirt",
		},
		{
			name:  "tabs and newlines",
			input: "Tab\tand\nnewline",
			want:  "tab-and-newline",
		},
		{
			name:  "latin diacritics folded",
			input: "Café Crème",
			want:  "cafe-creme",
		},
		{
			name:  "underscores dropped",
			input: "snake_case value",
			want:  "snakecase-value",
		},
		{
			name:  "non latin script collapses to empty",
			input: "日本語",
			want:  "",
		},
		{
			name:  "only symbols",
			input: "!!!",
			want:  "",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateSlug(tt.input)
			if got != tt.want {
				t.Errorf("GenerateSlug(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGenerateSlug_Alphabet(t *testing.T) {
	valid := regexp.MustCompile(`^(?:[a-z0-9]+(?:-[a-z0-9]+)*)?$`)
	inputs := []string{
		"  Men's Shoes!! ",
		"--a--b--",
		"Ünïcödé Ströñg",
		" non breaking ",
		"mixed 日本 text",
		"<script>alert(1)</script>",
		"a_b-c d",
		"- - -",
		"Ελληνικά words",
		strings.Repeat("x ", 200),
	}

	for _, in := range inputs {
		got := GenerateSlug(in)
		if !valid.MatchString(got) {
			t.Errorf("GenerateSlug(%q) = %q contains characters outside the slug alphabet", in, got)
		}
		if strings.Contains(got, "--") {
			t.Errorf("GenerateSlug(%q) = %q contains a hyphen run", in, got)
		}
		if GenerateSlug(got) != got {
			t.Errorf("GenerateSlug is not idempotent for %q", in)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "script block and tags",
			input: "<script>alert(1)</script>Hello<b>World</b>",
			want:  "HelloWorld",
		},
		{
			name:  "trims surrounding whitespace",
			input: "  plain text  ",
			want:  "plain text",
		},
		{
			name:  "script tag is case insensitive",
			input: "<SCRIPT type='text/javascript'>bad()</SCRIPT>ok",
			want:  "ok",
		},
		{
			name:  "script blocks are matched lazily",
			input: "a<script>1</script>b<script>2</script>c",
			want:  "abc",
		},
		{
			name:  "multiline script",
			input: "<script>\nvar x = 1;\n</script>done",
			want:  "done",
		},
		{
			name:  "paragraph tags",
			input: "<p>Hi</p> there",
			want:  "Hi there",
		},
		{
			name:  "lone angle bracket kept",
			input: "5 < 6",
			want:  "5 < 6",
		},
		{
			name:  "entities are not decoded",
			input: "&lt;b&gt;bold&lt;/b&gt;",
			want:  "&lt;b&gt;bold&lt;/b&gt;",
		},
		{
			name:  "trim happens before stripping",
			input: " <b> x </b> ",
			want:  " x ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeInput(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeInput(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeValue(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  any
	}{
		{name: "string is sanitized", input: "<i>x</i>", want: "x"},
		{name: "int passes through", input: 42, want: 42},
		{name: "nil passes through", input: nil, want: nil},
		{name: "bool passes through", input: true, want: true},
		{name: "slice passes through", input: []string{"<b>a</b>"}, want: []string{"<b>a</b>"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeValue(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SanitizeValue(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeSlice(t *testing.T) {
	got := SanitizeSlice([]string{" a ", "", "a", "b", "  "}, strings.TrimSpace)
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SanitizeSlice() = %v, want %v", got, want)
	}

	if got := SanitizeSlice(nil, strings.TrimSpace); len(got) != 0 || got == nil {
		t.Errorf("SanitizeSlice(nil) = %#v, want empty non-nil slice", got)
	}
}
