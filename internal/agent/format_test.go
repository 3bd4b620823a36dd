package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "whitespace only", in: " \n\t\n ", want: ""},
		{name: "bold", in: "**Great** choice", want: "Great choice"},
		{name: "underscore emphasis", in: "_italic_ and __bold__", want: "italic and bold"},
		{name: "star italic", in: "*emph* word", want: "emph word"},
		{name: "heading", in: "# Heading\n\nBody", want: "Heading\n\nBody"},
		{name: "closed heading", in: "## Prices ##\nAED 1M", want: "Prices\nAED 1M"},
		{name: "bullets", in: "- one\n* two\n+ three\n•four", want: "• one\n• two\n• three\n• four"},
		{name: "numbered", in: "1) first\n2.   second", want: "1. first\n2. second"},
		{name: "nested bullet keeps indent", in: "1. Villa\n   - pool", want: "1. Villa\n   • pool"},
		{name: "blank runs", in: "a\n\n\n\nb", want: "a\n\nb"},
		{name: "code fence", in: "```go\ncode here\n```", want: "code here"},
		{name: "inline code", in: "use `inline` code", want: "use inline code"},
		{name: "crlf and trailing spaces", in: "line  \r\nnext", want: "line\nnext"},
		{name: "horizontal rule", in: "top\n\n---\n\nbottom", want: "top\n\nbottom"},
		{name: "bold bullet", in: "* **Downtown**: AED 2M", want: "• Downtown: AED 2M"},
		{name: "decimal not a list", in: "2.5 million AED", want: "2.5 million AED"},
		{name: "arabic untouched", in: "مرحباً بك\n\n\n- شقة", want: "مرحباً بك\n\n• شقة"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatResponse(tt.in))
		})
	}
}

func TestFormatResponse_Idempotent(t *testing.T) {
	samples := []string{
		"",
		"**Top picks:**\r\n\r\n\r\n1) **Marina Gate** - 2BR\n   * pool\n   * gym  \n\n## Next steps\n```\nbook a viewing\n```",
		"__a__ _b_ *c* `d` ***e***",
		"• already • formatted\n\n1. done",
		"#not a heading\n#  Heading with spaces  #",
		"* * *\n- - -\n___",
		"_snake_case_name_ and 5 * 3 = 15",
		"**unclosed bold and *mixed_ markers__",
		"\n\n\nleading blank lines",
	}

	for _, s := range samples {
		once := FormatResponse(s)
		assert.Equal(t, once, FormatResponse(once), "input %q", s)
	}
}

func TestFormatResponse_BriefsAreStable(t *testing.T) {
	f := NewFallbackResponder()
	for _, lang := range []Language{English, Arabic, Tamil} {
		for _, brief := range f.Briefs(lang) {
			assert.Equal(t, brief, FormatResponse(brief))
		}
		assert.Equal(t, f.Redirect(lang), FormatResponse(f.Redirect(lang)))
	}
}
