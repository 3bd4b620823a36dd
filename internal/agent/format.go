package agent

import (
	"regexp"
	"strings"
)

// maxFormatPasses bounds the fixpoint loop in FormatResponse.
const maxFormatPasses = 16

var (
	codeFenceLine  = regexp.MustCompile("(?m)^[ \t]*```.*$\n?")
	horizontalRule = regexp.MustCompile(`(?m)^[ \t]*([-*_])[ \t]*(?:[-*_][ \t]*){2,}$`)
	headingMarker  = regexp.MustCompile(`(?m)^[ \t]*#{1,6}[ \t]+`)
	headingTail    = regexp.MustCompile(`(?m)[ \t]+#+[ \t]*$`)
	bulletMarker   = regexp.MustCompile(`(?m)^([ \t]*)(?:[-*+][ \t]+|•[ \t]*)`)
	numberMarker   = regexp.MustCompile(`(?m)^([ \t]*)([0-9]+)[.)][ \t]+`)
	boldStars      = regexp.MustCompile(`\*\*([^*\n]+?)\*\*`)
	boldUnders     = regexp.MustCompile(`__([^_\n]+?)__`)
	italicStar     = regexp.MustCompile(`\*([^*\s][^*\n]*?)\*`)
	italicUnder    = regexp.MustCompile(`(^|[^\w])_([^_\s][^_\n]*?)_([^\w]|$)`)
	trailingSpace  = regexp.MustCompile(`(?m)[ \t]+$`)
	blankRun       = regexp.MustCompile(`\n{3,}`)
)

// FormatResponse turns raw model output into the plain text layout shown to
// users: markdown emphasis, headings and code markers are removed with their
// content kept, list markers are normalised to "• " and "N. ", and blank lines
// are collapsed. It is idempotent.
func FormatResponse(raw string) string {
	text := raw
	for i := 0; i < maxFormatPasses; i++ {
		next := formatPass(text)
		if next == text {
			break
		}
		text = next
	}
	return text
}

func formatPass(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	s = codeFenceLine.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "`", "")

	s = horizontalRule.ReplaceAllString(s, "")
	s = headingMarker.ReplaceAllString(s, "")
	s = headingTail.ReplaceAllString(s, "")

	// List markers go first so "* item" is not read as emphasis.
	s = bulletMarker.ReplaceAllString(s, "${1}• ")
	s = numberMarker.ReplaceAllString(s, "${1}${2}. ")

	s = boldStars.ReplaceAllString(s, "$1")
	s = boldUnders.ReplaceAllString(s, "$1")
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = italicStar.ReplaceAllString(s, "$1")
	s = italicUnder.ReplaceAllString(s, "$1$2$3")

	s = trailingSpace.ReplaceAllString(s, "")
	s = blankRun.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}
