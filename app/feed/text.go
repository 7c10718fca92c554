package feed

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"

	"github.com/lysyi3m/stellarpulse/app/analysis"
)

var spacePattern = regexp.MustCompile(`\s+`)

// StripHTML returns the visible text of an HTML fragment.
func StripHTML(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.TrimSpace(fragment)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.TrimSpace(doc.Text())
}

func CollapseSpace(text string) string {
	return strings.TrimSpace(spacePattern.ReplaceAllString(text, " "))
}

// Normalize applies NFC and trims surrounding whitespace.
func Normalize(text string) string {
	return strings.TrimSpace(norm.NFC.String(text))
}

// TruncateRunes cuts text to at most limit runes.
func TruncateRunes(text string, limit int) string {
	return analysis.TruncateRunes(text, limit)
}

// Ellipsize cuts text to limit runes and appends "..." when anything was cut.
func Ellipsize(text string, limit int) string {
	cut := TruncateRunes(text, limit)
	if len(cut) < len(text) {
		return cut + "..."
	}
	return text
}
