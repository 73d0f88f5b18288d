package ingestion

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var htmlTagPattern = regexp.MustCompile(`(?i)<(p|div|br|li|ul|ol|h[1-6]|span|strong|b|em|body|html|section|article|table)\b[^>]*>`)

// jobDescriptionSelectors are tried in order; the first match is the main content.
var jobDescriptionSelectors = []string{
	".job-description",
	"#job-description",
	".job-details",
	".posting-content",
	"[data-testid='job-description']",
	"main",
	"article",
}

// LooksLikeHTML reports whether a pasted job description contains markup.
func LooksLikeHTML(s string) bool {
	return htmlTagPattern.MatchString(s)
}

// HTMLToText extracts readable text from an HTML job posting. Block elements
// become line breaks so list items stay separate phrases.
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, .cookie-banner, .apply-button").Remove()

	var main *goquery.Selection
	for _, selector := range jobDescriptionSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			main = sel.First()
			break
		}
	}
	if main == nil {
		main = doc.Find("body")
	}

	main.Find("br").ReplaceWithHtml("\n")
	main.Find("p, div, li, h1, h2, h3, h4, h5, h6, tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n\n")
	})

	return CleanText(main.Text()), nil
}

// JobDescriptionText returns plain text for a job description that may be HTML.
func JobDescriptionText(s string) string {
	if !LooksLikeHTML(s) {
		return CleanText(s)
	}
	text, err := HTMLToText(s)
	if err != nil {
		return CleanText(s)
	}
	return text
}
