package ingestion

import (
	"regexp"
	"strings"
)

var (
	spaceRunPattern   = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	blankLinesPattern = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes extracted text while preserving line structure:
// line endings become LF, runs of spaces collapse, and at most one blank
// line separates paragraphs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// Normalize line endings (CRLF → LF)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	// Form feeds separate PDF pages
	content = strings.ReplaceAll(content, "\f", "\n\n")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = blankLinesPattern.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine trims a line and collapses inner whitespace. Bullet markers are kept
// so list items stay distinguishable.
func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}
	return spaceRunPattern.ReplaceAllString(trimmed, " ")
}
