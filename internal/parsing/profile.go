package parsing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Degree is an education level. Higher values are more advanced degrees.
type Degree int

const (
	DegreeNone Degree = iota
	DegreeAssociate
	DegreeBachelor
	DegreeMaster
	DegreeDoctorate
)

func (d Degree) String() string {
	switch d {
	case DegreeAssociate:
		return "Associate's Degree"
	case DegreeBachelor:
		return "Bachelor's Degree"
	case DegreeMaster:
		return "Master's Degree"
	case DegreeDoctorate:
		return "Doctorate"
	default:
		return ""
	}
}

// maxStatedYears drops figures that cannot be a career length ("100+ years of history").
const maxStatedYears = 50

// Profile holds the resume facts found alongside skills.
type Profile struct {
	// Years is the largest stated years of experience, 0 when none is stated.
	Years  int
	Degree Degree
}

// Experience renders Years for display, or "" when unknown.
func (p Profile) Experience() string {
	switch p.Years {
	case 0:
		return ""
	case 1:
		return "1 year"
	default:
		return fmt.Sprintf("%d years", p.Years)
	}
}

// Education renders Degree for display, or "" when unknown.
func (p Profile) Education() string { return p.Degree.String() }

var yearsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(\d{1,3})\s*\+?\s*(?:years?|yrs?)\.?\s+(?:of\s+)?(?:[\w-]+\s+){0,2}?experience`),
	regexp.MustCompile(`(?i)\b(\d{1,3})\s*\+\s*(?:years?|yrs?)\b`),
	regexp.MustCompile(`(?i)\bexperience\s*:\s*(\d{1,3})\s*\+?\s*(?:years?|yrs?)\b`),
}

// degreePatterns is ordered from the most to the least advanced degree.
var degreePatterns = []struct {
	degree  Degree
	pattern *regexp.Regexp
}{
	{DegreeDoctorate, degreePattern(`ph\.?\s?d\.?`, `doctorate`, `doctor\s+of`, `d\.phil\.?`)},
	{DegreeMaster, degreePattern(`master['’]s`, `masters\s+(?:degree|in|of)`, `master\s+(?:degree|of)`,
		`m\.s\.?`, `m\.a\.?`, `m\.?sc\.?`, `mba`, `m\.?eng\.?`, `m\.?s\.?\s+in`, `m\.?a\.?\s+in`)},
	{DegreeBachelor, degreePattern(`bachelor(?:['’]?s)?`, `b\.s\.?`, `b\.a\.?`, `b\.?sc\.?`, `b\.?eng\.?`,
		`b\.?tech`, `b\.?s\.?\s+in`, `b\.?a\.?\s+in`)},
	{DegreeAssociate, degreePattern(`associate['’]?s?\s+degree`, `associate\s+of\s+(?:arts|science|applied)`)},
}

// degreePattern matches any alternative as a whole word, case-insensitively.
func degreePattern(alternatives ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[^a-z0-9])(?:` + strings.Join(alternatives, "|") + `)(?:[^a-z0-9]|$)`)
}

// ExtractProfile finds the stated years of experience and the highest
// education level in raw resume text.
func ExtractProfile(text string) Profile {
	var p Profile
	for _, re := range yearsPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			years, err := strconv.Atoi(m[1])
			if err != nil || years < 1 || years > maxStatedYears {
				continue
			}
			p.Years = max(p.Years, years)
		}
	}
	for _, d := range degreePatterns {
		if d.pattern.MatchString(text) {
			p.Degree = d.degree
			break
		}
	}
	return p
}
