package sanitizer

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	tagRe         = regexp.MustCompile(`(?s)<[^>]*>`)
	scriptRe      = regexp.MustCompile(`(?is)<(script|style)\b[^>]*>.*?</(script|style)>`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	hspaceRe      = regexp.MustCompile(`[ \t]+`)
	blankLinesRe  = regexp.MustCompile(`\n{3,}`)
	lineEndingsRe = regexp.MustCompile(`\r\n?`)
)

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// EscapeHTML escapes <, >, &, ' and ".
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

// StripTags removes script and style blocks with their content, then every
// remaining tag.
func StripTags(s string) string {
	s = scriptRe.ReplaceAllString(s, "")
	return tagRe.ReplaceAllString(s, "")
}

// NormalizeWhitespace collapses whitespace runs into one space and trims.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// RemoveControlChars drops control characters except newline, carriage return and tab.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// NormalizeUnicode converts s to NFC.
func NormalizeUnicode(s string) string {
	return norm.NFC.String(s)
}

// KeepDigits keeps ASCII digits only.
func KeepDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CleanString is the default single line filter: NFC normalization, tag
// stripping, control character removal and whitespace collapsing.
var CleanString = singleLine.Clean

var (
	singleLine = Pipeline{NormalizeUnicode, StripTags, RemoveControlChars, NormalizeWhitespace}
	multiLine  = Pipeline{
		NormalizeUnicode,
		func(s string) string { return lineEndingsRe.ReplaceAllString(s, "\n") },
		StripTags,
		RemoveControlChars,
		func(s string) string { return hspaceRe.ReplaceAllString(strings.ReplaceAll(s, "\t", " "), " ") },
		trimLines,
		func(s string) string { return strings.TrimSpace(blankLinesRe.ReplaceAllString(s, "\n\n")) },
	}
)

// CleanTextarea cleans multi line text: line endings become \n, tags and
// control characters are removed, horizontal whitespace is collapsed, trailing
// spaces are dropped per line and runs of blank lines are limited to one.
func CleanTextarea(s string) string {
	return multiLine.Clean(s)
}

func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.Join(lines, "\n")
}
