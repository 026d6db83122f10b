package search

import (
	"net/url"
	"regexp"
	"strings"
)

// characters that break pretty URLs even when percent-encoded, and their replacements.
// A literal replacement token in the query gets its leading U escaped as U0055, which keeps
// the encoding reversible.
var criticalURLChars = []struct{ char, replacement string }{
	{"%", "U0025"},
	{"/", "U002F"},
	{`\`, "U005C"},
	{"?", "U003F"},
	{"+", "U002B"},
	{"|", "U007C"},
	{"U", "U0055"},
}

var exactEncoder, exactDecoder = exactReplacers()

func exactReplacers() (*strings.Replacer, *strings.Replacer) {
	var encode, decode []string
	for _, c := range criticalURLChars {
		if c.char != "U" {
			encode = append(encode, c.char, c.replacement)
		}
		encode = append(encode, c.replacement, "U0055"+c.replacement[1:])
		decode = append(decode, c.replacement, c.char)
	}
	return strings.NewReplacer(encode...), strings.NewReplacer(decode...)
}

// ExactSearchString encodes query so it can travel as a single URL path segment.
// An empty query is represented by "-".
func ExactSearchString(query string) string {
	if query == "" {
		return "-"
	}
	return url.QueryEscape(exactEncoder.Replace(query))
}

// ParseExactSearchString reverses ExactSearchString. Malformed percent-encoding is ignored
// and the input used as is.
func ParseExactSearchString(s string) string {
	if s == "" || s == "-" {
		return ""
	}
	if decoded, err := url.QueryUnescape(s); err == nil {
		s = decoded
	}
	return exactDecoder.Replace(s)
}

var fieldPrefix = regexp.MustCompile(`[A-Z][A-Z0-9_]*:`)

// ExtractTerms recovers the positive search terms of a query built by this package,
// keyed by field. Negated clauses and terms are left out.
func ExtractTerms(query string) Terms {
	terms := NewTerms()
	consumed := 0

	for _, loc := range fieldPrefix.FindAllStringIndex(query, -1) {
		start, end := loc[0], loc[1]
		if start < consumed || end >= len(query) {
			continue
		}
		field := query[start : end-1]
		negated := start > 0 && query[start-1] == '-'

		var content string
		switch query[end] {
		case '(':
			closing := matchingParen(query, end)
			content = query[end+1 : closing]
			consumed = closing
		case '"':
			closing := closingQuote(query, end)
			content = query[end:closing]
			consumed = closing
		default:
			continue
		}

		if negated {
			continue
		}
		for _, t := range tokenize(content) {
			if t.phrase {
				terms.Add(field, unescape(t.text))
				continue
			}
			text := strings.Trim(t.text, "()")
			if text == "" || text == "AND" || text == "OR" || text == "NOT" || strings.HasPrefix(text, "-") {
				continue
			}
			terms.Add(field, strings.ReplaceAll(unescape(text), "*", ""))
		}
	}

	return terms
}

// matchingParen returns the index of the parenthesis closing the one at open, honouring
// escapes and quoted phrases, or len(s) if unbalanced
func matchingParen(s string, open int) int {
	depth := 0
	quoted := false
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			quoted = !quoted
		case '(':
			if !quoted {
				depth++
			}
		case ')':
			if !quoted {
				depth--
				if depth == 0 {
					return i
				}
			}
		}
	}
	return len(s)
}

// closingQuote returns the index just past the quote closing the one at open
func closingQuote(s string, open int) int {
	for i := open + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return len(s)
}

func unescape(s string) string {
	var sb strings.Builder
	escaped := false
	for _, r := range s {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		sb.WriteRune(r)
	}
	return sb.String()
}
