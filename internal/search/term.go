package search

import (
	"strings"
	"unicode"

	"github.com/docviewer/viewer/internal/solr"
)

// CleanUpSearchTerm strips characters from a single user term that would break the query,
// keeping a leading "-" (negation) and a leading or trailing "*" (truncation).
func CleanUpSearchTerm(s string) string {
	if s == "" {
		return s
	}

	negation, leftTruncation, rightTruncation := false, false, false
	switch s[0] {
	case '-':
		negation = true
		s = s[1:]
	case '*':
		leftTruncation = true
	}
	if strings.HasSuffix(s, "*") {
		rightTruncation = true
	}

	s = strings.ReplaceAll(s, "*", "")
	s = strings.ReplaceAll(s, "(", "")
	s = strings.ReplaceAll(s, ")", "")
	if s == "" {
		return ""
	}

	if negation {
		s = "-" + s
	} else if leftTruncation {
		s = "*" + s
	}
	if rightTruncation {
		s += "*"
	}
	return s
}

// escapeTerm escapes a cleaned term for the query, leaving its negation prefix and
// truncation wildcards intact
func escapeTerm(term string) string {
	negated := strings.HasPrefix(term, "-")
	term = strings.TrimPrefix(term, "-")

	var sb strings.Builder
	if negated {
		sb.WriteByte('-')
	}
	for _, r := range term {
		if r == '*' {
			sb.WriteRune(r)
			continue
		}
		sb.WriteString(solr.Escape(string(r)))
	}
	return sb.String()
}

// bareTerm returns a cleaned term without negation and truncation marks, as used for
// highlighting
func bareTerm(term string) string {
	return strings.Trim(strings.TrimPrefix(term, "-"), "*")
}

type token struct {
	text   string
	phrase bool
}

// tokenize splits s on whitespace and commas, keeping double-quoted phrases together.
// An unbalanced quote turns the rest of the input into a phrase.
func tokenize(s string) []token {
	var (
		tokens  []token
		current strings.Builder
		quoted  bool
	)

	flush := func(phrase bool) {
		text := current.String()
		current.Reset()
		if phrase {
			text = strings.TrimSpace(text)
		}
		if text != "" {
			tokens = append(tokens, token{text: text, phrase: phrase})
		}
	}

	for _, r := range s {
		switch {
		case r == '"':
			flush(quoted)
			quoted = !quoted
		case !quoted && (unicode.IsSpace(r) || r == ','):
			flush(false)
		default:
			current.WriteRune(r)
		}
	}
	flush(quoted)

	return tokens
}
