package view

import (
	"net/url"
)

// ToQueryString encodes m as a query string, sorted by key
func ToQueryString(m map[string]string) string {
	if len(m) == 0 {
		return ""
	}
	values := make(url.Values, len(m))
	for k, v := range m {
		values.Set(k, v)
	}
	return values.Encode()
}
