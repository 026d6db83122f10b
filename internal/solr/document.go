package solr

import (
	"fmt"
	"strconv"
)

// Document is a single index document, keyed by field name
type Document map[string]any

// String returns the first value of field as a string, or "" if absent
func (d Document) String(field string) string {
	switch v := d.first(field).(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Strings returns all values of field as strings
func (d Document) Strings(field string) []string {
	raw, ok := d[field]
	if !ok {
		return nil
	}
	values, ok := raw.([]any)
	if !ok {
		return []string{d.String(field)}
	}
	res := make([]string, 0, len(values))
	for _, v := range values {
		res = append(res, fmt.Sprintf("%v", v))
	}
	return res
}

// Int returns the first value of field as an int, or 0 if absent or not numeric
func (d Document) Int(field string) int {
	switch v := d.first(field).(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		i, _ := strconv.Atoi(v)
		return i
	}
	return 0
}

// Bool returns the first value of field as a bool
func (d Document) Bool(field string) bool {
	switch v := d.first(field).(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return false
}

// Has reports whether the document carries field
func (d Document) Has(field string) bool {
	_, ok := d[field]
	return ok
}

func (d Document) first(field string) any {
	raw, ok := d[field]
	if !ok {
		return nil
	}
	if values, ok := raw.([]any); ok {
		if len(values) == 0 {
			return nil
		}
		return values[0]
	}
	return raw
}
