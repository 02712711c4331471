package driver

import (
	"fmt"
	"strings"
)

// escapeFilterValue escapes special characters in Meilisearch filter values.
func escapeFilterValue(value string) string {
	value = strings.ReplaceAll(value, "\\", "\\\\")
	value = strings.ReplaceAll(value, "\"", "\\\"")
	return value
}

// TagFilter builds an exact-term constraint on the tags field.
func TagFilter(tag string) string {
	return fmt.Sprintf("tags = \"%s\"", escapeFilterValue(tag))
}

// URLFilter builds an exact-term constraint on the url field.
func URLFilter(url string) string {
	return fmt.Sprintf("url = \"%s\"", escapeFilterValue(url))
}

// DateRangeFilter builds an inclusive range constraint on the numeric
// publication timestamp.
func DateRangeFilter(from, to int64) string {
	return fmt.Sprintf("published_ts >= %d AND published_ts <= %d", from, to)
}

// CombineFilters joins the non-empty expressions with AND.
func CombineFilters(exprs ...string) string {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		if e != "" {
			parts = append(parts, e)
		}
	}
	return strings.Join(parts, " AND ")
}
