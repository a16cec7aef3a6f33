package logging

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
)

// formatValue renders an attribute value for the console sink. Anything
// that would break key=value splitting is quoted.
func formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindTime:
		return formatTimestamp(v.Time())
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindAny:
		switch x := v.Any().(type) {
		case error:
			return quote(x.Error())
		case []string:
			// Config paths and choice lists read as [a,b].
			items := make([]string, len(x))
			for i, item := range x {
				items[i] = quote(item)
			}
			return "[" + strings.Join(items, ",") + "]"
		default:
			return quote(fmt.Sprint(x))
		}
	default:
		return quote(v.String())
	}
}

func quote(s string) string {
	if s == "" || strings.ContainsFunc(s, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) {
		return strconv.Quote(s)
	}
	return s
}

// sourceLocation shortens a caller to file:line for both sinks.
func sourceLocation(src *slog.Source) string {
	if src == nil || src.File == "" {
		return ""
	}
	return filepath.Base(src.File) + ":" + strconv.Itoa(src.Line)
}
