package logging

import (
	"io"
	"log/slog"
	"strings"
)

// newJSONHandler renders one object per record with the keys ts, level,
// msg and, at debug level, source. Level names are lower case, so
// LevelCritical appears as "critical" instead of slog's "ERROR+4".
func newJSONHandler(w io.Writer, level slog.Leveler, addSource bool) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		AddSource:   addSource,
		ReplaceAttr: replaceJSONAttr,
	})
}

func replaceJSONAttr(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return attr
	}
	switch attr.Key {
	case slog.TimeKey:
		return slog.String("ts", formatTimestamp(attr.Value.Time()))
	case slog.LevelKey:
		if lvl, ok := attr.Value.Any().(slog.Level); ok {
			attr.Value = slog.StringValue(strings.ToLower(LevelName(lvl)))
		}
	case slog.SourceKey:
		if src, ok := attr.Value.Any().(*slog.Source); ok {
			attr.Value = slog.StringValue(sourceLocation(src))
		}
	}
	return attr
}
