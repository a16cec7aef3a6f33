package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Core returns the core namespace with defaults applied and validated.
func (c *Config) Core() (Core, error) {
	core := DefaultCore()

	for _, key := range []string{KeyLogging, KeyLogFormat, KeyLogFile, KeyMetricsDir} {
		value, ok := c.Get(key)
		if !ok || value == nil {
			continue
		}
		if _, isString := value.(string); !isString {
			return Core{}, &ConfigError{Op: "validate", Err: fmt.Errorf("%s must be a string, got %T", key, value)}
		}
	}

	core.Logging = c.String(KeyLogging, core.Logging)
	core.LogFormat = strings.ToLower(c.String(KeyLogFormat, core.LogFormat))
	switch core.LogFormat {
	case "console", "json":
	default:
		return Core{}, &ConfigError{Op: "validate", Err: fmt.Errorf("%s: unsupported value %q", KeyLogFormat, core.LogFormat)}
	}

	var err error
	if path := c.String(KeyLogFile, ""); path != "" {
		if core.LogFile, err = expandPath(path); err != nil {
			return Core{}, &ConfigError{Op: "validate", Err: fmt.Errorf("%s: %w", KeyLogFile, err)}
		}
	}
	if path := c.String(KeyMetricsDir, ""); path != "" {
		if core.MetricsDir, err = expandPath(path); err != nil {
			return Core{}, &ConfigError{Op: "validate", Err: fmt.Errorf("%s: %w", KeyMetricsDir, err)}
		}
	}

	if value, ok := c.Get(KeyConfig); ok {
		core.Config = stringList(value)
	}
	return core, nil
}

// UnknownKey is a key present in a section but not understood by iotfwd.
type UnknownKey struct {
	Key        string
	Suggestion string
}

// UnknownKeys reports direct children of section that are not listed in
// known, each with the closest known name when one is near enough.
func (c *Config) UnknownKeys(section string, known []string) []UnknownKey {
	values := c.Section(section)
	if len(values) == 0 {
		return nil
	}
	allowed := make(map[string]struct{}, len(known))
	for _, key := range known {
		allowed[key] = struct{}{}
	}
	var unknown []UnknownKey
	for key := range values {
		if _, ok := allowed[key]; ok {
			continue
		}
		entry := UnknownKey{Key: section + "." + key}
		if suggestion := closest(key, known); suggestion != "" {
			entry.Suggestion = section + "." + suggestion
		}
		unknown = append(unknown, entry)
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i].Key < unknown[j].Key })
	return unknown
}

// closest returns the candidate with the smallest edit distance to key, or
// "" when nothing is within a third of the key length (minimum two edits).
func closest(key string, candidates []string) string {
	limit := len(key) / 3
	if limit < 2 {
		limit = 2
	}
	best := ""
	bestDistance := limit + 1
	for _, candidate := range candidates {
		distance := levenshtein.ComputeDistance(key, candidate)
		if distance < bestDistance {
			best = candidate
			bestDistance = distance
		}
	}
	return best
}

func stringList(value any) []string {
	switch v := value.(type) {
	case string:
		return []string{v}
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return nil
	}
}
