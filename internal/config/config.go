package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Config is a nested mapping addressed with dotted keys. It is owned by a
// single run and is not safe for concurrent mutation.
type Config struct {
	values map[string]any
	paths  []string
}

// New wraps an existing mapping. The mapping is normalized and copied.
func New(values map[string]any) *Config {
	normalized, _ := normalizeValue(values).(map[string]any)
	if normalized == nil {
		normalized = map[string]any{}
	}
	return &Config{values: normalized}
}

// Loader reads configuration files. Lookup resolves ${NAME} references; a
// nil Lookup uses the process environment.
type Loader struct {
	Lookup func(name string) (string, bool)
}

// Load reads and merges paths using the process environment for parameter
// substitution.
func Load(paths ...string) (*Config, error) {
	return Loader{}.Load(paths...)
}

// Load reads every path in order and merges them into one Config.
func (l Loader) Load(paths ...string) (*Config, error) {
	if len(paths) == 0 {
		return nil, &ConfigError{Op: "load", Err: errors.New("no configuration paths given")}
	}
	lookup := l.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	cfg := &Config{values: map[string]any{}}
	for _, path := range paths {
		resolved, err := expandPath(strings.TrimSpace(path))
		if err != nil {
			return nil, &ConfigError{Op: "resolve", Path: path, Err: err}
		}
		values, err := readFile(resolved, lookup)
		if err != nil {
			return nil, err
		}
		mergeInto(cfg.values, values)
		cfg.paths = append(cfg.paths, resolved)
	}
	return cfg, nil
}

func readFile(path string, lookup func(string) (string, bool)) (map[string]any, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ConfigError{Op: "open", Path: path, Err: err}
		}
		return nil, &ConfigError{Op: "stat", Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &ConfigError{Op: "open", Path: path, Err: errors.New("is a directory")}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Op: "read", Path: path, Err: err}
	}
	values, err := decode(path, data)
	if err != nil {
		return nil, &ConfigError{Op: "parse", Path: path, Err: err}
	}
	expanded, _ := substitute(normalizeValue(values), lookup).(map[string]any)
	return expanded, nil
}

var paramPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// substitute replaces ${NAME} references inside decoded string values.
// Keys and non-string scalars are untouched, so a parameter can never change
// the shape of the document. Unknown names are left verbatim.
func substitute(value any, lookup func(string) (string, bool)) any {
	switch v := value.(type) {
	case string:
		return paramPattern.ReplaceAllStringFunc(v, func(match string) string {
			if param, ok := lookup(match[2 : len(match)-1]); ok {
				return param
			}
			return match
		})
	case map[string]any:
		for key, item := range v {
			v[key] = substitute(item, lookup)
		}
		return v
	case []any:
		for i, item := range v {
			v[i] = substitute(item, lookup)
		}
		return v
	default:
		return v
	}
}

// Paths returns the absolute paths the configuration was loaded from.
func (c *Config) Paths() []string {
	return append([]string(nil), c.paths...)
}

// Get returns the value stored at a dotted key.
func (c *Config) Get(key string) (any, bool) {
	var current any = c.values
	for _, part := range splitKey(key) {
		section, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = section[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Lookup is Get with a descriptive error that suggests the closest existing
// key when the requested one is missing.
func (c *Config) Lookup(key string) (any, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}
	return nil, &KeyError{Key: key, Suggestion: closest(key, c.Keys())}
}

// String returns the string at key, or fallback when the key is absent or
// empty. Non-string scalars are formatted.
func (c *Config) String(key, fallback string) string {
	value, ok := c.Get(key)
	if !ok || value == nil {
		return fallback
	}
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return fallback
		}
		return strings.TrimSpace(v)
	case map[string]any, []any:
		return fallback
	default:
		return fmt.Sprint(v)
	}
}

// Set stores value at a dotted key, creating intermediate sections.
func (c *Config) Set(key string, value any) {
	parts := splitKey(key)
	if len(parts) == 0 {
		return
	}
	section := c.values
	for _, part := range parts[:len(parts)-1] {
		next, ok := section[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			section[part] = next
		}
		section = next
	}
	section[parts[len(parts)-1]] = normalizeValue(value)
}

// Section returns a copy of the mapping stored at key.
func (c *Config) Section(key string) map[string]any {
	value, ok := c.Get(key)
	if !ok {
		return nil
	}
	section, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	return cloneMap(section)
}

// Keys returns every leaf key in dotted form, sorted.
func (c *Config) Keys() []string {
	var keys []string
	collectKeys(&keys, "", c.values)
	sort.Strings(keys)
	return keys
}

// Map returns a deep copy of the whole configuration.
func (c *Config) Map() map[string]any {
	return cloneMap(c.values)
}

func collectKeys(dst *[]string, prefix string, values map[string]any) {
	for key, value := range values {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok && len(nested) > 0 {
			collectKeys(dst, full, nested)
			continue
		}
		*dst = append(*dst, full)
	}
}

func splitKey(key string) []string {
	key = strings.Trim(strings.TrimSpace(key), ".")
	if key == "" {
		return nil
	}
	return strings.Split(key, ".")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return "", errors.New("empty path")
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
