package config

import (
	"fmt"
	"strings"
)

// ConfigError reports a configuration file that is missing, unreadable,
// malformed or semantically invalid.
type ConfigError struct {
	Op   string
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("config")
	if e.Op != "" {
		b.WriteString(": ")
		b.WriteString(e.Op)
	}
	if e.Path != "" {
		b.WriteByte(' ')
		b.WriteString(e.Path)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ConfigError) Unwrap() error { return e.Err }

// KeyError reports a dotted key that does not exist in the configuration.
type KeyError struct {
	Key        string
	Suggestion string
}

func (e *KeyError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("config key %q not found (did you mean %q?)", e.Key, e.Suggestion)
	}
	return fmt.Sprintf("config key %q not found", e.Key)
}
