package commands

import (
	"slices"
)

// Args is the keyword map handed to a command handler.
type Args map[string]any

// String returns the string value stored under key, or fallback when the key
// is absent or not a string.
func (a Args) String(key, fallback string) string {
	if v, ok := a[key].(string); ok {
		return v
	}
	return fallback
}

// Handler executes a subcommand. The returned string is the command result.
type Handler func(Args) (string, error)

// Flag declares a command-specific string flag.
type Flag struct {
	// Name is the long flag name without dashes, e.g. "cloud-service".
	Name string
	// Param is the keyword the parsed value is stored under, e.g. "cloudService".
	Param   string
	Usage   string
	Default string
	// Choices, when non-empty, is the closed set of accepted values.
	Choices []string
}

// Allows reports whether value is acceptable for the flag.
func (f Flag) Allows(value string) bool {
	if len(f.Choices) == 0 {
		return true
	}
	return slices.Contains(f.Choices, value)
}

// CommandSpec describes one registered subcommand. Specs are built once at
// startup and never mutated afterwards.
type CommandSpec struct {
	Name    string
	Summary string
	Handler Handler

	// AcceptedParams lists the keyword names the handler understands.
	AcceptedParams []string
	// AcceptsArbitraryKeywords disables filtering entirely.
	AcceptsArbitraryKeywords bool

	Flags []Flag
}

// Accepts reports whether the handler takes the named keyword.
func (s CommandSpec) Accepts(param string) bool {
	if s.AcceptsArbitraryKeywords {
		return true
	}
	return slices.Contains(s.AcceptedParams, param)
}

// Invoke filters all down to the accepted keywords and calls the handler.
func (s CommandSpec) Invoke(all Args) (string, error) {
	return s.Handler(Filter(s, all))
}
