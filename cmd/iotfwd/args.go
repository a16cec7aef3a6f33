package main

import (
	"fmt"
	"strings"

	"iotfwd/internal/commands"
)

const (
	programName = "iotfwd"

	valueConfigPaths = "configPaths"
	valueDebug       = "debug"
	valueCommand     = "command"
)

// version is overridden at link time with -ldflags "-X main.version=...".
var version = "dev"

// ParsedArguments is the resolved command line. It is not modified after
// resolve returns.
type ParsedArguments struct {
	ConfigPaths []string
	Debug       bool
	Version     bool
	Command     commands.CommandSpec
	// Options holds command flag values keyed by parameter name.
	Options map[string]any
}

// Values returns every resolved argument as one keyword map. The command
// handler receives a filtered view of it.
func (p *ParsedArguments) Values() commands.Args {
	values := commands.Args{
		valueConfigPaths: append([]string(nil), p.ConfigPaths...),
		valueDebug:       p.Debug,
		valueCommand:     p.Command.Name,
	}
	for key, value := range p.Options {
		values[key] = value
	}
	return values
}

// ExitError terminates the process with Code without running any further
// stage. Err is nil for clean exits such as --version and --help.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ArgumentError reports malformed command-line input.
type ArgumentError struct {
	Command string
	Err     error
}

func (e *ArgumentError) Error() string {
	return e.Err.Error()
}

func (e *ArgumentError) Unwrap() error { return e.Err }

// MissingCommandError is returned when no subcommand was given.
type MissingCommandError struct {
	Available []string
}

func (e *MissingCommandError) Error() string {
	if len(e.Available) == 0 {
		return "a command is required"
	}
	return fmt.Sprintf("a command is required (choose from %s)", strings.Join(e.Available, ", "))
}
