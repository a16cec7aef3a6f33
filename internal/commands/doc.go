// Package commands defines the static registry of iotfwd subcommands.
//
// Each subcommand is described by a CommandSpec: its name, the flags it adds
// to the command line, the keyword parameters its handler accepts, and the
// handler itself. The registry is the single source of truth for both the
// argument parser (which builds one cobra subcommand per spec) and the
// dispatcher (which looks the selected name back up and invokes that spec).
//
// Handlers receive a filtered Args map rather than the full parse result:
// Filter trims global values such as "debug" or "command" unless the spec
// declares that it accepts arbitrary keywords. Handlers signal expected
// operational failures by returning a RecoverableError; any other error is
// treated as a bug by the caller.
package commands
