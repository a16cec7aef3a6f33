// Package api holds the iotfwd subcommand handlers and registers them with a
// commands.Registry.
//
// Handlers are plain functions from a filtered keyword map to a result
// string. They reach the loaded configuration and the logger of the active
// logging phase through the accessor functions in Deps, which the
// coordinator supplies; nothing here reads process globals.
//
// # Commands
//
// hello: no parameters. Greets hello.name (default "World").
//
// forward: accepts cloudService, one of Google or AWS. When forward.lock_file
// is configured, only one forward run may hold the lock at a time.
package api
