// Command iotfwd parses the command line, loads layered configuration,
// starts logging in two phases and dispatches to one registered subcommand.
//
// Usage:
//
//	iotfwd [-c PATH ...] [-d] [-v] <command> [flags]
//
// Commands:
//
//	hello                               Print a greeting
//	forward [--cloud-service {Google,AWS}]  Forward device data to a cloud service
//
// Exit status is 0 on success, for --version and for --help; 1 when the
// command fails or a fatal error occurs; 2 for argument errors, including a
// missing command.
package main
