package main

import (
	"fmt"
	"os"

	"iotfwd/internal/logging"
)

const fatalShutdownMessage = "shutting down due to fatal error"

func main() {
	a := newApp(os.Stdout, os.Stderr)
	os.Exit(a.exit(a.run(os.Args[1:])))
}

// exit reports a fatal error through whichever logging phase is still
// active, then releases logging and returns the exit status.
func (a *app) exit(code int, err error) int {
	if err == nil {
		return code
	}
	if a.logs.Active() {
		logging.Critical(a.logger(), fatalShutdownMessage, logging.Error(err))
	}
	fmt.Fprintf(a.stderr, "Error: %v\n", err)
	_ = a.logs.Stop()
	return 1
}
