package main

import (
	"io"
	"log/slog"
	"time"

	"iotfwd/internal/api"
	"iotfwd/internal/commands"
	"iotfwd/internal/config"
	"iotfwd/internal/logging"
	"iotfwd/internal/metrics"
)

// loggingFacility is the part of *logging.Facility the coordinator drives.
type loggingFacility interface {
	Start(logging.Phase, logging.Options) error
	Stop() error
	Logger() *slog.Logger
	Active() bool
}

// app holds the state of one process run. Handlers see the loaded
// configuration and the active logger through its accessor methods.
type app struct {
	registry   *commands.Registry
	resolver   *resolver
	logs       loggingFacility
	loadConfig func(paths ...string) (*config.Config, error)
	metrics    *metrics.Recorder
	now        func() time.Time

	stdout io.Writer
	stderr io.Writer

	config *config.Config
}

func newApp(stdout, stderr io.Writer) *app {
	a := &app{
		logs:       logging.NewFacility(stderr),
		loadConfig: config.Load,
		metrics:    metrics.NewRecorder(),
		now:        time.Now,
		stdout:     stdout,
		stderr:     stderr,
	}
	a.registry = commands.NewRegistry()
	api.Register(a.registry, api.Deps{Config: a.configValue, Logger: a.logger})
	a.resolver = newResolver(a.registry, stdout, stderr)
	return a
}

func (a *app) configValue() *config.Config {
	return a.config
}

func (a *app) logger() *slog.Logger {
	return a.logs.Logger()
}
