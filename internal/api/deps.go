package api

import (
	"log/slog"

	"iotfwd/internal/commands"
	"iotfwd/internal/config"
	"iotfwd/internal/logging"
)

// Deps provides handlers with late-bound access to run state. The
// configuration and logger change between registration and invocation, so
// handlers call the accessors on every run.
type Deps struct {
	Config func() *config.Config
	Logger func() *slog.Logger
}

func (d Deps) config() *config.Config {
	if d.Config != nil {
		if cfg := d.Config(); cfg != nil {
			return cfg
		}
	}
	return config.New(nil)
}

func (d Deps) logger(component string) *slog.Logger {
	var base *slog.Logger
	if d.Logger != nil {
		base = d.Logger()
	}
	return logging.NewComponentLogger(base, component)
}

// Register adds every iotfwd subcommand to reg.
func Register(reg *commands.Registry, deps Deps) {
	if reg == nil {
		return
	}
	reg.Register(HelloCommand(deps))
	reg.Register(ForwardCommand(deps))
}
