package main

import (
	"errors"
	"fmt"
	"time"

	"iotfwd/internal/commands"
	"iotfwd/internal/config"
	"iotfwd/internal/logging"
	"iotfwd/internal/metrics"
)

const (
	bootstrapLevel      = "WARN"
	bootstrapDebugLevel = "DEBUG"
)

// run executes one invocation and returns the process exit status. A
// non-nil error is fatal and is reported by main.
//
// A configuration failure (load or core validation) returns with the
// bootstrap logging phase still active so main logs the fatal error through
// it. Every other path stops logging before returning, after logging a
// fatal error itself.
func (a *app) run(rawArgs []string) (int, error) {
	parsed, err := a.resolver.resolve(rawArgs)
	if err != nil {
		var exit *ExitError
		if errors.As(err, &exit) {
			return exit.Code, nil
		}
		return 1, err
	}

	level := bootstrapLevel
	if parsed.Debug {
		level = bootstrapDebugLevel
	}
	if err := a.logs.Start(logging.PhaseBootstrap, logging.Options{Level: level}); err != nil {
		return 1, err
	}
	a.logger().Debug("starting execution",
		logging.String(logging.FieldCommand, parsed.Command.Name),
		logging.Strings("config_paths", parsed.ConfigPaths),
	)

	cfg, err := a.loadConfig(parsed.ConfigPaths...)
	if err != nil {
		return 1, err
	}
	cfg.Set(config.KeyConfig, parsed.ConfigPaths)
	a.config = cfg

	core, err := cfg.Core()
	if err != nil {
		return 1, err
	}

	if err := a.logs.Stop(); err != nil {
		return 1, err
	}
	if err := a.logs.Start(logging.PhaseConfigured, logging.Options{
		Level:    core.Logging,
		Format:   core.LogFormat,
		FilePath: core.LogFile,
	}); err != nil {
		return 1, err
	}
	logger := a.logger()
	for _, unknown := range cfg.UnknownKeys("core", config.CoreKeys) {
		attrs := []logging.Attr{logging.String("key", unknown.Key)}
		if unknown.Suggestion != "" {
			attrs = append(attrs, logging.String("suggestion", unknown.Suggestion))
		}
		logger.Warn("unknown configuration key", logging.Args(attrs...)...)
	}

	spec, err := a.registry.Lookup(parsed.Command.Name)
	if err != nil {
		logging.Critical(logger, fatalShutdownMessage, logging.Error(err))
		_ = a.logs.Stop()
		return 1, err
	}

	started := a.now()
	result, err := spec.Invoke(parsed.Values())
	elapsed := a.now().Sub(started)

	status := metrics.StatusSuccess
	code := 0
	switch {
	case err == nil:
		logger.Debug("successful completion",
			logging.String(logging.FieldCommand, spec.Name),
			logging.String("result", result),
		)
	case commands.IsRecoverable(err):
		logging.Critical(logger, "command failed",
			logging.String(logging.FieldCommand, spec.Name),
			logging.Error(err),
		)
		status = metrics.StatusRecoverable
		code = 1
	default:
		status = metrics.StatusFatal
		err = fmt.Errorf("%s: %w", spec.Name, err)
	}
	a.recordMetrics(core, spec.Name, status, elapsed)

	if status == metrics.StatusFatal {
		logging.Critical(logger, fatalShutdownMessage,
			logging.String(logging.FieldCommand, spec.Name),
			logging.Error(err),
		)
		_ = a.logs.Stop()
		return 1, err
	}
	if err := a.logs.Stop(); err != nil {
		return 1, err
	}
	return code, nil
}

func (a *app) recordMetrics(core config.Core, command, status string, elapsed time.Duration) {
	if a.metrics == nil {
		return
	}
	logger := a.logger()
	path := ""
	if core.MetricsDir != "" {
		path = metrics.TextfilePath(core.MetricsDir, command)
		if err := a.metrics.Restore(path, command); err != nil {
			logger.Warn("failed to restore metrics, counters restart", logging.String("path", path), logging.Error(err))
		}
	}
	a.metrics.Observe(command, status, elapsed, a.now())
	if path == "" {
		return
	}
	if err := a.metrics.WriteTextfile(path); err != nil {
		logger.Warn("failed to write metrics", logging.String("path", path), logging.Error(err))
	}
}
