package api

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gofrs/flock"

	"iotfwd/internal/commands"
	"iotfwd/internal/config"
	"iotfwd/internal/logging"
)

const (
	// ParamCloudService is the keyword carrying the --cloud-service value.
	ParamCloudService = "cloudService"
	// KeyForwardLockFile enables the single-instance lock when set.
	KeyForwardLockFile = "forward.lock_file"

	CloudGoogle = "Google"
	CloudAWS    = "AWS"

	forwardResult = "Completed"
)

// CloudServices lists the accepted cloudService values.
var CloudServices = []string{CloudGoogle, CloudAWS}

// ForwardCommand returns the spec for the forward subcommand.
func ForwardCommand(deps Deps) commands.CommandSpec {
	return commands.CommandSpec{
		Name:           "forward",
		Summary:        "Forward device data to a cloud service",
		AcceptedParams: []string{ParamCloudService},
		Flags: []commands.Flag{
			{
				Name:    "cloud-service",
				Param:   ParamCloudService,
				Usage:   "Cloud service to forward to",
				Default: CloudGoogle,
				Choices: CloudServices,
			},
		},
		Handler: func(args commands.Args) (string, error) {
			return forward(deps, args)
		},
	}
}

func forward(deps Deps, args commands.Args) (string, error) {
	logger := deps.logger("forward")
	service := args.String(ParamCloudService, CloudGoogle)
	logger.Debug("executing forward command", logging.String("cloud_service", service))

	if !slices.Contains(CloudServices, service) {
		return "", commands.Recoverablef("unsupported cloud service %q (choose from %s)", service, strings.Join(CloudServices, ", "))
	}

	cfg := deps.config()
	lockPath := cfg.String(KeyForwardLockFile, "")
	if lockPath == "" {
		return forwardResult, nil
	}

	release, err := acquireForwardLock(lockPath)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := release(); err != nil {
			logger.Warn("failed to release forward lock", logging.String("lock", lockPath), logging.Error(err))
		}
	}()
	logger.Debug("forward lock acquired", logging.String("lock", lockPath))
	return forwardResult, nil
}

func acquireForwardLock(path string) (func() error, error) {
	resolved, err := config.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve forward lock path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return nil, fmt.Errorf("create forward lock directory: %w", err)
	}

	lock := flock.New(resolved)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire forward lock: %w", err)
	}
	if !ok {
		return nil, commands.Recoverablef("another forward run holds %s", resolved)
	}
	return lock.Unlock, nil
}
