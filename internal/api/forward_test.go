package api_test

import (
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/require"

	"iotfwd/internal/api"
	"iotfwd/internal/commands"
	"iotfwd/internal/config"
)

func forwardWith(cfg *config.Config) commands.CommandSpec {
	return api.ForwardCommand(api.Deps{Config: func() *config.Config { return cfg }})
}

func TestForwardCloudServices(t *testing.T) {
	spec := forwardWith(config.New(nil))

	for _, service := range api.CloudServices {
		got, err := spec.Invoke(commands.Args{api.ParamCloudService: service})
		require.NoError(t, err, service)
		require.Equal(t, "Completed", got)
	}

	got, err := spec.Invoke(commands.Args{})
	require.NoError(t, err)
	require.Equal(t, "Completed", got)
}

func TestForwardRejectsUnknownServiceAsRecoverable(t *testing.T) {
	_, err := forwardWith(config.New(nil)).Invoke(commands.Args{api.ParamCloudService: "Azure"})
	require.Error(t, err)
	require.True(t, commands.IsRecoverable(err))
	require.Contains(t, err.Error(), "Azure")
}

func TestForwardIgnoresUnrelatedArguments(t *testing.T) {
	got, err := forwardWith(config.New(nil)).Invoke(commands.Args{
		api.ParamCloudService: api.CloudAWS,
		"debug":               true,
		"command":             "forward",
	})
	require.NoError(t, err)
	require.Equal(t, "Completed", got)
}

func TestForwardLock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "run", "forward.lock")
	cfg := config.New(map[string]any{"forward": map[string]any{"lock_file": lockPath}})
	spec := forwardWith(cfg)

	got, err := spec.Invoke(commands.Args{api.ParamCloudService: api.CloudAWS})
	require.NoError(t, err)
	require.Equal(t, "Completed", got)
	require.FileExists(t, lockPath)

	// The lock is released after a successful run.
	got, err = spec.Invoke(commands.Args{api.ParamCloudService: api.CloudAWS})
	require.NoError(t, err)
	require.Equal(t, "Completed", got)

	holder := flock.New(lockPath)
	ok, err := holder.TryLock()
	require.NoError(t, err)
	require.True(t, ok)
	t.Cleanup(func() { _ = holder.Unlock() })

	_, err = spec.Invoke(commands.Args{api.ParamCloudService: api.CloudAWS})
	require.Error(t, err)
	require.True(t, commands.IsRecoverable(err))
	require.Contains(t, err.Error(), "another forward run")
}
