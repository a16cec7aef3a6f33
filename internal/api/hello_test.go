package api_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"iotfwd/internal/api"
	"iotfwd/internal/commands"
	"iotfwd/internal/config"
)

func TestHelloGreeting(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
		want   string
	}{
		{name: "default", values: nil, want: "Hello, World!"},
		{name: "configured", values: map[string]any{"hello": map[string]any{"name": "ada lovelace"}}, want: "Hello, Ada Lovelace!"},
		{name: "blank falls back", values: map[string]any{"hello": map[string]any{"name": "   "}}, want: "Hello, World!"},
		{name: "extra spaces collapse", values: map[string]any{"hello": map[string]any{"name": " grace   hopper "}}, want: "Hello, Grace Hopper!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.values)
			spec := api.HelloCommand(api.Deps{Config: func() *config.Config { return cfg }})

			got, err := spec.Invoke(commands.Args{"debug": true, "configPaths": []string{"x"}})
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestHelloWithoutDeps(t *testing.T) {
	got, err := api.HelloCommand(api.Deps{}).Invoke(nil)
	require.NoError(t, err)
	require.Equal(t, "Hello, World!", got)
}

func TestHelloLogsThroughCurrentLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	spec := api.HelloCommand(api.Deps{Logger: func() *slog.Logger { return logger }})

	_, err := spec.Invoke(commands.Args{})
	require.NoError(t, err)
	require.Contains(t, buf.String(), "executing hello command")
	require.Contains(t, buf.String(), "component=hello")
}

func TestRegisterAddsAllCommands(t *testing.T) {
	reg := commands.NewRegistry()
	api.Register(reg, api.Deps{})

	require.Equal(t, []string{"forward", "hello"}, reg.Names())

	hello, err := reg.Lookup("hello")
	require.NoError(t, err)
	require.Empty(t, hello.AcceptedParams)
	require.False(t, hello.AcceptsArbitraryKeywords)

	forward, err := reg.Lookup("forward")
	require.NoError(t, err)
	require.Equal(t, []string{api.ParamCloudService}, forward.AcceptedParams)
	require.Len(t, forward.Flags, 1)
	require.Equal(t, api.CloudGoogle, forward.Flags[0].Default)
}
