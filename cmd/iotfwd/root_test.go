package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iotfwd/internal/api"
	"iotfwd/internal/commands"
	"iotfwd/internal/config"
)

func newTestResolver(t *testing.T) (*resolver, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	reg := commands.NewRegistry()
	api.Register(reg, api.Deps{})
	var stdout, stderr bytes.Buffer
	return newResolver(reg, &stdout, &stderr), &stdout, &stderr
}

func requireExit(t *testing.T, err error, code int) *ExitError {
	t.Helper()
	var exit *ExitError
	require.True(t, errors.As(err, &exit), "expected *ExitError, got %v", err)
	require.Equal(t, code, exit.Code)
	return exit
}

func TestResolveDefaultsConfigPath(t *testing.T) {
	r, _, _ := newTestResolver(t)

	parsed, err := r.resolve([]string{"hello"})
	require.NoError(t, err)
	require.Equal(t, []string{config.DefaultPath}, parsed.ConfigPaths)
	require.Equal(t, "hello", parsed.Command.Name)
	require.False(t, parsed.Debug)
	require.Empty(t, parsed.Options)
}

func TestResolveAppendsConfigPaths(t *testing.T) {
	r, _, _ := newTestResolver(t)

	parsed, err := r.resolve([]string{"-c", "a.yml", "--config", "b.toml", "hello", "-c", "c.yml"})
	require.NoError(t, err)
	require.Equal(t, []string{"a.yml", "b.toml", "c.yml"}, parsed.ConfigPaths)
}

func TestResolveForwardOptions(t *testing.T) {
	r, _, _ := newTestResolver(t)

	parsed, err := r.resolve([]string{"-d", "forward", "--cloud-service", "AWS"})
	require.NoError(t, err)
	require.True(t, parsed.Debug)
	require.Equal(t, "forward", parsed.Command.Name)
	require.Equal(t, map[string]any{"cloudService": "AWS"}, parsed.Options)

	values := parsed.Values()
	assert.Equal(t, []string{config.DefaultPath}, values["configPaths"])
	assert.Equal(t, true, values["debug"])
	assert.Equal(t, "forward", values["command"])
	assert.Equal(t, "AWS", values["cloudService"])
}

func TestResolveForwardDefaultChoice(t *testing.T) {
	r, _, _ := newTestResolver(t)

	parsed, err := r.resolve([]string{"forward"})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"cloudService": "Google"}, parsed.Options)
}

func TestResolveVersion(t *testing.T) {
	for _, args := range [][]string{
		{"--version"},
		{"-v"},
		{"hello", "-v"},
		{"-v", "bogus"},
		{"--version", "forward", "--cloud-service", "Azure"},
		{"hello", "--bogus", "-v"},
		{"-dv", "hello"},
		{"--version=true", "hello"},
		{"-c", "a.yml", "-v"},
	} {
		r, stdout, stderr := newTestResolver(t)

		parsed, err := r.resolve(args)
		require.Nil(t, parsed)
		exit := requireExit(t, err, 0)
		require.NoError(t, exit.Err)
		require.Equal(t, "iotfwd dev\n", stdout.String(), args)
		require.Empty(t, stderr.String())
	}
}

func TestResolveVersionLookalikes(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		paths []string
	}{
		{name: "config value", args: []string{"-c", "-v", "hello"}, paths: []string{"-v"}},
		{name: "clustered config value", args: []string{"-cv", "hello"}, paths: []string{"v"}},
		{name: "long config value", args: []string{"--config", "-v", "hello"}, paths: []string{"-v"}},
		{name: "explicit false", args: []string{"--version=false", "hello"}, paths: []string{config.DefaultPath}},
		{name: "shorthand false", args: []string{"-v=false", "hello"}, paths: []string{config.DefaultPath}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, stdout, _ := newTestResolver(t)

			parsed, err := r.resolve(tt.args)
			require.NoError(t, err)
			require.Equal(t, "hello", parsed.Command.Name)
			require.Equal(t, tt.paths, parsed.ConfigPaths)
			require.Empty(t, stdout.String())
		})
	}

	r, stdout, _ := newTestResolver(t)
	_, err := r.resolve([]string{"hello", "--", "-v"})
	requireExit(t, err, 2)
	require.Empty(t, stdout.String())
}

func TestResolveHelp(t *testing.T) {
	r, stdout, _ := newTestResolver(t)

	_, err := r.resolve([]string{"--help"})
	requireExit(t, err, 0)
	require.Contains(t, stdout.String(), "forward")
	require.Contains(t, stdout.String(), "hello")

	r, stdout, _ = newTestResolver(t)
	_, err = r.resolve([]string{"forward", "-h"})
	requireExit(t, err, 0)
	require.Contains(t, stdout.String(), "--cloud-service {Google,AWS}")
}

func TestResolveArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "invalid choice", args: []string{"forward", "--cloud-service", "Azure"}, want: "must be one of Google, AWS"},
		{name: "unknown command", args: []string{"bogus"}, want: `unknown command "bogus"`},
		{name: "unknown flag", args: []string{"hello", "--bogus"}, want: "unknown flag: --bogus"},
		{name: "positional argument", args: []string{"hello", "extra"}, want: "unknown command"},
		{name: "flag without value", args: []string{"-c"}, want: "flag needs an argument"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, stdout, stderr := newTestResolver(t)

			parsed, err := r.resolve(tt.args)
			require.Nil(t, parsed)
			exit := requireExit(t, err, 2)

			var argErr *ArgumentError
			require.True(t, errors.As(exit, &argErr))
			require.Contains(t, stderr.String(), "Error: ")
			require.Contains(t, stderr.String(), tt.want)
			require.Contains(t, stderr.String(), "Usage:")
			require.Empty(t, stdout.String())
		})
	}
}

func TestResolveMissingCommand(t *testing.T) {
	r, _, stderr := newTestResolver(t)

	_, err := r.resolve([]string{"-d"})
	exit := requireExit(t, err, 2)

	var missing *MissingCommandError
	require.True(t, errors.As(exit, &missing))
	require.Equal(t, []string{"forward", "hello"}, missing.Available)
	require.Contains(t, stderr.String(), "a command is required (choose from forward, hello)")
	require.Contains(t, stderr.String(), "Usage:")
}

func TestParserCommandsMatchRegistry(t *testing.T) {
	r, _, _ := newTestResolver(t)
	root := r.newRootCommand(&ParsedArguments{Options: map[string]any{}}, new(bool))

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	require.Equal(t, r.registry.Names(), names)

	for _, name := range r.registry.Names() {
		parsed, err := r.resolve([]string{name})
		require.NoError(t, err)
		spec, err := r.registry.Lookup(name)
		require.NoError(t, err)
		require.Equal(t, spec.Name, parsed.Command.Name)
	}
}

func TestChoiceValue(t *testing.T) {
	v := newChoiceValue(commands.Flag{Name: "cloud-service", Param: "cloudService", Default: "Google", Choices: []string{"Google", "AWS"}})
	require.Equal(t, "Google", v.String())
	require.Equal(t, "{Google,AWS}", v.Type())
	require.NoError(t, v.Set("AWS"))
	require.Equal(t, "AWS", v.String())
	require.EqualError(t, v.Set("aws"), "must be one of Google, AWS")
	require.Equal(t, "AWS", v.String())

	free := newChoiceValue(commands.Flag{Name: "note", Param: "note"})
	require.Equal(t, "string", free.Type())
	require.NoError(t, free.Set("anything"))
}
