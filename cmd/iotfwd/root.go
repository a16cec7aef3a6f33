package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"iotfwd/internal/commands"
	"iotfwd/internal/config"
)

// errVersionRequested stops cobra when it parses a version flag that
// versionRequested did not see.
var errVersionRequested = errors.New("version requested")

// resolver turns raw command-line input into ParsedArguments. The cobra
// command tree is generated from the registry, so every parser name is a
// registered command.
type resolver struct {
	registry *commands.Registry
	version  string
	stdout   io.Writer
	stderr   io.Writer
}

func newResolver(registry *commands.Registry, stdout, stderr io.Writer) *resolver {
	return &resolver{registry: registry, version: version, stdout: stdout, stderr: stderr}
}

// resolve parses rawArgs. Version, help and every argument problem come back
// as *ExitError after the relevant output has been written.
func (r *resolver) resolve(rawArgs []string) (*ParsedArguments, error) {
	if r.versionRequested(rawArgs) {
		r.printVersion()
		return nil, &ExitError{Code: 0}
	}

	parsed := &ParsedArguments{Options: map[string]any{}}
	selected := false
	root := r.newRootCommand(parsed, &selected)

	if rawArgs == nil {
		rawArgs = []string{}
	}
	root.SetArgs(rawArgs)

	cmd, err := root.ExecuteC()
	switch {
	case errors.Is(err, errVersionRequested):
		r.printVersion()
		return nil, &ExitError{Code: 0}
	case err != nil:
		var missing *MissingCommandError
		if !errors.As(err, &missing) {
			err = &ArgumentError{Command: cmd.CommandPath(), Err: err}
		}
		fmt.Fprintf(r.stderr, "Error: %v\n", err)
		fmt.Fprint(r.stderr, cmd.UsageString())
		return nil, &ExitError{Code: 2, Err: err}
	case !selected:
		// Help was printed.
		return nil, &ExitError{Code: 0}
	}

	if len(parsed.ConfigPaths) == 0 {
		parsed.ConfigPaths = []string{config.DefaultPath}
	}
	return parsed, nil
}

func (r *resolver) printVersion() {
	fmt.Fprintf(r.stdout, "%s %s\n", programName, r.version)
}

// versionRequested scans rawArgs for -v/--version ahead of cobra, so the
// version is printed even when the rest of the line would fail to parse.
// Scanning stops at "--", and the value of a flag that takes one is
// skipped.
func (r *resolver) versionRequested(rawArgs []string) bool {
	valueFlags := map[string]bool{"--config": true}
	for _, spec := range r.registry.List() {
		for _, flag := range spec.Flags {
			valueFlags["--"+flag.Name] = true
		}
	}

	for i := 0; i < len(rawArgs); i++ {
		arg := rawArgs[i]
		switch {
		case arg == "--":
			return false
		case strings.HasPrefix(arg, "--"):
			name, value, hasValue := strings.Cut(arg, "=")
			if name == "--version" {
				if !hasValue || enabled(value) {
					return true
				}
				continue
			}
			if valueFlags[name] && !hasValue {
				i++
			}
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			shorthands := arg[1:]
			for j := 0; j < len(shorthands); j++ {
				switch shorthands[j] {
				case 'v':
					value, explicit := strings.CutPrefix(shorthands[j+1:], "=")
					if !explicit || enabled(value) {
						return true
					}
					j = len(shorthands)
				case 'c':
					// The rest of the cluster, or the next argument, is the path.
					if j == len(shorthands)-1 {
						i++
					}
					j = len(shorthands)
				}
			}
		}
	}
	return false
}

func enabled(value string) bool {
	on, err := strconv.ParseBool(value)
	return err == nil && on
}

func (r *resolver) newRootCommand(parsed *ParsedArguments, selected *bool) *cobra.Command {
	root := &cobra.Command{
		Use:           programName,
		Short:         "IoT data forwarder",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if parsed.Version {
				return errVersionRequested
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return &MissingCommandError{Available: r.registry.Names()}
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(r.stdout)
	root.SetErr(r.stderr)

	flags := root.PersistentFlags()
	// No flag default: string arrays append onto it. resolve applies
	// config.DefaultPath after parsing instead.
	flags.StringArrayVarP(&parsed.ConfigPaths, "config", "c", nil, "Configuration file path (repeatable, default "+config.DefaultPath+")")
	flags.BoolVarP(&parsed.Debug, "debug", "d", false, "Enable debug logging before configuration is loaded")
	flags.BoolVarP(&parsed.Version, "version", "v", false, "Print version and exit")

	for _, spec := range r.registry.List() {
		root.AddCommand(newSubcommand(spec, parsed, selected))
	}
	return root
}

func newSubcommand(spec commands.CommandSpec, parsed *ParsedArguments, selected *bool) *cobra.Command {
	values := make(map[string]*choiceValue, len(spec.Flags))

	cmd := &cobra.Command{
		Use:   spec.Name,
		Short: spec.Summary,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for param, value := range values {
				parsed.Options[param] = value.String()
			}
			parsed.Command = spec
			*selected = true
			return nil
		},
	}
	for _, flag := range spec.Flags {
		value := newChoiceValue(flag)
		cmd.Flags().Var(value, flag.Name, flag.Usage)
		values[flag.Param] = value
	}
	return cmd
}
