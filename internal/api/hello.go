package api

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"iotfwd/internal/commands"
)

const (
	// KeyHelloName is the configured greeting target.
	KeyHelloName     = "hello.name"
	defaultHelloName = "World"
)

// HelloCommand returns the spec for the parameterless hello subcommand.
func HelloCommand(deps Deps) commands.CommandSpec {
	return commands.CommandSpec{
		Name:    "hello",
		Summary: "Print a greeting",
		Handler: func(commands.Args) (string, error) {
			return hello(deps)
		},
	}
}

func hello(deps Deps) (string, error) {
	logger := deps.logger("hello")
	logger.Debug("executing hello command")

	name := deps.config().String(KeyHelloName, defaultHelloName)
	greeting := fmt.Sprintf("Hello, %s!", titleName(name))
	logger.Info("greeting prepared", "greeting", greeting)
	return greeting, nil
}

func titleName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		name = defaultHelloName
	}
	return cases.Title(language.Und).String(name)
}
