package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"iotfwd/internal/commands"
)

var _ pflag.Value = (*choiceValue)(nil)

// choiceValue is the pflag.Value for a command flag. It rejects values the
// flag does not allow.
type choiceValue struct {
	flag  commands.Flag
	value string
}

func newChoiceValue(flag commands.Flag) *choiceValue {
	return &choiceValue{flag: flag, value: flag.Default}
}

func (c *choiceValue) Set(value string) error {
	if !c.flag.Allows(value) {
		return fmt.Errorf("must be one of %s", strings.Join(c.flag.Choices, ", "))
	}
	c.value = value
	return nil
}

func (c *choiceValue) String() string { return c.value }

func (c *choiceValue) Type() string {
	if len(c.flag.Choices) == 0 {
		return "string"
	}
	return "{" + strings.Join(c.flag.Choices, ",") + "}"
}
