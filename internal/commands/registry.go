package commands

import (
	"fmt"
	"sort"
	"strings"
)

// Registry maps command names to their specs.
type Registry struct {
	commands map[string]CommandSpec
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]CommandSpec)}
}

// Register adds spec to the registry. Registration happens once during
// startup, so an invalid or duplicate spec is a programming error and panics.
func (r *Registry) Register(spec CommandSpec) {
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		panic("command name must not be empty")
	}
	if spec.Handler == nil {
		panic(fmt.Sprintf("command %s has no handler", name))
	}
	if _, exists := r.commands[name]; exists {
		panic(fmt.Sprintf("command %s already registered", name))
	}
	for _, flag := range spec.Flags {
		if flag.Name == "" || flag.Param == "" {
			panic(fmt.Sprintf("command %s declares a flag without name or param", name))
		}
		if !flag.Allows(flag.Default) && flag.Default != "" {
			panic(fmt.Sprintf("command %s flag --%s default %q is not an allowed choice", name, flag.Name, flag.Default))
		}
	}
	spec.Name = name
	r.commands[name] = spec
}

// Lookup returns the spec registered under name.
func (r *Registry) Lookup(name string) (CommandSpec, error) {
	spec, ok := r.commands[name]
	if !ok {
		return CommandSpec{}, fmt.Errorf("command %q: %w", name, ErrNotFound)
	}
	return spec, nil
}

// List returns every registered spec ordered by name.
func (r *Registry) List() []CommandSpec {
	specs := make([]CommandSpec, 0, len(r.commands))
	for _, spec := range r.commands {
		specs = append(specs, spec)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	return specs
}

// Names returns the registered command names in order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for _, spec := range r.List() {
		names = append(names, spec.Name)
	}
	return names
}
