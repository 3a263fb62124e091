package repositories

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"mvdan.cc/sh/v3/shell"

	domainRepos "github.com/rios0rios0/repacktask/internal/domain/repositories"
)

// EngineFactory is a constructor function that creates a MergeEngineRepository
// invoking the given command line (program first).
type EngineFactory func(command []string) domainRepos.MergeEngineRepository

// EngineRegistry manages all registered merge engine implementations.
type EngineRegistry struct {
	engines map[string]EngineFactory
}

// NewEngineRegistry creates an empty engine registry.
func NewEngineRegistry() *EngineRegistry {
	return &EngineRegistry{
		engines: make(map[string]EngineFactory),
	}
}

// Register adds an engine factory under the given name (e.g. "ilrepack").
func (r *EngineRegistry) Register(name string, factory EngineFactory) {
	r.engines[name] = factory
}

// Get returns an engine for the given name. The command line is split with
// shell quoting rules and $VAR references are expanded from the environment;
// a blank command line runs the engine name itself.
func (r *EngineRegistry) Get(name, commandLine string) (domainRepos.MergeEngineRepository, error) {
	factory, ok := r.engines[name]
	if !ok {
		return nil, fmt.Errorf("unknown merge engine: %q (available: %s)", name, strings.Join(r.Names(), ", "))
	}

	command, err := shell.Fields(commandLine, os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("invalid command line for engine %q: %w", name, err)
	}
	if len(command) == 0 {
		command = []string{name}
	}
	return factory(command), nil
}

// Names returns the registered engine names in sorted order.
func (r *EngineRegistry) Names() []string {
	return slices.Sorted(maps.Keys(r.engines))
}
