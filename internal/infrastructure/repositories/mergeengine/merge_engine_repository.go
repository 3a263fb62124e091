package mergeengine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repacktask/internal/domain/entities"
	"github.com/rios0rios0/repacktask/internal/domain/repositories"
)

const outputTailLines = 20

// dialect captures the differences between engines sharing the ILMerge option syntax.
type dialect struct {
	name             string
	supportsParallel bool
}

//nolint:gochecknoglobals // engine dialects are constant data
var (
	ilRepackDialect = dialect{name: "ilrepack", supportsParallel: true}
	ilMergeDialect  = dialect{name: "ilmerge", supportsParallel: false}
)

// MergeEngineRepository runs an external merge executable and waits for it to finish.
type MergeEngineRepository struct {
	command []string
	dialect dialect
}

var _ repositories.MergeEngineRepository = (*MergeEngineRepository)(nil)

// NewILRepackRepository creates an engine invoking ILRepack through command.
func NewILRepackRepository(command []string) repositories.MergeEngineRepository {
	return &MergeEngineRepository{command: command, dialect: ilRepackDialect}
}

// NewILMergeRepository creates an engine invoking ILMerge through command.
// ILMerge has no parallel mode, so MergeOptions.Parallel is ignored.
func NewILMergeRepository(command []string) repositories.MergeEngineRepository {
	return &MergeEngineRepository{command: command, dialect: ilMergeDialect}
}

// Name returns the engine identifier.
func (it *MergeEngineRepository) Name() string {
	return it.dialect.name
}

// Merge runs the engine and returns an error carrying the tail of its output
// when it cannot be started or exits with a non-zero status.
func (it *MergeEngineRepository) Merge(ctx context.Context, inputs []string, opts entities.MergeOptions) error {
	if len(it.command) == 0 {
		return errors.New("merge engine command is empty")
	}
	if len(inputs) == 0 {
		return errors.New("no input assemblies to merge")
	}

	arguments := append(append([]string{}, it.command[1:]...), buildArguments(it.dialect, inputs, opts)...)
	logger.Debugf("Running %s %s", it.command[0], strings.Join(arguments, " "))

	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, it.command[0], arguments...)
	cmd.Stdout = &output
	cmd.Stderr = &output

	runErr := cmd.Run()
	for _, line := range strings.Split(strings.TrimRight(output.String(), "\n"), "\n") {
		if line != "" {
			logger.Debugf("[%s] %s", it.dialect.name, line)
		}
	}
	if runErr != nil {
		return fmt.Errorf("%s failed: %w\n%s", it.dialect.name, runErr, tail(output.String(), outputTailLines))
	}
	return nil
}

// buildArguments renders the merge options using the ILMerge-compatible
// "/option[:value]" syntax, followed by the input assemblies.
func buildArguments(engine dialect, inputs []string, opts entities.MergeOptions) []string {
	var arguments []string

	arguments = append(arguments, "/out:"+opts.OutputFile)
	if opts.KeyFile != "" {
		arguments = append(arguments, "/keyfile:"+opts.KeyFile)
	}
	switch {
	case opts.LogFile != "":
		arguments = append(arguments, "/log:"+opts.LogFile)
	case opts.Log:
		arguments = append(arguments, "/log")
	}
	if opts.TargetKind != "" && opts.TargetKind != entities.TargetKindSameAsPrimaryAssembly {
		arguments = append(arguments, "/target:"+strings.ToLower(string(opts.TargetKind)))
	}
	if opts.Internalize {
		if opts.ExcludeFile != "" {
			arguments = append(arguments, "/internalize:"+opts.ExcludeFile)
		} else {
			arguments = append(arguments, "/internalize")
		}
	}
	if opts.AttributeFile != "" {
		arguments = append(arguments, "/attr:"+opts.AttributeFile)
	}
	if opts.CopyAttributes {
		arguments = append(arguments, "/copyattrs")
	}
	if opts.Closed {
		arguments = append(arguments, "/closed")
	}
	if !opts.DebugInfo {
		arguments = append(arguments, "/ndebug")
	}
	if opts.XMLDocumentation {
		arguments = append(arguments, "/xmldocs")
	}
	if opts.Parallel && engine.supportsParallel {
		arguments = append(arguments, "/parallel")
	}
	for _, directory := range opts.SearchDirectories {
		arguments = append(arguments, "/lib:"+directory)
	}

	return append(arguments, inputs...)
}

func tail(output string, lines int) string {
	all := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(all) > lines {
		all = all[len(all)-lines:]
	}
	return strings.Join(all, "\n")
}
