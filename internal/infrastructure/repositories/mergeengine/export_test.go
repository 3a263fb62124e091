package mergeengine

import "github.com/rios0rios0/repacktask/internal/domain/entities"

// BuildILRepackArguments exposes the ILRepack argument rendering for tests.
func BuildILRepackArguments(inputs []string, opts entities.MergeOptions) []string {
	return buildArguments(ilRepackDialect, inputs, opts)
}

// BuildILMergeArguments exposes the ILMerge argument rendering for tests.
func BuildILMergeArguments(inputs []string, opts entities.MergeOptions) []string {
	return buildArguments(ilMergeDialect, inputs, opts)
}
