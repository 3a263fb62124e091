package entities

import (
	"path/filepath"
	"strings"
)

// TargetKind selects the kind of assembly the merge engine produces.
type TargetKind string

const (
	TargetKindSameAsPrimaryAssembly TargetKind = "SameAsPrimaryAssembly"
	TargetKindDll                   TargetKind = "Dll"
	TargetKindExe                   TargetKind = "Exe"
	TargetKindWinExe                TargetKind = "WinExe"
)

// TargetKindWarning is logged when an unknown target kind falls back to the default.
const TargetKindWarning = "TargetKind should be [Exe|Dll|WinExe|SameAsPrimaryAssembly]; set to SameAsPrimaryAssembly"

// ParseTargetKind maps a target kind name (exact case) to a TargetKind. The
// second result is false when the name is unknown, in which case
// TargetKindSameAsPrimaryAssembly is returned.
func ParseTargetKind(name string) (TargetKind, bool) {
	switch kind := TargetKind(name); kind {
	case TargetKindSameAsPrimaryAssembly, TargetKindDll, TargetKindExe, TargetKindWinExe:
		return kind, true
	default:
		return TargetKindSameAsPrimaryAssembly, false
	}
}

// MergeOptions configures one invocation of the external merge engine.
// Path fields are already resolved; an empty path means "not set".
type MergeOptions struct {
	OutputFile        string
	TargetKind        TargetKind
	Internalize       bool
	ExcludeFile       string
	AttributeFile     string
	KeyFile           string
	Log               bool
	LogFile           string
	Closed            bool
	CopyAttributes    bool
	DebugInfo         bool
	XMLDocumentation  bool
	Parallel          bool
	SearchDirectories []string
}

// ResolvePath combines a relative path with baseDir. Blank paths stay blank
// and absolute paths are returned unchanged.
func ResolvePath(baseDir, path string) string {
	if strings.TrimSpace(path) == "" {
		return ""
	}
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

// SearchDirectories returns "." followed by every non-blank library path
// resolved against baseDir.
func SearchDirectories(baseDir string, libraryPaths []string) []string {
	directories := []string{"."}
	for _, libraryPath := range libraryPaths {
		if resolved := ResolvePath(baseDir, libraryPath); resolved != "" {
			directories = append(directories, resolved)
		}
	}
	return directories
}
