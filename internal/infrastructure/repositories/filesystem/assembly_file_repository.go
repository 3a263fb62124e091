package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rios0rios0/repacktask/internal/domain/repositories"
)

// assemblyExtensions are enumerated in this order, each group sorted by file name.
//
//nolint:gochecknoglobals // fixed enumeration order
var assemblyExtensions = []string{".dll", ".exe"}

// AssemblyFileRepository lists assembly files from the local file system.
type AssemblyFileRepository struct{}

var _ repositories.AssemblyFileRepository = (*AssemblyFileRepository)(nil)

// NewAssemblyFileRepository creates a new AssemblyFileRepository.
func NewAssemblyFileRepository() *AssemblyFileRepository {
	return &AssemblyFileRepository{}
}

// ListAssemblies returns the *.dll files of dir followed by its *.exe files.
// Extensions are matched case-insensitively; subdirectories are not visited.
func (it *AssemblyFileRepository) ListAssemblies(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list output directory %q: %w", dir, err)
	}

	var paths []string
	for _, extension := range assemblyExtensions {
		for _, entry := range entries {
			if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), extension) {
				continue
			}
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}
