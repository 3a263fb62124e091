package msbuild

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/rios0rios0/repacktask/internal/domain/repositories"
)

// ProjectRepository reads assembly references from MSBuild project files.
type ProjectRepository struct{}

var _ repositories.ProjectRepository = (*ProjectRepository)(nil)

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{}
}

// ReferencedAssemblies returns the Include value of every <Reference> item in
// document order. Items without an Include are ignored.
func (it *ProjectRepository) ReferencedAssemblies(projectFile string) ([]string, error) {
	document := etree.NewDocument()
	if err := document.ReadFromFile(projectFile); err != nil {
		return nil, fmt.Errorf("failed to read project file %q: %w", projectFile, err)
	}
	if document.Root() == nil {
		return nil, fmt.Errorf("project file %q has no root element", projectFile)
	}

	var references []string
	for _, element := range document.FindElements("//ItemGroup/Reference") {
		include := strings.TrimSpace(element.SelectAttrValue("Include", ""))
		if include == "" {
			continue
		}
		references = append(references, include)
	}
	return references, nil
}
