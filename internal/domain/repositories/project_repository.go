package repositories

// ProjectRepository extracts requested assembly references from a build project file.
type ProjectRepository interface {
	ReferencedAssemblies(projectFile string) ([]string, error)
}
