package repositories

// AssemblyFileRepository enumerates the assembly files of a directory.
type AssemblyFileRepository interface {
	// ListAssemblies returns the *.dll files followed by the *.exe files of dir.
	ListAssemblies(dir string) ([]string, error)
}
