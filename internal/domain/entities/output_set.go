package entities

// ResolvedOutputSet is the result of matching requested references against the
// assemblies found in the output directories.
type ResolvedOutputSet struct {
	// Matches holds one entry per successfully matched requested reference, in
	// request order. The same candidate may appear more than once.
	Matches []IdentityWithPath

	// DeclaredOutput is the build's own output assembly name.
	DeclaredOutput string
}

// Entries returns the matches followed by a synthetic entry for the declared output.
func (it ResolvedOutputSet) Entries() []IdentityWithPath {
	entries := make([]IdentityWithPath, 0, len(it.Matches)+1)
	entries = append(entries, it.Matches...)
	return append(entries, IdentityWithPath{
		Identity: Identity{Name: it.DeclaredOutput},
		Path:     it.DeclaredOutput,
	})
}

// Tokens returns the path of every entry, the declared output last.
func (it ResolvedOutputSet) Tokens() []string {
	entries := it.Entries()
	tokens := make([]string, 0, len(entries))
	for _, entry := range entries {
		tokens = append(tokens, entry.Path)
	}
	return tokens
}

// ResolveOutputSet keeps, for each requested reference in order, the first
// candidate satisfying MatchesRequested. A reference that does not parse is
// reported on log and contributes nothing; the remaining references are still
// resolved.
func ResolveOutputSet(
	requested []string,
	candidates []IdentityWithPath,
	declaredOutput string,
	log *TaskLog,
) ResolvedOutputSet {
	result := ResolvedOutputSet{DeclaredOutput: declaredOutput}

	for _, reference := range requested {
		wanted, err := ParseIdentity(reference)
		if err != nil {
			log.LogError("could not parse an assembly name reference from %q: %v", reference, err)
			continue
		}

		for _, candidate := range candidates {
			if MatchesRequested(wanted, candidate.Identity) {
				result.Matches = append(result.Matches, candidate)
				break
			}
		}
	}

	return result
}
