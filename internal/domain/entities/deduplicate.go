package entities

// DeduplicateIdentities keeps the first entry for every distinct fully qualified
// identity, preserving input order. Later entries with the same full name are
// dropped even when their paths differ.
func DeduplicateIdentities(entries []IdentityWithPath) []IdentityWithPath {
	seen := make(map[string]struct{}, len(entries))
	unique := make([]IdentityWithPath, 0, len(entries))

	for _, entry := range entries {
		key := entry.Identity.FullName()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, entry)
	}

	return unique
}

// VersionConflict groups entries that share a simple name but differ in their
// fully qualified identity. They survive deduplication and are merged side by side.
type VersionConflict struct {
	Name    string
	Entries []IdentityWithPath
	Highest IdentityWithPath
}

// FindVersionConflicts reports every simple name carried by more than one entry,
// in order of first appearance.
func FindVersionConflicts(entries []IdentityWithPath) []VersionConflict {
	groups := make(map[string][]IdentityWithPath)
	var order []string

	for _, entry := range entries {
		name := entry.Identity.Name
		if _, ok := groups[name]; !ok {
			order = append(order, name)
		}
		groups[name] = append(groups[name], entry)
	}

	var conflicts []VersionConflict
	for _, name := range order {
		group := groups[name]
		if len(group) < 2 { //nolint:mnd // a conflict needs two entries
			continue
		}

		highest := group[0]
		for _, entry := range group[1:] {
			if entry.Identity.Version.Compare(highest.Identity.Version) > 0 {
				highest = entry
			}
		}
		conflicts = append(conflicts, VersionConflict{Name: name, Entries: group, Highest: highest})
	}

	return conflicts
}
