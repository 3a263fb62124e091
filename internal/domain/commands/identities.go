package commands

import (
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repacktask/internal/domain/entities"
	"github.com/rios0rios0/repacktask/internal/domain/repositories"
)

// unreadablePolicy decides what happens to a path whose identity could not be read.
type unreadablePolicy func(path string, err error)

// ignoreUnreadable drops the path without reporting anything.
func ignoreUnreadable(string, error) {}

// debugUnreadable drops the path, leaving a trace in the debug log.
func debugUnreadable(path string, err error) {
	logger.Debugf("Skipping %q: %v", path, err)
}

// warnUnreadable drops the path and logs a warning.
func warnUnreadable(path string, err error) {
	logger.Warnf("Skipping %q: %v", path, err)
}

// readIdentities reads every path in order, keeping the ones that parse.
// Files are read one at a time; each is released before the next is opened.
func readIdentities(
	reader repositories.IdentityRepository,
	paths []string,
	onUnreadable unreadablePolicy,
) []entities.IdentityWithPath {
	entries := make([]entities.IdentityWithPath, 0, len(paths))
	for _, path := range paths {
		identity, err := reader.ReadIdentity(path)
		if err != nil {
			onUnreadable(path, err)
			continue
		}
		entries = append(entries, entities.IdentityWithPath{Identity: identity, Path: path})
	}
	return entries
}

func pluralSuffix(count int) string {
	if count == 1 {
		return "y"
	}
	return "ies"
}
