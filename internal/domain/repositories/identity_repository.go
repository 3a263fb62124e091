package repositories

import "github.com/rios0rios0/repacktask/internal/domain/entities"

// IdentityRepository reads the assembly identity declared by a binary on disk.
// Implementations release the file before returning and report unreadable or
// malformed files as errors; callers decide whether to skip silently or log.
type IdentityRepository interface {
	ReadIdentity(path string) (entities.Identity, error)
}
