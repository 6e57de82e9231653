// Package store defines the destination profile store consumed by the
// migration and provides its PostgreSQL and in-memory implementations.
package store

import (
	"context"

	"github.com/dkazarin/mpdbmigrate/internal/models"
)

// Store is the destination the migration loads converted profiles into.
// Implementations must tolerate concurrent WriteProfile calls for distinct
// user ids; the orchestrator never issues concurrent writes for the same id.
type Store interface {
	// Wipe destructively empties the store. It is idempotent: wiping an
	// already-empty store succeeds.
	Wipe(ctx context.Context) error

	// EnsureUser makes sure a user row exists for the given identity,
	// updating the display name if the user is already present.
	EnsureUser(ctx context.Context, user models.User) error

	// WriteProfile persists one converted profile, tagged with the cause
	// of the write.
	WriteProfile(ctx context.Context, user models.User, profile *models.Profile, cause models.SaveCause) error

	// Close releases the underlying resources.
	Close() error
}
