package models

import "github.com/google/uuid"

// User identifies a player across the legacy and destination systems.
// The ID is globally unique; the name is display-only and may change.
type User struct {
	ID   uuid.UUID
	Name string
}
