// Package common provides foundational types shared across every layer of the
// SmilesKit toolkit: entity identity, audit fields, and timestamps.  No business
// logic lives here.
package common

import (
	"time"

	"github.com/google/uuid"
)

// ID is the toolkit-wide primary-key type, represented as a UUID string.
// Using a named type prevents accidental mixing of different ID domains at
// compile time.
type ID string

// Timestamp is a named alias for time.Time.  It serialises to / from RFC 3339
// in JSON by default (standard library behaviour).
type Timestamp = time.Time

// NewID generates a new random UUID v4 and returns it as an ID.
// It panics only if the underlying entropy source is broken, which is
// exceedingly rare on modern operating systems.
func NewID() ID {
	return ID(uuid.New().String())
}

// BaseEntity carries audit metadata that every aggregate in the toolkit
// includes.  Structs that need these fields should embed BaseEntity rather
// than redeclaring them.
type BaseEntity struct {
	// ID is the globally unique identifier (UUID v4) for this entity.
	ID ID `json:"id"`

	// CreatedAt is the UTC timestamp at which the entity was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the UTC timestamp of the most recent mutation to the entity.
	UpdatedAt time.Time `json:"updated_at"`

	// Version is an integer optimistic-lock counter incremented on every
	// successful write.
	Version int `json:"version"`
}

// Touch updates UpdatedAt to now and increments Version.
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now().UTC()
	e.Version++
}
