// Package session defines the interface for creation session persistence.
// A session carries the serialized engine record between requests.
package session

//go:generate mockgen -destination=mock/mock_repository.go -package=sessionmock github.com/draftforge/draftforge/internal/repositories/session Repository

import (
	"context"
	"encoding/json"
	"time"
)

// Session is one character creation session. State holds the serialized
// character record; the engine is rebuilt from it on every request.
type Session struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"owner_id"`
	State     json.RawMessage `json:"state"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	ExpiresAt time.Time       `json:"expires_at,omitzero"`
}

// Repository persists creation sessions.
// Implements a single-session-per-owner pattern: creating a session for an
// owner replaces any session they already have.
type Repository interface {
	// Create creates or replaces an owner's session.
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a session by ID.
	// Returns errors.NotFound if the session doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// GetByOwnerID retrieves the owner's single session.
	// Returns errors.NotFound if the owner has no session
	GetByOwnerID(ctx context.Context, input GetByOwnerIDInput) (*GetByOwnerIDOutput, error)

	// Update replaces an existing session's data.
	// Returns errors.NotFound if the session doesn't exist
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete deletes a session by ID.
	// Returns errors.NotFound if the session doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// CreateInput defines the input for creating a session
type CreateInput struct {
	Session *Session
}

// CreateOutput defines the output for creating a session
type CreateOutput struct {
	Session *Session
}

// GetInput defines the input for getting a session
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a session
type GetOutput struct {
	Session *Session
}

// GetByOwnerIDInput defines the input for getting an owner's session
type GetByOwnerIDInput struct {
	OwnerID string
}

// GetByOwnerIDOutput defines the output for getting an owner's session
type GetByOwnerIDOutput struct {
	Session *Session
}

// UpdateInput defines the input for updating a session
type UpdateInput struct {
	Session *Session
}

// UpdateOutput defines the output for updating a session
type UpdateOutput struct {
	Session *Session
}

// DeleteInput defines the input for deleting a session
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a session
type DeleteOutput struct{}
