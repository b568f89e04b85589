// Package runsession stores a run's game, round and shop state together
// with the position of its seeded random source.
package runsession

import (
	"context"
	"time"

	"github.com/bbeaudet-dev/rollio-sub001/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=runsessionmock github.com/bbeaudet-dev/rollio-sub001/internal/repositories/run_session Repository

// Session is one persisted run
type Session struct {
	ID string `json:"id"`

	// Seed the run was started with
	Seed uint64 `json:"seed"`

	// RandomState is the captured generator position after the last action
	RandomState []byte `json:"randomState"`

	Game  *entities.GameState  `json:"game"`
	Round *entities.RoundState `json:"round,omitempty"`
	// Shop is the open shop visit, nil outside the shop
	Shop *entities.ShopState `json:"shop,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// CreateInput contains parameters for creating a session
type CreateInput struct {
	Session *Session
	TTL     time.Duration // How long the session should live
}

// CreateOutput contains the stored session
type CreateOutput struct {
	Session *Session
}

// GetInput contains parameters for retrieving a session
type GetInput struct {
	ID string
}

// GetOutput contains the result of retrieving a session
type GetOutput struct {
	Session *Session
}

// DeleteInput contains parameters for deleting a session
type DeleteInput struct {
	ID string
}

// DeleteOutput contains the result of deleting a session
type DeleteOutput struct {
	Deleted bool
}

// Repository defines the interface for run session storage operations
type Repository interface {
	// Create stores a new session. The id must not be in use.
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a session by id
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing session, keeping its expiry
	Update(ctx context.Context, session *Session) error

	// Delete removes a session
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}
