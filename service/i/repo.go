package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-mazegen/domain"
	"github.com/google/uuid"
)

// UserRepo defines the interface for user persistence operations.
type UserRepo interface {
	// Save inserts or updates a user in the repository.
	Save(user *dmn.User) error

	// ByID retrieves a user by their unique ID.
	ByID(id uuid.UUID) (*dmn.User, error)

	// ByUsername retrieves a user by their username.
	ByUsername(username string) (*dmn.User, error)
}

// MazeRepo stores finished mazes.
type MazeRepo interface {
	Save(ctx context.Context, record *dmn.MazeRecord) error
	ByID(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error)
	ByOwner(ctx context.Context, ownerID uuid.UUID) ([]*dmn.MazeRecord, error)
}
