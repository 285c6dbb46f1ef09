package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-mazegen/domain"
	"github.com/beka-birhanu/vinom-mazegen/maze"
	"github.com/google/uuid"
)

// MazeSessionManager owns the live generation sessions of all users.
type MazeSessionManager interface {
	Create(ctx context.Context, owner uuid.UUID, cols, rows int, seed *int64) (*dmn.MazeSessionInfo, error)
	Info(ctx context.Context, owner, id uuid.UUID) (*dmn.MazeSessionInfo, error)
	Sessions(ctx context.Context, owner uuid.UUID) []*dmn.MazeSessionInfo
	Step(ctx context.Context, owner, id uuid.UUID, count int) (*dmn.StepReport, error)
	Run(ctx context.Context, owner, id uuid.UUID) (*dmn.StepReport, error)
	Snapshot(ctx context.Context, owner, id uuid.UUID) (*maze.Snapshot, error)
	Render(ctx context.Context, owner, id uuid.UUID) (string, error)
	Reset(ctx context.Context, owner, id uuid.UUID, seed *int64) (*dmn.MazeSessionInfo, error)
	Delete(ctx context.Context, owner, id uuid.UUID) error
	Record(ctx context.Context, owner, recordID uuid.UUID) (*dmn.MazeRecord, error)
	Records(ctx context.Context, owner uuid.UUID) ([]*dmn.MazeRecord, error)
}
