package i

import (
	"context"

	"github.com/beka-birhanu/vinom-mazegen/maze"
	"github.com/google/uuid"
)

// SnapshotStore keeps the latest in-progress snapshot of each session for
// consumers that follow generation step by step.
type SnapshotStore interface {
	Put(ctx context.Context, sessionID uuid.UUID, snap *maze.Snapshot) error
	Get(ctx context.Context, sessionID uuid.UUID) (*maze.Snapshot, error)
	Delete(ctx context.Context, sessionID uuid.UUID) error
}
