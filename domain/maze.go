// Package domain holds the records the service stores and hands across its layers.
package domain

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-mazegen/maze"
	"github.com/google/uuid"
)

var ErrMazeNotFound = errors.New("maze record not found")

// MazeRecord is a finished maze as persisted once generation completes.
// Cells follow the grid's row-major enumeration order.
type MazeRecord struct {
	ID        uuid.UUID       `bson:"_id" json:"id"`
	SessionID uuid.UUID       `bson:"sessionId" json:"session_id"`
	OwnerID   uuid.UUID       `bson:"ownerId" json:"owner_id"`
	Cols      int             `bson:"cols" json:"cols"`
	Rows      int             `bson:"rows" json:"rows"`
	Seed      int64           `bson:"seed" json:"seed"`
	Steps     int             `bson:"steps" json:"steps"`
	Cells     []maze.CellView `bson:"cells" json:"cells"`
	CreatedAt time.Time       `bson:"createdAt" json:"created_at"`
}

// NewMazeRecord builds a record from a session snapshot.
func NewMazeRecord(sessionID, ownerID uuid.UUID, snap maze.Snapshot) *MazeRecord {
	return &MazeRecord{
		ID:        uuid.New(),
		SessionID: sessionID,
		OwnerID:   ownerID,
		Cols:      snap.Cols,
		Rows:      snap.Rows,
		Seed:      snap.Seed,
		Steps:     snap.Steps,
		Cells:     snap.Cells,
		CreatedAt: time.Now().UTC(),
	}
}

// MazeSessionInfo summarises a live generation session.
type MazeSessionInfo struct {
	ID       uuid.UUID
	OwnerID  uuid.UUID
	Cols     int
	Rows     int
	Seed     int64
	Steps    int
	Done     bool
	RecordID uuid.UUID // uuid.Nil until the finished maze has been saved
}

// StepReport describes the outcome of a batch of generation steps.
type StepReport struct {
	SessionID   uuid.UUID
	Performed   int             // Steps that changed state
	Advanced    int             // Steps that carved a passage
	Backtracked int             // Steps that popped the stack
	Last        maze.StepResult // Result of the final step in the batch
	Done        bool
	RecordID    uuid.UUID
}
