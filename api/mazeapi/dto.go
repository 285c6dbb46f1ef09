// Package mazeapi provides structures and handlers for driving maze generation sessions over HTTP.
package mazeapi

import (
	dmn "github.com/beka-birhanu/vinom-mazegen/domain"
	"github.com/beka-birhanu/vinom-mazegen/maze"
	"github.com/google/uuid"
)

// CreateRequest asks for a new session. Missing dimensions fall back to the configured defaults.
type CreateRequest struct {
	Cols *int   `json:"cols"`
	Rows *int   `json:"rows"`
	Seed *int64 `json:"seed"`
}

// StepRequest asks for Count steps, one when omitted.
type StepRequest struct {
	Count int `json:"count"`
}

// ResetRequest optionally fixes the seed of the replacement maze.
type ResetRequest struct {
	Seed *int64 `json:"seed"`
}

// SessionResponse describes a live session.
type SessionResponse struct {
	ID       string  `json:"id"`
	Cols     int     `json:"cols"`
	Rows     int     `json:"rows"`
	Seed     int64   `json:"seed"`
	Steps    int     `json:"steps"`
	Done     bool    `json:"done"`
	RecordID *string `json:"record_id,omitempty"`
}

// StepResponse reports a batch of steps.
type StepResponse struct {
	Performed   int     `json:"performed"`
	Advanced    int     `json:"advanced"`
	Backtracked int     `json:"backtracked"`
	Result      string  `json:"result"`
	Done        bool    `json:"done"`
	RecordID    *string `json:"record_id,omitempty"`
}

// RecordResponse is a finished maze in its exported shape.
type RecordResponse struct {
	ID        string          `json:"id"`
	SessionID string          `json:"session_id"`
	Cols      int             `json:"cols"`
	Rows      int             `json:"rows"`
	Seed      int64           `json:"seed"`
	Cells     []maze.CellView `json:"cells"`
}

func recordID(id uuid.UUID) *string {
	if id == uuid.Nil {
		return nil
	}
	s := id.String()
	return &s
}

func newSessionResponse(info *dmn.MazeSessionInfo) *SessionResponse {
	return &SessionResponse{
		ID:       info.ID.String(),
		Cols:     info.Cols,
		Rows:     info.Rows,
		Seed:     info.Seed,
		Steps:    info.Steps,
		Done:     info.Done,
		RecordID: recordID(info.RecordID),
	}
}

func newStepResponse(r *dmn.StepReport) *StepResponse {
	return &StepResponse{
		Performed:   r.Performed,
		Advanced:    r.Advanced,
		Backtracked: r.Backtracked,
		Result:      r.Last.String(),
		Done:        r.Done,
		RecordID:    recordID(r.RecordID),
	}
}

func newRecordResponse(r *dmn.MazeRecord) *RecordResponse {
	return &RecordResponse{
		ID:        r.ID.String(),
		SessionID: r.SessionID.String(),
		Cols:      r.Cols,
		Rows:      r.Rows,
		Seed:      r.Seed,
		Cells:     r.Cells,
	}
}
