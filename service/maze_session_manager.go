package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	dmn "github.com/beka-birhanu/vinom-mazegen/domain"
	"github.com/beka-birhanu/vinom-mazegen/maze"
	"github.com/beka-birhanu/vinom-mazegen/service/i"
	"github.com/google/uuid"
)

var (
	ErrSessionNotFound   = errors.New("maze session not found")
	ErrNotOwner          = errors.New("maze session belongs to another user")
	ErrInvalidStepCount  = errors.New("step count must be positive")
	ErrDimensionTooLarge = errors.New("maze dimension too large")
)

var _ i.MazeSessionManager = &MazeSessionManager{}

// liveSession is one maze being generated. Its lock serialises steps so a
// reader never sees the walls of a half-finished step.
type liveSession struct {
	id       uuid.UUID
	owner    uuid.UUID
	maze     *maze.Session
	recordID uuid.UUID
	deleted  bool
	sync.RWMutex
}

func (s *liveSession) info() *dmn.MazeSessionInfo {
	return &dmn.MazeSessionInfo{
		ID:       s.id,
		OwnerID:  s.owner,
		Cols:     s.maze.Grid().Cols(),
		Rows:     s.maze.Grid().Rows(),
		Seed:     s.maze.Seed(),
		Steps:    s.maze.Generator().Steps(),
		Done:     s.maze.Done(),
		RecordID: s.recordID,
	}
}

// MazeSessionManager keeps every live session in memory and persists each
// maze once it is complete.
type MazeSessionManager struct {
	sessions        map[uuid.UUID]*liveSession
	mazeRepo        i.MazeRepo
	snapshots       i.SnapshotStore
	logger          i.Logger
	maxDimension    int
	exportEveryStep bool
	sync.RWMutex
}

// MazeSessionConfig holds the dependencies of a MazeSessionManager.
type MazeSessionConfig struct {
	MazeRepo        i.MazeRepo
	Snapshots       i.SnapshotStore // optional; nil disables step snapshots
	Logger          i.Logger
	MaxDimension    int
	ExportEveryStep bool
}

// NewMazeSessionManager creates a manager with no sessions.
func NewMazeSessionManager(c *MazeSessionConfig) (*MazeSessionManager, error) {
	if c.MazeRepo == nil || c.Logger == nil {
		return nil, errors.New("maze session manager needs a maze repository and a logger")
	}
	if c.MaxDimension <= 0 {
		return nil, fmt.Errorf("invalid max dimension: %d", c.MaxDimension)
	}

	return &MazeSessionManager{
		sessions:        make(map[uuid.UUID]*liveSession),
		mazeRepo:        c.MazeRepo,
		snapshots:       c.Snapshots,
		logger:          c.Logger,
		maxDimension:    c.MaxDimension,
		exportEveryStep: c.ExportEveryStep && c.Snapshots != nil,
	}, nil
}

// Create starts a new session for owner.
func (m *MazeSessionManager) Create(ctx context.Context, owner uuid.UUID, cols, rows int, seed *int64) (*dmn.MazeSessionInfo, error) {
	mz, err := m.newMaze(cols, rows, seed)
	if err != nil {
		return nil, err
	}

	s := &liveSession{owner: owner, maze: mz}

	m.Lock()
	s.id = uuid.New()
	for {
		if _, ok := m.sessions[s.id]; !ok {
			break
		}
		s.id = uuid.New()
	}
	m.sessions[s.id] = s
	m.Unlock()

	m.logger.WithField("session", s.id).Info(fmt.Sprintf("created %dx%d maze with seed %d", cols, rows, mz.Seed()))
	return s.info(), nil
}

// Info returns a summary of one session.
func (m *MazeSessionManager) Info(ctx context.Context, owner, id uuid.UUID) (*dmn.MazeSessionInfo, error) {
	s, err := m.session(owner, id)
	if err != nil {
		return nil, err
	}

	s.RLock()
	defer s.RUnlock()
	return s.info(), nil
}

// Sessions lists the sessions owned by owner.
func (m *MazeSessionManager) Sessions(ctx context.Context, owner uuid.UUID) []*dmn.MazeSessionInfo {
	m.RLock()
	owned := make([]*liveSession, 0)
	for _, s := range m.sessions {
		if s.owner == owner {
			owned = append(owned, s)
		}
	}
	m.RUnlock()

	infos := make([]*dmn.MazeSessionInfo, 0, len(owned))
	for _, s := range owned {
		s.RLock()
		infos = append(infos, s.info())
		s.RUnlock()
	}
	return infos
}

// Step performs up to count generation steps, stopping early once the maze is complete.
func (m *MazeSessionManager) Step(ctx context.Context, owner, id uuid.UUID, count int) (*dmn.StepReport, error) {
	if count < 1 {
		return nil, ErrInvalidStepCount
	}

	s, err := m.session(owner, id)
	if err != nil {
		return nil, err
	}
	return m.advance(ctx, s, count)
}

// Run steps the session until the maze is complete.
func (m *MazeSessionManager) Run(ctx context.Context, owner, id uuid.UUID) (*dmn.StepReport, error) {
	s, err := m.session(owner, id)
	if err != nil {
		return nil, err
	}
	return m.advance(ctx, s, -1)
}

// advance runs at most limit steps (no limit when negative), each under the session lock.
func (m *MazeSessionManager) advance(ctx context.Context, s *liveSession, limit int) (*dmn.StepReport, error) {
	report := &dmn.StepReport{SessionID: s.id}

	for limit < 0 || report.Performed < limit {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		s.Lock()
		result := s.maze.Advance()
		s.Unlock()

		report.Last = result
		if result == maze.Completed {
			break
		}
		report.Performed++
		if result == maze.Advanced {
			report.Advanced++
		} else {
			report.Backtracked++
		}
	}

	s.RLock()
	done := s.maze.Done()
	saved := s.recordID != uuid.Nil
	s.RUnlock()

	if done && !saved {
		m.persist(ctx, s)
	} else if m.exportEveryStep && !done {
		m.publish(ctx, s)
	}

	s.RLock()
	report.Done = s.maze.Done()
	report.RecordID = s.recordID
	s.RUnlock()
	return report, nil
}

// persist saves the finished maze. A failed save is logged and retried on the next step call.
func (m *MazeSessionManager) persist(ctx context.Context, s *liveSession) {
	s.Lock()
	defer s.Unlock()
	if s.recordID != uuid.Nil || !s.maze.Done() {
		return
	}

	logger := m.logger.WithField("session", s.id)
	record := dmn.NewMazeRecord(s.id, s.owner, s.maze.Snapshot())
	if err := m.mazeRepo.Save(ctx, record); err != nil {
		logger.Error(fmt.Sprintf("saving finished maze: %s", err))
		return
	}
	s.recordID = record.ID
	logger.Info(fmt.Sprintf("maze complete after %d steps, %d passages, saved as %s",
		record.Steps, s.maze.Grid().PassageCount(), record.ID))

	if m.snapshots != nil {
		if err := m.snapshots.Delete(ctx, s.id); err != nil {
			logger.Error(fmt.Sprintf("dropping step snapshot: %s", err))
		}
	}
}

// publish stores the current snapshot for step-by-step consumers. The read
// lock is held through the write so Reset and Delete, which clear the stored
// snapshot under the write lock, always run before or after it.
func (m *MazeSessionManager) publish(ctx context.Context, s *liveSession) {
	s.RLock()
	defer s.RUnlock()
	if s.deleted {
		return
	}

	snap := s.maze.Snapshot()
	if err := m.snapshots.Put(ctx, s.id, &snap); err != nil {
		m.logger.WithField("session", s.id).Error(fmt.Sprintf("publishing step snapshot: %s", err))
	}
}

// Snapshot returns a consistent copy of the session's state.
func (m *MazeSessionManager) Snapshot(ctx context.Context, owner, id uuid.UUID) (*maze.Snapshot, error) {
	s, err := m.session(owner, id)
	if err != nil {
		return nil, err
	}

	s.RLock()
	defer s.RUnlock()
	snap := s.maze.Snapshot()
	return &snap, nil
}

// Render draws the session's grid as text.
func (m *MazeSessionManager) Render(ctx context.Context, owner, id uuid.UUID) (string, error) {
	s, err := m.session(owner, id)
	if err != nil {
		return "", err
	}

	s.RLock()
	defer s.RUnlock()
	return s.maze.String(), nil
}

// Reset throws the session's maze away and starts a new one with the same dimensions.
func (m *MazeSessionManager) Reset(ctx context.Context, owner, id uuid.UUID, seed *int64) (*dmn.MazeSessionInfo, error) {
	s, err := m.session(owner, id)
	if err != nil {
		return nil, err
	}

	s.Lock()
	defer s.Unlock()

	mz, err := maze.NewSession(s.maze.Grid().Cols(), s.maze.Grid().Rows(), seed)
	if err != nil {
		return nil, err
	}
	s.maze = mz
	s.recordID = uuid.Nil
	m.dropSnapshot(ctx, id)

	m.logger.WithField("session", id).Info(fmt.Sprintf("reset with seed %d", mz.Seed()))
	return s.info(), nil
}

// Delete forgets a session.
func (m *MazeSessionManager) Delete(ctx context.Context, owner, id uuid.UUID) error {
	s, err := m.session(owner, id)
	if err != nil {
		return err
	}

	m.Lock()
	delete(m.sessions, id)
	m.Unlock()

	s.Lock()
	s.deleted = true
	m.dropSnapshot(ctx, id)
	s.Unlock()
	m.logger.WithField("session", id).Info("deleted")
	return nil
}

// Record loads a finished maze owned by owner.
func (m *MazeSessionManager) Record(ctx context.Context, owner, recordID uuid.UUID) (*dmn.MazeRecord, error) {
	record, err := m.mazeRepo.ByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record.OwnerID != owner {
		return nil, ErrNotOwner
	}
	return record, nil
}

// Records lists the finished mazes owned by owner.
func (m *MazeSessionManager) Records(ctx context.Context, owner uuid.UUID) ([]*dmn.MazeRecord, error) {
	return m.mazeRepo.ByOwner(ctx, owner)
}

func (m *MazeSessionManager) newMaze(cols, rows int, seed *int64) (*maze.Session, error) {
	if cols > m.maxDimension || rows > m.maxDimension {
		return nil, ErrDimensionTooLarge
	}
	return maze.NewSession(cols, rows, seed)
}

func (m *MazeSessionManager) session(owner, id uuid.UUID) (*liveSession, error) {
	m.RLock()
	defer m.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.owner != owner {
		return nil, ErrNotOwner
	}
	return s, nil
}

func (m *MazeSessionManager) dropSnapshot(ctx context.Context, id uuid.UUID) {
	if m.snapshots == nil {
		return
	}
	if err := m.snapshots.Delete(ctx, id); err != nil {
		m.logger.WithField("session", id).Error(fmt.Sprintf("dropping step snapshot: %s", err))
	}
}
