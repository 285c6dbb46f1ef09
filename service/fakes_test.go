package service

import (
	"context"
	"errors"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/vinom-mazegen/domain"
	"github.com/beka-birhanu/vinom-mazegen/maze"
	"github.com/beka-birhanu/vinom-mazegen/service/i"
	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Error(string) {}
func (nopLogger) Debug(string) {}
func (l nopLogger) WithField(string, any) i.Logger { return l }

var errNotFound = errors.New("not found")

type memMazeRepo struct {
	records map[uuid.UUID]*dmn.MazeRecord
	saves   int
	failing bool
	sync.Mutex
}

func newMemMazeRepo() *memMazeRepo {
	return &memMazeRepo{records: make(map[uuid.UUID]*dmn.MazeRecord)}
}

func (r *memMazeRepo) Save(ctx context.Context, record *dmn.MazeRecord) error {
	r.Lock()
	defer r.Unlock()
	if r.failing {
		return errors.New("database unavailable")
	}
	r.saves++
	r.records[record.ID] = record
	return nil
}

func (r *memMazeRepo) ByID(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error) {
	r.Lock()
	defer r.Unlock()
	record, ok := r.records[id]
	if !ok {
		return nil, dmn.ErrMazeNotFound
	}
	return record, nil
}

func (r *memMazeRepo) ByOwner(ctx context.Context, ownerID uuid.UUID) ([]*dmn.MazeRecord, error) {
	r.Lock()
	defer r.Unlock()
	var records []*dmn.MazeRecord
	for _, record := range r.records {
		if record.OwnerID == ownerID {
			records = append(records, record)
		}
	}
	return records, nil
}

type memSnapshotStore struct {
	snaps   map[uuid.UUID]*maze.Snapshot
	puts    int
	deletes int
	sync.Mutex
}

func newMemSnapshotStore() *memSnapshotStore {
	return &memSnapshotStore{snaps: make(map[uuid.UUID]*maze.Snapshot)}
}

func (s *memSnapshotStore) Put(ctx context.Context, id uuid.UUID, snap *maze.Snapshot) error {
	s.Lock()
	defer s.Unlock()
	s.puts++
	s.snaps[id] = snap
	return nil
}

func (s *memSnapshotStore) Get(ctx context.Context, id uuid.UUID) (*maze.Snapshot, error) {
	s.Lock()
	defer s.Unlock()
	snap, ok := s.snaps[id]
	if !ok {
		return nil, errNotFound
	}
	return snap, nil
}

func (s *memSnapshotStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.Lock()
	defer s.Unlock()
	s.deletes++
	delete(s.snaps, id)
	return nil
}

type memUserRepo struct {
	users map[uuid.UUID]*dmn.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*dmn.User)}
}

func (r *memUserRepo) Save(user *dmn.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) ByID(id uuid.UUID) (*dmn.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, errNotFound
}

func (r *memUserRepo) ByUsername(username string) (*dmn.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errNotFound
}

type stubTokenizer struct {
	claims map[string]interface{}
	exp    time.Duration
}

func (t *stubTokenizer) Generate(claims map[string]interface{}, exp time.Duration) (string, error) {
	t.claims = claims
	t.exp = exp
	return "token", nil
}

func (t *stubTokenizer) Decode(string) (map[string]interface{}, error) {
	return t.claims, nil
}

// gatedSnapshotStore holds every Put until release is closed and signals
// entered when the first Put arrives.
type gatedSnapshotStore struct {
	*memSnapshotStore
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGatedSnapshotStore() *gatedSnapshotStore {
	return &gatedSnapshotStore{
		memSnapshotStore: newMemSnapshotStore(),
		entered:          make(chan struct{}),
		release:          make(chan struct{}),
	}
}

func (s *gatedSnapshotStore) Put(ctx context.Context, id uuid.UUID, snap *maze.Snapshot) error {
	s.once.Do(func() { close(s.entered) })
	<-s.release
	return s.memSnapshotStore.Put(ctx, id, snap)
}
