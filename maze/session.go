package maze

import (
	"math/rand"
	"time"
)

// Session is one maze being generated: the grid, the generator carving it and
// the seed both were built from. Starting over means building a new Session.
type Session struct {
	grid *Grid
	gen  *Generator
	seed int64
}

// NewSession builds a fresh grid of cols x rows and a generator seeded with
// seed. When seed is nil a time-based seed is chosen and kept, so the result
// can still be reproduced through Seed.
func NewSession(cols, rows int, seed *int64) (*Session, error) {
	grid, err := New(cols, rows)
	if err != nil {
		return nil, err
	}

	s := time.Now().UnixNano()
	if seed != nil {
		s = *seed
	}

	return &Session{
		grid: grid,
		gen:  NewGenerator(grid, rand.New(rand.NewSource(s))),
		seed: s,
	}, nil
}

// Advance performs one generation step.
func (s *Session) Advance() StepResult {
	return s.gen.Advance()
}

// RunToCompletion steps until the maze is complete and returns the number of
// steps it took from the session's state at the time of the call.
func (s *Session) RunToCompletion() int {
	n := 0
	for s.gen.Advance() != Completed {
		n++
	}
	return n
}

// Done reports whether the maze is complete.
func (s *Session) Done() bool {
	return s.gen.Done()
}

// Grid exposes the session's grid.
func (s *Session) Grid() *Grid {
	return s.grid
}

// Generator exposes the session's generator.
func (s *Session) Generator() *Generator {
	return s.gen
}

// Seed returns the seed the random source was built from.
func (s *Session) Seed() int64 {
	return s.seed
}

// String renders the grid with the current cell and the backtracking trail
// marked while generation runs.
func (s *Session) String() string {
	if s.gen.Done() {
		return s.grid.render(-1, nil)
	}
	return s.grid.render(s.gen.current, s.gen.stack)
}
