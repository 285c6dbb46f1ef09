package maze

import (
	"fmt"
	"math/rand"
	"time"
)

// StepResult tells the caller what a single generation step did.
type StepResult int

const (
	Advanced    StepResult = iota + 1 // A passage was carved to a new cell.
	Backtracked                       // The generator retreated to the previous cell.
	Completed                         // Every cell has been visited; nothing left to do.
)

func (r StepResult) String() string {
	switch r {
	case Advanced:
		return "advanced"
	case Backtracked:
		return "backtracked"
	case Completed:
		return "completed"
	}
	return fmt.Sprintf("StepResult(%d)", int(r))
}

// Generator carves a perfect maze into a Grid with a randomized depth-first
// backtracker. Each call to Advance performs exactly one step.
//
// The current cell and the backtracking stack are held as indices into the
// grid's cell arena. A Generator is not safe for concurrent use.
type Generator struct {
	grid       *Grid
	rng        *rand.Rand
	current    int
	stack      []int
	steps      int
	done       bool
	candidates []int
}

// NewGenerator prepares a generator that starts from the top-left cell of grid.
// The entry cell is marked visited since it is the first current cell.
// A nil rng is replaced by a time-seeded source.
func NewGenerator(grid *Grid, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	grid.cells[0].Visited = true
	return &Generator{
		grid:       grid,
		rng:        rng,
		current:    0,
		stack:      make([]int, 0, grid.Len()),
		candidates: make([]int, 0, len(Directions)),
	}
}

// Advance performs one step of generation.
//
// If the current cell has unvisited neighbors, one is chosen uniformly at
// random, the shared wall is removed and the generator moves onto it. Otherwise
// it pops the stack. Once the stack is empty and no neighbor remains the maze
// is complete, and further calls return Completed without touching the grid.
func (g *Generator) Advance() StepResult {
	if g.done {
		return Completed
	}

	if next, ok := g.pickNeighbor(); ok {
		current := &g.grid.cells[g.current]
		chosen := &g.grid.cells[next]

		chosen.Visited = true
		g.stack = append(g.stack, g.current)
		removeWalls(current, chosen)
		g.current = next
		g.steps++
		return Advanced
	}

	if n := len(g.stack); n > 0 {
		g.current = g.stack[n-1]
		g.stack = g.stack[:n-1]
		g.steps++
		return Backtracked
	}

	g.done = true
	return Completed
}

// pickNeighbor chooses a random unvisited in-bound neighbor of the current cell.
func (g *Generator) pickNeighbor() (int, bool) {
	g.candidates = g.candidates[:0]
	current := &g.grid.cells[g.current]
	for _, d := range Directions {
		n, ok := g.grid.Neighbor(current, d)
		if ok && !n.Visited {
			g.candidates = append(g.candidates, g.grid.Index(n.X, n.Y))
		}
	}

	if len(g.candidates) == 0 {
		return 0, false
	}
	return g.candidates[g.rng.Intn(len(g.candidates))], true
}

// Done reports whether generation has reached its terminal state.
func (g *Generator) Done() bool {
	return g.done
}

// Current returns the cell currently being processed.
func (g *Generator) Current() Cell {
	return g.grid.cells[g.current]
}

// CurrentIndex returns the arena index of the current cell.
func (g *Generator) CurrentIndex() int {
	return g.current
}

// Stack returns a copy of the backtracking path, oldest entry first.
func (g *Generator) Stack() []int {
	stack := make([]int, len(g.stack))
	copy(stack, g.stack)
	return stack
}

// Depth returns the current length of the backtracking stack.
func (g *Generator) Depth() int {
	return len(g.stack)
}

// Steps returns how many advance or backtrack steps have been taken.
func (g *Generator) Steps() int {
	return g.steps
}
