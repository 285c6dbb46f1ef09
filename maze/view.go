package maze

// WallsView is the exported form of a cell's walls.
type WallsView struct {
	Top    bool `json:"top" bson:"top"`
	Right  bool `json:"right" bson:"right"`
	Bottom bool `json:"bottom" bson:"bottom"`
	Left   bool `json:"left" bson:"left"`
}

// CellView is a read-only copy of one cell, shaped for renderers and exporters.
type CellView struct {
	X       int       `json:"x" bson:"x"`
	Y       int       `json:"y" bson:"y"`
	Visited bool      `json:"visited" bson:"visited"`
	Walls   WallsView `json:"walls" bson:"walls"`
}

// Position is a cell coordinate pair.
type Position struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

// Snapshot captures the full state of a session between two steps.
type Snapshot struct {
	Cols    int        `json:"cols"`
	Rows    int        `json:"rows"`
	Seed    int64      `json:"seed"`
	Steps   int        `json:"steps"`
	Done    bool       `json:"done"`
	Current Position   `json:"current"`
	Stack   []Position `json:"stack"`
	Cells   []CellView `json:"cells"`
}

// View returns a read-only copy of c.
func (c Cell) View() CellView {
	return CellView{
		X:       c.X,
		Y:       c.Y,
		Visited: c.Visited,
		Walls: WallsView{
			Top:    c.Walls[Top],
			Right:  c.Walls[Right],
			Bottom: c.Walls[Bottom],
			Left:   c.Walls[Left],
		},
	}
}

// Views copies every cell in enumeration order.
func (g *Grid) Views() []CellView {
	views := make([]CellView, 0, len(g.cells))
	for _, c := range g.cells {
		views = append(views, c.View())
	}
	return views
}

func (g *Grid) position(index int) Position {
	return Position{X: index % g.cols, Y: index / g.cols}
}

// Snapshot copies the session's grid and generator state.
func (s *Session) Snapshot() Snapshot {
	stack := make([]Position, 0, s.gen.Depth())
	for _, idx := range s.gen.stack {
		stack = append(stack, s.grid.position(idx))
	}

	return Snapshot{
		Cols:    s.grid.Cols(),
		Rows:    s.grid.Rows(),
		Seed:    s.seed,
		Steps:   s.gen.Steps(),
		Done:    s.gen.Done(),
		Current: s.grid.position(s.gen.CurrentIndex()),
		Stack:   stack,
		Cells:   s.grid.Views(),
	}
}
