/*
Package maze generates perfect mazes over a rectangular grid of cells.

A Grid owns the cells; a Generator carves passages into it one step at a time
with a randomized depth-first backtracker, so callers can drive generation at
their own pace and inspect the grid between steps. A Session bundles the two
together with the seed that produced them.
*/
package maze

import (
	"errors"
	"strings"
)

// MaxCells bounds the number of cells a single grid may hold.
const MaxCells = 1 << 22

var (
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
)

// Grid is a fixed cols x rows collection of cells stored row-major,
// so the cell at (x, y) lives at index x + y*cols.
type Grid struct {
	cols  int
	rows  int
	cells []Cell
}

// New allocates a grid whose cells all have four walls and are unvisited.
func New(cols, rows int) (*Grid, error) {
	if cols <= 0 || rows <= 0 || cols > MaxCells/rows {
		return nil, ErrInvalidDimensions
	}

	cells := make([]Cell, 0, cols*rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			cells = append(cells, newCell(x, y))
		}
	}

	return &Grid{
		cols:  cols,
		rows:  rows,
		cells: cells,
	}, nil
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	return g.cols
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Len returns the total number of cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// InBound reports whether (x, y) names a cell of the grid.
func (g *Grid) InBound(x, y int) bool {
	return x >= 0 && x < g.cols && y >= 0 && y < g.rows
}

// Index converts in-bound coordinates to a position in the cell arena.
func (g *Grid) Index(x, y int) int {
	return x + y*g.cols
}

// CellAt returns the cell at (x, y). The boolean is false, and the cell nil,
// when the coordinates fall outside the grid.
func (g *Grid) CellAt(x, y int) (*Cell, bool) {
	if !g.InBound(x, y) {
		return nil, false
	}
	return &g.cells[g.Index(x, y)], true
}

// Neighbor returns the cell adjacent to c on side d, if there is one.
func (g *Grid) Neighbor(c *Cell, d Direction) (*Cell, bool) {
	dx, dy := d.Delta()
	return g.CellAt(c.X+dx, c.Y+dy)
}

// ForEachCell calls fn with a copy of every cell in enumeration order.
func (g *Grid) ForEachCell(fn func(c Cell)) {
	for _, c := range g.cells {
		fn(c)
	}
}

// AllVisited reports whether every cell has been visited.
func (g *Grid) AllVisited() bool {
	for i := range g.cells {
		if !g.cells[i].Visited {
			return false
		}
	}
	return true
}

// PassageCount returns the number of carved passages, counting each shared
// wall once.
func (g *Grid) PassageCount() int {
	count := 0
	for i := range g.cells {
		c := &g.cells[i]
		if c.X+1 < g.cols && !c.Walls[Right] {
			count++
		}
		if c.Y+1 < g.rows && !c.Walls[Bottom] {
			count++
		}
	}
	return count
}

// removeWalls opens the wall shared by two axis-adjacent cells, on both sides.
func removeWalls(current, next *Cell) {
	dx := current.X - next.X
	dy := current.Y - next.Y

	switch {
	case dx == 1:
		current.Walls[Left] = false
		next.Walls[Right] = false
	case dx == -1:
		current.Walls[Right] = false
		next.Walls[Left] = false
	case dy == 1:
		current.Walls[Top] = false
		next.Walls[Bottom] = false
	case dy == -1:
		current.Walls[Bottom] = false
		next.Walls[Top] = false
	}
}

// String provides a textual representation of the grid.
func (g *Grid) String() string {
	return g.render(-1, nil)
}

// render draws the grid, marking the cell at index mark (if any) with '@'
// and the cells at the trail indices with '*'.
func (g *Grid) render(mark int, trail []int) string {
	onTrail := make(map[int]bool, len(trail))
	for _, idx := range trail {
		onTrail[idx] = true
	}

	var sb strings.Builder

	// Top boundary
	sb.WriteString("+")
	for x := 0; x < g.cols; x++ {
		if g.cells[x].Walls[Top] {
			sb.WriteString("---+")
		} else {
			sb.WriteString("   +")
		}
	}
	sb.WriteString("\n")

	for y := 0; y < g.rows; y++ {
		row := g.cells[y*g.cols : (y+1)*g.cols]

		// Cell row
		if row[0].Walls[Left] {
			sb.WriteString("|")
		} else {
			sb.WriteString(" ")
		}
		for x, cell := range row {
			switch {
			case g.Index(x, y) == mark:
				sb.WriteString(" @ ")
			case onTrail[g.Index(x, y)]:
				sb.WriteString(" * ")
			case cell.Visited:
				sb.WriteString("   ")
			default:
				sb.WriteString(" . ")
			}
			if cell.Walls[Right] {
				sb.WriteString("|")
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")

		// Wall row
		sb.WriteString("+")
		for _, cell := range row {
			if cell.Walls[Bottom] {
				sb.WriteString("---+")
			} else {
				sb.WriteString("   +")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
