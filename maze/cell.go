package maze

import "fmt"

// Direction names one side of a cell.
type Direction int

const (
	Top Direction = iota
	Right
	Bottom
	Left
)

// Directions lists every side in the order neighbors are examined.
var Directions = [...]Direction{Top, Right, Bottom, Left}

// Opposite returns the side facing d on the adjacent cell.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Delta returns the coordinate offset of the neighbor lying in direction d.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Top:
		return 0, -1
	case Right:
		return 1, 0
	case Bottom:
		return 0, 1
	case Left:
		return -1, 0
	}
	return 0, 0
}

func (d Direction) String() string {
	switch d {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Walls holds one flag per side, indexed by Direction. True means the wall is present.
type Walls [4]bool

// Cell represents a single position in a maze grid.
type Cell struct {
	X       int   // Column of the cell
	Y       int   // Row of the cell
	Walls   Walls // Walls on each side of the cell
	Visited bool  // Visited reports whether the generator has reached the cell
}

// HasWall reports whether the wall on side d is still standing.
func (c *Cell) HasWall(d Direction) bool {
	return c.Walls[d]
}

// IsClosed reports whether all four walls are present.
func (c *Cell) IsClosed() bool {
	return c.Walls == Walls{true, true, true, true}
}

func newCell(x, y int) Cell {
	return Cell{
		X:     x,
		Y:     y,
		Walls: Walls{true, true, true, true},
	}
}
