package maze

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(v int64) *int64 {
	return &v
}

// assertSpanningTree checks that the carved passages connect every cell and
// that there are exactly Len()-1 of them.
func assertSpanningTree(t *testing.T, g *Grid) {
	t.Helper()
	require.Equal(t, g.Len()-1, g.PassageCount())

	seen := make([]bool, g.Len())
	seen[0] = true
	queue := []int{0}
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		c := &g.cells[idx]
		for _, d := range Directions {
			if c.HasWall(d) {
				continue
			}
			n, ok := g.Neighbor(c, d)
			require.True(t, ok, "open wall %s on the border at (%d,%d)", d, c.X, c.Y)
			ni := g.Index(n.X, n.Y)
			if !seen[ni] {
				seen[ni] = true
				queue = append(queue, ni)
			}
		}
	}

	for i, ok := range seen {
		assert.True(t, ok, "cell %d unreachable", i)
	}
}

func assertWallSymmetry(t *testing.T, g *Grid) {
	t.Helper()
	for i := range g.cells {
		c := &g.cells[i]
		for _, d := range Directions {
			n, ok := g.Neighbor(c, d)
			if !ok {
				assert.True(t, c.HasWall(d), "border wall %s removed at (%d,%d)", d, c.X, c.Y)
				continue
			}
			assert.Equal(t, c.HasWall(d), n.HasWall(d.Opposite()),
				"asymmetric wall between (%d,%d) and (%d,%d)", c.X, c.Y, n.X, n.Y)
		}
	}
}

func TestGenerator_SpanningTree(t *testing.T) {
	sizes := [][2]int{{1, 1}, {2, 1}, {1, 2}, {1, 7}, {9, 1}, {2, 2}, {5, 5}, {24, 18}, {13, 31}}
	for _, size := range sizes {
		for s := int64(1); s <= 5; s++ {
			sess, err := NewSession(size[0], size[1], seed(s))
			require.NoError(t, err)

			sess.RunToCompletion()

			assert.True(t, sess.Done())
			assert.True(t, sess.Grid().AllVisited())
			assert.Empty(t, sess.Generator().Stack())
			assertSpanningTree(t, sess.Grid())
			assertWallSymmetry(t, sess.Grid())
		}
	}
}

func TestGenerator_StepInvariants(t *testing.T) {
	sess, err := NewSession(8, 6, seed(7))
	require.NoError(t, err)
	g := sess.Grid()
	gen := sess.Generator()

	visited := make([]bool, g.Len())
	visited[0] = true
	advances := 0

	for {
		before := gen.Depth()
		result := sess.Advance()

		assert.LessOrEqual(t, gen.Depth()+1, g.Len())

		switch result {
		case Advanced:
			advances++
			assert.Equal(t, before+1, gen.Depth())
			idx := gen.CurrentIndex()
			assert.False(t, visited[idx], "cell %d visited twice", idx)
			visited[idx] = true
		case Backtracked:
			assert.Equal(t, before-1, gen.Depth())
		case Completed:
			assert.Zero(t, gen.Depth())
		}

		for i := range g.cells {
			assert.Equal(t, visited[i], g.cells[i].Visited, "cell %d", i)
		}
		assertWallSymmetry(t, g)

		if result == Completed {
			break
		}
	}

	assert.Equal(t, g.Len()-1, advances)
	// Every advance is eventually undone by a backtrack.
	assert.Equal(t, 2*advances, gen.Steps())
}

func TestGenerator_IdempotentTerminal(t *testing.T) {
	sess, err := NewSession(4, 4, seed(3))
	require.NoError(t, err)
	sess.RunToCompletion()

	before := sess.Snapshot()
	for i := 0; i < 5; i++ {
		assert.Equal(t, Completed, sess.Advance())
	}
	assert.Equal(t, before, sess.Snapshot())
}

func TestGenerator_Determinism(t *testing.T) {
	a, err := NewSession(15, 11, seed(99))
	require.NoError(t, err)
	b, err := NewSession(15, 11, seed(99))
	require.NoError(t, err)

	a.RunToCompletion()
	b.RunToCompletion()

	assert.Equal(t, a.Grid().Views(), b.Grid().Views())
	assert.Equal(t, a.Grid().String(), b.Grid().String())
}

func TestGenerator_TwoByOne(t *testing.T) {
	sess, err := NewSession(2, 1, seed(42))
	require.NoError(t, err)

	assert.Equal(t, Advanced, sess.Advance())
	assert.Equal(t, Backtracked, sess.Advance())
	assert.Equal(t, Completed, sess.Advance())

	left, _ := sess.Grid().CellAt(0, 0)
	right, _ := sess.Grid().CellAt(1, 0)
	assert.False(t, left.HasWall(Right))
	assert.False(t, right.HasWall(Left))
	assert.True(t, left.HasWall(Top) && left.HasWall(Bottom) && left.HasWall(Left))
	assert.True(t, right.HasWall(Top) && right.HasWall(Bottom) && right.HasWall(Right))
	assert.True(t, left.Visited)
	assert.True(t, right.Visited)
	assert.Empty(t, sess.Generator().Stack())
}

func TestGenerator_SingleCell(t *testing.T) {
	sess, err := NewSession(1, 1, nil)
	require.NoError(t, err)

	assert.Equal(t, Completed, sess.Advance())

	c, ok := sess.Grid().CellAt(0, 0)
	require.True(t, ok)
	assert.True(t, c.IsClosed())
	assert.True(t, c.Visited)
	assert.Zero(t, sess.Generator().Steps())
}

func TestGenerator_BacktrackKeepsWalls(t *testing.T) {
	g, err := New(3, 1)
	require.NoError(t, err)
	gen := NewGenerator(g, rand.New(rand.NewSource(1)))

	// A 3x1 corridor always advances twice before the first backtrack.
	require.Equal(t, Advanced, gen.Advance())
	require.Equal(t, Advanced, gen.Advance())
	walls := g.Views()

	require.Equal(t, Backtracked, gen.Advance())
	assert.Equal(t, walls, g.Views())
	assert.Equal(t, 1, gen.CurrentIndex())
}

func TestSession_Snapshot(t *testing.T) {
	sess, err := NewSession(3, 2, seed(5))
	require.NoError(t, err)
	sess.Advance()
	sess.Advance()

	snap := sess.Snapshot()
	assert.Equal(t, 3, snap.Cols)
	assert.Equal(t, 2, snap.Rows)
	assert.Equal(t, int64(5), snap.Seed)
	assert.Equal(t, 2, snap.Steps)
	assert.False(t, snap.Done)
	assert.Len(t, snap.Stack, 2)
	assert.Equal(t, Position{}, snap.Stack[0])
	assert.Len(t, snap.Cells, 6)

	cur := sess.Generator().Current()
	assert.Equal(t, Position{X: cur.X, Y: cur.Y}, snap.Current)
	assert.Contains(t, sess.String(), "@")
}

func TestSession_SeedIsRecorded(t *testing.T) {
	a, err := NewSession(6, 6, nil)
	require.NoError(t, err)
	a.RunToCompletion()

	b, err := NewSession(6, 6, seed(a.Seed()))
	require.NoError(t, err)
	b.RunToCompletion()

	assert.Equal(t, a.Grid().Views(), b.Grid().Views())
}

func TestGenerator_NilRandDefaults(t *testing.T) {
	g, err := New(5, 4)
	require.NoError(t, err)
	gen := NewGenerator(g, nil)

	for gen.Advance() != Completed {
	}
	assertSpanningTree(t, g)
}

func TestSession_StringMarksTrail(t *testing.T) {
	sess, err := NewSession(3, 1, seed(1))
	require.NoError(t, err)

	require.Equal(t, Advanced, sess.Advance())
	require.Equal(t, Advanced, sess.Advance())
	expected := "" +
		"+---+---+---+\n" +
		"| *   *   @ |\n" +
		"+---+---+---+\n"
	assert.Equal(t, expected, sess.String())

	require.Equal(t, Backtracked, sess.Advance())
	expected = "" +
		"+---+---+---+\n" +
		"| *   @     |\n" +
		"+---+---+---+\n"
	assert.Equal(t, expected, sess.String())

	sess.RunToCompletion()
	assert.NotContains(t, sess.String(), "*")
	assert.NotContains(t, sess.String(), "@")
}
