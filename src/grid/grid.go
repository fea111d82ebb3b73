package grid

import (
	"fmt"
	"iter"
	"strings"
)

/*
	Grid is a fixed-size rectangular table of cells
	The rows share one backing slice, so the grid can never become jagged.
	Width and Height are derived from the rows; there is no resizing after construction.
*/
type Grid[V Value] struct {
	width  int
	height int
	rows   [][]V
}

//New creates a width x height grid with every cell holding fill
func New[V Value](width int, height int, fill V) *Grid[V] {
	g := &Grid[V]{}
	g.allocate(width, height)
	g.Fill(fill)
	return g
}

//fromRows builds a grid owning the given rows, all rows must have the same length
func fromRows[V Value](rows [][]V) *Grid[V] {
	g := &Grid[V]{}
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}
	g.allocate(width, len(rows))
	for y, row := range rows {
		copy(g.rows[y], row)
	}
	return g
}

//allocate creates the row slices on top of a single backing array
func (g *Grid[V]) allocate(width int, height int) {
	if width <= 0 || height <= 0 {
		width, height = 0, 0
	}
	g.width = width
	g.height = height
	g.rows = make([][]V, height)
	b := make([]V, width*height)
	for i := range g.rows {
		start := width * i
		g.rows[i] = b[start : start+width : start+width]
	}
}

func (g *Grid[V]) Width() int {
	return g.width
}

func (g *Grid[V]) Height() int {
	return g.height
}

//Size returns the grid dimensions as a coordinate (width, height)
func (g *Grid[V]) Size() Coord {
	return Coord{X: g.width, Y: g.height}
}

//Len returns the number of cells
func (g *Grid[V]) Len() int {
	return g.width * g.height
}

//Contains reports whether c lies inside [0,width) x [0,height)
func (g *Grid[V]) Contains(c Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.width && c.Y < g.height
}

//Get returns the value at c, ok is false when c is outside the grid
func (g *Grid[V]) Get(c Coord) (v V, ok bool) {
	if !g.Contains(c) {
		return v, false
	}
	return g.rows[c.Y][c.X], true
}

//Set writes v at c, nothing is changed and false is returned when c is outside the grid
func (g *Grid[V]) Set(c Coord, v V) bool {
	if !g.Contains(c) {
		return false
	}
	g.rows[c.Y][c.X] = v
	return true
}

//CursorAt returns a cursor positioned at c
//this is the only place where cursor positions are validated
func (g *Grid[V]) CursorAt(c Coord) (Cursor[V], bool) {
	if !g.Contains(c) {
		return Cursor[V]{}, false
	}
	return Cursor[V]{grid: g, pos: c}, true
}

//Fill sets every cell to v
func (g *Grid[V]) Fill(v V) {
	for y := range g.rows {
		for x := range g.rows[y] {
			g.rows[y][x] = v
		}
	}
}

//Clone returns a deep copy of the grid
func (g *Grid[V]) Clone() *Grid[V] {
	return fromRows(g.rows)
}

//Rows returns a copy of the cells, one slice per row
func (g *Grid[V]) Rows() [][]V {
	return g.Clone().rows
}

//Walk calls cb for each cell in row-major order
//cb sees the live cells, so writes made to cells not yet visited are observed
func (g *Grid[V]) Walk(cb func(x int, y int, v V)) {
	for y := range g.rows {
		for x := range g.rows[y] {
			cb(x, y, g.rows[y][x])
		}
	}
}

//All returns a row-major sequence of (coordinate, value) pairs
//each range over the sequence reads from a snapshot taken when that range starts,
//so the caller may mutate the grid while iterating
func (g *Grid[V]) All() iter.Seq2[Coord, V] {
	return func(yield func(Coord, V) bool) {
		snapshot := g.Clone()
		for y, row := range snapshot.rows {
			for x, v := range row {
				if !yield(Coord{X: x, Y: y}, v) {
					return
				}
			}
		}
	}
}

//Count returns the number of cells for which match is true
func (g *Grid[V]) Count(match func(v V) bool) int {
	n := 0
	g.Walk(func(x int, y int, v V) {
		if match(v) {
			n++
		}
	})
	return n
}

//String renders one row per line with every cell printed by %v
func (g *Grid[V]) String() string {
	var b strings.Builder
	for _, row := range g.rows {
		for _, v := range row {
			fmt.Fprint(&b, v)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
