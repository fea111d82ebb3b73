package grid

import "fmt"

/*
	Cursor is a position-bound view onto a Grid
	it never owns the grid and is only created by Grid.CursorAt, so its position is always inside the grid
	moving off an edge yields no cursor, there is no wraparound
*/
type Cursor[V Value] struct {
	grid *Grid[V]
	pos  Coord
}

func (c Cursor[V]) Position() Coord {
	return c.pos
}

//Value returns the value under the cursor
//it panics if the grid no longer holds the cursor position: that is a broken invariant, not an absence
func (c Cursor[V]) Value() V {
	v, ok := c.grid.Get(c.pos)
	if !ok {
		panic(fmt.Sprintf("grid: cursor at %v is outside the grid", c.pos))
	}
	return v
}

//SetValue writes v through to the grid at the cursor position
func (c Cursor[V]) SetValue(v V) bool {
	return c.grid.Set(c.pos, v)
}

//Move returns the cursor one step away in direction d
func (c Cursor[V]) Move(d Direction) (Cursor[V], bool) {
	return c.grid.CursorAt(c.pos.Add(d.Delta()))
}

func (c Cursor[V]) Left() (Cursor[V], bool)      { return c.Move(Left) }
func (c Cursor[V]) Right() (Cursor[V], bool)     { return c.Move(Right) }
func (c Cursor[V]) Up() (Cursor[V], bool)        { return c.Move(Up) }
func (c Cursor[V]) Down() (Cursor[V], bool)      { return c.Move(Down) }
func (c Cursor[V]) UpLeft() (Cursor[V], bool)    { return c.Move(UpLeft) }
func (c Cursor[V]) UpRight() (Cursor[V], bool)   { return c.Move(UpRight) }
func (c Cursor[V]) DownLeft() (Cursor[V], bool)  { return c.Move(DownLeft) }
func (c Cursor[V]) DownRight() (Cursor[V], bool) { return c.Move(DownRight) }

//Neighbors returns the in-bounds cursors around c, in the order of dirs
func (c Cursor[V]) Neighbors(dirs []Direction) []Cursor[V] {
	cursors := make([]Cursor[V], 0, len(dirs))
	for _, d := range dirs {
		if n, ok := c.Move(d); ok {
			cursors = append(cursors, n)
		}
	}
	return cursors
}
