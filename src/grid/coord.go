package grid

import "fmt"

//Coord addresses a cell: X is the column, Y is the row, both zero-based from the top-left corner
type Coord struct {
	X int
	Y int
}

func (c Coord) Add(d Coord) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y}
}

//Compare orders coordinates row-major: by Y first, then by X
func (c Coord) Compare(o Coord) int {
	switch {
	case c.Y < o.Y:
		return -1
	case c.Y > o.Y:
		return 1
	case c.X < o.X:
		return -1
	case c.X > o.X:
		return 1
	}
	return 0
}

func (c Coord) Less(o Coord) bool {
	return c.Compare(o) < 0
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

//Direction is one of the eight unit moves a Cursor can make
type Direction int

const (
	Left Direction = iota
	UpLeft
	Up
	UpRight
	Right
	DownRight
	Down
	DownLeft
)

var (
	directionDeltas = [...]Coord{
		Left:      {X: -1, Y: 0},
		UpLeft:    {X: -1, Y: -1},
		Up:        {X: 0, Y: -1},
		UpRight:   {X: 1, Y: -1},
		Right:     {X: 1, Y: 0},
		DownRight: {X: 1, Y: 1},
		Down:      {X: 0, Y: 1},
		DownLeft:  {X: -1, Y: 1},
	}
	directionNames = [...]string{
		Left:      "left",
		UpLeft:    "up-left",
		Up:        "up",
		UpRight:   "up-right",
		Right:     "right",
		DownRight: "down-right",
		Down:      "down",
		DownLeft:  "down-left",
	}

	//Orthogonal is the 4-neighbourhood
	Orthogonal = []Direction{Left, Up, Right, Down}
	//Moore is the 8-neighbourhood, clockwise starting from the left
	Moore = []Direction{Left, UpLeft, Up, UpRight, Right, DownRight, Down, DownLeft}
)

//Delta returns the coordinate offset of a single move in direction d
func (d Direction) Delta() Coord {
	if d < Left || d > DownLeft {
		return Coord{}
	}
	return directionDeltas[d]
}

//Opposite returns the direction which undoes d
func (d Direction) Opposite() Direction {
	return (d + 4) % 8
}

func (d Direction) String() string {
	if d < Left || d > DownLeft {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}
