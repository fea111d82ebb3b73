package grid

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

//Value is the capability a type needs to be stored in a grid cell.
//Cells are copied by value, compared with ==, start from the zero value and are printed with %v.
type Value interface {
	comparable
}

//Numeric is implemented by cell types which take part in arithmetic simulations
type Numeric[V any] interface {
	Value
	Add(V) V
	Less(V) bool
	Float() float64
}

var ErrNotDigit = errors.New("not a decimal digit")

//Digit converts a single decimal digit character into an integer cell value
func Digit[T constraints.Integer](r rune) (T, error) {
	if r < '0' || r > '9' {
		return 0, fmt.Errorf("%w: %q", ErrNotDigit, r)
	}
	return T(r - '0'), nil
}

//RowSums returns the sum of every row, top to bottom
func RowSums[V Numeric[V]](g *Grid[V]) []float64 {
	sums := make([]float64, g.Height())
	g.Walk(func(x int, y int, v V) {
		sums[y] += v.Float()
	})
	return sums
}
