package grid

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

//ErrJagged is reported when the rows of the input text have different lengths
var ErrJagged = errors.New("rows have different lengths")

//ParseError identifies the input position which could not be turned into a grid
type ParseError struct {
	Line   int
	Column int
	Char   rune
	Err    error
}

func (e *ParseError) Error() string {
	if errors.Is(e.Err, ErrJagged) {
		return fmt.Sprintf("grid: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("grid: line %d, column %d: cannot convert %q: %v", e.Line, e.Column, e.Char, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

//Parse builds a grid from text, one row per line and one cell per character
//blank lines separate rows and never add empty ones, so text without data gives an empty grid
//any character conv rejects fails the whole parse
func Parse[V Value](text string, conv func(r rune) (V, error)) (*Grid[V], error) {
	var rows [][]V
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		row := make([]V, 0, len(line))
		for _, r := range line {
			v, err := conv(r)
			if err != nil {
				return nil, &ParseError{Line: i + 1, Column: len(row) + 1, Char: r, Err: err}
			}
			row = append(row, v)
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, &ParseError{
				Line:   i + 1,
				Column: len(row),
				Err:    fmt.Errorf("%w: got %d cells, want %d", ErrJagged, len(row), len(rows[0])),
			}
		}
		rows = append(rows, row)
	}
	return fromRows(rows), nil
}

//ParseDigits parses a grid of single decimal digits
func ParseDigits[T constraints.Integer](text string) (*Grid[T], error) {
	return Parse(text, Digit[T])
}
