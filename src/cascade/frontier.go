package cascade

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/queue"
	"github.com/zyedidia/generic/stack"

	"flashsim/src/grid"
)

//Strategy selects the order in which flashing cells are processed during a cascade
//the flash counts do not depend on it
type Strategy string

const (
	LIFO Strategy = "lifo"
	FIFO Strategy = "fifo"

	DefaultStrategy = LIFO
)

var ErrUnknownStrategy = errors.New("unknown cascade strategy")

//Strategies lists the known strategies
var Strategies = []Strategy{LIFO, FIFO}

//ParseStrategy resolves a strategy name, an empty name gives the default strategy
func ParseStrategy(name string) (Strategy, error) {
	if name == "" {
		return DefaultStrategy, nil
	}
	for _, s := range Strategies {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownStrategy, name)
}

//frontier holds cells which flashed but did not charge their neighbours yet
type frontier interface {
	Push(c grid.Coord)
	Pop() (grid.Coord, bool)
}

func (s Strategy) newFrontier() frontier {
	if s == FIFO {
		return &queueFrontier{q: queue.New[grid.Coord]()}
	}
	return &stackFrontier{s: stack.New[grid.Coord]()}
}

type stackFrontier struct {
	s *stack.Stack[grid.Coord]
}

func (f *stackFrontier) Push(c grid.Coord) {
	f.s.Push(c)
}

func (f *stackFrontier) Pop() (grid.Coord, bool) {
	if f.s.Size() == 0 {
		return grid.Coord{}, false
	}
	return f.s.Pop(), true
}

type queueFrontier struct {
	q *queue.Queue[grid.Coord]
}

func (f *queueFrontier) Push(c grid.Coord) {
	f.q.Enqueue(c)
}

func (f *queueFrontier) Pop() (grid.Coord, bool) {
	if f.q.Empty() {
		return grid.Coord{}, false
	}
	return f.q.Dequeue(), true
}
