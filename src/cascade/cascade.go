package cascade

import (
	"fmt"

	"flashsim/src/grid"
)

/*
	Sim runs the flash cascade over a grid of energy levels
	every step has three phases:
	  energize - every cell gains one energy, cells going above the threshold flash
	  cascade  - every flash charges its 8 neighbours, which may flash in turn, until no new flash happens
	  settle   - flashed cells drop to zero energy and the step's flash count is returned
	the flashed flags grid bounds the cascade: a cell flashes at most once per step
*/
type Sim struct {
	energy   *grid.Grid[Energy]
	flashed  *grid.Grid[bool]
	frontier frontier
	strategy Strategy

	steps int
	last  int
	total int
}

//New creates a simulation which owns the energy grid, the caller must not modify it afterwards
func New(energy *grid.Grid[Energy]) *Sim {
	return NewWithStrategy(energy, DefaultStrategy)
}

//NewWithStrategy creates a simulation processing flashes in the order given by the strategy
func NewWithStrategy(energy *grid.Grid[Energy], strategy Strategy) *Sim {
	return &Sim{
		energy:   energy,
		flashed:  grid.New(energy.Width(), energy.Height(), false),
		frontier: strategy.newFrontier(),
		strategy: strategy,
	}
}

//Parse creates a simulation from rows of decimal digits
func Parse(text string) (*Sim, error) {
	g, err := ParseGrid(text)
	if err != nil {
		return nil, fmt.Errorf("cascade: %w", err)
	}
	return New(g), nil
}

//Simulate runs steps on a copy of g and returns the number of flashes
func Simulate(g *grid.Grid[Energy], steps int) int {
	return New(g.Clone()).Simulate(steps)
}

//StepsUntilSynchronized runs a copy of g until every cell flashes in the same step and returns that step
func StepsUntilSynchronized(g *grid.Grid[Energy]) int {
	return New(g.Clone()).StepsUntilSynchronized()
}

//Simulate runs n steps and returns the number of flashes since the simulation was created
func (s *Sim) Simulate(n int) int {
	for i := 0; i < n; i++ {
		s.Step()
	}
	return s.total
}

//StepsUntilSynchronized steps until all cells flash at once and returns the 1-based index of that step
func (s *Sim) StepsUntilSynchronized() int {
	for {
		if s.Step() == s.energy.Len() {
			return s.steps
		}
	}
}

//Step simulates a single time step and returns the number of cells which flashed
func (s *Sim) Step() int {
	s.Energize()
	s.Cascade()
	s.last = s.Settle()
	s.steps++
	s.total += s.last
	return s.last
}

//Energize raises every cell by one, reading from a snapshot taken before this step changed anything
//Step runs it together with Cascade and Settle, calling the phases one by one allows watching a step in progress
func (s *Sim) Energize() {
	for pos := range s.energy.All() {
		c, _ := s.energy.CursorAt(pos)
		s.charge(c)
	}
}

//Cascade drains the frontier, every flashing cell charges its neighbours
func (s *Sim) Cascade() {
	for {
		pos, ok := s.frontier.Pop()
		if !ok {
			return
		}
		c, ok := s.energy.CursorAt(pos)
		if !ok {
			panic(fmt.Sprintf("cascade: flashing cell %v is outside the grid", pos))
		}
		for _, n := range c.Neighbors(grid.Moore) {
			s.charge(n)
		}
	}
}

//charge adds one energy under the cursor and queues the cell if this made it flash for the first time this step
func (s *Sim) charge(c grid.Cursor[Energy]) {
	e := c.Value().Add(1)
	c.SetValue(e)
	if !e.Charged() {
		return
	}
	pos := c.Position()
	if flashed, _ := s.flashed.Get(pos); flashed {
		return
	}
	s.flashed.Set(pos, true)
	s.frontier.Push(pos)
}

//Settle resets every flashed cell to zero energy, clears its flag and returns how many there were
//calling it again without stepping changes nothing
func (s *Sim) Settle() int {
	count := 0
	s.flashed.Walk(func(x int, y int, flashed bool) {
		if !flashed {
			return
		}
		pos := grid.Coord{X: x, Y: y}
		s.energy.Set(pos, 0)
		s.flashed.Set(pos, false)
		count++
	})
	return count
}

//Steps returns the number of simulated steps
func (s *Sim) Steps() int {
	return s.steps
}

//LastFlashes returns the flash count of the latest step
func (s *Sim) LastFlashes() int {
	return s.last
}

//TotalFlashes returns the flash count of all steps
func (s *Sim) TotalFlashes() int {
	return s.total
}

//Synchronized reports whether every cell flashed in the latest step
func (s *Sim) Synchronized() bool {
	return s.steps > 0 && s.last == s.energy.Len()
}

func (s *Sim) Strategy() Strategy {
	return s.strategy
}

//Grid returns a copy of the current energy levels
func (s *Sim) Grid() *grid.Grid[Energy] {
	return s.energy.Clone()
}

func (s *Sim) Size() grid.Coord {
	return s.energy.Size()
}

//At returns the energy of one cell
func (s *Sim) At(c grid.Coord) (Energy, bool) {
	return s.energy.Get(c)
}

//Set overrides the energy of one cell between steps
func (s *Sim) Set(c grid.Coord, e Energy) bool {
	return s.energy.Set(c, e)
}

//Flashed reports whether the cell has flashed in the step being simulated, always false after Settle
func (s *Sim) Flashed(c grid.Coord) bool {
	flashed, _ := s.flashed.Get(c)
	return flashed
}
