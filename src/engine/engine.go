package engine

import (
	"flashsim/src/cascade"
	"flashsim/src/grid"
)

//Engine drives a cascade simulation for the views and the command line
type Engine interface {
	Status() Status
	Options() Options
	Grid() *grid.Grid[cascade.Energy]
	StateCh() chan Status
	AddTemplate(tmpl Template)
	SettleTemplate(name string)
	SettleWithRandomData()
	Settle(g *grid.Grid[cascade.Energy])
	ChargeCell(x int, y int)
	RegisterViewer(v Viewer)
	Run()
	Stop()
	Step()
	Clear()
	Close()
}
