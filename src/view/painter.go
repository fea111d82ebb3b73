package view

import (
	"strings"

	"github.com/logrusorgru/aurora"

	"flashsim/src/cascade"
	"flashsim/src/grid"
)

//EnergyPainter renders energy levels with one coloured character per cell
//only the 8 basic colours and bold are used, gocui does not parse the bright ones in normal output mode
type EnergyPainter struct {
	au aurora.Aurora
}

func NewEnergyPainter(colors bool) *EnergyPainter {
	return &EnergyPainter{au: aurora.NewAurora(colors)}
}

//Cell renders a single energy level
func (p *EnergyPainter) Cell(e cascade.Energy) string {
	switch {
	case e == 0:
		//flashed in the latest step
		return p.au.Yellow(e).Bold().String()
	case e >= cascade.Threshold:
		return p.au.Red(e).Bold().String()
	case e >= 7:
		return p.au.White(e).String()
	case e >= 4:
		return p.au.Cyan(e).String()
	}
	return p.au.Blue(e).String()
}

//Render renders the whole grid, one row per line
func (p *EnergyPainter) Render(g *grid.Grid[cascade.Energy]) string {
	var b strings.Builder
	for _, row := range g.Rows() {
		for _, e := range row {
			b.WriteString(p.Cell(e))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
