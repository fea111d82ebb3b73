package cascade

import (
	"strconv"

	"flashsim/src/grid"
)

//Threshold is the energy a cell has to exceed to flash
const Threshold Energy = 9

//Energy is the charge level of one cell
type Energy uint8

func (e Energy) Add(o Energy) Energy {
	return e + o
}

func (e Energy) Less(o Energy) bool {
	return e < o
}

func (e Energy) Float() float64 {
	return float64(e)
}

func (e Energy) String() string {
	return strconv.Itoa(int(e))
}

//Charged reports whether e is above the flash threshold
func (e Energy) Charged() bool {
	return Threshold.Less(e)
}

//ParseGrid parses rows of decimal digits into an energy grid
func ParseGrid(text string) (*grid.Grid[Energy], error) {
	return grid.ParseDigits[Energy](text)
}
