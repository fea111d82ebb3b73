//Package basins enumerates the low points of a heightmap and the regions draining into them
package basins

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/zyedidia/generic/mapset"

	"flashsim/src/grid"
)

//Wall is the height which never belongs to a basin
const Wall Height = 9

type Height uint8

func (h Height) Add(o Height) Height { return h + o }
func (h Height) Less(o Height) bool  { return h < o }
func (h Height) Float() float64      { return float64(h) }
func (h Height) String() string      { return strconv.Itoa(int(h)) }

type Heightmap = grid.Grid[Height]

//Parse reads a heightmap made of decimal digits
func Parse(text string) (*Heightmap, error) {
	g, err := grid.ParseDigits[Height](text)
	if err != nil {
		return nil, fmt.Errorf("heightmap: %w", err)
	}
	return g, nil
}

//Basin is a maximal connected region of cells below the wall height, grown from its seed
type Basin struct {
	Seed  grid.Coord
	Cells []grid.Coord
}

func (b Basin) Size() int {
	return len(b.Cells)
}

//FindValleys returns the cells lower than all of their orthogonal neighbours, in row-major order
func FindValleys(h *Heightmap) []grid.Coord {
	var valleys []grid.Coord
	for pos, v := range h.All() {
		c, _ := h.CursorAt(pos)
		lowest := true
		for _, n := range c.Neighbors(grid.Orthogonal) {
			if !v.Less(n.Value()) {
				lowest = false
				break
			}
		}
		if lowest {
			valleys = append(valleys, pos)
		}
	}
	return valleys
}

//RiskLevels maps each valley to its risk level, the valley height plus one
func RiskLevels(h *Heightmap) map[grid.Coord]int {
	levels := map[grid.Coord]int{}
	for _, pos := range FindValleys(h) {
		if v, ok := h.Get(pos); ok {
			levels[pos] = int(v) + 1
		}
	}
	return levels
}

//RiskSum adds up the risk levels of all valleys
func RiskSum(h *Heightmap) int {
	sum := 0
	for _, risk := range RiskLevels(h) {
		sum += risk
	}
	return sum
}

/*
	FindBasins grows one basin from each valley
	all basins expand together one ring per round, seeds taken in row-major order;
	a shared visited set keeps basins disjoint, so a cell reachable from two seeds goes to the one claiming it first
*/
func FindBasins(h *Heightmap) []Basin {
	seeds := FindValleys(h)
	basins := make([]Basin, len(seeds))
	frontiers := make([][]grid.Coord, len(seeds))
	for i, seed := range seeds {
		basins[i].Seed = seed
		frontiers[i] = []grid.Coord{seed}
	}

	visited := mapset.New[grid.Coord]()
	for grown := true; grown; {
		grown = false
		for i := range frontiers {
			var claimed []grid.Coord
			claimed, frontiers[i] = expand(h, frontiers[i], visited)
			if len(claimed) > 0 {
				basins[i].Cells = append(basins[i].Cells, claimed...)
				grown = true
			}
		}
	}
	return basins
}

//expand claims the unvisited cells of the frontier and returns them with the next frontier
func expand(h *Heightmap, frontier []grid.Coord, visited mapset.Set[grid.Coord]) (claimed []grid.Coord, next []grid.Coord) {
	for len(frontier) > 0 {
		pos := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		if visited.Has(pos) {
			continue
		}
		visited.Put(pos)
		claimed = append(claimed, pos)

		c, ok := h.CursorAt(pos)
		if !ok {
			panic(fmt.Sprintf("basins: position %v is outside the heightmap", pos))
		}
		for _, n := range c.Neighbors(grid.Orthogonal) {
			if n.Value().Less(Wall) && !visited.Has(n.Position()) {
				next = append(next, n.Position())
			}
		}
	}
	return claimed, next
}

//BasinSizes returns the size of every basin, smallest first
func BasinSizes(h *Heightmap) []int {
	basins := FindBasins(h)
	sizes := make([]int, 0, len(basins))
	for _, b := range basins {
		sizes = append(sizes, b.Size())
	}
	slices.Sort(sizes)
	return sizes
}

//LargestProduct multiplies the sizes of the n largest basins
func LargestProduct(h *Heightmap, n int) int {
	sizes := BasinSizes(h)
	n = max(0, min(n, len(sizes)))
	product := 1
	for _, size := range sizes[len(sizes)-n:] {
		product *= size
	}
	return product
}
