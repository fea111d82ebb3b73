package basins

import (
	"slices"
	"testing"

	"flashsim/src/grid"
)

const exampleHeightmap = "2199943210\n3987894921\n9856789892\n8767896789\n9899965678"

func mustParse(t *testing.T, text string) *Heightmap {
	t.Helper()
	h, err := Parse(text)
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func TestParseSize(t *testing.T) {
	h := mustParse(t, "\n"+exampleHeightmap+"\n")
	if h.Size() != (grid.Coord{X: 10, Y: 5}) {
		t.Fatalf("size is %v, expected (10, 5)", h.Size())
	}
	if _, err := Parse("12\n3-"); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestFindValleys(t *testing.T) {
	valleys := FindValleys(mustParse(t, exampleHeightmap))
	expected := []grid.Coord{{X: 1, Y: 0}, {X: 9, Y: 0}, {X: 2, Y: 2}, {X: 6, Y: 4}}
	if !slices.Equal(valleys, expected) {
		t.Fatalf("valleys %v, expected %v", valleys, expected)
	}
}

func TestRiskLevels(t *testing.T) {
	h := mustParse(t, exampleHeightmap)
	levels := RiskLevels(h)
	expected := map[grid.Coord]int{
		{X: 1, Y: 0}: 2,
		{X: 9, Y: 0}: 1,
		{X: 2, Y: 2}: 6,
		{X: 6, Y: 4}: 6,
	}
	if len(levels) != len(expected) {
		t.Fatalf("%d risk levels, expected %d", len(levels), len(expected))
	}
	for pos, risk := range expected {
		if levels[pos] != risk {
			t.Fatalf("risk at %v is %d, expected %d", pos, levels[pos], risk)
		}
	}
	if sum := RiskSum(h); sum != 15 {
		t.Fatalf("risk sum is %d, expected 15", sum)
	}
}

func TestFindBasins(t *testing.T) {
	h := mustParse(t, exampleHeightmap)
	basins := FindBasins(h)
	expected := map[grid.Coord]int{
		{X: 1, Y: 0}: 3,
		{X: 9, Y: 0}: 9,
		{X: 2, Y: 2}: 14,
		{X: 6, Y: 4}: 9,
	}
	if len(basins) != len(expected) {
		t.Fatalf("%d basins, expected %d", len(basins), len(expected))
	}
	claimed := map[grid.Coord]grid.Coord{}
	for _, b := range basins {
		if b.Size() != expected[b.Seed] {
			t.Fatalf("basin at %v has %d cells, expected %d", b.Seed, b.Size(), expected[b.Seed])
		}
		if b.Cells[0] != b.Seed {
			t.Fatalf("basin at %v does not start from its seed", b.Seed)
		}
		for _, pos := range b.Cells {
			if owner, ok := claimed[pos]; ok {
				t.Fatalf("%v claimed by basins %v and %v", pos, owner, b.Seed)
			}
			claimed[pos] = b.Seed
			if v, _ := h.Get(pos); v == Wall {
				t.Fatalf("wall cell %v claimed by basin %v", pos, b.Seed)
			}
		}
	}
}

func TestBasinSizes(t *testing.T) {
	h := mustParse(t, exampleHeightmap)
	if sizes := BasinSizes(h); !slices.Equal(sizes, []int{3, 9, 9, 14}) {
		t.Fatalf("sizes %v, expected [3 9 9 14]", sizes)
	}
	if p := LargestProduct(h, 3); p != 1134 {
		t.Fatalf("product of the three largest is %d, expected 1134", p)
	}
	if p := LargestProduct(h, 10); p != 3*9*9*14 {
		t.Fatalf("product of all basins is %d", p)
	}
}

func TestTouchingBasinsStayDisjoint(t *testing.T) {
	//two valleys in one open region: every cell still belongs to exactly one basin
	h := mustParse(t, "0120\n1231\n2342")
	basins := FindBasins(h)
	if len(basins) != 2 {
		t.Fatalf("%d basins, expected 2", len(basins))
	}
	total := 0
	for _, b := range basins {
		total += b.Size()
	}
	if total != h.Len() {
		t.Fatalf("basins cover %d cells, expected %d", total, h.Len())
	}
}
