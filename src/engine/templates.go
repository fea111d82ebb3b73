package engine

//Template is a named seed which can be settled into the engine by SettleTemplate
type Template struct {
	Name     string //template name
	Descr    string //template descr
	Energies string //rows of decimal digits, one row per line
}

const (
	TemplateExample = "example"
	TemplateRing    = "ring"
	TemplateNines   = "nines"
)

//Templates returns the built-in seeds
func Templates() []Template {
	return []Template{
		{
			TemplateExample,
			"10x10 field which synchronizes at step 195",
			"5483143223\n" +
				"2745854711\n" +
				"5264556173\n" +
				"6141336146\n" +
				"6357385478\n" +
				"4167524645\n" +
				"2176841721\n" +
				"6882881134\n" +
				"4846848554\n" +
				"5283751526\n",
		},
		{
			TemplateRing,
			"5x5 ring of nines around a single nine",
			"11111\n19991\n19191\n19991\n11111\n",
		},
		{
			TemplateNines,
			"5x5 block flashing all together on the first step",
			"99999\n99999\n99999\n99999\n99999\n",
		},
	}
}
