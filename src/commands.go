package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"flashsim/src/basins"
	"flashsim/src/cascade"
	"flashsim/src/config"
	"flashsim/src/engine"
	"flashsim/src/grid"
	"flashsim/src/puzzle"
	"flashsim/src/trace"
	"flashsim/src/view"
)

//execute runs the named command, results are printed to out
func execute(cmd string, eo *EnvOptions, o config.Options, log logrus.FieldLogger, out io.Writer) error {
	switch cmd {
	case "flash", "sync", "basins":
		text, err := readInput(eo)
		if err != nil {
			return err
		}
		switch cmd {
		case "flash":
			return cmdFlash(text, o, out)
		case "sync":
			return cmdSync(text, o, out)
		}
		return cmdBasins(text, out)
	case "run":
		_, err := cmdRun(eo, o, log, out)
		return err
	case "watch":
		return cmdWatch(eo, o, log)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

//readInput returns the text of the challenge or of the input file
func readInput(eo *EnvOptions) (string, error) {
	if eo.challenges != "" {
		c, err := puzzle.LoadChallenge(eo.challenges, eo.day)
		if err != nil {
			return "", err
		}
		return c.Input(eo.example), nil
	}
	if eo.input != "" {
		return puzzle.ReadFile(eo.input)
	}
	return "", errNoInput
}

func newSim(text string, o config.Options) (*cascade.Sim, error) {
	g, err := cascade.ParseGrid(text)
	if err != nil {
		return nil, err
	}
	strategy, err := cascade.ParseStrategy(o.Strategy)
	if err != nil {
		return nil, err
	}
	return cascade.NewWithStrategy(g, strategy), nil
}

func cmdFlash(text string, o config.Options, out io.Writer) error {
	sim, err := newSim(text, o)
	if err != nil {
		return err
	}
	total := sim.Simulate(o.Steps)
	fmt.Fprintf(out, "Flashes after %d steps: %d\n", o.Steps, total)
	return nil
}

func cmdSync(text string, o config.Options, out io.Writer) error {
	sim, err := newSim(text, o)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "All cells flash together at step %d\n", sim.StepsUntilSynchronized())
	return nil
}

func cmdBasins(text string, out io.Writer) error {
	h, err := basins.Parse(text)
	if err != nil {
		return err
	}
	sizes := make([]string, 0)
	for _, size := range basins.BasinSizes(h) {
		sizes = append(sizes, fmt.Sprint(size))
	}
	fmt.Fprintf(out, "Valleys: %d\n", len(basins.FindValleys(h)))
	fmt.Fprintf(out, "Risk level sum: %d\n", basins.RiskSum(h))
	fmt.Fprintf(out, "Basin sizes: %s\n", strings.Join(sizes, " "))
	fmt.Fprintf(out, "Product of the three largest basins: %d\n", basins.LargestProduct(h, 3))
	return nil
}

//newEngine creates an engine sized for the seed, the seed is nil when random data is requested
func newEngine(eo *EnvOptions, o config.Options, log logrus.FieldLogger, stateCh chan engine.Status) (*engine.BaseEngine, *grid.Grid[cascade.Energy], error) {
	var seed *grid.Grid[cascade.Energy]
	if eo.input != "" || eo.challenges != "" {
		text, err := readInput(eo)
		if err != nil {
			return nil, nil, err
		}
		if seed, err = cascade.ParseGrid(text); err != nil {
			return nil, nil, err
		}
	} else if !eo.random {
		for _, tmpl := range engine.Templates() {
			if tmpl.Name != eo.template {
				continue
			}
			g, err := cascade.ParseGrid(tmpl.Energies)
			if err != nil {
				return nil, nil, err
			}
			seed = g
		}
		if seed == nil {
			return nil, nil, fmt.Errorf("unknown template %q", eo.template)
		}
	}

	width, height := eo.width, eo.height
	if seed != nil {
		width, height = seed.Width(), seed.Height()
	}
	opts := o.Engine(width, height, log)
	eng := engine.NewBaseEngine(&opts, stateCh)
	for _, tmpl := range engine.Templates() {
		eng.AddTemplate(tmpl)
	}
	return eng, seed, nil
}

//settle fills the field, the viewers are registered by now
func settle(eng engine.Engine, eo *EnvOptions, seed *grid.Grid[cascade.Energy]) {
	switch {
	case eo.input != "" || eo.challenges != "":
		eng.Settle(seed)
	case eo.random:
		eng.SettleWithRandomData()
	default:
		eng.SettleTemplate(eo.template)
	}
}

//attachTrace registers a trace recorder when a trace file is configured, the returned func closes it
func attachTrace(eng engine.Engine, o config.Options) (*trace.Recorder, func() error, error) {
	if o.TracePath == "" {
		return nil, func() error { return nil }, nil
	}
	w, err := trace.Create(o.TracePath)
	if err != nil {
		return nil, nil, err
	}
	rec := trace.NewRecorder(w, true)
	eng.RegisterViewer(rec)
	return rec, w.Close, nil
}

//cmdRun runs the engine until it finishes and returns the final status
func cmdRun(eo *EnvOptions, o config.Options, log logrus.FieldLogger, out io.Writer) (engine.Status, error) {
	stateCh := make(chan engine.Status, 10) //the buffered channel to getting the engine status
	eng, seed, err := newEngine(eo, o, log, stateCh)
	if err != nil {
		return engine.Status{}, err
	}
	defer eng.Close()

	rec, closeTrace, err := attachTrace(eng, o)
	if err != nil {
		return engine.Status{}, err
	}
	v := view.NewConsoleOut(out, false)
	eng.RegisterViewer(v)
	settle(eng, eo, seed)
	v.Start()
	eng.Run()

	var st engine.Status
	for st = range stateCh {
		if st.RunningMode == engine.RunningStateFinished {
			break
		}
	}
	if err := closeTrace(); err != nil {
		return st, err
	}
	if rec != nil {
		return st, rec.Err()
	}
	return st, nil
}

func cmdWatch(eo *EnvOptions, o config.Options, log logrus.FieldLogger) error {
	//interactive mode does not follow the state channel
	eng, seed, err := newEngine(eo, o, log, nil)
	if err != nil {
		return err
	}
	defer eng.Close()
	rec, closeTrace, err := attachTrace(eng, o)
	if err != nil {
		return err
	}
	v := view.NewViewTerminal(log)
	eng.RegisterViewer(v)
	settle(eng, eo, seed)
	v.Start()
	if err := closeTrace(); err != nil {
		return err
	}
	if rec != nil {
		return rec.Err()
	}
	return nil
}
