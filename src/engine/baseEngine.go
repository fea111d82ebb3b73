package engine

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"flashsim/src/cascade"
	"flashsim/src/grid"
)

//Options represents the Engine's configurable options
type Options struct {
	Width           int
	Height          int
	Interval        time.Duration
	MaxSteps        int //0 means no limit
	MaxSkippedTicks int
	StopOnSync      bool //finish the run on the first step flashing every cell
	Strategy        cascade.Strategy
	Seed            int64 //random data seed, 0 picks one from the clock
	Logger          logrus.FieldLogger
}

//Status represents the status of the Engine at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	Flashes       int //flashes of the latest step
	TotalFlashes  int
	SyncStep      int //first step flashing every cell, 0 until it happens
	IterationTime time.Duration
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(e Engine)
	Start()
}

//The engine running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 1000
	DefWidth              = 10
	DefHeight             = 10
	DefMaxSkippedTicks    = 5
)

const (
	RunningStateManual RunningState = iota
	RunningStateStep
	RunningStateRun
	RunningStateFinished
)

func (s RunningState) String() string {
	switch s {
	case RunningStateManual:
		return "manual"
	case RunningStateStep:
		return "step"
	case RunningStateRun:
		return "run"
	case RunningStateFinished:
		return "finished"
	}
	return "unknown"
}

var DefaultEngineOptions = Options{
	Width:           DefWidth,
	Height:          DefHeight,
	Interval:        DefSimulationInterval,
	MaxSteps:        DefMaxSteps,
	MaxSkippedTicks: DefMaxSkippedTicks,
	Strategy:        cascade.DefaultStrategy,
}

/*
	BaseEngine implements Engine
	all commands are executed one by one on the main loop goroutine,
	the state and the simulation are guarded by their own locks so viewers can read them from anywhere
*/
type BaseEngine struct {
	options Options
	log     logrus.FieldLogger
	rnd     *rand.Rand
	state   struct {
		Status
		sync.Mutex
	}
	area struct {
		sim *cascade.Sim
		sync.Mutex
	}
	stateCh   chan Status
	views     []Viewer
	templates map[string]Template
	controlCh chan func()
	closeCh   chan bool
	closed    chan struct{}
}

//NewBaseEngine creates the BaseEngine instance
func NewBaseEngine(o *Options, stateCh chan Status) *BaseEngine {
	if o == nil {
		o = &DefaultEngineOptions
	}
	opts := *o
	if opts.Strategy == "" {
		opts.Strategy = cascade.DefaultStrategy
	}
	if opts.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Logger = l
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	e := BaseEngine{
		options:   opts,
		log:       opts.Logger.WithField("strategy", opts.Strategy),
		rnd:       rand.New(rand.NewSource(seed)),
		controlCh: make(chan func(), 1),
		closeCh:   make(chan bool, 1),
		closed:    make(chan struct{}),
		stateCh:   stateCh,
		templates: map[string]Template{},
	}
	e.area.sim = e.newSim()
	e.refreshView()
	go e.mainLoop()
	return &e
}

//AddTemplate adds the seeding template to the internal storage
//the engine can be populated with this template by call SettleTemplate
func (e *BaseEngine) AddTemplate(tmpl Template) {
	e.templates[tmpl.Name] = tmpl
}

//Settle copies the energies of g into the field, cells outside the field are dropped
func (e *BaseEngine) Settle(g *grid.Grid[cascade.Energy]) {
	e.area.Lock()
	e.settle(g)
	e.area.Unlock()
	e.refreshView()
}

//SettleTemplate populates the field with the seeding template
func (e *BaseEngine) SettleTemplate(name string) {
	tmpl, ok := e.templates[name]
	if !ok {
		e.log.WithField("template", name).Warn("unknown template")
		return
	}
	g, err := cascade.ParseGrid(tmpl.Energies)
	if err != nil {
		e.log.WithError(err).WithField("template", name).Warn("broken template")
		return
	}
	e.Settle(g)
}

//SettleWithRandomData clears the field and fills it with random energies
func (e *BaseEngine) SettleWithRandomData() {
	mode := e.Status().RunningMode
	if mode != RunningStateManual && mode != RunningStateFinished {
		return
	}
	e.send(e.clear)
	e.send(func() {
		g := grid.New(e.options.Width, e.options.Height, cascade.Energy(0))
		g.Walk(func(x int, y int, _ cascade.Energy) {
			g.Set(grid.Coord{X: x, Y: y}, cascade.Energy(e.rnd.Intn(int(cascade.Threshold)+1)))
		})
		e.Settle(g)
	})
}

//ChargeCell adds one energy to the cell at point x, y, a fully charged cell wraps to zero
func (e *BaseEngine) ChargeCell(x int, y int) {
	pos := grid.Coord{X: x, Y: y}
	e.area.Lock()
	v, ok := e.area.sim.At(pos)
	if ok {
		e.area.sim.Set(pos, (v+1)%(cascade.Threshold+1))
	}
	e.area.Unlock()
	if ok {
		e.refreshView()
	}
}

//RegisterViewer registers the viewer - the engine will call the viewer when the state is changed
func (e *BaseEngine) RegisterViewer(v Viewer) {
	e.views = append(e.views, v)
	v.Register(e)
}

//StateCh returns the channel with the engine's status updates
func (e *BaseEngine) StateCh() chan Status {
	return e.stateCh
}

//Status returns current engine status represented by Status struct
func (e *BaseEngine) Status() Status {
	e.state.Lock()
	defer e.state.Unlock()
	return e.state.Status
}

//Options returns the engine configuration represented by Options struct
func (e *BaseEngine) Options() Options {
	return e.options
}

//Grid returns a copy of the current energy levels
func (e *BaseEngine) Grid() *grid.Grid[cascade.Energy] {
	e.area.Lock()
	defer e.area.Unlock()
	return e.area.sim.Grid()
}

//Run starts the simulation, returns immediately
func (e *BaseEngine) Run() {
	e.send(e.run)
}

//Stop stops the simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (e *BaseEngine) Stop() {
	e.send(e.stop)
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (e *BaseEngine) Step() {
	e.send(e.step)
}

//Clear zeroes the field and resets all counters, returns immediately
//the Status struct will be written to the stateCh on finish
func (e *BaseEngine) Clear() {
	e.send(e.clear)
}

//Close stops the main loop, returns immediately
//commands sent after Close are dropped
func (e *BaseEngine) Close() {
	select {
	case e.closeCh <- true:
	case <-e.closed:
	}
}

//send passes the command to the main loop unless the loop is already stopped
func (e *BaseEngine) send(cmd func()) {
	select {
	case e.controlCh <- cmd:
	case <-e.closed:
	}
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (e *BaseEngine) mainLoop() {
	var c = false
	for !c {
		select {
		case cmd := <-e.controlCh:
			cmd()
		case c = <-e.closeCh:

		}
	}
	close(e.closed)
}

//newSim creates an empty field of the configured size
func (e *BaseEngine) newSim() *cascade.Sim {
	return cascade.NewWithStrategy(grid.New(e.options.Width, e.options.Height, cascade.Energy(0)), e.options.Strategy)
}

//settle writes the energies of g over the field, the area lock must be held
func (e *BaseEngine) settle(g *grid.Grid[cascade.Energy]) {
	for pos, v := range g.All() {
		e.area.sim.Set(pos, v)
	}
}

func (e *BaseEngine) mode() RunningState {
	e.state.Lock()
	defer e.state.Unlock()
	return e.state.RunningMode
}

//switchRunningState switch the state of the engine to RunningState
//also writes the new state to the stateCh to signal upper control software
func (e *BaseEngine) switchRunningState(to RunningState) {
	e.notify(e.setRunningState(to))
}

func (e *BaseEngine) setRunningState(to RunningState) Status {
	e.state.Lock()
	defer e.state.Unlock()
	e.state.RunningMode = to
	return e.state.Status
}

func (e *BaseEngine) notify(st Status) {
	if e.stateCh != nil {
		e.stateCh <- st
	}
}

//run starts the simulation
//simulation will stop on Stop() calling or when the boundary conditions are reached
func (e *BaseEngine) run() {
	if e.mode() == RunningStateRun {
		return
	}
	e.switchRunningState(RunningStateRun)
	go func() {
		skipped := 0
		done := make(chan bool, 1)
		for {
			mode := e.mode()
			if mode != RunningStateRun && mode != RunningStateStep {
				break
			}
			if skipped > e.options.MaxSkippedTicks {
				e.log.WithField("skipped", skipped).Warn("the step takes longer than the interval, finishing")
				e.switchRunningState(RunningStateFinished)
				break
			}
			//skip the tick if the engine is still in the calculation mode
			if mode != RunningStateStep {
				skipped = 0
				select {
				case e.controlCh <- func() {
					e.step()
					done <- true
				}:
				case <-e.closed:
					return
				}
				select {
				case <-done:
				case <-e.closed:
					return
				}
			} else {
				skipped++
			}
			if e.options.Interval > 0 {
				time.Sleep(e.options.Interval)
			}
		}
	}()
}

//stop stops the engine running cycle
func (e *BaseEngine) stop() {
	if e.mode() == RunningStateRun {
		e.switchRunningState(RunningStateManual)
	}
}

//finished reports whether the boundary conditions are reached, the area lock must be held
func (e *BaseEngine) finished() bool {
	sim := e.area.sim
	if e.options.MaxSteps != 0 && sim.Steps() >= e.options.MaxSteps {
		return true
	}
	return e.options.StopOnSync && sim.Synchronized()
}

//step simulates one step of the cascade
func (e *BaseEngine) step() {
	finished := false
	rm := e.mode()
	defer func() {
		next := rm
		if finished {
			next = RunningStateFinished
		}
		//viewers see the step before anybody waiting on the stateCh
		st := e.setRunningState(next)
		e.refreshView()
		e.notify(st)
	}()

	e.area.Lock()
	finished = e.finished()
	e.area.Unlock()
	if finished {
		return
	}
	e.switchRunningState(RunningStateStep)

	e.area.Lock()
	start := time.Now()
	flashes := e.area.sim.Step()
	elapsed := time.Since(start)
	steps := e.area.sim.Steps()
	total := e.area.sim.TotalFlashes()
	synced := e.area.sim.Synchronized()
	finished = e.finished()
	e.area.Unlock()

	e.state.Lock()
	e.state.IterationNum = steps
	e.state.Flashes = flashes
	e.state.TotalFlashes = total
	e.state.IterationTime = elapsed
	firstSync := synced && e.state.SyncStep == 0
	if firstSync {
		e.state.SyncStep = steps
	}
	e.state.Unlock()

	l := e.log.WithFields(logrus.Fields{"step": steps, "flashes": flashes, "total": total})
	l.Debug("step done")
	if firstSync {
		l.Info("all cells flashed together")
	}
	if finished {
		l.Info("simulation finished")
	}
}

//clear zeroes the field, reset all counters
func (e *BaseEngine) clear() {
	e.state.Lock()
	e.area.Lock()
	e.state.Status = Status{}
	e.area.sim = e.newSim()
	e.area.Unlock()
	e.state.Unlock()
	e.switchRunningState(RunningStateManual)
	e.refreshView()
}

//refreshView calls Refresh event for all registered views
func (e *BaseEngine) refreshView() {
	for _, v := range e.views {
		v.Refresh()
	}
}
