package engine

import (
	"testing"
	"time"

	"flashsim/src/cascade"
	"flashsim/src/grid"
)

func newTestEngine(width int, height int, tune func(o *Options)) *BaseEngine {
	o := DefaultEngineOptions
	o.Width = width
	o.Height = height
	o.Interval = 0
	o.Seed = 42
	if tune != nil {
		tune(&o)
	}
	e := NewBaseEngine(&o, make(chan Status, 10))
	for _, tmpl := range Templates() {
		e.AddTemplate(tmpl)
	}
	return e
}

//waitFor reads the state channel until the engine reports the mode
func waitFor(t *testing.T, e Engine, mode RunningState) Status {
	t.Helper()
	timeout := time.After(10 * time.Second)
	for {
		select {
		case st := <-e.StateCh():
			if st.RunningMode == mode {
				return st
			}
		case <-timeout:
			t.Fatalf("engine did not reach mode %v", mode)
		}
	}
}

func TestRunExample(t *testing.T) {
	for _, s := range cascade.Strategies {
		t.Run(string(s), func(t *testing.T) {
			e := newTestEngine(10, 10, func(o *Options) {
				o.MaxSteps = 100
				o.Strategy = s
			})
			defer e.Close()
			e.SettleTemplate(TemplateExample)
			e.Run()
			st := waitFor(t, e, RunningStateFinished)
			if st.IterationNum != 100 {
				t.Fatalf("finished at step %d, expected 100", st.IterationNum)
			}
			if st.TotalFlashes != 1656 {
				t.Fatalf("%d flashes after 100 steps, expected 1656", st.TotalFlashes)
			}
			if st.SyncStep != 0 {
				t.Fatalf("synchronized at step %d before step 100", st.SyncStep)
			}
		})
	}
}

func TestRunStopsOnSync(t *testing.T) {
	e := newTestEngine(10, 10, func(o *Options) {
		o.MaxSteps = 0
		o.StopOnSync = true
	})
	defer e.Close()
	e.SettleTemplate(TemplateExample)
	e.Run()
	st := waitFor(t, e, RunningStateFinished)
	if st.SyncStep != 195 || st.IterationNum != 195 {
		t.Fatalf("stopped at step %d with sync step %d, expected 195", st.IterationNum, st.SyncStep)
	}
	if st.Flashes != 100 {
		t.Fatalf("%d flashes in the synchronized step, expected 100", st.Flashes)
	}

	//a finished engine does not step any further
	e.Step()
	waitFor(t, e, RunningStateFinished)
	if n := e.Status().IterationNum; n != 195 {
		t.Fatalf("finished engine moved to step %d", n)
	}
}

func TestStep(t *testing.T) {
	e := newTestEngine(5, 5, nil)
	defer e.Close()
	e.SettleTemplate(TemplateNines)
	e.Step()
	waitFor(t, e, RunningStateStep)
	st := waitFor(t, e, RunningStateManual)
	if st.IterationNum != 1 || st.Flashes != 25 || st.TotalFlashes != 25 {
		t.Fatalf("unexpected status after one step: %+v", st)
	}
	if st.SyncStep != 1 {
		t.Fatalf("sync step %d, expected 1", st.SyncStep)
	}
	if n := e.Grid().Count(func(v cascade.Energy) bool { return v != 0 }); n != 0 {
		t.Fatalf("%d cells kept their energy after flashing", n)
	}
}

func TestStopKeepsState(t *testing.T) {
	e := newTestEngine(10, 10, func(o *Options) {
		o.MaxSteps = 0
		o.Interval = time.Millisecond
	})
	defer e.Close()
	e.SettleTemplate(TemplateExample)
	e.Run()
	waitFor(t, e, RunningStateRun)
	e.Stop()
	st := waitFor(t, e, RunningStateManual)
	time.Sleep(20 * time.Millisecond)
	if now := e.Status(); now.IterationNum != st.IterationNum || now.RunningMode != RunningStateManual {
		t.Fatalf("engine kept running after stop: %+v, stopped at %+v", now, st)
	}
}

func TestClear(t *testing.T) {
	e := newTestEngine(5, 5, nil)
	defer e.Close()
	e.SettleTemplate(TemplateRing)
	e.Step()
	waitFor(t, e, RunningStateStep)
	waitFor(t, e, RunningStateManual)

	e.Clear()
	st := waitFor(t, e, RunningStateManual)
	if st != (Status{}) {
		t.Fatalf("status not reset: %+v", st)
	}
	if n := e.Grid().Count(func(v cascade.Energy) bool { return v != 0 }); n != 0 {
		t.Fatalf("%d cells left after clear", n)
	}
}

func TestSettle(t *testing.T) {
	e := newTestEngine(3, 3, nil)
	defer e.Close()

	e.SettleTemplate("missing")
	if n := e.Grid().Count(func(v cascade.Energy) bool { return v != 0 }); n != 0 {
		t.Fatalf("unknown template changed %d cells", n)
	}

	//cells outside the field are dropped
	e.SettleTemplate(TemplateRing)
	expected := "111\n199\n191\n"
	if s := e.Grid().String(); s != expected {
		t.Fatalf("field is\n%s\nexpected\n%s", s, expected)
	}
}

func TestChargeCell(t *testing.T) {
	e := newTestEngine(2, 2, nil)
	defer e.Close()
	g := grid.New(2, 2, cascade.Energy(8))
	e.Settle(g)

	e.ChargeCell(1, 0)
	if v, _ := e.Grid().Get(grid.Coord{X: 1, Y: 0}); v != 9 {
		t.Fatalf("charged cell holds %v, expected 9", v)
	}
	e.ChargeCell(1, 0)
	if v, _ := e.Grid().Get(grid.Coord{X: 1, Y: 0}); v != 0 {
		t.Fatalf("fully charged cell holds %v, expected 0", v)
	}
	e.ChargeCell(5, 5)
	e.ChargeCell(-1, 0)
	if s := e.Grid().String(); s != "80\n88\n" {
		t.Fatalf("field is\n%s", s)
	}
}

func TestRandomDataIsSeeded(t *testing.T) {
	fields := make([]string, 2)
	for i := range fields {
		e := newTestEngine(8, 6, nil)
		e.SettleWithRandomData()
		e.Step()
		waitFor(t, e, RunningStateStep)
		waitFor(t, e, RunningStateManual)
		fields[i] = e.Grid().String()
		e.Close()
	}
	if fields[0] != fields[1] {
		t.Fatalf("same seed gave different fields:\n%s\n%s", fields[0], fields[1])
	}
}

type countingViewer struct {
	e       Engine
	refresh int
}

func (v *countingViewer) Refresh()          { v.refresh++ }
func (v *countingViewer) Register(e Engine) { v.e = e }
func (v *countingViewer) Start()            {}

func TestViewerRefreshedOnStep(t *testing.T) {
	e := newTestEngine(5, 5, nil)
	defer e.Close()
	v := &countingViewer{}
	e.RegisterViewer(v)
	if v.e != e {
		t.Fatal("viewer was not registered")
	}
	e.Step()
	waitFor(t, e, RunningStateStep)
	waitFor(t, e, RunningStateManual)
	if v.refresh != 1 {
		t.Fatalf("viewer refreshed %d times, expected 1", v.refresh)
	}
}

func TestCloseDropsCommands(t *testing.T) {
	e := newTestEngine(5, 5, nil)
	e.Close()
	e.Close()
	done := make(chan bool)
	go func() {
		e.Step()
		e.Run()
		e.Clear()
		done <- true
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("commands block after close")
	}
}
