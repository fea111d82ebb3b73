package view

import (
	"fmt"
	"io"
	"sort"
	"time"

	"flashsim/src/engine"
)

//MaxPrintedWidth limits the field printed with the final summary
const MaxPrintedWidth = 80

type ConsoleOut struct {
	e         engine.Engine
	out       io.Writer
	painter   *EnergyPainter
	startTime time.Time
	reported  bool
}

func NewConsoleOut(out io.Writer, colors bool) *ConsoleOut {
	return &ConsoleOut{out: out, painter: NewEnergyPainter(colors)}
}

func (c *ConsoleOut) Refresh() {
	st := c.e.Status()
	if st.RunningMode != engine.RunningStateFinished {
		c.reported = false
	}
	if st.RunningMode == engine.RunningStateFinished {
		if c.reported {
			return
		}
		c.reported = true
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last step":     st.IterationNum,
			"Total time":    totalTime,
			"Total flashes": st.TotalFlashes,
			"Sync step":     syncStep(st),
		}
		fmt.Fprintln(c.out, "\nFinished:")
		c.printHashData(resultData)
		if g := c.e.Grid(); g.Width() <= MaxPrintedWidth {
			fmt.Fprint(c.out, c.painter.Render(g))
		}
	} else if st.RunningMode == engine.RunningStateRun {
		if st.IterationNum%10 == 0 {
			fmt.Fprintf(c.out, "  Steps done: %v, flashes: %v\n", st.IterationNum, st.TotalFlashes)
		}
	}
}

func (c *ConsoleOut) Register(e engine.Engine) {
	c.e = e
	o := c.e.Options()
	fmt.Fprintln(c.out, "Running configuration:")
	c.printHashData(map[string]interface{}{
		"Dimension":    fmt.Sprintf("%v x %v", o.Width, o.Height),
		"Interval":     o.Interval,
		"Max steps":    o.MaxSteps,
		"Strategy":     o.Strategy,
		"Stop on sync": o.StopOnSync,
	})
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	fmt.Fprintln(c.out, "\nSimulation started...")
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(c.out, "  %s: %v\n", propName, d[propName])
	}
}

//syncStep describes the synchronization step for humans
func syncStep(st engine.Status) string {
	if st.SyncStep == 0 {
		return "not yet"
	}
	return fmt.Sprint(st.SyncStep)
}
