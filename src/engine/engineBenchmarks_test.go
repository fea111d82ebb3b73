package engine

import (
	"testing"

	"flashsim/src/cascade"
)

const (
	width  = 200
	height = 200
)

func newBenchEngine(s cascade.Strategy, maxSteps int) *BaseEngine {
	o := DefaultEngineOptions
	o.Interval = 0
	o.Width = width
	o.Height = height
	o.MaxSteps = maxSteps
	o.Strategy = s
	o.Seed = 1
	return NewBaseEngine(&o, make(chan Status, 10))
}

func engineStep(e Engine, b *testing.B) {
	stateCh := e.StateCh()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Step()
		for {
			st := <-stateCh
			if st.RunningMode == RunningStateManual {
				break
			}
		}
	}
	e.Close()
}

func engineRun(e Engine, b *testing.B) {
	stateCh := e.StateCh()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		e.Clear()
		<-stateCh //wait for finish
		e.SettleWithRandomData()
		<-stateCh //cleared before settling
		b.StartTimer()
		e.Run()
		for {
			st := <-stateCh
			if st.RunningMode == RunningStateFinished {
				break
			}
		}
	}
	e.Close()
}

func Benchmark_Step(b *testing.B) {
	for _, s := range cascade.Strategies {
		b.Run(string(s), func(b *testing.B) {
			e := newBenchEngine(s, 0)
			e.SettleWithRandomData()
			<-e.StateCh()
			engineStep(e, b)
		})
	}
}

func Benchmark_Engine(b *testing.B) {
	for _, s := range cascade.Strategies {
		b.Run(string(s), func(b *testing.B) {
			engineRun(newBenchEngine(s, 100), b)
		})
	}
}
