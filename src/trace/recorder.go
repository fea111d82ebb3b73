package trace

import (
	"sync"

	"flashsim/src/engine"
)

//Recorder is an engine viewer writing a record for every new step
type Recorder struct {
	w        *Writer
	e        engine.Engine
	energies bool

	mu   sync.Mutex
	last int
	err  error
}

//NewRecorder creates the recorder, energies adds the whole field to every record
func NewRecorder(w *Writer, energies bool) *Recorder {
	return &Recorder{w: w, energies: energies}
}

func (r *Recorder) Register(e engine.Engine) {
	r.e = e
}

func (r *Recorder) Start() {}

func (r *Recorder) Refresh() {
	st := r.e.Status()
	r.mu.Lock()
	defer r.mu.Unlock()
	if st.IterationNum < r.last {
		//cleared
		r.last = 0
	}
	if st.IterationNum == r.last || r.err != nil {
		return
	}
	r.last = st.IterationNum

	rec := Record{
		Step:         st.IterationNum,
		Flashes:      st.Flashes,
		Total:        st.TotalFlashes,
		Synchronized: st.Flashes == r.e.Grid().Len(),
	}
	if r.energies {
		rec.Energies = EnergyRows(r.e.Grid())
	}
	r.err = r.w.Write(rec)
}

//Err returns the first write error, the recorder stops writing after it
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
