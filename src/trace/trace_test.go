package trace

import (
	"path/filepath"
	"slices"
	"testing"
	"time"

	"flashsim/src/cascade"
	"flashsim/src/engine"
)

func TestWriteAndRead(t *testing.T) {
	p := filepath.Join(t.TempDir(), "trace.jsonl.zst")
	w, err := Create(p)
	if err != nil {
		t.Fatal(err)
	}
	written := []Record{
		{Step: 1, Flashes: 0, Total: 0},
		{Step: 2, Flashes: 35, Total: 35, Energies: []string{"12", "34"}},
		{Step: 3, Flashes: 4, Total: 39, Synchronized: true},
	}
	for _, r := range written {
		if err := w.Write(r); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close failed: %v", err)
	}

	read, err := ReadRecords(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(read) != len(written) {
		t.Fatalf("read %d records, expected %d", len(read), len(written))
	}
	for i := range written {
		if read[i].Step != written[i].Step || read[i].Total != written[i].Total ||
			read[i].Synchronized != written[i].Synchronized || !slices.Equal(read[i].Energies, written[i].Energies) {
			t.Fatalf("record %d is %+v, expected %+v", i, read[i], written[i])
		}
	}
}

func TestEnergyRows(t *testing.T) {
	g, err := cascade.ParseGrid("123\n456\n")
	if err != nil {
		t.Fatal(err)
	}
	if rows := EnergyRows(g); !slices.Equal(rows, []string{"123", "456"}) {
		t.Fatalf("rows %q", rows)
	}
	empty, _ := cascade.ParseGrid("")
	if rows := EnergyRows(empty); rows != nil {
		t.Fatalf("rows %q for an empty grid", rows)
	}
}

func TestRecorder(t *testing.T) {
	p := filepath.Join(t.TempDir(), "trace.jsonl.zst")
	w, err := Create(p)
	if err != nil {
		t.Fatal(err)
	}

	o := engine.DefaultEngineOptions
	o.Width, o.Height = 5, 5
	o.Interval = 0
	o.MaxSteps = 12
	e := engine.NewBaseEngine(&o, make(chan engine.Status, 10))
	defer e.Close()
	for _, tmpl := range engine.Templates() {
		e.AddTemplate(tmpl)
	}
	e.SettleTemplate(engine.TemplateNines)
	rec := NewRecorder(w, true)
	e.RegisterViewer(rec)
	e.Run()

	timeout := time.After(10 * time.Second)
	for finished := false; !finished; {
		select {
		case st := <-e.StateCh():
			finished = st.RunningMode == engine.RunningStateFinished
		case <-timeout:
			t.Fatal("engine did not finish")
		}
	}
	if err := rec.Err(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	records, err := ReadRecords(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 12 {
		t.Fatalf("%d records, expected 12", len(records))
	}
	for i, r := range records {
		if r.Step != i+1 {
			t.Fatalf("record %d is for step %d", i, r.Step)
		}
		//the uniform block flashes on steps 1 and 11
		sync := r.Step == 1 || r.Step == 11
		if r.Synchronized != sync {
			t.Fatalf("step %d synchronized: %v", r.Step, r.Synchronized)
		}
		if len(r.Energies) != 5 {
			t.Fatalf("step %d has %d energy rows", r.Step, len(r.Energies))
		}
	}
	if last := records[11]; last.Total != 50 || last.Energies[0] != "11111" {
		t.Fatalf("unexpected last record %+v", last)
	}
}
