package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"flashsim/src/cascade"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "flashsim.yaml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestDefaultIsValid(t *testing.T) {
	o := Default()
	if err := o.Validate(); err != nil {
		t.Fatal(err)
	}
	if o.Steps != 100 || o.Strategy != "lifo" {
		t.Fatalf("unexpected defaults %+v", o)
	}
}

func TestLoad(t *testing.T) {
	p := writeFile(t, "steps: 195\ninterval: 15ms\nstop_on_sync: true\nstrategy: fifo\n")
	o, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if o.Steps != 195 || o.Interval != 15*time.Millisecond || !o.StopOnSync || o.Strategy != "fifo" {
		t.Fatalf("file values not loaded: %+v", o)
	}
	if o.MaxSteps != Default().MaxSteps || o.LogLevel != DefLogLevel {
		t.Fatalf("missing keys lost their defaults: %+v", o)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		target  error
	}{
		{"strategy", "strategy: random\n", cascade.ErrUnknownStrategy},
		{"negative steps", "steps: -1\n", ErrInvalid},
		{"log level", "log_level: loud\n", ErrInvalid},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Load(writeFile(t, c.content))
			if !errors.Is(err, c.target) {
				t.Fatalf("got %v, expected %v", err, c.target)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("got %v for a missing file", err)
	}
	if _, err := Load(writeFile(t, "steps: [1\n")); err == nil {
		t.Fatal("broken yaml accepted")
	}
}

func TestMerge(t *testing.T) {
	o := Default().Merge(Options{Steps: 10, StopOnSync: true, LogLevel: "debug"})
	if o.Steps != 10 || !o.StopOnSync || o.LogLevel != "debug" {
		t.Fatalf("flags not applied: %+v", o)
	}
	if o.Interval != Default().Interval || o.Strategy != Default().Strategy {
		t.Fatalf("zero flags overrode values: %+v", o)
	}
	if l, err := o.Level(); err != nil || l != logrus.DebugLevel {
		t.Fatalf("level %v, %v", l, err)
	}
}

func TestEngineOptions(t *testing.T) {
	o := Default().Merge(Options{Strategy: "fifo", MaxSteps: 7})
	eo := o.Engine(10, 5, logrus.New())
	if eo.Width != 10 || eo.Height != 5 || eo.MaxSteps != 7 || eo.Strategy != cascade.FIFO {
		t.Fatalf("unexpected engine options %+v", eo)
	}
}
