//Package config holds the command line configuration, loaded from defaults, an optional YAML file and flags
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"flashsim/src/cascade"
	"flashsim/src/engine"
)

type Options struct {
	Steps           int           `yaml:"steps"`    //steps counted by the flash command
	Interval        time.Duration `yaml:"interval"` //pause between the steps of a run
	MaxSteps        int           `yaml:"max_steps"`
	MaxSkippedTicks int           `yaml:"max_skipped_ticks"`
	StopOnSync      bool          `yaml:"stop_on_sync"`
	Strategy        string        `yaml:"strategy"`
	Seed            int64         `yaml:"seed"`
	TracePath       string        `yaml:"trace_path"` //empty disables the step trace
	LogLevel        string        `yaml:"log_level"`
}

const (
	DefSteps    = 100
	DefLogLevel = "info"
)

var ErrInvalid = errors.New("invalid configuration")

//Default returns the options used when neither a file nor a flag sets a value
func Default() Options {
	return Options{
		Steps:           DefSteps,
		Interval:        engine.DefSimulationInterval,
		MaxSteps:        engine.DefMaxSteps,
		MaxSkippedTicks: engine.DefMaxSkippedTicks,
		Strategy:        string(cascade.DefaultStrategy),
		LogLevel:        DefLogLevel,
	}
}

//Load reads a YAML file over the defaults, keys missing from the file keep their default values
func Load(path string) (Options, error) {
	o := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return o, err
	}
	if err := yaml.Unmarshal(raw, &o); err != nil {
		return o, fmt.Errorf("%s: %w", path, err)
	}
	if err := o.Validate(); err != nil {
		return o, fmt.Errorf("%s: %w", path, err)
	}
	return o, nil
}

//Merge returns o with every non-zero field of flags copied over it
func (o Options) Merge(flags Options) Options {
	if flags.Steps != 0 {
		o.Steps = flags.Steps
	}
	if flags.Interval != 0 {
		o.Interval = flags.Interval
	}
	if flags.MaxSteps != 0 {
		o.MaxSteps = flags.MaxSteps
	}
	if flags.MaxSkippedTicks != 0 {
		o.MaxSkippedTicks = flags.MaxSkippedTicks
	}
	if flags.StopOnSync {
		o.StopOnSync = true
	}
	if flags.Strategy != "" {
		o.Strategy = flags.Strategy
	}
	if flags.Seed != 0 {
		o.Seed = flags.Seed
	}
	if flags.TracePath != "" {
		o.TracePath = flags.TracePath
	}
	if flags.LogLevel != "" {
		o.LogLevel = flags.LogLevel
	}
	return o
}

func (o Options) Validate() error {
	switch {
	case o.Steps < 0:
		return fmt.Errorf("%w: negative steps %d", ErrInvalid, o.Steps)
	case o.MaxSteps < 0:
		return fmt.Errorf("%w: negative max steps %d", ErrInvalid, o.MaxSteps)
	case o.MaxSkippedTicks < 0:
		return fmt.Errorf("%w: negative max skipped ticks %d", ErrInvalid, o.MaxSkippedTicks)
	case o.Interval < 0:
		return fmt.Errorf("%w: negative interval %v", ErrInvalid, o.Interval)
	}
	if _, err := cascade.ParseStrategy(o.Strategy); err != nil {
		return err
	}
	if _, err := o.Level(); err != nil {
		return err
	}
	return nil
}

//Level parses the log level
func (o Options) Level() (logrus.Level, error) {
	l, err := logrus.ParseLevel(o.LogLevel)
	if err != nil {
		return l, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return l, nil
}

//Engine returns the engine options for a field of the given size
func (o Options) Engine(width int, height int, log logrus.FieldLogger) engine.Options {
	strategy, err := cascade.ParseStrategy(o.Strategy)
	if err != nil {
		strategy = cascade.DefaultStrategy
	}
	return engine.Options{
		Width:           width,
		Height:          height,
		Interval:        o.Interval,
		MaxSteps:        o.MaxSteps,
		MaxSkippedTicks: o.MaxSkippedTicks,
		StopOnSync:      o.StopOnSync,
		Strategy:        strategy,
		Seed:            o.Seed,
		Logger:          log,
	}
}
