package main

import (
	"errors"
	"os"

	"github.com/integrii/flaggy"
	"github.com/sirupsen/logrus"

	"flashsim/src/cascade"
	"flashsim/src/config"
	"flashsim/src/engine"
)

type EnvOptions struct {
	configPath string
	verbose    bool
	input      string //input file, plain or zstd compressed
	challenges string //challenges file, used instead of the input file
	day        int
	example    bool
	template   string
	random     bool
	width      int
	height     int
}

var errNoInput = errors.New("no input: pass an input file or a challenges file")

func main() {
	eo, flags, cmd := initOptions()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	o := config.Default()
	if eo.configPath != "" {
		var err error
		if o, err = config.Load(eo.configPath); err != nil {
			log.WithError(err).Fatal("can't load the configuration")
		}
	}
	o = o.Merge(flags)
	if err := o.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	level, _ := o.Level()
	if eo.verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	if err := execute(cmd, eo, o, log, os.Stdout); err != nil {
		log.WithError(err).WithField("command", cmd).Fatal("command failed")
	}
}

func initOptions() (eo *EnvOptions, flags config.Options, cmd string) {
	eo = &EnvOptions{
		template: engine.TemplateExample,
		width:    engine.DefWidth,
		height:   engine.DefHeight,
	}
	flaggy.SetName("flashsim")
	flaggy.SetDescription("Flash cascade and basin simulations over grids of digits")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.String(&eo.configPath, "f", "config", "YAML configuration file")
	flaggy.Bool(&eo.verbose, "", "verbose", "Log every step")
	flaggy.String(&flags.LogLevel, "", "log-level", "Log level [panic|fatal|error|warn|info|debug|trace]")

	inputFlags := func(sc *flaggy.Subcommand) {
		sc.AddPositionalValue(&eo.input, "input", 1, false, "Input file, .zst files are decompressed")
		sc.String(&eo.challenges, "c", "challenges", "Challenges JSON file to read the input from")
		sc.Int(&eo.day, "d", "day", "Challenge day")
		sc.Bool(&eo.example, "e", "example", "Use the challenge example data")
	}
	strategyFlag := func(sc *flaggy.Subcommand) {
		sc.String(&flags.Strategy, "", "strategy", "Flash processing order [lifo|fifo]")
	}
	engineFlags := func(sc *flaggy.Subcommand) {
		inputFlags(sc)
		strategyFlag(sc)
		sc.Duration(&flags.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
		sc.Int(&flags.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps")
		sc.Bool(&flags.StopOnSync, "y", "stopOnSync", "Finish on the first step flashing every cell")
		sc.String(&flags.TracePath, "t", "trace", "Write a zstd compressed JSONL trace of the steps to this file")
		sc.String(&eo.template, "p", "template", "Seed template when no input is given [example|ring|nines]")
		sc.Bool(&eo.random, "r", "random", "Settle with random data when no input is given")
		sc.Int(&eo.width, "x", "width", "Width of a random field")
		sc.Int(&eo.height, "", "height", "Height of a random field")
		sc.Int64(&flags.Seed, "", "seed", "Random data seed")
	}

	flashCmd := flaggy.NewSubcommand("flash")
	flashCmd.Description = "Count the flashes of the given number of steps"
	inputFlags(flashCmd)
	strategyFlag(flashCmd)
	flashCmd.Int(&flags.Steps, "s", "steps", "Steps to simulate")

	syncCmd := flaggy.NewSubcommand("sync")
	syncCmd.Description = "Find the first step where every cell flashes"
	inputFlags(syncCmd)
	strategyFlag(syncCmd)

	basinsCmd := flaggy.NewSubcommand("basins")
	basinsCmd.Description = "Find the valleys and basins of a heightmap"
	inputFlags(basinsCmd)

	runCmd := flaggy.NewSubcommand("run")
	runCmd.Description = "Run the simulation engine printing the progress"
	engineFlags(runCmd)

	watchCmd := flaggy.NewSubcommand("watch")
	watchCmd.Description = "Start the interactive mode"
	engineFlags(watchCmd)

	for _, sc := range []*flaggy.Subcommand{flashCmd, syncCmd, basinsCmd, runCmd, watchCmd} {
		flaggy.AttachSubcommand(sc, 1)
	}
	flaggy.Parse()

	for _, sc := range []*flaggy.Subcommand{flashCmd, syncCmd, basinsCmd, runCmd, watchCmd} {
		if sc.Used {
			cmd = sc.Name
		}
	}
	if cmd == "" {
		flaggy.ShowHelpAndExit("no command given")
	}
	if _, err := cascade.ParseStrategy(flags.Strategy); err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}
	return
}
