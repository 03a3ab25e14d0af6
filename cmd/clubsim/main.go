package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/clubsim/internal/config"
	"github.com/lox/clubsim/internal/report"
	"github.com/lox/clubsim/internal/simulator"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	MinWins  int              `arg:"" optional:"" help:"Stop once every club has won at least this many times"`
	Seed     *int64           `help:"Random seed for reproducible results"`
	Workers  int              `short:"w" help:"Number of parallel workers (default from config, else 1)"`
	MaxHands int              `help:"Stop after this many hands even if the threshold is not met (0 = unbounded)"`
	Config   string           `short:"c" default:"clubsim.hcl" type:"path" help:"HCL configuration file"`
	JSON     string           `help:"Also write the report as JSON to this file"`
	NoColor  bool             `help:"Disable colored output"`
	Yes      bool             `short:"y" help:"Skip the confirmation prompt when no threshold is given"`
	Verbose  bool             `short:"v" help:"Verbose logging"`
	Version  kong.VersionFlag `help:"Show version"`
}

// Validate rejects thresholds kong cannot catch on its own
func (c *CLI) Validate() error {
	if c.MinWins < 0 {
		return fmt.Errorf("min-wins must be a positive integer, got %d", c.MinWins)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.MaxHands < 0 {
		return fmt.Errorf("max-hands must not be negative, got %d", c.MaxHands)
	}
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("clubsim"),
		kong.Description("Estimate how often each club wins the lead-club round.\n\n"+
			"With no MIN-WINS the simulation runs until each club wins 1000 times. This can take a very long time, "+
			"since the two of clubs only wins when a single player is dealt every club."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version},
	)

	err := run(&cli, os.Stdin, os.Stdout, os.Stderr)
	if errors.Is(err, errDeclined) {
		ctx.Exit(0)
	}
	ctx.FatalIfErrorf(err)
}

var errDeclined = errors.New("run declined")

func run(cli *CLI, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cli.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := cfg.Level()
	if cli.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(stderr, log.Options{Level: level, ReportTimestamp: true})

	if cli.MinWins == 0 && !cli.Yes {
		fmt.Fprintf(stdout, "Running until every club wins %d times takes a long time.\n", cfg.Simulation.MinWins)
		if !confirm(stdin, stdout) {
			return errDeclined
		}
	}

	sim, err := simulator.New(simulator.Config{
		MinWins:          cfg.Simulation.MinWins,
		MaxHands:         cfg.Simulation.MaxHands,
		Seed:             cfg.Simulation.Seed,
		Workers:          cfg.Simulation.Workers,
		BatchSize:        cfg.Simulation.BatchSize,
		ProgressInterval: cfg.Simulation.ProgressInterval,
		Logger:           logger,
	})
	if err != nil {
		return err
	}

	runCtx := setupSignalHandler(logger)
	result, err := sim.Run(runCtx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil {
		logger.Warn("Simulation interrupted, reporting partial results", "hands", result.Tally.HandsPlayed)
	}

	rep := report.New(result)
	if err := rep.Render(stdout, cfg.ColorEnabled()); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	if cfg.Output.JSONFile != "" {
		if err := rep.SaveJSON(cfg.Output.JSONFile); err != nil {
			return fmt.Errorf("failed to write JSON report: %w", err)
		}
		logger.Info("Wrote JSON report", "file", cfg.Output.JSONFile)
	}
	return nil
}

// apply layers command line flags over the loaded configuration
func (c *CLI) apply(cfg *config.Config) {
	if c.MinWins > 0 {
		cfg.Simulation.MinWins = c.MinWins
	}
	if c.Seed != nil {
		cfg.Simulation.Seed = *c.Seed
	}
	if c.Workers > 0 {
		cfg.Simulation.Workers = c.Workers
	}
	if c.MaxHands > 0 {
		cfg.Simulation.MaxHands = c.MaxHands
	}
	if c.JSON != "" {
		cfg.Output.JSONFile = c.JSON
	}
	if c.NoColor {
		disabled := false
		cfg.Output.Color = &disabled
	}
}

// confirm asks the user to continue; anything but y/yes declines
func confirm(stdin io.Reader, stdout io.Writer) bool {
	fmt.Fprint(stdout, "Are you sure? (yN). ")
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
