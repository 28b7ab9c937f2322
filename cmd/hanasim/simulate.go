package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hanabibots/hanasim/cmd/hanasim/shared"
	"github.com/hanabibots/hanasim/internal/simulator"
	"github.com/hanabibots/hanasim/internal/statistics"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

// SimulateCmd runs a batch of games with one bot strategy on every seat
type SimulateCmd struct {
	Games    int    `help:"Number of games to simulate (overrides config file)"`
	Players  int    `help:"Players per game, 2-5 (overrides config file)"`
	Colours  int    `help:"Colours in the deck, 1-5 (overrides config file)"`
	Seed     int64  `help:"Base RNG seed; game i uses seed+i (overrides config file)"`
	Workers  int    `help:"Concurrent games, 0 for one per CPU (overrides config file)"`
	Strategy string `help:"Bot strategy: random, cautious, tracker (overrides config file)"`
	Config   string `default:"hanasim.hcl" type:"path" help:"HCL run configuration file"`
	Debug    bool   `help:"Debug logging"`
}

// Run executes the simulate command
func (c *SimulateCmd) Run() error {
	config, err := simulator.LoadRunConfig(c.Config)
	if err != nil {
		return err
	}
	c.applyOverrides(config)
	if err := config.Validate(); err != nil {
		return err
	}

	logger := shared.SetupLogger(c.Debug)
	ctx := shared.SetupSignalHandler(logger)

	logger.Info("starting simulation",
		"games", config.Simulation.Games,
		"players", config.Rules.Players,
		"strategy", config.Simulation.Strategy,
		"seed", config.Simulation.Seed)

	sim := simulator.New(simulator.Config{
		Games:    config.Simulation.Games,
		Players:  config.Rules.Players,
		Colours:  config.Rules.Colours,
		Copies:   config.Rules.Copies,
		Seed:     config.Simulation.Seed,
		Workers:  config.Simulation.Workers,
		Strategy: config.Simulation.Strategy,
		Logger:   logger,
	})

	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	printSummary(stats, config, elapsed)
	return nil
}

func (c *SimulateCmd) applyOverrides(config *simulator.RunConfig) {
	if c.Games > 0 {
		config.Simulation.Games = c.Games
	}
	if c.Players > 0 {
		config.Rules.Players = c.Players
	}
	if c.Colours > 0 {
		config.Rules.Colours = c.Colours
	}
	if c.Seed != 0 {
		config.Simulation.Seed = c.Seed
	}
	if c.Workers > 0 {
		config.Simulation.Workers = c.Workers
	}
	if c.Strategy != "" {
		config.Simulation.Strategy = c.Strategy
	}
}

func printSummary(stats *statistics.Statistics, config *simulator.RunConfig, elapsed time.Duration) {
	low, high := stats.ConfidenceInterval95()

	fmt.Println()
	fmt.Println(headerStyle.Render(fmt.Sprintf("=== %d games, %d players, %s strategy ===",
		stats.Games, config.Rules.Players, config.Simulation.Strategy)))

	fmt.Printf("%s %.3f ± %.3f (95%% CI [%.3f, %.3f])\n",
		labelStyle.Render("Mean score:"), stats.Mean(), 1.96*stats.StdError(), low, high)
	fmt.Printf("%s %.1f   %s %.3f\n",
		labelStyle.Render("Median:"), stats.Median(),
		labelStyle.Render("Std dev:"), stats.StdDev())
	fmt.Printf("%s P5=%.0f P25=%.0f P75=%.0f P95=%.0f\n",
		labelStyle.Render("Percentiles:"),
		stats.Percentile(0.05), stats.Percentile(0.25),
		stats.Percentile(0.75), stats.Percentile(0.95))

	fmt.Println()
	fmt.Printf("%s %s\n", labelStyle.Render("Won:"),
		winStyle.Render(fmt.Sprintf("%d (%.1f%%)", stats.Won, stats.WinRate()*100)))
	fmt.Printf("%s %s\n", labelStyle.Render("Lost by strikes:"),
		lossStyle.Render(fmt.Sprintf("%d", stats.LostByStrikes)))
	fmt.Printf("%s %s\n", labelStyle.Render("Lost by deck exhaustion:"),
		lossStyle.Render(fmt.Sprintf("%d", stats.LostByDeck)))

	fmt.Println()
	fmt.Printf("%s best %d (seed %d), worst %d (seed %d)\n",
		labelStyle.Render("Extremes:"),
		stats.MaxScore, stats.BestSeed, stats.MinScore, stats.WorstSeed)
	fmt.Printf("%s %.1f turns/game, %v total (%.0f games/s)\n",
		labelStyle.Render("Throughput:"), stats.MeanTurns(), elapsed.Round(time.Millisecond),
		float64(stats.Games)/elapsed.Seconds())
}
