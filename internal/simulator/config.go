package simulator

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/hanabibots/hanasim/internal/bot"
	"github.com/hanabibots/hanasim/internal/game"
)

// RunConfig represents a complete simulation run configuration
type RunConfig struct {
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Rules      *RulesSettings      `hcl:"rules,block"`
}

// SimulationSettings controls batch size, concurrency and strategy
type SimulationSettings struct {
	Games    int    `hcl:"games,optional"`
	Workers  int    `hcl:"workers,optional"`
	Seed     int64  `hcl:"seed,optional"`
	Strategy string `hcl:"strategy,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// RulesSettings controls the variant every game in the batch is dealt with
type RulesSettings struct {
	Players int   `hcl:"players,optional"`
	Colours int   `hcl:"colours,optional"`
	Copies  []int `hcl:"copies,optional"`
}

// DefaultRunConfig returns the default run configuration
func DefaultRunConfig() *RunConfig {
	return &RunConfig{
		Simulation: &SimulationSettings{
			Games:    1000,
			Workers:  0, // 0 means one worker per CPU
			Seed:     1,
			Strategy: bot.StrategyTracker,
			LogLevel: "info",
		},
		Rules: &RulesSettings{
			Players: 2,
			Colours: 5,
			Copies:  nil, // nil means the standard 3/2/2/2/1 spread
		},
	}
}

// LoadRunConfig loads a run configuration from an HCL file. A missing
// file yields the defaults.
func LoadRunConfig(filename string) (*RunConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultRunConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config RunConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	defaults := DefaultRunConfig()
	if config.Simulation == nil {
		config.Simulation = defaults.Simulation
	}
	if config.Rules == nil {
		config.Rules = defaults.Rules
	}

	// Apply defaults for missing values
	if config.Simulation.Games == 0 {
		config.Simulation.Games = defaults.Simulation.Games
	}
	if config.Simulation.Seed == 0 {
		config.Simulation.Seed = defaults.Simulation.Seed
	}
	if config.Simulation.Strategy == "" {
		config.Simulation.Strategy = defaults.Simulation.Strategy
	}
	if config.Simulation.LogLevel == "" {
		config.Simulation.LogLevel = defaults.Simulation.LogLevel
	}
	if config.Rules.Players == 0 {
		config.Rules.Players = defaults.Rules.Players
	}
	if config.Rules.Colours == 0 {
		config.Rules.Colours = defaults.Rules.Colours
	}

	return &config, nil
}

// Validate validates the run configuration
func (c *RunConfig) Validate() error {
	if c.Simulation.Games <= 0 {
		return fmt.Errorf("games must be positive, got %d", c.Simulation.Games)
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Simulation.Workers)
	}

	valid := false
	for _, strategy := range bot.Strategies() {
		if c.Simulation.Strategy == strategy {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid strategy %q", c.Simulation.Strategy)
	}

	if c.Rules.Players < game.MinPlayers || c.Rules.Players > game.MaxPlayers {
		return fmt.Errorf("players must be between %d and %d, got %d",
			game.MinPlayers, game.MaxPlayers, c.Rules.Players)
	}
	if c.Rules.Colours <= 0 {
		return fmt.Errorf("colours must be positive, got %d", c.Rules.Colours)
	}
	for rank, copies := range c.Rules.Copies {
		if copies <= 0 {
			return fmt.Errorf("rank %d: copies must be positive, got %d", rank+1, copies)
		}
	}

	return nil
}
