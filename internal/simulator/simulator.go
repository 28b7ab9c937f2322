// Package simulator drives batches of bot-played games and aggregates
// their results.
package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/hanabibots/hanasim/internal/bot"
	"github.com/hanabibots/hanasim/internal/game"
	"github.com/hanabibots/hanasim/internal/randutil"
	"github.com/hanabibots/hanasim/internal/statistics"
)

// Games are bounded well above any reachable turn count so a buggy
// strategy cannot wedge a worker.
const maxTurnsPerGame = 1000

// Config holds configuration for running simulations
type Config struct {
	Games    int
	Players  int
	Colours  int
	Copies   []int
	Seed     int64
	Workers  int
	Strategy string
	Logger   *log.Logger
	Clock    quartz.Clock
}

// Simulator runs batches of games
type Simulator struct {
	config Config
	clock  quartz.Clock
}

// New creates a new simulator with the given configuration. A nil Logger
// discards log output and a nil Clock uses real time.
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	clock := config.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Simulator{config: config, clock: clock}
}

// Run plays the configured number of games across a worker pool and
// returns the aggregated statistics. Game i is seeded with Seed+i, so a
// batch is reproducible and any single game can be replayed from its
// recorded seed.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	workers := s.config.Workers
	if workers > s.config.Games {
		workers = s.config.Games
	}
	batches := make(chan *statistics.Statistics, workers)

	group, ctx := errgroup.WithContext(ctx)

	// Each worker aggregates its own batch; game i always carries seed
	// Seed+i no matter which worker draws it.
	for w := 0; w < workers; w++ {
		group.Go(func() error {
			batch := &statistics.Statistics{}
			for i := w; i < s.config.Games; i += workers {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}

				gameSeed := s.config.Seed + int64(i)
				result, err := s.playGame(gameSeed)
				if err != nil {
					return fmt.Errorf("game with seed %d: %w", gameSeed, err)
				}
				batch.Add(result)
			}
			batches <- batch
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	close(batches)

	stats := &statistics.Statistics{}
	for batch := range batches {
		stats.Merge(batch)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// playGame runs one game to termination with a bot on every seat
func (s *Simulator) playGame(seed int64) (statistics.GameResult, error) {
	g, err := game.NewGame(game.Config{
		Players: s.config.Players,
		Colours: s.config.Colours,
		Copies:  s.config.Copies,
		Seed:    seed,
	}, s.config.Logger)
	if err != nil {
		return statistics.GameResult{}, err
	}

	// One RNG per game keeps bot decisions independent of how games are
	// scheduled across workers.
	rng := randutil.New(seed)
	bots := make([]bot.Bot, g.Players())
	for seat := range bots {
		bots[seat], err = bot.New(s.config.Strategy, seat, rng, s.config.Logger)
		if err != nil {
			return statistics.GameResult{}, err
		}
	}

	start := s.clock.Now()
	for turn := 0; g.Status() == game.InProgress; turn++ {
		if turn >= maxTurnsPerGame {
			return statistics.GameResult{}, fmt.Errorf("game exceeded %d turns", maxTurnsPerGame)
		}

		seat := g.CurrentPlayer()
		move, err := bots[seat].Act(g, seat)
		if err != nil {
			return statistics.GameResult{}, fmt.Errorf("seat %d: %w", seat, err)
		}
		rec, err := g.Apply(move)
		if err != nil {
			return statistics.GameResult{}, fmt.Errorf("seat %d move %v: %w", seat, move, err)
		}
		for _, b := range bots {
			b.Observe(rec)
		}
	}
	elapsed := s.clock.Since(start)

	s.config.Logger.Debug("game finished",
		"seed", seed,
		"status", g.Status(),
		"score", g.Score(),
		"turns", g.Turn())

	return statistics.GameResult{
		Score:    g.Score(),
		Status:   g.Status(),
		Turns:    g.Turn(),
		Seed:     seed,
		Duration: elapsed,
	}, nil
}
