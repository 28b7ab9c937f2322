// Package statistics aggregates results across many simulated games.
package statistics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/hanabibots/hanasim/internal/game"
)

// GameResult represents the outcome of a single simulated game
type GameResult struct {
	Score    int           // Cards successfully played
	Status   game.Status   // Terminal status
	Turns    int           // Moves applied before termination
	Seed     int64         // RNG seed for this game (for replay)
	Duration time.Duration // Wall-clock time the game took
}

// Statistics tracks score distribution and outcome counts for a batch of
// simulated games.
type Statistics struct {
	Games     int
	SumScore  float64
	SumScore2 float64   // Sum of squares for variance calculation
	Scores    []float64 // All scores for median/percentile calculation

	// Outcome counts
	Won            int
	LostByStrikes  int
	LostByDeck     int
	MaxScore       int
	MinScore       int
	TotalTurns     int
	TotalDuration  time.Duration
	WorstSeed      int64 // Seed of the lowest-scoring game
	BestSeed       int64 // Seed of the highest-scoring game
	haveFirstScore bool
}

// Add incorporates a new game result into the statistics
func (s *Statistics) Add(result GameResult) {
	score := float64(result.Score)
	s.Games++
	s.SumScore += score
	s.SumScore2 += score * score
	s.Scores = append(s.Scores, score)
	s.TotalTurns += result.Turns
	s.TotalDuration += result.Duration

	switch result.Status {
	case game.Won:
		s.Won++
	case game.LostByStrikes:
		s.LostByStrikes++
	case game.LostByDeckExhaustion:
		s.LostByDeck++
	}

	if !s.haveFirstScore || result.Score > s.MaxScore {
		s.MaxScore = result.Score
		s.BestSeed = result.Seed
	}
	if !s.haveFirstScore || result.Score < s.MinScore {
		s.MinScore = result.Score
		s.WorstSeed = result.Seed
	}
	s.haveFirstScore = true
}

// Merge folds another batch into this one
func (s *Statistics) Merge(other *Statistics) {
	if other.Games == 0 {
		return
	}
	s.Games += other.Games
	s.SumScore += other.SumScore
	s.SumScore2 += other.SumScore2
	s.Scores = append(s.Scores, other.Scores...)
	s.Won += other.Won
	s.LostByStrikes += other.LostByStrikes
	s.LostByDeck += other.LostByDeck
	s.TotalTurns += other.TotalTurns
	s.TotalDuration += other.TotalDuration

	if !s.haveFirstScore || other.MaxScore > s.MaxScore {
		s.MaxScore = other.MaxScore
		s.BestSeed = other.BestSeed
	}
	if !s.haveFirstScore || other.MinScore < s.MinScore {
		s.MinScore = other.MinScore
		s.WorstSeed = other.WorstSeed
	}
	s.haveFirstScore = true
}

// Mean returns the arithmetic mean score per game
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumScore / float64(s.Games)
}

// Variance returns the sample variance of all scores
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumScore2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of all scores
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median score
func (s *Statistics) Median() float64 {
	if len(s.Scores) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Scores))
	copy(sorted, s.Scores)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the score at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Scores) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Scores))
	copy(sorted, s.Scores)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// WinRate returns the fraction of games won
func (s *Statistics) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Won) / float64(s.Games)
}

// MeanTurns returns the mean number of turns per game
func (s *Statistics) MeanTurns() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalTurns) / float64(s.Games)
}

// MeanDuration returns the mean wall-clock time per game
func (s *Statistics) MeanDuration() time.Duration {
	if s.Games == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.Games)
}

// Validate performs consistency checks on the aggregated data
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}
	if len(s.Scores) != s.Games {
		return fmt.Errorf("scores array length (%d) does not match games count (%d)", len(s.Scores), s.Games)
	}
	outcomes := s.Won + s.LostByStrikes + s.LostByDeck
	if outcomes != s.Games {
		return fmt.Errorf("outcome counts total %d, want %d", outcomes, s.Games)
	}
	if s.MinScore > s.MaxScore {
		return fmt.Errorf("min score %d exceeds max score %d", s.MinScore, s.MaxScore)
	}
	return nil
}
