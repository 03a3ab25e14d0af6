package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/clubsim/internal/deck"
	"github.com/lox/clubsim/internal/randutil"
	"github.com/lox/clubsim/internal/round"
	"github.com/lox/clubsim/internal/statistics"
)

// ErrInvalidMinWins is returned when the win threshold is below one
var ErrInvalidMinWins = errors.New("min wins must be at least 1")

// DefaultMinWins is the threshold used when none is given
const DefaultMinWins = 1000

// DefaultBatchSize is the number of rounds each worker plays between merges
const DefaultBatchSize = 10000

// ctxCheckInterval is how many sequential rounds run between context checks
const ctxCheckInterval = 1024

// State is the simulation loop state
type State int

const (
	Running State = iota
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// StopReason records why a run ended
type StopReason string

const (
	StopThreshold StopReason = "threshold"
	StopMaxHands  StopReason = "max_hands"
	StopCancelled StopReason = "cancelled"
)

// Config holds configuration for running simulations
type Config struct {
	MinWins          int
	MaxHands         int   // 0 means unbounded
	Seed             int64 // 0 picks a per-process seed
	Workers          int   // 0 or 1 runs sequentially
	BatchSize        int   // Rounds per worker between merges
	ProgressInterval int   // Log progress every N hands; 0 disables
	Logger           *log.Logger
	Clock            quartz.Clock
}

// Result is the final state of a run
type Result struct {
	Tally      statistics.Tally
	MinWins    int
	Seed       int64
	Workers    int
	Elapsed    time.Duration
	StopReason StopReason
}

// HandsPerSecond returns the throughput of the run
func (r *Result) HandsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Tally.HandsPlayed) / r.Elapsed.Seconds()
}

// Simulator deals rounds until every club has won MinWins times
type Simulator struct {
	config Config
	deck   *deck.Deck
	rng    *rand.Rand
	tally  statistics.Tally
	state  State
	logger *log.Logger
	clock  quartz.Clock
}

// New creates a new simulator with the given configuration
func New(config Config) (*Simulator, error) {
	if config.MinWins < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMinWins, config.MinWins)
	}
	if config.MaxHands < 0 {
		return nil, fmt.Errorf("max hands must not be negative: got %d", config.MaxHands)
	}
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.BatchSize < 1 {
		config.BatchSize = DefaultBatchSize
	}
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	config.Seed = randutil.Resolve(config.Seed)

	return &Simulator{
		config: config,
		deck:   deck.New(),
		rng:    randutil.New(config.Seed),
		state:  Running,
		logger: config.Logger,
		clock:  config.Clock,
	}, nil
}

// Seed returns the seed this simulator's random source was built from
func (s *Simulator) Seed() int64 {
	return s.config.Seed
}

// State returns the current loop state
func (s *Simulator) State() State {
	return s.state
}

// Tally returns a copy of the current counters
func (s *Simulator) Tally() statistics.Tally {
	return s.tally
}

// HandsPlayed returns the number of completed rounds
func (s *Simulator) HandsPlayed() int {
	return s.tally.HandsPlayed
}

// LeastWins returns the lowest win count across clubs
func (s *Simulator) LeastWins() int {
	return s.tally.LeastWins()
}

// Done reports whether every club has reached the win threshold
func (s *Simulator) Done() bool {
	return s.tally.LeastWins() >= s.config.MinWins
}

// PlayRound shuffles, deals and records one round
func (s *Simulator) PlayRound() round.Outcome {
	outcome := playRound(s.deck, s.rng, &s.tally)
	if s.logger.GetLevel() > log.DebugLevel {
		return outcome
	}
	if outcome.HasWinner {
		s.logger.Debug("Round played", "hand", s.tally.HandsPlayed, "winner", outcome.Winner)
	} else {
		s.logger.Debug("Round played without a winner", "hand", s.tally.HandsPlayed)
	}
	return outcome
}

// playRound is shared by the sequential loop and the workers
func playRound(d *deck.Deck, rng *rand.Rand, tally *statistics.Tally) round.Outcome {
	// A shuffled deck always has 52 cards, so Play cannot fail here.
	outcome, _ := round.Play(d.Shuffle(rng))
	tally.Record(outcome.Winner, outcome.HasWinner)
	return outcome
}

// Run plays rounds until the stopping rule holds, the hand cap is reached or
// ctx is cancelled. On cancellation the partial result is returned together
// with ctx.Err().
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	start := s.clock.Now()
	s.logger.Info("Starting simulation",
		"min_wins", s.config.MinWins,
		"seed", s.config.Seed,
		"workers", s.config.Workers,
		"max_hands", s.config.MaxHands)

	var reason StopReason
	var err error
	if s.config.Workers > 1 {
		reason, err = s.runParallel(ctx)
	} else {
		reason, err = s.runSequential(ctx)
	}
	s.state = Stopped

	result := &Result{
		Tally:      s.tally,
		MinWins:    s.config.MinWins,
		Seed:       s.config.Seed,
		Workers:    s.config.Workers,
		Elapsed:    s.clock.Since(start),
		StopReason: reason,
	}

	if verr := s.tally.Validate(); verr != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", verr)
	}

	s.logger.Info("Simulation stopped",
		"reason", reason,
		"hands", result.Tally.HandsPlayed,
		"least_wins", result.Tally.LeastWins(),
		"elapsed", result.Elapsed)

	return result, err
}

// stopReason evaluates the stopping rule at the top of an iteration
func (s *Simulator) stopReason() (StopReason, bool) {
	if s.Done() {
		return StopThreshold, true
	}
	if s.config.MaxHands > 0 && s.tally.HandsPlayed >= s.config.MaxHands {
		return StopMaxHands, true
	}
	return "", false
}

func (s *Simulator) runSequential(ctx context.Context) (StopReason, error) {
	for i := 0; ; i++ {
		if reason, stop := s.stopReason(); stop {
			return reason, nil
		}
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return StopCancelled, err
			}
		}
		s.PlayRound()
		s.logProgress()
	}
}

// runParallel plays batches on independent per-worker tallies and merges them
// after each batch, so the shared tally is only touched by this goroutine.
func (s *Simulator) runParallel(ctx context.Context) (StopReason, error) {
	workers := s.config.Workers

	for {
		if reason, stop := s.stopReason(); stop {
			return reason, nil
		}
		if err := ctx.Err(); err != nil {
			return StopCancelled, err
		}

		sizes := s.batchSizes(workers)
		tallies := make([]statistics.Tally, workers)
		seeds := make([]int64, workers)
		for w := range seeds {
			seeds[w] = s.rng.Int64()
		}

		g, gctx := errgroup.WithContext(ctx)
		for w := 0; w < workers; w++ {
			g.Go(func() error {
				rng := randutil.New(seeds[w])
				for i := 0; i < sizes[w]; i++ {
					if i%ctxCheckInterval == 0 {
						if err := gctx.Err(); err != nil {
							return err
						}
					}
					playRound(s.deck, rng, &tallies[w])
				}
				return nil
			})
		}
		err := g.Wait()

		// Cancelled workers still hold complete rounds, so merge them either way.
		before := s.tally.HandsPlayed
		for _, t := range tallies {
			s.tally.Merge(t)
		}
		s.logger.Debug("Batch merged", "hands", s.tally.HandsPlayed, "least_wins", s.tally.LeastWins())
		s.logProgressSince(before)

		if err != nil {
			return StopCancelled, err
		}
	}
}

// batchSizes splits the next batch across workers, respecting MaxHands
func (s *Simulator) batchSizes(workers int) []int {
	total := s.config.BatchSize * workers
	if s.config.MaxHands > 0 {
		if remaining := s.config.MaxHands - s.tally.HandsPlayed; remaining < total {
			total = remaining
		}
	}

	sizes := make([]int, workers)
	per, remainder := total/workers, total%workers
	for w := range sizes {
		sizes[w] = per
		if w < remainder {
			sizes[w]++
		}
	}
	return sizes
}

func (s *Simulator) logProgress() {
	interval := s.config.ProgressInterval
	if interval > 0 && s.tally.HandsPlayed%interval == 0 {
		s.logger.Info("Progress", "hands", s.tally.HandsPlayed, "least_wins", s.tally.LeastWins())
	}
}

// logProgressSince logs once if a progress boundary was crossed since before
func (s *Simulator) logProgressSince(before int) {
	interval := s.config.ProgressInterval
	if interval > 0 && s.tally.HandsPlayed/interval > before/interval {
		s.logger.Info("Progress", "hands", s.tally.HandsPlayed, "least_wins", s.tally.LeastWins())
	}
}

// RunSimulation is a convenience function for running a simulation with basic parameters
func RunSimulation(ctx context.Context, minWins int, seed int64, logger *log.Logger) (*Result, error) {
	sim, err := New(Config{
		MinWins: minWins,
		Seed:    seed,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}
	return sim.Run(ctx)
}
