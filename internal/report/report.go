// Package report turns a finished simulation into per-club win
// probabilities and renders them as text or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/lox/clubsim/internal/fileutil"
	"github.com/lox/clubsim/internal/simulator"
	"github.com/lox/clubsim/internal/statistics"
)

// Row is one club's line in the report
type Row struct {
	Card        string   `json:"card"`
	Rank        int      `json:"rank"`
	Wins        int      `json:"wins"`
	Probability string   `json:"probability"` // Exact ratio, or "undefined"
	Approx      *float64 `json:"approx"`      // nil when undefined
	StdErr      *float64 `json:"std_err,omitempty"`
	CILow       *float64 `json:"ci95_low,omitempty"`
	CIHigh      *float64 `json:"ci95_high,omitempty"`
}

// Report is the data behind the final summary
type Report struct {
	HandsPlayed    int           `json:"hands_played"`
	NoWinnerHands  int           `json:"no_winner_hands"`
	MinWins        int           `json:"min_wins"`
	LeastWins      int           `json:"least_wins"`
	Seed           int64         `json:"seed"`
	Workers        int           `json:"workers"`
	StopReason     string        `json:"stop_reason"`
	Elapsed        time.Duration `json:"-"`
	ElapsedSeconds float64       `json:"elapsed_seconds"`
	HandsPerSecond float64       `json:"hands_per_second"`
	ProbabilitySum string        `json:"probability_sum"`
	Rows           []Row         `json:"clubs"`
}

// New builds a report from a simulation result
func New(result *simulator.Result) *Report {
	tally := result.Tally
	r := &Report{
		HandsPlayed:    tally.HandsPlayed,
		NoWinnerHands:  tally.NoWinner,
		MinWins:        result.MinWins,
		LeastWins:      tally.LeastWins(),
		Seed:           result.Seed,
		Workers:        result.Workers,
		StopReason:     string(result.StopReason),
		Elapsed:        result.Elapsed,
		ElapsedSeconds: result.Elapsed.Seconds(),
		HandsPerSecond: result.HandsPerSecond(),
		ProbabilitySum: tally.ProbabilitySum().RatString(),
	}

	for _, p := range tally.Probabilities() {
		r.Rows = append(r.Rows, newRow(p))
	}
	return r
}

func newRow(p statistics.Probability) Row {
	row := Row{
		Card:        p.Card.String(),
		Rank:        int(p.Card.Rank),
		Wins:        p.Wins,
		Probability: p.String(),
	}
	if !p.Defined {
		return row
	}

	low, high := p.ConfidenceInterval95()
	row.Approx = ptr(p.Approx)
	row.StdErr = ptr(p.StdErr)
	row.CILow = ptr(low)
	row.CIHigh = ptr(high)
	return row
}

func ptr(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// WriteJSON encodes the report as indented JSON
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// SaveJSON writes the report to filename atomically
func (r *Report) SaveJSON(filename string) error {
	return fileutil.WriteAtomic(filename, 0o644, r.WriteJSON)
}
