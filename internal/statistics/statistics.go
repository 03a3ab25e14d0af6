package statistics

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/lox/clubsim/internal/deck"
)

// ErrInconsistentTally is returned by Validate when counters disagree
var ErrInconsistentTally = errors.New("inconsistent tally")

// Tally counts how often each club wins. It is indexed by rank so the
// counters live apart from the card values themselves.
type Tally struct {
	HandsPlayed int
	NoWinner    int                // Rounds where no hand held a club
	Wins        [deck.NumRanks]int // Indexed by deck.Rank.Index()
}

// Record adds one completed round. ok is false when the round had no winner.
func (t *Tally) Record(winner deck.Card, ok bool) {
	t.HandsPlayed++
	if !ok || !winner.IsClub() {
		t.NoWinner++
		return
	}
	t.Wins[winner.Rank.Index()]++
}

// WinsFor returns the win count for a club rank
func (t *Tally) WinsFor(rank deck.Rank) int {
	idx := rank.Index()
	if idx < 0 || idx >= deck.NumRanks {
		return 0
	}
	return t.Wins[idx]
}

// LeastWins returns the lowest win count across all clubs
func (t *Tally) LeastWins() int {
	least := t.Wins[0]
	for _, w := range t.Wins[1:] {
		if w < least {
			least = w
		}
	}
	return least
}

// TotalWins returns the sum of all club wins
func (t *Tally) TotalWins() int {
	total := 0
	for _, w := range t.Wins {
		total += w
	}
	return total
}

// Merge folds another tally into this one
func (t *Tally) Merge(other Tally) {
	t.HandsPlayed += other.HandsPlayed
	t.NoWinner += other.NoWinner
	for i, w := range other.Wins {
		t.Wins[i] += w
	}
}

// Validate checks that every played hand produced exactly one winner or was
// counted as winnerless
func (t *Tally) Validate() error {
	if t.HandsPlayed < 0 || t.NoWinner < 0 {
		return fmt.Errorf("%w: negative counters (hands=%d, no_winner=%d)", ErrInconsistentTally, t.HandsPlayed, t.NoWinner)
	}
	for i, w := range t.Wins {
		if w < 0 {
			return fmt.Errorf("%w: negative wins for %s", ErrInconsistentTally, deck.Rank(i)+deck.Two)
		}
	}
	if total := t.TotalWins(); total+t.NoWinner != t.HandsPlayed {
		return fmt.Errorf("%w: %d wins + %d winnerless != %d hands", ErrInconsistentTally, total, t.NoWinner, t.HandsPlayed)
	}
	return nil
}

// Probability is the estimated chance that one club wins a round
type Probability struct {
	Card    deck.Card
	Wins    int
	Defined bool     // False when no hands have been played
	Exact   *big.Rat // wins / hands played; nil when undefined
	Approx  float64
	StdErr  float64
}

// ConfidenceInterval95 returns the normal-approximation 95% interval for the
// estimate, clamped to [0, 1]
func (p Probability) ConfidenceInterval95() (float64, float64) {
	if !p.Defined {
		return math.NaN(), math.NaN()
	}
	margin := 1.96 * p.StdErr
	return math.Max(0, p.Approx-margin), math.Min(1, p.Approx+margin)
}

// String renders the exact ratio, or "undefined"
func (p Probability) String() string {
	if !p.Defined {
		return "undefined"
	}
	return p.Exact.RatString()
}

// Probabilities returns one entry per club in rank order
func (t *Tally) Probabilities() []Probability {
	probs := make([]Probability, deck.NumRanks)
	for i, wins := range t.Wins {
		p := Probability{
			Card: deck.NewCard(deck.Clubs, deck.Rank(i)+deck.Two),
			Wins: wins,
		}
		if t.HandsPlayed > 0 {
			n := float64(t.HandsPlayed)
			p.Defined = true
			p.Exact = big.NewRat(int64(wins), int64(t.HandsPlayed))
			p.Approx = float64(wins) / n
			p.StdErr = math.Sqrt(p.Approx * (1 - p.Approx) / n)
		}
		probs[i] = p
	}
	return probs
}

// ProbabilitySum returns the sum of all club probabilities. It is at most 1
// and falls short only by the share of winnerless rounds.
func (t *Tally) ProbabilitySum() *big.Rat {
	if t.HandsPlayed == 0 {
		return new(big.Rat)
	}
	return big.NewRat(int64(t.TotalWins()), int64(t.HandsPlayed))
}
