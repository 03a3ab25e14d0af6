package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/clubsim/internal/deck"
	"github.com/lox/clubsim/internal/simulator"
	"github.com/lox/clubsim/internal/statistics"
)

func sampleResult() *simulator.Result {
	tally := statistics.Tally{HandsPlayed: 8}
	tally.Wins[deck.Ace.Index()] = 4
	tally.Wins[deck.King.Index()] = 3
	tally.Wins[deck.Two.Index()] = 1

	return &simulator.Result{
		Tally:      tally,
		MinWins:    1,
		Seed:       42,
		Workers:    1,
		Elapsed:    2 * time.Second,
		StopReason: simulator.StopMaxHands,
	}
}

func TestNew(t *testing.T) {
	r := New(sampleResult())

	assert.Equal(t, 8, r.HandsPlayed)
	assert.Equal(t, 0, r.LeastWins)
	assert.Equal(t, int64(42), r.Seed)
	assert.Equal(t, "max_hands", r.StopReason)
	assert.InDelta(t, 4.0, r.HandsPerSecond, 1e-9)
	assert.InDelta(t, 2.0, r.ElapsedSeconds, 1e-9)
	assert.Equal(t, "1", r.ProbabilitySum)

	require.Len(t, r.Rows, deck.NumRanks)
	assert.Equal(t, "2♣", r.Rows[0].Card)
	assert.Equal(t, 2, r.Rows[0].Rank)
	assert.Equal(t, "1/8", r.Rows[0].Probability)

	ace := r.Rows[deck.Ace.Index()]
	assert.Equal(t, "A♣", ace.Card)
	assert.Equal(t, 14, ace.Rank)
	assert.Equal(t, 4, ace.Wins)
	assert.Equal(t, "1/2", ace.Probability)
	require.NotNil(t, ace.Approx)
	assert.InDelta(t, 0.5, *ace.Approx, 1e-12)
	require.NotNil(t, ace.CILow)
	require.NotNil(t, ace.CIHigh)
}

func TestNew_Undefined(t *testing.T) {
	r := New(&simulator.Result{MinWins: 1, StopReason: simulator.StopCancelled})

	assert.Zero(t, r.HandsPlayed)
	assert.Equal(t, "0", r.ProbabilitySum)
	for _, row := range r.Rows {
		assert.Equal(t, "undefined", row.Probability)
		assert.Nil(t, row.Approx)
		assert.Nil(t, row.CILow)
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(sampleResult()).Render(&buf, false))
	out := buf.String()

	assert.Contains(t, out, "after playing 8 hands in 2s - 4 hands per second:")
	assert.Contains(t, out, "A♣")
	assert.Contains(t, out, "1/2")
	assert.Contains(t, out, "0.5000")
	assert.Contains(t, out, "0.1250")
	assert.Contains(t, out, "seed 42")
	assert.Contains(t, out, "stopped on max_hands")
	assert.NotContains(t, out, "\x1b[", "no escape codes without color")

	// Header + 13 clubs.
	lines := strings.Split(out, "\n")
	assert.GreaterOrEqual(t, len(lines), 15)
}

func TestRender_Undefined(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&simulator.Result{MinWins: 1}).Render(&buf, false))
	assert.Contains(t, buf.String(), "undefined")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(sampleResult()).WriteJSON(&buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, float64(8), decoded["hands_played"])
	assert.Equal(t, "max_hands", decoded["stop_reason"])
	clubs, ok := decoded["clubs"].([]any)
	require.True(t, ok)
	assert.Len(t, clubs, deck.NumRanks)
}

func TestSaveJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, New(sampleResult()).SaveJSON(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 8, decoded.HandsPlayed)
	assert.Equal(t, "1/2", decoded.Rows[deck.Ace.Index()].Probability)
}
