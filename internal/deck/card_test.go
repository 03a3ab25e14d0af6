package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeCard(t *testing.T) {
	t.Parallel()

	t.Run("ace is normalized to high rank", func(t *testing.T) {
		t.Parallel()
		card := MakeCard(1, Clubs)
		assert.Equal(t, Ace, card.Rank)
		assert.Equal(t, 14, int(card.Rank))
		assert.Equal(t, Clubs, card.Suit)
	})

	t.Run("other faces keep their value", func(t *testing.T) {
		t.Parallel()
		for face := 2; face <= 13; face++ {
			card := MakeCard(face, Hearts)
			assert.Equal(t, face, int(card.Rank))
		}
	})
}

func TestLeadValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2, Club(2).LeadValue())
	assert.Equal(t, 14, Club(1).LeadValue())
	assert.Equal(t, 15, MakeCard(2, Spades).LeadValue())

	// Every club must sort below every non-club.
	d := New()
	for _, club := range d.Suit(Clubs) {
		for _, other := range d.Cards() {
			if other.IsClub() {
				continue
			}
			assert.Less(t, club.LeadValue(), other.LeadValue(), "%s vs %s", club, other)
		}
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b Card
		want bool
	}{
		{"same rank and suit", Club(5), Club(5), true},
		{"ace built from 1 and Ace", Club(1), NewCard(Clubs, Ace), true},
		{"same suit different rank", Club(5), Club(6), false},
		{"same rank different suit", Club(5), MakeCard(5, Diamonds), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
			assert.Equal(t, tt.want, tt.b.Equal(tt.a))
		})
	}
}

func TestCardString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "A♣", Club(1).String())
	assert.Equal(t, "T♥", MakeCard(10, Hearts).String())
	assert.Equal(t, "2♠", MakeCard(2, Spades).String())
	assert.Equal(t, "?", Suit(9).String())
	assert.Equal(t, "?", Rank(1).String())
}

func TestRankIndex(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Two.Index())
	assert.Equal(t, NumRanks-1, Ace.Index())
}

func TestParseCards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:     "mixed suits",
			input:    "Ac2hTd",
			expected: []Card{Club(1), MakeCard(2, Hearts), MakeCard(10, Diamonds)},
		},
		{
			name:     "case insensitive with spaces",
			input:    "ks qC",
			expected: []Card{MakeCard(13, Spades), Club(12)},
		},
		{name: "invalid rank", input: "Xc", wantErr: true},
		{name: "invalid suit", input: "Ax", wantErr: true},
		{name: "odd length", input: "AcK", wantErr: true},
		{name: "empty string", input: "", expected: []Card{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseCards(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMustParseCardsPanics(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []Card{Club(2)}, MustParseCards("2c"))
	assert.Panics(t, func() { MustParseCards("invalid") })
}
