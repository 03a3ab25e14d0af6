// Package round evaluates a single deal: splitting a shuffled deck into four
// hands, choosing each hand's lead club and picking the round's winner.
package round

import (
	"fmt"

	"github.com/lox/clubsim/internal/deck"
)

const (
	// NumHands is the number of players dealt in
	NumHands = 4
	// HandSize is the number of cards per hand
	HandSize = deck.Size / NumHands
)

// Hand is one player's cards in deal order
type Hand []deck.Card

// Lead is the lead club chosen from a hand. Present is false when the hand
// holds no club.
type Lead struct {
	Card    deck.Card
	Present bool
}

// Outcome is the full result of one deal
type Outcome struct {
	Hands     [NumHands]Hand
	Leads     [NumHands]Lead
	Winner    deck.Card
	HasWinner bool
}

// Partition splits a shuffled deck into four contiguous hands of thirteen,
// preserving order. The hands share the backing array of cards.
func Partition(cards []deck.Card) ([NumHands]Hand, error) {
	var hands [NumHands]Hand
	if len(cards) != deck.Size {
		return hands, fmt.Errorf("cannot partition %d cards: need %d", len(cards), deck.Size)
	}

	for i := range hands {
		start := i * HandSize
		hands[i] = Hand(cards[start : start+HandSize : start+HandSize])
	}
	return hands, nil
}

// LeadCard returns the club with the lowest lead value in hand. The second
// result is false when the hand holds no club.
func LeadCard(hand Hand) (deck.Card, bool) {
	var lowest deck.Card
	found := false
	for _, card := range hand {
		if !found || card.LeadValue() < lowest.LeadValue() {
			lowest = card
			found = true
		}
	}

	// Clubs always have the lowest lead values, so if the minimum is not a
	// club there are none.
	if !found || !lowest.IsClub() {
		return deck.Card{}, false
	}
	return lowest, true
}

// LeadCards maps LeadCard over hands, keeping hand order
func LeadCards(hands []Hand) []Lead {
	leads := make([]Lead, len(hands))
	for i, hand := range hands {
		card, ok := LeadCard(hand)
		leads[i] = Lead{Card: card, Present: ok}
	}
	return leads
}

// WinningCard returns the highest-ranked present lead. The second result is
// false when no lead is present.
func WinningCard(leads []Lead) (deck.Card, bool) {
	var best deck.Card
	found := false
	for _, lead := range leads {
		if !lead.Present {
			continue
		}
		if !found || lead.Card.Rank > best.Rank {
			best = lead.Card
			found = true
		}
	}
	return best, found
}

// Play evaluates one shuffled deck
func Play(shuffled []deck.Card) (Outcome, error) {
	var outcome Outcome

	hands, err := Partition(shuffled)
	if err != nil {
		return outcome, err
	}
	outcome.Hands = hands

	leads := LeadCards(hands[:])
	copy(outcome.Leads[:], leads)
	outcome.Winner, outcome.HasWinner = WinningCard(leads)
	return outcome, nil
}
