package rulebased

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bran/tractor/internal/card"
	"github.com/bran/tractor/internal/deck"
)

func TestEvaluateDeclarationAbstainsOnAFlatHand(t *testing.T) {
	hand := []card.Card{
		c(card.Clubs, card.Three), c(card.Diamonds, card.Four),
		c(card.Hearts, card.Five), c(card.Spades, card.Six),
	}

	e := New(DefaultConfig(), nil)
	suit, ok := e.evaluateDeclaration(deck.NewWith(hand), card.Two)
	require.False(t, ok)
	require.Equal(t, card.NoSuit, suit)
}

func TestEvaluateDeclarationUsesDominantSuitLength(t *testing.T) {
	hand := make([]card.Card, 0, 9)
	for i := 0; i < 9; i++ {
		hand = append(hand, card.NewCard(card.Clubs, card.Rank(3+i), 0))
	}

	e := New(DefaultConfig(), nil)
	suit, ok := e.evaluateDeclaration(deck.NewWith(hand), card.Two)
	require.True(t, ok)
	require.Equal(t, card.Clubs, suit)
}

func TestEvaluateDeclarationPrefersTrumpRankBackedSuit(t *testing.T) {
	hand := []card.Card{
		c(card.Clubs, card.Two), c2(card.Clubs, card.Two), c(card.Clubs, card.Three), c(card.Clubs, card.Four),
		c(card.Diamonds, card.Three), c(card.Diamonds, card.Four), c(card.Diamonds, card.Five),
	}

	e := New(DefaultConfig(), nil)
	suit, ok := e.evaluateDeclaration(deck.NewWith(hand), card.Two)
	require.True(t, ok)
	require.Equal(t, card.Clubs, suit)
}

func TestDominantSuitPicksTheLongestSuit(t *testing.T) {
	counts := map[card.Suit]int{card.Clubs: 3, card.Hearts: 7, card.Spades: 2}
	suit, n := dominantSuit(counts)
	require.Equal(t, card.Hearts, suit)
	require.Equal(t, 7, n)
}
