package rulebased

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bran/tractor/internal/card"
	"github.com/bran/tractor/internal/combo"
	"github.com/bran/tractor/internal/deck"
	"github.com/bran/tractor/internal/state"
	"github.com/bran/tractor/internal/trick"
)

// newTestRound deals a throwaway round and rewinds it to Playing so
// individual scenario tests can overwrite hands and the current trick
// freely, matching the fixture style internal/context's tests use.
func newTestRound(t *testing.T, trumpRank card.Rank) *state.GameState {
	t.Helper()
	g := state.NewRound(1, rand.New(rand.NewSource(7)), trumpRank, 0, "B")
	g.Phase = state.Playing
	return g
}

func setHand(g *state.GameState, seat int, cards []card.Card) {
	g.Players[seat].Hand = deck.NewWith(cards)
}

func c(suit card.Suit, rank card.Rank) card.Card {
	return card.NewCard(suit, rank, 0)
}

func c2(suit card.Suit, rank card.Rank) card.Card {
	return card.NewCard(suit, rank, 1)
}

// TestChoosePlayForcedSuitFollow is scenario E1: a single card held in
// the lead's suit must be played exclusively.
func TestChoosePlayForcedSuitFollow(t *testing.T) {
	g := newTestRound(t, card.Two)
	g.Trump = card.TrumpInfo{TrumpRank: card.Two, TrumpSuit: card.Spades, SuitDeclared: true}
	g.CurrentTrick = trick.New(0, g.Trump)
	g.CurrentTrick.Play(0, combo.Combo{Type: combo.Single, Cards: []card.Card{c(card.Hearts, card.Ace)}, Group: card.Hearts})
	setHand(g, 1, []card.Card{c(card.Hearts, card.Six), c(card.Spades, card.Seven), c(card.Clubs, card.Three)})

	e := New(DefaultConfig(), nil)
	cards, err := e.ChoosePlay(g, 1)
	require.NoError(t, err)
	require.Equal(t, []card.Card{c(card.Hearts, card.Six)}, cards)
}

// TestChoosePlayPairWithOnlyOneInSuit is scenario E2: a pair lead with
// only one card of the suit held must exhaust that card plus any
// filler; the filler choice itself is not prescribed, only legality.
func TestChoosePlayPairWithOnlyOneInSuit(t *testing.T) {
	g := newTestRound(t, card.Two)
	g.Trump = card.TrumpInfo{TrumpRank: card.Two, TrumpSuit: card.NoSuit, SuitDeclared: false}
	g.CurrentTrick = trick.New(0, g.Trump)
	g.CurrentTrick.Play(0, combo.Combo{
		Type:  combo.Pair,
		Cards: []card.Card{c(card.Diamonds, card.Eight), c2(card.Diamonds, card.Eight)},
		Group: card.Diamonds,
	})
	hand := []card.Card{c(card.Diamonds, card.Ten), c(card.Spades, card.Two), c(card.Spades, card.Three), c(card.Spades, card.Four)}
	setHand(g, 1, hand)

	e := New(DefaultConfig(), nil)
	cards, err := e.ChoosePlay(g, 1)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	require.Contains(t, cards, c(card.Diamonds, card.Ten))
	require.NoError(t, combo.Validate(deck.NewWith(hand), g.CurrentTrick.Lead(), cards, g.Trump))
}

// TestChoosePlayContributesPointsToWinningTeammate is scenario E3: with
// a teammate currently winning the trick, the acting seat should
// reinforce with a point card rather than its weakest card.
func TestChoosePlayContributesPointsToWinningTeammate(t *testing.T) {
	g := newTestRound(t, card.Two)
	g.Trump = card.TrumpInfo{TrumpRank: card.Two, TrumpSuit: card.Spades, SuitDeclared: true}
	g.CurrentTrick = trick.New(0, g.Trump)
	g.CurrentTrick.Play(0, combo.Combo{Type: combo.Single, Cards: []card.Card{c(card.Clubs, card.Ace)}, Group: card.Clubs})
	g.CurrentTrick.Play(1, combo.Combo{Type: combo.Single, Cards: []card.Card{c(card.Clubs, card.Three)}, Group: card.Clubs})
	// seat 2 is seat 0's teammate (both team A).
	setHand(g, 2, []card.Card{c(card.Clubs, card.King), c(card.Clubs, card.Ten), c(card.Clubs, card.Four)})

	e := New(DefaultConfig(), nil)
	cards, err := e.ChoosePlay(g, 2)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	require.Greater(t, cards[0].PointValue(), 0, "expected a point card reinforcing the winning teammate, got %v", cards)
}

// TestChoosePlayBeatsOpponentWithAce is scenario E4: an opponent is
// winning a point-bearing trick and the acting seat holds a card that
// beats it outright — it must be played.
func TestChoosePlayBeatsOpponentWithAce(t *testing.T) {
	g := newTestRound(t, card.Two)
	g.Trump = card.TrumpInfo{TrumpRank: card.Two, TrumpSuit: card.Spades, SuitDeclared: true}
	g.CurrentTrick = trick.New(0, g.Trump)
	g.CurrentTrick.Play(0, combo.Combo{Type: combo.Single, Cards: []card.Card{c(card.Hearts, card.King)}, Group: card.Hearts})
	// seat 1 is an opponent of seat 0.
	setHand(g, 1, []card.Card{c(card.Hearts, card.Ace), c(card.Hearts, card.Three)})

	e := New(DefaultConfig(), nil)
	cards, err := e.ChoosePlay(g, 1)
	require.NoError(t, err)
	require.Equal(t, []card.Card{c(card.Hearts, card.Ace)}, cards)
}

// TestChoosePlayDoesNotWasteHighCardOnPointlessTrick is scenario E5:
// the same holding as E4, but the incumbent play carries no points, so
// the ace should be conserved instead of spent.
func TestChoosePlayDoesNotWasteHighCardOnPointlessTrick(t *testing.T) {
	g := newTestRound(t, card.Two)
	g.Trump = card.TrumpInfo{TrumpRank: card.Two, TrumpSuit: card.Spades, SuitDeclared: true}
	g.CurrentTrick = trick.New(0, g.Trump)
	g.CurrentTrick.Play(0, combo.Combo{Type: combo.Single, Cards: []card.Card{c(card.Hearts, card.Seven)}, Group: card.Hearts})
	setHand(g, 1, []card.Card{c(card.Hearts, card.Ace), c(card.Hearts, card.Three)})

	e := New(DefaultConfig(), nil)
	cards, err := e.ChoosePlay(g, 1)
	require.NoError(t, err)
	require.Equal(t, []card.Card{c(card.Hearts, card.Three)}, cards)
}

// TestChoosePlayConservesTrumpAgainstUnbeatableLead is scenario E6: an
// opponent leads an unbeatable small joker; the acting seat, void in
// the led (trump) group otherwise, must still surrender a trump card
// but should give up the weakest one, not the trump-rank card.
func TestChoosePlayConservesTrumpAgainstUnbeatableLead(t *testing.T) {
	g := newTestRound(t, card.Two)
	g.Trump = card.TrumpInfo{TrumpRank: card.Two, TrumpSuit: card.Spades, SuitDeclared: true}
	g.CurrentTrick = trick.New(0, g.Trump)
	g.CurrentTrick.Play(0, combo.Combo{Type: combo.Single, Cards: []card.Card{card.NewJoker(card.SmallJoker, 0)}, Group: card.NoSuit})
	setHand(g, 1, []card.Card{c(card.Spades, card.Three), c(card.Hearts, card.Two), c(card.Diamonds, card.Ace)})

	e := New(DefaultConfig(), nil)
	cards, err := e.ChoosePlay(g, 1)
	require.NoError(t, err)
	require.Equal(t, []card.Card{c(card.Spades, card.Three)}, cards)
}

// TestKittyBonusScenario is scenario E7: the final trick's kitty bonus
// doubles for a single-card win and quadruples for a pair/tractor win,
// and is only awarded to an attacking-team winner.
func TestKittyBonusScenario(t *testing.T) {
	trump := card.TrumpInfo{TrumpRank: card.Two, TrumpSuit: card.Spades, SuitDeclared: true}
	kitty := []card.Card{c(card.Hearts, card.King), c(card.Hearts, card.Five)} // 15 points

	tr := trick.New(0, trump)
	tr.Play(0, combo.Combo{Type: combo.Single, Cards: []card.Card{c(card.Clubs, card.Ace)}, Group: card.Clubs})

	require.Equal(t, 30, trick.KittyBonus(tr, kitty, true))
	require.Equal(t, 0, trick.KittyBonus(tr, kitty, false))

	pairTr := trick.New(0, trump)
	pairTr.Play(0, combo.Combo{
		Type:  combo.Pair,
		Cards: []card.Card{c(card.Clubs, card.Ace), c2(card.Clubs, card.Ace)},
		Group: card.Clubs,
	})
	require.Equal(t, 60, trick.KittyBonus(pairTr, kitty, true))
}

func TestChoosePlayLeadsHighestScoringCombo(t *testing.T) {
	g := newTestRound(t, card.Two)
	g.Trump = card.TrumpInfo{TrumpRank: card.Two, TrumpSuit: card.Spades, SuitDeclared: true}
	setHand(g, 0, []card.Card{c(card.Hearts, card.Three), c(card.Hearts, card.Four)})

	e := New(DefaultConfig(), nil)
	cards, err := e.ChoosePlay(g, 0)
	require.NoError(t, err)
	require.NotEmpty(t, cards)
	require.Equal(t, []card.Card{c(card.Hearts, card.Four)}, cards)
}

func TestChooseKittySwapRejectsWrongHandSize(t *testing.T) {
	g := newTestRound(t, card.Two)
	g.Phase = state.KittySwap
	setHand(g, 0, []card.Card{c(card.Hearts, card.Three)})

	e := New(DefaultConfig(), nil)
	_, err := e.ChooseKittySwap(g, 0)
	require.Error(t, err)
}

func TestEvaluateDeclarationReturnsOkWhenBackedByTrumpRank(t *testing.T) {
	g := newTestRound(t, card.Two)
	g.Phase = state.Declaring
	hand := make([]card.Card, 0, 25)
	for i := 0; i < 10; i++ {
		hand = append(hand, card.NewCard(card.Spades, card.Rank(3+i%10), 0))
	}
	hand = append(hand, c(card.Spades, card.Two), c2(card.Spades, card.Two))
	setHand(g, 0, hand)

	e := New(DefaultConfig(), nil)
	suit, ok, err := e.EvaluateDeclaration(g, 0)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, card.Spades, suit)
}
