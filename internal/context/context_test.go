package context

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bran/tractor/internal/card"
	"github.com/bran/tractor/internal/combo"
	"github.com/bran/tractor/internal/memory"
	"github.com/bran/tractor/internal/state"
	"github.com/bran/tractor/internal/trick"
)

func newRound(t *testing.T) *state.GameState {
	t.Helper()
	return state.NewRound(1, rand.New(rand.NewSource(3)), card.Two, 0, "A")
}

func TestBuildMarksLeadingSeat(t *testing.T) {
	g := newRound(t)
	mem := memory.New(g.Trump, 25, 8)

	ctx := Build(g, 0, mem)
	require.True(t, ctx.IsLeading)
	require.Equal(t, 0, ctx.TrickPosition)
}

func TestBuildDetectsTeammateWinning(t *testing.T) {
	g := newRound(t)
	g.CurrentTrick = trick.New(0, g.Trump)
	g.CurrentTrick.Play(0, combo.Combo{Type: combo.Single, Cards: []card.Card{card.NewCard(card.Hearts, card.Ace, 0)}, Group: card.Hearts})
	mem := memory.New(g.Trump, 25, 8)

	// seat 2 is team A, same as seat 0 (the current winner).
	ctx := Build(g, 2, mem)
	require.False(t, ctx.IsLeading)
	require.True(t, ctx.WinnerAnalysis.IsTeammateWinning)
	require.False(t, ctx.WinnerAnalysis.IsOpponentWinning)
}

func TestBuildDetectsOpponentWinning(t *testing.T) {
	g := newRound(t)
	g.CurrentTrick = trick.New(0, g.Trump)
	g.CurrentTrick.Play(0, combo.Combo{Type: combo.Single, Cards: []card.Card{card.NewCard(card.Hearts, card.Ace, 0)}, Group: card.Hearts})
	mem := memory.New(g.Trump, 25, 8)

	// seat 1 is team B, opposing seat 0 (the current winner).
	ctx := Build(g, 1, mem)
	require.True(t, ctx.WinnerAnalysis.IsOpponentWinning)
}

func TestPointPressureHighNearGoal(t *testing.T) {
	p := pointPressure(70, 80, 10)
	require.Equal(t, High, p)
}

func TestPointPressureHighWhenFewTricksLeft(t *testing.T) {
	p := pointPressure(0, 80, 3)
	require.Equal(t, High, p)
}

func TestPlayStyleDesperateWhenAttackingUnderPressure(t *testing.T) {
	require.Equal(t, Desperate, playStyle(true, High))
	require.Equal(t, Aggressive, playStyle(false, High))
}
