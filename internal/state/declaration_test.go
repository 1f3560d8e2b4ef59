package state

import (
	"math/rand"
	"testing"

	"github.com/bran/tractor/internal/card"
)

func newDeclarationRound(t *testing.T) *GameState {
	t.Helper()
	g := NewRound(1, rand.New(rand.NewSource(1)), card.Two, 0, "A")
	g.Phase = Declaring
	return g
}

func TestConsiderDeclarationAcceptsFirstDeclaration(t *testing.T) {
	g := newDeclarationRound(t)
	if !g.ConsiderDeclaration(1, card.Hearts, DeclarationStrength(1)) {
		t.Fatal("expected the first declaration to be accepted")
	}
	if g.Trump.TrumpSuit != card.Hearts || !g.Trump.SuitDeclared || g.DeclarerSeat != 1 {
		t.Errorf("Trump = %+v, DeclarerSeat = %d, want Hearts declared by seat 1", g.Trump, g.DeclarerSeat)
	}
}

func TestConsiderDeclarationRejectsWeakerOverride(t *testing.T) {
	g := newDeclarationRound(t)
	g.ConsiderDeclaration(1, card.Hearts, DeclarationStrength(2))
	if g.ConsiderDeclaration(2, card.Spades, DeclarationStrength(1)) {
		t.Error("a weaker declaration should not override a stronger one")
	}
	if g.Trump.TrumpSuit != card.Hearts || g.DeclarerSeat != 1 {
		t.Errorf("weaker override changed state: Trump = %+v, DeclarerSeat = %d", g.Trump, g.DeclarerSeat)
	}
}

func TestConsiderDeclarationAcceptsStrongerOverride(t *testing.T) {
	g := newDeclarationRound(t)
	g.ConsiderDeclaration(1, card.Hearts, DeclarationStrength(1))
	if !g.ConsiderDeclaration(2, card.Spades, DeclarationStrength(2)) {
		t.Error("a stronger declaration should override a weaker one")
	}
	if g.Trump.TrumpSuit != card.Spades || g.DeclarerSeat != 2 {
		t.Errorf("Trump = %+v, DeclarerSeat = %d, want Spades declared by seat 2", g.Trump, g.DeclarerSeat)
	}
}

func TestConsiderDeclarationRejectsOutsideWindow(t *testing.T) {
	g := newDeclarationRound(t)
	g.Phase = Playing
	if g.ConsiderDeclaration(1, card.Hearts, DeclarationStrength(3)) {
		t.Error("a declaration outside the dealing/declaring window should be rejected")
	}
	if g.Trump.SuitDeclared {
		t.Error("trump should remain undeclared")
	}
}
