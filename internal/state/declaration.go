package state

import "github.com/bran/tractor/internal/card"

// DeclarationStrength ranks a candidate trump declaration's precedence
// by how many trump-rank copies back it, per spec.md §4.10: more
// copies of the trump rank in the declared suit beat fewer. A
// suit-length-only declaration (no trump-rank card involved) should be
// scored 0, the weakest possible precedence.
func DeclarationStrength(trumpRankCount int) int {
	return trumpRankCount
}

// ConsiderDeclaration applies a trump declaration during the dealing
// window if it outranks whatever is currently accepted (including no
// declaration at all), implementing spec.md §4.10's soft-override
// rule: while the window is open, a later, stronger declaration
// replaces an earlier, weaker one; declarations outside the window are
// rejected outright since TrumpInfo is frozen once Declaring ends.
// Reports whether the declaration was accepted.
func (g *GameState) ConsiderDeclaration(seat int, suit card.Suit, strength int) bool {
	if g.Phase != Dealing && g.Phase != Declaring {
		return false
	}
	if g.Trump.SuitDeclared && strength <= g.declarationStrength {
		return false
	}
	g.Trump.TrumpSuit = suit
	g.Trump.SuitDeclared = true
	g.DeclarerSeat = seat
	g.declarationStrength = strength
	return true
}
