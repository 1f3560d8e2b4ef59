// Package ai defines the entry-point contract every strategy
// implementation must satisfy, mirroring the teacher's ai.Player
// interface (internal/ai/player.go: DecideBid/DecidePlay/DecideDiscard)
// generalized to Tractor's three decision points.
package ai

import (
	"github.com/bran/tractor/internal/card"
	"github.com/bran/tractor/internal/state"
)

// Engine is the rules-engine+AI boundary spec.md §6 describes. Every
// method borrows state read-only and returns a plain value or a
// *tractorerr.Error.
type Engine interface {
	// ChoosePlay returns 1..n cards for seat's current play (lead or
	// follow).
	ChoosePlay(s *state.GameState, seat int) ([]card.Card, error)
	// ChooseKittySwap returns exactly 8 cards for seat to hide, given
	// seat holds 33 cards during the KittySwap phase.
	ChooseKittySwap(s *state.GameState, seat int) ([]card.Card, error)
	// EvaluateDeclaration returns the suit seat should declare trump
	// in, and whether it should declare at all.
	EvaluateDeclaration(s *state.GameState, seat int) (card.Suit, bool, error)
}
