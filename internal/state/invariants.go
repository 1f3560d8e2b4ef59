package state

import (
	"github.com/bran/tractor/internal/card"
	"github.com/bran/tractor/internal/tractorerr"
)

// CheckCardConservation verifies that every hand, the kitty, any
// in-progress trick, and every completed trick together account for
// exactly the original 108-card deck (spec.md §8 property 2).
func (g *GameState) CheckCardConservation() error {
	seen := make(map[card.Card]int)
	add := func(cards []card.Card) {
		for _, c := range cards {
			seen[c]++
		}
	}

	for _, p := range g.Players {
		add(p.Hand.Cards())
	}
	add(g.Kitty)
	if g.CurrentTrick != nil {
		for _, play := range g.CurrentTrick.Plays {
			add(play.Combo.Cards)
		}
	}
	for _, tr := range g.CompletedTricks {
		for _, play := range tr.Plays {
			add(play.Combo.Cards)
		}
	}

	total := 0
	for _, n := range seen {
		total += n
		if n != 1 {
			return tractorerr.New(tractorerr.InvalidState, "card counted %d times, want exactly 1", n)
		}
	}
	if total != 108 {
		return tractorerr.New(tractorerr.InvalidState, "accounted for %d cards, want 108", total)
	}
	return nil
}

// CheckHandSizes verifies that before the kitty swap every seat holds
// 25 (post-deal) or 33 (the round-starting seat mid-kitty-decision)
// cards, and that after the swap every seat holds 25.
func (g *GameState) CheckHandSizes() error {
	for _, p := range g.Players {
		size := p.Hand.Size()
		switch g.Phase {
		case Dealing, Declaring:
			if size != 25 {
				return tractorerr.New(tractorerr.InvalidState, "seat %d holds %d cards during %s, want 25", p.Seat, size, g.Phase)
			}
		case KittySwap:
			expected := 25
			if p.Seat == g.RoundStartingPlayerIndex {
				expected = 33
			}
			if size != expected && size != 25 {
				return tractorerr.New(tractorerr.InvalidState, "seat %d holds %d cards during KittySwap, want %d or 25", p.Seat, size, expected)
			}
		}
	}
	return nil
}

// CheckTrickShape verifies the in-progress trick never exceeds four
// plays and every completed trick has exactly four.
func (g *GameState) CheckTrickShape() error {
	if g.CurrentTrick != nil && len(g.CurrentTrick.Plays) > 4 {
		return tractorerr.New(tractorerr.InvalidState, "current trick has %d plays, want at most 4", len(g.CurrentTrick.Plays))
	}
	for i, tr := range g.CompletedTricks {
		if len(tr.Plays) != 4 {
			return tractorerr.New(tractorerr.InvalidState, "completed trick %d has %d plays, want exactly 4", i, len(tr.Plays))
		}
	}
	return nil
}

// CheckPointConservation verifies the sum of every completed trick's
// points plus any awarded kitty bonus equals exactly 200, the fixed
// total of point-card value in a 108-card deck (spec.md §8 property
// 1). kittyBonus is the value already computed by trick.KittyBonus for
// the round's final trick, or 0 before the round ends. The total is
// only enforced once the phase is Scoring; in earlier phases it
// returns nil.
func (g *GameState) CheckPointConservation(kittyBonus int) error {
	total := kittyBonus
	for _, tr := range g.CompletedTricks {
		total += tr.Points()
	}
	if g.CurrentTrick != nil {
		total += g.CurrentTrick.Points()
	}
	if g.Phase == Scoring && total != TotalRoundPoints {
		return tractorerr.New(tractorerr.InvalidState, "round points total %d, want %d", total, TotalRoundPoints)
	}
	return nil
}

// Validate runs every structural invariant check.
func (g *GameState) Validate() error {
	if err := g.CheckCardConservation(); err != nil {
		return err
	}
	if err := g.CheckHandSizes(); err != nil {
		return err
	}
	return g.CheckTrickShape()
}
