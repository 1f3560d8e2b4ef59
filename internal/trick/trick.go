// Package trick tracks a single trick in progress and resolves its
// winner, points, and the final-trick kitty bonus. It generalizes the
// teacher's Trick (internal/engine/trick.go: cardValue, CanBeat,
// WasTrumped, Result) from single-card plays to combo plays, and adds
// the kitty scoring multiplier the teacher's Euchre had no equivalent
// of.
package trick

import (
	"github.com/bran/tractor/internal/card"
	"github.com/bran/tractor/internal/combo"
)

// Play is one seat's contribution to a trick.
type Play struct {
	Seat  int
	Combo combo.Combo
}

// Trick accumulates plays in order and tracks the running winner.
type Trick struct {
	Leader      int
	Trump       card.TrumpInfo
	Plays       []Play
	winningSeat int
	winningIdx  int
}

// New starts a trick led by the given seat.
func New(leader int, trump card.TrumpInfo) *Trick {
	return &Trick{Leader: leader, Trump: trump, winningSeat: leader, winningIdx: -1}
}

// Lead is the combo that opened the trick, or the zero Combo if no
// play has landed yet.
func (t *Trick) Lead() combo.Combo {
	if len(t.Plays) == 0 {
		return combo.Combo{}
	}
	return t.Plays[0].Combo
}

// Play records a seat's combo, played in turn order, and updates the
// running winner per spec.md §4.4: a play wins if it followed the
// lead's group and beats the current winner's high card outright, or
// is trump and the lead wasn't, or is higher trump than the current
// trump winner. A play that doesn't match the lead's group and isn't
// trump can never take the trick (spec.md's WasTrumped equivalent).
func (t *Trick) Play(seat int, c combo.Combo) {
	t.Plays = append(t.Plays, Play{Seat: seat, Combo: c})
	idx := len(t.Plays) - 1

	if t.winningIdx == -1 {
		t.winningSeat = seat
		t.winningIdx = idx
		return
	}

	lead := t.Lead()
	current := t.Plays[t.winningIdx].Combo
	if t.beats(c, current, lead) {
		t.winningSeat = seat
		t.winningIdx = idx
	}
}

// beats reports whether candidate outranks incumbent as the trick's
// current best play. Both must share Type and Len (the follow-suit
// validator guarantees this for any legal play); a play can only beat
// the incumbent if it is trump, or matches the lead's natural group
// and outranks it by rank.
func (t *Trick) beats(candidate, incumbent, lead combo.Combo) bool {
	candidateTrump := candidate.Group == card.NoSuit
	incumbentTrump := incumbent.Group == card.NoSuit

	switch {
	case candidateTrump && !incumbentTrump:
		return true
	case !candidateTrump && incumbentTrump:
		return false
	case candidateTrump && incumbentTrump:
		return t.Trump.Compare(candidate.HighCard(t.Trump), incumbent.HighCard(t.Trump)) == card.Higher
	default:
		if candidate.Group != lead.Group {
			return false // off-suit, non-trump: can never win
		}
		return t.Trump.Compare(candidate.HighCard(t.Trump), incumbent.HighCard(t.Trump)) == card.Higher
	}
}

// WinningSeat returns the seat currently winning the trick.
func (t *Trick) WinningSeat() int {
	return t.winningSeat
}

// Points returns the sum of every played card's point value, excluding
// any kitty bonus.
func (t *Trick) Points() int {
	total := 0
	for _, p := range t.Plays {
		total += p.Combo.PointValue()
	}
	return total
}

// Complete reports whether every seat (numSeats) has played.
func (t *Trick) Complete(numSeats int) bool {
	return len(t.Plays) == numSeats
}

// KittyBonus computes the points awarded for the kitty on the final
// trick of a round. Only an attacking-team winner harvests the kitty;
// a defending-team win leaves it unscored. The multiplier depends on
// the winning combo's shape: 2x for a single, 4x for a pair or
// tractor.
func KittyBonus(t *Trick, kitty []card.Card, winnerIsAttacking bool) int {
	if !winnerIsAttacking {
		return 0
	}
	kittyPoints := 0
	for _, c := range kitty {
		kittyPoints += c.PointValue()
	}
	winningCombo := t.Plays[t.winningIdx].Combo
	multiplier := 2
	if winningCombo.Type != combo.Single {
		multiplier = 4
	}
	return kittyPoints * multiplier
}
