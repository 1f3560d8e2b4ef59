// Package context derives the single GameContext value a decision
// point needs: team role, point pressure, play style, trick position,
// and a trick-winner analysis. It generalizes the teacher's scattered
// position/strength checks in bidding.go ("position == 1", "isDealer")
// into one named, computed value, per spec.md §9's re-architecture
// note collapsing ad hoc position logic into an explicit context
// builder.
package context

import (
	"github.com/bran/tractor/internal/card"
	"github.com/bran/tractor/internal/combo"
	"github.com/bran/tractor/internal/memory"
	"github.com/bran/tractor/internal/state"
	"github.com/bran/tractor/internal/trick"
)

// PointPressure is how urgently the attacking team needs points.
type PointPressure int

const (
	Low PointPressure = iota
	Medium
	High
)

func (p PointPressure) String() string {
	switch p {
	case Low:
		return "Low"
	case Medium:
		return "Medium"
	case High:
		return "High"
	default:
		return "Unknown"
	}
}

// PlayStyle is the posture a seat should take on its next play.
type PlayStyle int

const (
	Conservative PlayStyle = iota
	Balanced
	Aggressive
	Desperate
)

func (s PlayStyle) String() string {
	switch s {
	case Conservative:
		return "Conservative"
	case Balanced:
		return "Balanced"
	case Aggressive:
		return "Aggressive"
	case Desperate:
		return "Desperate"
	default:
		return "Unknown"
	}
}

// TrickWinnerAnalysis summarizes the in-progress trick relative to the
// acting seat. It is only meaningful when a trick is in progress; the
// zero value's Active field is false otherwise.
type TrickWinnerAnalysis struct {
	Active                   bool
	CurrentWinner            int
	IsTeammateWinning        bool
	IsOpponentWinning        bool
	IsSelfWinning             bool
	TrickPoints              int
	CanBeatCurrentWinner     bool
	ShouldTryToBeat          bool
	ShouldPlayConservatively bool
}

// GameContext is the single derived value every strategy consults.
type GameContext struct {
	IsAttackingTeam bool
	CurrentPoints   int
	PointsNeeded    int
	CardsRemaining  int
	TrickPosition   int // 1..4, or 0 if leading
	IsLeading       bool
	PointPressure   PointPressure
	PlayStyle       PlayStyle
	WinnerAnalysis  TrickWinnerAnalysis
	Memory          *memory.Memory
}

// Build derives a GameContext for the acting seat from the current
// state and an already-constructed Memory.
func Build(g *state.GameState, seat int, mem *memory.Memory) GameContext {
	attacking := g.IsAttacking(seat)
	attackingTeam := g.AttackingTeam()

	ctx := GameContext{
		IsAttackingTeam: attacking,
		CurrentPoints:   attackingTeam.Points,
		PointsNeeded:    state.PointsNeeded,
		CardsRemaining:  g.TricksRemaining(seat),
		Memory:          mem,
	}

	ctx.PointPressure = pointPressure(ctx.CurrentPoints, ctx.PointsNeeded, ctx.CardsRemaining)
	ctx.PlayStyle = playStyle(attacking, ctx.PointPressure)

	if g.CurrentTrick == nil || len(g.CurrentTrick.Plays) == 0 {
		ctx.IsLeading = true
	} else {
		ctx.TrickPosition = len(g.CurrentTrick.Plays) + 1
		ctx.WinnerAnalysis = analyzeTrick(g, seat)
	}

	return ctx
}

// pointPressure implements spec.md §4.6: HIGH when the opponent (the
// attacking team, from the defenders' perspective, or the attacking
// team's own closeness to goal) is within 20 of the goal or fewer than
// 4 tricks remain; LOW when attacking and far behind pace; MEDIUM
// otherwise.
func pointPressure(currentPoints, pointsNeeded, cardsRemaining int) PointPressure {
	tricksRemaining := cardsRemaining // one card per seat per trick
	if pointsNeeded-currentPoints <= 20 || tricksRemaining < 4 {
		return High
	}
	paceNeeded := pointsNeeded / 2
	if currentPoints < paceNeeded/2 {
		return Low
	}
	return Medium
}

// playStyle implements spec.md §4.6's role/pressure table: defending
// under high pressure plays aggressively to deny points; attacking
// under high pressure plays desperately to chase the goal.
func playStyle(attacking bool, pressure PointPressure) PlayStyle {
	switch {
	case !attacking && pressure == High:
		return Aggressive
	case attacking && pressure == High:
		return Desperate
	case pressure == Low:
		return Conservative
	default:
		return Balanced
	}
}

func analyzeTrick(g *state.GameState, seat int) TrickWinnerAnalysis {
	tr := g.CurrentTrick
	winner := tr.WinningSeat()

	a := TrickWinnerAnalysis{
		Active:            true,
		CurrentWinner:     winner,
		IsSelfWinning:     winner == seat,
		IsTeammateWinning: g.IsTeammate(winner, seat) && winner != seat,
		TrickPoints:       tr.Points(),
	}
	a.IsOpponentWinning = !a.IsSelfWinning && !a.IsTeammateWinning

	a.CanBeatCurrentWinner = canBeat(g, seat, tr)
	a.ShouldTryToBeat = a.IsOpponentWinning && a.CanBeatCurrentWinner &&
		(a.TrickPoints >= 10 || aboutToHandOverLead(g))
	a.ShouldPlayConservatively = a.IsTeammateWinning && teammateHoldingStrong(g, tr)

	return a
}

// canBeat reports whether the acting seat holds any combo in the
// lead's group (or trump) that would outrank the current winning play.
func canBeat(g *state.GameState, seat int, tr *trick.Trick) bool {
	player, err := g.Seat(seat)
	if err != nil {
		return false
	}
	lead := tr.Lead()
	candidates := combo.Detect(player.Hand, g.Trump)
	best := currentWinningCombo(g)
	for _, c := range candidates {
		if c.Len() != best.Len() {
			continue
		}
		if c.Group != lead.Group && c.Group != card.NoSuit {
			continue
		}
		if beats(g, c, best) {
			return true
		}
	}
	return false
}

func currentWinningCombo(g *state.GameState) combo.Combo {
	tr := g.CurrentTrick
	for _, play := range tr.Plays {
		if play.Seat == tr.WinningSeat() {
			return play.Combo
		}
	}
	return combo.Combo{}
}

func beats(g *state.GameState, candidate, incumbent combo.Combo) bool {
	candidateTrump := candidate.Group == card.NoSuit
	incumbentTrump := incumbent.Group == card.NoSuit
	switch {
	case candidateTrump && !incumbentTrump:
		return true
	case !candidateTrump && incumbentTrump:
		return false
	default:
		if candidate.Group != incumbent.Group {
			return false
		}
		return g.Trump.Compare(candidate.HighCard(g.Trump), incumbent.HighCard(g.Trump)) == card.Higher
	}
}

// aboutToHandOverLead approximates "the opponent is about to take a
// low-value trick that would give them the lead": true once the trick
// is on its last play, since the next trick's lead then passes to the
// current winner.
func aboutToHandOverLead(g *state.GameState) bool {
	return len(g.CurrentTrick.Plays) == 3
}

// teammateHoldingStrong reports whether the teammate currently winning
// holds the trick with enough margin (a trump play, or a same-suit
// play of Queen or above) that the acting seat need not reinforce it.
func teammateHoldingStrong(g *state.GameState, tr *trick.Trick) bool {
	winning := currentWinningCombo(g)
	if winning.Group == card.NoSuit {
		return true
	}
	return winning.HighCard(g.Trump).Rank >= card.Queen
}
