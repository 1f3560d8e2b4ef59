// Package state defines the immutable game-state value the rules
// engine and AI operate over: players, teams, phase, trump, kitty, and
// trick history. It generalizes the teacher's Game/Round
// (internal/engine/game.go, round.go) from a single-deck two-player
// bidding game into the double-deck, two-team, dynamic-trump shape
// Tractor needs, and drops the teacher's mutating ApplyAction model —
// spec.md §5 requires the core to be purely functional over a
// borrowed, read-only state, never a driver of its own transitions.
package state

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/bran/tractor/internal/card"
	"github.com/bran/tractor/internal/deck"
	"github.com/bran/tractor/internal/tractorerr"
	"github.com/bran/tractor/internal/trick"
)

// Phase is a round's lifecycle stage.
type Phase int

const (
	Dealing Phase = iota
	Declaring
	KittySwap
	Playing
	Scoring
)

func (p Phase) String() string {
	switch p {
	case Dealing:
		return "Dealing"
	case Declaring:
		return "Declaring"
	case KittySwap:
		return "KittySwap"
	case Playing:
		return "Playing"
	case Scoring:
		return "Scoring"
	default:
		return "Unknown"
	}
}

// PointsNeeded is the fixed score the attacking team must reach.
const PointsNeeded = 80

// TotalRoundPoints is the fixed sum of every point card's value plus
// the kitty, conserved every round per spec.md §8 property 1.
const TotalRoundPoints = 200

// Team tracks a side's trump-climb rank, accumulated round points, and
// defending/attacking role.
type Team struct {
	ID           string
	Rank         card.Rank
	Points       int
	IsDefending  bool
}

// Player is one seat: its held cards, team, and whether a human or AI
// controls it.
type Player struct {
	Seat     int
	Hand     *deck.Hand
	TeamID   string
	IsHuman  bool
}

// GameState is the single immutable value every entry point consumes.
// Seats are numbered 0-3 in fixed turn order with teams interleaved
// A/B/A/B so partners sit across the table, matching spec.md §3 and
// the teacher's NextPlayer seating convention generalized to two
// teams of two.
type GameState struct {
	RoundID uuid.UUID

	Players [4]*Player
	Teams   map[string]*Team

	Kitty           []card.Card
	CurrentTrick    *trick.Trick
	CompletedTricks []*trick.Trick

	Trump        card.TrumpInfo
	DeclarerSeat int // -1 if no declaration has been made yet

	Round                    int
	CurrentPlayerIndex       int
	RoundStartingPlayerIndex int
	Phase                    Phase

	// declarationStrength is the precedence of the currently accepted
	// trump declaration (0 if none), consulted by ConsiderDeclaration's
	// soft-override rule.
	declarationStrength int
}

// seatTeamID returns "A" for seats 0/2 and "B" for seats 1/3, the
// fixed interleaved seating spec.md §3 requires.
func seatTeamID(seat int) string {
	if seat%2 == 0 {
		return "A"
	}
	return "B"
}

// NewRound deals a fresh 108-card round: four 25-card hands and an
// 8-card kitty, seated A/B/A/B starting at startSeat, with the given
// trump rank and no suit declared yet. defendingTeamID names the team
// that starts the round defending.
func NewRound(roundNumber int, rng *rand.Rand, trumpRank card.Rank, startSeat int, defendingTeamID string) *GameState {
	d := deck.New()
	d.Shuffle(rng)
	dealt, kitty := d.Deal(4, 25, startSeat)

	players := [4]*Player{}
	for seat := 0; seat < 4; seat++ {
		players[seat] = &Player{
			Seat:   seat,
			Hand:   deck.NewWith(dealt[seat]),
			TeamID: seatTeamID(seat),
		}
	}

	teams := map[string]*Team{
		"A": {ID: "A", IsDefending: defendingTeamID == "A"},
		"B": {ID: "B", IsDefending: defendingTeamID == "B"},
	}

	return &GameState{
		RoundID:                  uuid.New(),
		Players:                  players,
		Teams:                    teams,
		Kitty:                    kitty,
		Trump:                    card.TrumpInfo{TrumpRank: trumpRank},
		DeclarerSeat:             -1,
		Round:                    roundNumber,
		CurrentPlayerIndex:       startSeat,
		RoundStartingPlayerIndex: startSeat,
		Phase:                    Dealing,
	}
}

// Seat returns the player at the given seat, or UnknownSeat if seat
// isn't 0-3.
func (g *GameState) Seat(seat int) (*Player, error) {
	if seat < 0 || seat > 3 {
		return nil, tractorerr.New(tractorerr.UnknownSeat, "seat %d is not among the four", seat)
	}
	return g.Players[seat], nil
}

// Team returns the team the given seat belongs to.
func (g *GameState) Team(seat int) *Team {
	return g.Teams[g.Players[seat].TeamID]
}

// IsAttacking reports whether the given seat's team is attacking
// (i.e. not defending) this round.
func (g *GameState) IsAttacking(seat int) bool {
	return !g.Team(seat).IsDefending
}

// AttackingTeam returns the team currently attacking.
func (g *GameState) AttackingTeam() *Team {
	for _, t := range g.Teams {
		if !t.IsDefending {
			return t
		}
	}
	return nil
}

// IsTeammate reports whether two seats share a team.
func (g *GameState) IsTeammate(a, b int) bool {
	return g.Players[a].TeamID == g.Players[b].TeamID
}

// TricksRemaining estimates how many tricks remain in the round from
// the acting seat's own hand size (every seat holds the same count
// once the kitty swap completes).
func (g *GameState) TricksRemaining(seat int) int {
	return g.Players[seat].Hand.Size()
}
