// Package memory accumulates what is knowable about unseen cards from
// the trick log: played cards, per-seat known cards and voids, and
// probability estimates. It generalizes the teacher's single-snapshot
// handAnalysis/analyzeHand (internal/ai/strategy.go) — which only ever
// looked at one hand in isolation — into a running accumulator folded
// over every trick played so far, since Tractor's AI needs opponent
// modeling the teacher's Euchier AI never did.
package memory

import (
	"github.com/bran/tractor/internal/card"
	"github.com/bran/tractor/internal/combo"
	"github.com/bran/tractor/internal/trick"
)

// PlayerMemory is what has been inferred about one seat from its
// plays so far.
type PlayerMemory struct {
	KnownCards        []card.Card
	EstimatedHandSize int
	SuitVoids         map[card.Suit]bool
	TrumpVoid         bool
	TrumpUsed         int
	PointCardProb     float64
}

func newPlayerMemory(startingHandSize int) *PlayerMemory {
	return &PlayerMemory{
		SuitVoids:     make(map[card.Suit]bool),
		PointCardProb: 0.5,
		// EstimatedHandSize is set by the caller once the kitty swap is
		// known, since the round-starting seat briefly holds 33.
		EstimatedHandSize: startingHandSize,
	}
}

// Memory is the full accumulated state over every play observed.
type Memory struct {
	Trump            card.TrumpInfo
	PlayedCards       []card.Card
	TrumpCardsPlayed  int
	PointCardsPlayed  int
	Players           [4]*PlayerMemory

	assumedInitialTrump int
}

// New builds an empty Memory for a round where every seat starts with
// startingHandSize cards and assumedInitialTrumpCount trump cards
// (used by trump_exhaustion_level's denominator).
func New(trump card.TrumpInfo, startingHandSize, assumedInitialTrumpCount int) *Memory {
	m := &Memory{Trump: trump, assumedInitialTrump: assumedInitialTrumpCount}
	for seat := range m.Players {
		m.Players[seat] = newPlayerMemory(startingHandSize)
	}
	return m
}

// Build folds an entire trick log (completed tricks plus an optional
// in-progress trick) into a fresh Memory. Re-running Build on the same
// trick list yields an equal Memory (spec.md §8 property 9), since it
// never depends on anything but its inputs.
func Build(trump card.TrumpInfo, startingHandSize, assumedInitialTrumpCount int, tricks []*trick.Trick, current *trick.Trick) *Memory {
	m := New(trump, startingHandSize, assumedInitialTrumpCount)
	for _, tr := range tricks {
		m.observeTrick(tr)
	}
	if current != nil {
		m.observeTrick(current)
	}
	return m
}

// Observe folds one more play into the memory, in place. Callers that
// already hold a Memory and see a single new play use this instead of
// rebuilding from the full log.
func (m *Memory) Observe(leadGroup card.Suit, seat int, c combo.Combo) {
	pm := m.Players[seat]

	for _, played := range c.Cards {
		m.PlayedCards = append(m.PlayedCards, played)
		if m.Trump.IsTrump(played) {
			m.TrumpCardsPlayed++
		}
		m.PointCardsPlayed += played.PointValue()
		pm.KnownCards = append(pm.KnownCards, played)
	}
	pm.EstimatedHandSize -= c.Len()
	if pm.EstimatedHandSize < 0 {
		pm.EstimatedHandSize = 0
	}

	if leadGroup != card.NoSuit {
		// A non-trump suit was led: playing anything outside that suit
		// (including trump) confirms a void in it.
		if c.Group != leadGroup {
			pm.SuitVoids[leadGroup] = true
		}
	} else {
		// Trump was led: playing any non-trump card confirms trump void.
		if c.Group != card.NoSuit {
			pm.TrumpVoid = true
		}
	}
	if c.Group == card.NoSuit {
		pm.TrumpUsed += c.Len()
	}

	observedPoints := 0.0
	if c.PointValue() > 0 {
		observedPoints = 1.0
	}
	const weightCap = 0.8
	pm.PointCardProb = (1-weightCap)*0.5 + weightCap*observedPoints
}

func (m *Memory) observeTrick(tr *trick.Trick) {
	lead := tr.Lead()
	for _, play := range tr.Plays {
		m.Observe(lead.Group, play.Seat, play.Combo)
	}
}

// IsBiggestRemainingInSuit reports whether a card is provably the
// strongest remaining card of its rank/suit/comboType, per spec.md
// §4.5: for a single, every higher rank in the suit must have had both
// copies played; for a pair, at least one copy of any higher rank
// makes the opposing pair in a double deck impossible.
func (m *Memory) IsBiggestRemainingInSuit(suit card.Suit, rank card.Rank, comboType combo.Type) bool {
	for r := rank + 1; r <= card.Ace; r++ {
		played := m.countPlayed(suit, r)
		if comboType == combo.Pair {
			if played < 1 {
				return false
			}
		} else {
			if played < 2 {
				return false
			}
		}
	}
	return true
}

func (m *Memory) countPlayed(suit card.Suit, rank card.Rank) int {
	n := 0
	for _, c := range m.PlayedCards {
		if c.Suit == suit && c.Rank == rank {
			n++
		}
	}
	return n
}

// TrumpExhaustionLevel returns a value in [0,1]: 1 if the seat is
// confirmed trump-void, else the fraction of the assumed initial trump
// share it has already played.
func (m *Memory) TrumpExhaustionLevel(seat int) float64 {
	pm := m.Players[seat]
	if pm.TrumpVoid {
		return 1.0
	}
	if m.assumedInitialTrump <= 0 {
		return 0
	}
	level := float64(pm.TrumpUsed) / float64(m.assumedInitialTrump)
	if level > 1 {
		level = 1
	}
	return level
}
