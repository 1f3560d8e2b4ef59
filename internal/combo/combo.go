// Package combo enumerates the combos (singles, pairs, tractors, and
// leading multi-combos) a hand can form and validates a candidate play
// against a led combo under Tractor's follow-suit ladder. It
// generalizes the teacher's LegalPlays/ValidatePlay
// (internal/engine/trick.go), which only ever needed single-card
// follow-suit logic, to pairs and tractors the way
// dennishooo-chinese_bridge's formation.go (NewTractor, CanFollow)
// models them for the same card-family domain.
package combo

import (
	"sort"

	"github.com/bran/tractor/internal/card"
	"github.com/bran/tractor/internal/deck"
)

// Type identifies the shape of a Combo.
type Type int

const (
	Single Type = iota
	Pair
	Tractor
	MultiCombo
)

func (t Type) String() string {
	switch t {
	case Single:
		return "Single"
	case Pair:
		return "Pair"
	case Tractor:
		return "Tractor"
	case MultiCombo:
		return "MultiCombo"
	default:
		return "Unknown"
	}
}

// Combo is a set of cards playable as one unit.
type Combo struct {
	Type Type
	// Cards holds every card in the combo. For MultiCombo this is the
	// union of every component's cards.
	Cards []card.Card
	// Group is the suit the combo belongs to for follow-suit purposes:
	// NoSuit for a trump combo, otherwise a natural suit. Every card in
	// Cards shares this group.
	Group card.Suit
	// Components holds, for a MultiCombo only, the constituent combos
	// in priority order (tractors, then pairs, then singles) — the
	// order the follow-suit obligation in spec.md §4.3 rule 5 must be
	// matched in.
	Components []Combo
}

// Len returns the number of cards in the combo.
func (c Combo) Len() int {
	return len(c.Cards)
}

// HighCard returns the highest-ranked card in the combo under trump,
// used to compare two combos of the same Type and Group.
func (c Combo) HighCard(trump card.TrumpInfo) card.Card {
	best := c.Cards[0]
	for _, candidate := range c.Cards[1:] {
		if trump.Compare(candidate, best) == card.Higher {
			best = candidate
		}
	}
	return best
}

// PointValue returns the sum of the combo's cards' trick-scoring
// values.
func (c Combo) PointValue() int {
	total := 0
	for _, cd := range c.Cards {
		total += cd.PointValue()
	}
	return total
}

// Detect enumerates every single, pair, and tractor a hand can form in
// isolation, per spec.md §4.2. Shorter sub-tractors of a longer run are
// included alongside the maximal run so a validator can match any lead
// length.
func Detect(h *deck.Hand, trump card.TrumpInfo) []Combo {
	var combos []Combo
	combos = append(combos, singles(h, trump)...)
	combos = append(combos, pairs(h, trump)...)
	combos = append(combos, tractors(h, trump)...)
	return combos
}

func singles(h *deck.Hand, trump card.TrumpInfo) []Combo {
	var out []Combo
	for _, c := range h.Cards() {
		out = append(out, Combo{Type: Single, Cards: []card.Card{c}, Group: trump.EffectiveSuit(c)})
	}
	return out
}

func pairs(h *deck.Hand, trump card.TrumpInfo) []Combo {
	var out []Combo
	byCommon := h.CountByCommon()
	// Stable order: iterate in card order so output is deterministic.
	seen := make(map[card.CommonID]bool)
	for _, c := range h.Cards() {
		id := c.Common()
		if seen[id] {
			continue
		}
		seen[id] = true
		cards := byCommon[id]
		pairCount := len(cards) / 2
		for i := 0; i < pairCount; i++ {
			pairCards := []card.Card{cards[2*i], cards[2*i+1]}
			out = append(out, Combo{Type: Pair, Cards: pairCards, Group: trump.EffectiveSuit(pairCards[0])})
		}
	}
	return out
}

// tractors builds every consecutive-pair run (and its sub-runs) within
// each ladder: one ladder per non-trump suit, the trump-suit ladder
// (trump rank inserted above its natural Ace), and the joker ladder
// (Small Joker below Big Joker). Off-suit copies of the trump rank
// belong to no ladder, so they never chain into a tractor.
func tractors(h *deck.Hand, trump card.TrumpInfo) []Combo {
	byCommon := h.CountByCommon()
	var out []Combo

	for _, suit := range card.AllSuits {
		if trump.SuitDeclared && suit == trump.TrumpSuit {
			continue // handled by the trump-suit ladder below
		}
		ids := suitLadder(suit, trump.TrumpRank)
		out = append(out, tractorsFromLadder(ids, byCommon, suit)...)
	}

	if trump.SuitDeclared {
		ids := suitLadder(trump.TrumpSuit, trump.TrumpRank)
		ids = append(ids, card.CommonID{Suit: trump.TrumpSuit, Rank: trump.TrumpRank})
		out = append(out, tractorsFromLadder(ids, byCommon, card.NoSuit)...)
	}

	jokerIDs := []card.CommonID{
		{Joker: card.SmallJoker, Suit: card.NoSuit},
		{Joker: card.BigJoker, Suit: card.NoSuit},
	}
	out = append(out, tractorsFromLadder(jokerIDs, byCommon, card.NoSuit)...)

	return out
}

// suitLadder returns the rank sequence (low to high) for a natural
// suit, skipping the trump rank, which either sits in the trump group
// (if this is the trump suit, handled separately) or is simply absent
// from play in this suit (its copies are trump-rank-off-suit cards,
// which stand alone and never chain into a tractor).
func suitLadder(suit card.Suit, trumpRank card.Rank) []card.CommonID {
	var ids []card.CommonID
	for rank := card.Two; rank <= card.Ace; rank++ {
		if rank == trumpRank {
			continue
		}
		ids = append(ids, card.CommonID{Suit: suit, Rank: rank})
	}
	return ids
}

func tractorsFromLadder(ids []card.CommonID, byCommon map[card.CommonID][]card.Card, group card.Suit) []Combo {
	hasPair := make([]bool, len(ids))
	for i, id := range ids {
		hasPair[i] = len(byCommon[id]) >= 2
	}

	var out []Combo
	i := 0
	for i < len(ids) {
		if !hasPair[i] {
			i++
			continue
		}
		j := i
		for j+1 < len(ids) && hasPair[j+1] {
			j++
		}
		if j > i {
			for start := i; start < j; start++ {
				for end := start + 1; end <= j; end++ {
					var cards []card.Card
					for k := start; k <= end; k++ {
						cards = append(cards, byCommon[ids[k]][0], byCommon[ids[k]][1])
					}
					out = append(out, Combo{Type: Tractor, Cards: cards, Group: group})
				}
			}
		}
		i = j + 1
	}
	return out
}

// InGroup filters combos to those belonging to the given group.
func InGroup(combos []Combo, group card.Suit) []Combo {
	var out []Combo
	for _, c := range combos {
		if c.Group == group {
			out = append(out, c)
		}
	}
	return out
}

// ByType filters combos to those of the given Type.
func ByType(combos []Combo, t Type) []Combo {
	var out []Combo
	for _, c := range combos {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// SortByLenDesc sorts combos longest-first, for greedy structure
// matching (tractors before pairs before singles when lengths tie,
// since Tractor > Pair > Single in Type ordinal).
func SortByLenDesc(combos []Combo) {
	sort.SliceStable(combos, func(i, j int) bool {
		if combos[i].Len() != combos[j].Len() {
			return combos[i].Len() > combos[j].Len()
		}
		return combos[i].Type > combos[j].Type
	})
}
