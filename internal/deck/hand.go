package deck

import "github.com/bran/tractor/internal/card"

// Hand is a player's held multiset of cards. It generalizes the
// teacher's Hand (internal/engine/deck.go) with trump-group queries in
// place of single-suit queries, since Tractor's trump group spans
// every suit's trump-rank cards plus both jokers.
type Hand struct {
	cards []card.Card
}

// NewHand builds an empty hand.
func NewHand() *Hand {
	return &Hand{cards: make([]card.Card, 0, 25)}
}

// NewWith builds a hand containing a copy of the given cards.
func NewWith(cards []card.Card) *Hand {
	h := &Hand{cards: make([]card.Card, len(cards))}
	copy(h.cards, cards)
	return h
}

// Cards returns a copy of the held cards.
func (h *Hand) Cards() []card.Card {
	out := make([]card.Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// Size returns the number of cards held.
func (h *Hand) Size() int {
	return len(h.cards)
}

// Add adds a card to the hand.
func (h *Hand) Add(c card.Card) {
	h.cards = append(h.cards, c)
}

// AddAll adds every card in cards to the hand.
func (h *Hand) AddAll(cards []card.Card) {
	h.cards = append(h.cards, cards...)
}

// Remove removes one copy of c from the hand. Returns false if c was
// not held.
func (h *Hand) Remove(c card.Card) bool {
	for i, held := range h.cards {
		if held.Equal(c) {
			h.cards = append(h.cards[:i], h.cards[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAll removes every card in cards from the hand. Returns false,
// leaving the hand unmodified, if any card is not held (all-or-nothing
// so a failed kitty/discard selection never partially mutates a hand).
func (h *Hand) RemoveAll(cards []card.Card) bool {
	working := NewWith(h.cards)
	for _, c := range cards {
		if !working.Remove(c) {
			return false
		}
	}
	h.cards = working.cards
	return true
}

// Contains reports whether the hand holds c.
func (h *Hand) Contains(c card.Card) bool {
	for _, held := range h.cards {
		if held.Equal(c) {
			return true
		}
	}
	return false
}

// ContainsAll reports whether the hand holds every card in cards,
// counting duplicates (i.e. two 10♣ in cards requires two held).
func (h *Hand) ContainsAll(cards []card.Card) bool {
	return NewWith(h.cards).RemoveAll(cards)
}

// Group returns the trump-group/suit a card belongs to under trump:
// NoSuit for any trump card, else the card's natural suit. This is
// exactly TrumpInfo.EffectiveSuit; Hand re-exposes it so callers that
// only import deck don't also need card's TrumpInfo method directly.
func Group(c card.Card, trump card.TrumpInfo) card.Suit {
	return trump.EffectiveSuit(c)
}

// CardsInGroup returns every held card belonging to the given group
// (NoSuit for the trump group, otherwise a natural suit).
func (h *Hand) CardsInGroup(group card.Suit, trump card.TrumpInfo) []card.Card {
	out := make([]card.Card, 0)
	for _, c := range h.cards {
		if Group(c, trump) == group {
			out = append(out, c)
		}
	}
	return out
}

// HasGroup reports whether the hand holds any card in the given group.
func (h *Hand) HasGroup(group card.Suit, trump card.TrumpInfo) bool {
	for _, c := range h.cards {
		if Group(c, trump) == group {
			return true
		}
	}
	return false
}

// CountByCommon groups held cards by CommonID, for pair/tractor
// detection elsewhere.
func (h *Hand) CountByCommon() map[card.CommonID][]card.Card {
	out := make(map[card.CommonID][]card.Card)
	for _, c := range h.cards {
		id := c.Common()
		out[id] = append(out[id], c)
	}
	return out
}

// Clear empties the hand.
func (h *Hand) Clear() {
	h.cards = h.cards[:0]
}
