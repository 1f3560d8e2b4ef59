package combo

import (
	"fmt"

	"github.com/bran/tractor/internal/card"
	"github.com/bran/tractor/internal/deck"
)

// Error reports why a candidate play is illegal. It is a plain value
// type, not one of the closed Kind variants in internal/tractorerr,
// because "which follow-suit rule was violated" is a validator-internal
// detail; callers that need a Kind translate this into NoLegalPlay.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

func illegal(format string, args ...interface{}) error {
	return &Error{Reason: fmt.Sprintf(format, args...)}
}

// Validate checks a candidate play against the led combo under the
// follow-suit ladder in spec.md §4.3:
//
//  1. The play must be cards actually held.
//  2. The play must match the lead's length.
//  3. If the hand holds enough cards of the lead's group to match the
//     lead's length, every played card must come from that group.
//  4. Among same-group plays, if the hand can reproduce the lead's
//     exact structure (its tractor/pair/single shape), it must.
//  5. For a MultiCombo lead, each component's obligation applies
//     independently: the hand must supply one matching shape per
//     component, highest-priority component first, before spilling
//     into a lower one.
//  6. Once the group is exhausted (or was never held), any cards may
//     be played to fill out the remaining length.
func Validate(h *deck.Hand, lead Combo, play []card.Card, trump card.TrumpInfo) error {
	if !h.ContainsAll(play) {
		return illegal("play contains a card not held")
	}
	if len(play) != lead.Len() {
		return illegal("play has %d cards, want %d to match the lead", len(play), lead.Len())
	}

	group := lead.Group
	held := h.CardsInGroup(group, trump)
	playedInGroup := countInGroup(play, group, trump)

	if len(held) >= lead.Len() {
		if playedInGroup != len(play) {
			return illegal("must play only %s cards: %d held cards are in that group and the lead needs %d", groupName(group), len(held), lead.Len())
		}
		return validateStructure(h, lead, play, trump)
	}

	// Short of the group: every held card in the group must be used.
	if playedInGroup != len(held) {
		return illegal("must exhaust all %d held %s cards before playing elsewhere", len(held), groupName(group))
	}
	return nil
}

// validateStructure enforces rule 4/5: when enough cards of the group
// are held, the hand must reproduce the lead's shape if it can.
func validateStructure(h *deck.Hand, lead Combo, play []card.Card, trump card.TrumpInfo) error {
	if lead.Type == MultiCombo {
		return validateMultiComboFollow(h, lead, play, trump)
	}

	available := Detect(NewWithCards(h.CardsInGroup(lead.Group, trump)), trump)
	available = InGroup(available, lead.Group)

	switch lead.Type {
	case Tractor:
		if hasComboOfShape(available, Tractor, lead.Len()) && !playIsShape(play, Tractor, lead.Len(), trump) {
			return illegal("holds a %d-card tractor in %s and must play it", lead.Len(), groupName(lead.Group))
		}
		if !hasComboOfShape(available, Tractor, lead.Len()) {
			requiredPairs := lead.Len() / 2
			heldPairs := countPairs(h.CardsInGroup(lead.Group, trump), trump)
			if heldPairs >= requiredPairs && countPairs(play, trump) != requiredPairs {
				return illegal("holds %d pairs in %s and must play them before singles", requiredPairs, groupName(lead.Group))
			}
		}
	case Pair:
		heldPairs := countPairs(h.CardsInGroup(lead.Group, trump), trump)
		if heldPairs >= 1 && countPairs(play, trump) < 1 {
			return illegal("holds a pair in %s and must play it", groupName(lead.Group))
		}
	}
	return nil
}

func validateMultiComboFollow(h *deck.Hand, lead Combo, play []card.Card, trump card.TrumpInfo) error {
	remaining := append([]card.Card(nil), play...)
	heldGroup := NewWithCards(h.CardsInGroup(lead.Group, trump))

	for _, component := range lead.Components {
		available := InGroup(Detect(heldGroup, trump), lead.Group)
		if hasComboOfShape(available, component.Type, component.Len()) {
			used, ok := takeShape(remaining, component.Type, component.Len(), trump)
			if !ok {
				return illegal("holds a %s matching a %d-card component and must supply it", component.Type, component.Len())
			}
			remaining = removeUsed(remaining, used)
			heldGroup = NewWithCards(removeUsed(heldGroup.Cards(), used))
		}
	}
	return nil
}

func countInGroup(cards []card.Card, group card.Suit, trump card.TrumpInfo) int {
	n := 0
	for _, c := range cards {
		if trump.EffectiveSuit(c) == group {
			n++
		}
	}
	return n
}

func countPairs(cards []card.Card, trump card.TrumpInfo) int {
	h := NewWithCards(cards)
	return len(ByType(pairs(h, trump), Pair))
}

func hasComboOfShape(combos []Combo, t Type, length int) bool {
	for _, c := range combos {
		if c.Type == t && c.Len() == length {
			return true
		}
	}
	return false
}

func playIsShape(play []card.Card, t Type, length int, trump card.TrumpInfo) bool {
	if len(play) != length {
		return false
	}
	h := NewWithCards(play)
	combos := Detect(h, trump)
	return hasComboOfShape(combos, t, length)
}

// takeShape finds length cards within candidates forming a combo of
// type t and returns them, or ok=false if none exists.
func takeShape(candidates []card.Card, t Type, length int, trump card.TrumpInfo) ([]card.Card, bool) {
	h := NewWithCards(candidates)
	for _, c := range Detect(h, trump) {
		if c.Type == t && c.Len() == length {
			return c.Cards, true
		}
	}
	return nil, false
}

func removeUsed(cards []card.Card, used []card.Card) []card.Card {
	h := NewWithCards(cards)
	h.RemoveAll(used)
	return h.Cards()
}

// NewWithCards is a thin adapter so this package doesn't need to
// import deck's constructor name at every call site.
func NewWithCards(cards []card.Card) *deck.Hand {
	return deck.NewWith(cards)
}

func groupName(group card.Suit) string {
	if group == card.NoSuit {
		return "trump"
	}
	return group.String()
}
