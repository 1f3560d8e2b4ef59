package combo

import "github.com/bran/tractor/internal/card"

// IsBiggestRemaining reports whether a card is provably the strongest
// remaining card of its group, given what has already left the table.
// internal/memory implements this query over its running tally; combo
// takes it as a function instead of importing memory directly so the
// two packages stay decoupled.
type IsBiggestRemaining func(c card.Card) bool

// DetectMultiCombos builds leading multi-combo candidates within a
// single group: the maximal set of non-overlapping combos (tractors
// first, then pairs, then singles, per spec.md §4.2's priority order)
// every one of whose cards is individually unbeatable. A multi-combo
// lead is only legal when every component is unbeatable, since any
// seat that can beat one component can play it underneath the rest and
// take the trick; the game-state layer still has the final say over
// whether the lead is accepted.
func DetectMultiCombos(combos []Combo, group card.Suit, isBiggest IsBiggestRemaining) []Combo {
	candidates := InGroup(combos, group)
	SortByLenDesc(candidates)

	used := make(map[card.Card]bool)
	var components []Combo
	for _, c := range candidates {
		if c.Type == Single && len(components) == 0 {
			// Singles only ever join an existing multi-combo; a lone
			// unbeatable single is just a Single lead, not a MultiCombo.
			continue
		}
		if anyUsed(c.Cards, used) {
			continue
		}
		if !allUnbeatable(c.Cards, isBiggest) {
			continue
		}
		components = append(components, c)
		for _, cd := range c.Cards {
			used[cd] = true
		}
	}

	if len(components) < 2 {
		return nil
	}

	var all []card.Card
	for _, c := range components {
		all = append(all, c.Cards...)
	}
	return []Combo{{Type: MultiCombo, Cards: all, Group: group, Components: components}}
}

func anyUsed(cards []card.Card, used map[card.Card]bool) bool {
	for _, c := range cards {
		if used[c] {
			return true
		}
	}
	return false
}

func allUnbeatable(cards []card.Card, isBiggest IsBiggestRemaining) bool {
	for _, c := range cards {
		if !isBiggest(c) {
			return false
		}
	}
	return true
}
