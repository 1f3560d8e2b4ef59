package rulebased

import (
	"sort"

	"github.com/bran/tractor/internal/card"
	"github.com/bran/tractor/internal/combo"
	"github.com/bran/tractor/internal/context"
	"github.com/bran/tractor/internal/deck"
	"github.com/bran/tractor/internal/memory"
	"github.com/bran/tractor/internal/state"
	"github.com/bran/tractor/internal/tractorerr"
)

// followScenario classifies a follow decision by suit availability,
// per spec.md §4.8.
type followScenario int

const (
	scenarioMatchStructure followScenario = iota
	scenarioFragment
	scenarioShort
	scenarioVoid
)

// chooseFollow routes a follow decision to one of the scenario paths
// in spec.md §4.8. It generalizes the teacher's selectFollow
// (internal/ai/rule_based/play.go), which only ever separated
// "follow suit / trump / discard" for single cards, into the
// combo-aware scenario router spec.md describes — MultiCombo leads get
// their own component-by-component path.
func (e *Engine) chooseFollow(g *state.GameState, seat int, ctx context.GameContext, mem *memory.Memory) ([]card.Card, error) {
	player, err := g.Seat(seat)
	if err != nil {
		return nil, err
	}
	hand := player.Hand
	lead := g.CurrentTrick.Lead()

	if lead.Type == combo.MultiCombo {
		return e.followMultiCombo(g, hand, lead, ctx, mem)
	}

	held := hand.CardsInGroup(lead.Group, g.Trump)
	switch classifyScenario(held, lead, g.Trump) {
	case scenarioMatchStructure:
		return e.followMatchStructure(g, hand, lead, ctx, mem), nil
	case scenarioFragment:
		return e.followFragment(g, hand, lead, ctx), nil
	case scenarioShort:
		return e.followShort(hand, lead, g.Trump), nil
	case scenarioVoid:
		return e.followVoid(g, hand, lead, ctx), nil
	default:
		return nil, tractorerr.New(tractorerr.NoLegalPlay, "seat %d has no follow scenario for a %s lead", seat, lead.Type)
	}
}

// classifyScenario implements spec.md §4.8 step 1.
func classifyScenario(held []card.Card, lead combo.Combo, trump card.TrumpInfo) followScenario {
	switch {
	case len(held) == 0:
		return scenarioVoid
	case len(held) < lead.Len():
		return scenarioShort
	}

	available := combo.InGroup(combo.Detect(deck.NewWith(held), trump), lead.Group)
	switch lead.Type {
	case combo.Tractor:
		if hasShape(available, combo.Tractor, lead.Len()) {
			return scenarioMatchStructure
		}
		if len(combo.ByType(available, combo.Pair)) >= lead.Len()/2 {
			return scenarioMatchStructure
		}
		return scenarioFragment
	case combo.Pair:
		if len(combo.ByType(available, combo.Pair)) >= 1 {
			return scenarioMatchStructure
		}
		return scenarioFragment
	default: // Single
		return scenarioMatchStructure
	}
}

func hasShape(combos []combo.Combo, t combo.Type, length int) bool {
	for _, c := range combos {
		if c.Type == t && c.Len() == length {
			return true
		}
	}
	return false
}

func filterByLen(combos []combo.Combo, length int) []combo.Combo {
	var out []combo.Combo
	for _, c := range combos {
		if c.Len() == length {
			out = append(out, c)
		}
	}
	return out
}

// followMatchStructure implements spec.md §4.8's "match structure"
// path: prefer the smallest legal combo that still wins the trick when
// shouldTryToBeat, else the smallest that doesn't waste point cards,
// letting a winning teammate be reinforced with the highest-point
// legal play instead when that's the better posture.
func (e *Engine) followMatchStructure(g *state.GameState, hand *deck.Hand, lead combo.Combo, ctx context.GameContext, mem *memory.Memory) []card.Card {
	trump := g.Trump
	held := hand.CardsInGroup(lead.Group, trump)
	candidates := structureCandidates(held, lead, trump)
	if len(candidates) == 0 {
		return held
	}
	if len(candidates) == 1 {
		return candidates[0].Cards
	}

	if ctx.WinnerAnalysis.Active && ctx.WinnerAnalysis.ShouldTryToBeat {
		incumbent := currentWinningCombo(g)
		var winners []combo.Combo
		for _, c := range candidates {
			if beatsIncumbent(trump, c, incumbent, lead) {
				winners = append(winners, c)
			}
		}
		if len(winners) > 0 {
			return smallestValue(winners, trump).Cards
		}
	}

	if ctx.WinnerAnalysis.Active && ctx.WinnerAnalysis.IsTeammateWinning {
		if best := highestPointCombo(candidates); best != nil {
			return best.Cards
		}
	}

	var nonPoint, withPoints []combo.Combo
	for _, c := range candidates {
		if c.PointValue() == 0 {
			nonPoint = append(nonPoint, c)
		} else {
			withPoints = append(withPoints, c)
		}
	}
	if len(nonPoint) > 0 {
		return smallestValue(nonPoint, trump).Cards
	}
	return smallestValue(withPoints, trump).Cards
}

// structureCandidates enumerates the legal shapes available to
// reproduce lead within held: every single/pair for Single/Pair leads,
// or an exact-length tractor when one exists, falling back to the
// greedy pairs-plus-fillers construction spec.md §4.3 rule 4 allows
// when no full tractor survives in the group.
func structureCandidates(held []card.Card, lead combo.Combo, trump card.TrumpInfo) []combo.Combo {
	available := combo.InGroup(combo.Detect(deck.NewWith(held), trump), lead.Group)
	switch lead.Type {
	case combo.Single:
		return combo.ByType(available, combo.Single)
	case combo.Pair:
		if pairs := combo.ByType(available, combo.Pair); len(pairs) > 0 {
			return pairs
		}
	case combo.Tractor:
		if full := filterByLen(combo.ByType(available, combo.Tractor), lead.Len()); len(full) > 0 {
			return full
		}
		return []combo.Combo{buildPairsPlusFillers(held, lead, trump, false)}
	}
	return nil
}

// buildPairsPlusFillers takes as many of the group's pairs as the
// lead's structure requires (weakest first, to conserve stronger
// pairs, unless strongest is requested for a takeover play), then
// fills any remaining slots with non-point singles ascending, then
// point singles, matching spec.md §4.8's fragment-filler priority.
func buildPairsPlusFillers(held []card.Card, lead combo.Combo, trump card.TrumpInfo, strongest bool) combo.Combo {
	requiredPairs := lead.Len() / 2
	pairs := combo.ByType(combo.InGroup(combo.Detect(deck.NewWith(held), trump), lead.Group), combo.Pair)
	sort.Slice(pairs, func(i, j int) bool {
		if strongest {
			return trump.Compare(pairs[i].HighCard(trump), pairs[j].HighCard(trump)) == card.Higher
		}
		return trump.Compare(pairs[i].HighCard(trump), pairs[j].HighCard(trump)) == card.Lower
	})
	if len(pairs) > requiredPairs {
		pairs = pairs[:requiredPairs]
	}

	used := make(map[card.Card]bool)
	var cards []card.Card
	for _, p := range pairs {
		cards = append(cards, p.Cards...)
		for _, c := range p.Cards {
			used[c] = true
		}
	}

	var nonPoint, withPoints []card.Card
	for _, c := range held {
		if used[c] {
			continue
		}
		if c.PointValue() > 0 {
			withPoints = append(withPoints, c)
		} else {
			nonPoint = append(nonPoint, c)
		}
	}
	sortCards(nonPoint, trump, strongest)
	sortCards(withPoints, trump, strongest)

	fillers := append(nonPoint, withPoints...)
	remaining := lead.Len() - len(cards)
	if remaining > len(fillers) {
		remaining = len(fillers)
	}
	if remaining > 0 {
		cards = append(cards, fillers[:remaining]...)
	}

	return combo.Combo{Type: lead.Type, Cards: cards, Group: lead.Group}
}

func sortCards(cards []card.Card, trump card.TrumpInfo, descending bool) {
	sort.Slice(cards, func(i, j int) bool {
		if descending {
			return trump.Compare(cards[i], cards[j]) == card.Higher
		}
		return trump.Compare(cards[i], cards[j]) == card.Lower
	})
}

// followFragment implements spec.md §4.8's fragment path: enough
// length in the group but not enough pair/tractor structure. Fillers
// must stay within the group (the follow-suit ladder forbids spilling
// outside it once |H|G| >= n), so the documented "minimal trump to
// take over" option only applies when the led group IS trump — i.e.
// trump was led and the hand's own trump holdings, though short of a
// full tractor, can still be arranged to outrank the incumbent. See
// DESIGN.md for this resolved reading of spec.md §4.8.
func (e *Engine) followFragment(g *state.GameState, hand *deck.Hand, lead combo.Combo, ctx context.GameContext) []card.Card {
	trump := g.Trump
	held := hand.CardsInGroup(lead.Group, trump)

	if lead.Group == card.NoSuit && ctx.WinnerAnalysis.Active && ctx.WinnerAnalysis.ShouldTryToBeat && ctx.WinnerAnalysis.TrickPoints >= 10 {
		takeover := buildPairsPlusFillers(held, lead, trump, true)
		if beatsIncumbent(trump, takeover, currentWinningCombo(g), lead) {
			return takeover.Cards
		}
	}

	return buildPairsPlusFillers(held, lead, trump, false).Cards
}

// followShort implements spec.md §4.8's short-of-length path: every
// held group card must be played, topped up with the
// lowest-conservation-value off-group cards, preferring to keep
// jokers and the trump rank in reserve when cheaper fillers exist.
func (e *Engine) followShort(hand *deck.Hand, lead combo.Combo, trump card.TrumpInfo) []card.Card {
	held := hand.CardsInGroup(lead.Group, trump)
	cards := append([]card.Card(nil), held...)

	remaining := lead.Len() - len(cards)
	if remaining <= 0 {
		return cards
	}

	off := offGroupCards(hand, lead.Group, trump)
	sort.Slice(off, func(i, j int) bool {
		return conservationValue(off[i], trump) < conservationValue(off[j], trump)
	})
	if remaining > len(off) {
		remaining = len(off)
	}
	return append(cards, off[:remaining]...)
}

func offGroupCards(hand *deck.Hand, group card.Suit, trump card.TrumpInfo) []card.Card {
	var out []card.Card
	for _, c := range hand.Cards() {
		if trump.EffectiveSuit(c) != group {
			out = append(out, c)
		}
	}
	return out
}

// conservationValue ranks a card by how costly it is to give up:
// jokers highest, the trump rank next, trump-suit cards by rank, then
// natural rank. Lower values are cheaper to discard.
func conservationValue(c card.Card, trump card.TrumpInfo) int {
	if c.IsJoker() {
		if c.Joker == card.BigJoker {
			return 1000
		}
		return 999
	}
	if trump.IsTrump(c) {
		if c.Rank == trump.TrumpRank {
			return 900
		}
		return 800 + int(c.Rank)
	}
	return int(c.Rank)
}

// followVoid implements spec.md §4.8's void path: the hand holds
// nothing in the lead's group, so any n cards are legal. Beat the
// incumbent with minimal trump when the trick is worth contesting,
// contribute points to a winning teammate, or dispose of the weakest
// cards otherwise.
func (e *Engine) followVoid(g *state.GameState, hand *deck.Hand, lead combo.Combo, ctx context.GameContext) []card.Card {
	trump := g.Trump
	wa := ctx.WinnerAnalysis

	if wa.Active && wa.IsOpponentWinning && wa.TrickPoints >= 10 && wa.CanBeatCurrentWinner {
		if play := minimalBeatingTrump(hand, lead, currentWinningCombo(g), trump); play != nil {
			return play
		}
	}

	if wa.Active && wa.IsTeammateWinning {
		return highestPointPlay(hand, lead)
	}

	return disposeLowestConservation(hand, lead, trump)
}

// minimalBeatingTrump finds the weakest trump play of lead's length
// that outranks incumbent, preferring an exact-shape combo and falling
// back to the pairs-plus-fillers construction when the hand holds no
// full tractor of that length.
func minimalBeatingTrump(hand *deck.Hand, lead combo.Combo, incumbent combo.Combo, trump card.TrumpInfo) []card.Card {
	trumpHeld := hand.CardsInGroup(card.NoSuit, trump)
	if len(trumpHeld) < lead.Len() {
		return nil
	}

	available := combo.InGroup(combo.Detect(deck.NewWith(trumpHeld), trump), card.NoSuit)
	candidates := filterByLen(combo.ByType(available, lead.Type), lead.Len())
	if len(candidates) == 0 {
		fake := combo.Combo{Type: lead.Type, Group: card.NoSuit, Cards: make([]card.Card, lead.Len())}
		candidates = []combo.Combo{buildPairsPlusFillers(trumpHeld, fake, trump, true)}
	}

	var winners []combo.Combo
	for _, c := range candidates {
		if len(c.Cards) == lead.Len() && trump.Compare(c.HighCard(trump), incumbent.HighCard(trump)) == card.Higher {
			winners = append(winners, c)
		}
	}
	if len(winners) == 0 {
		return nil
	}
	return smallestValue(winners, trump).Cards
}

// highestPointPlay picks the n cards that contribute the most points
// to a winning teammate's trick, by the priority 10s, Kings, 5s.
func highestPointPlay(hand *deck.Hand, lead combo.Combo) []card.Card {
	all := hand.Cards()
	sort.SliceStable(all, func(i, j int) bool {
		return pointPriority(all[i]) > pointPriority(all[j])
	})
	n := lead.Len()
	if n > len(all) {
		n = len(all)
	}
	return all[:n]
}

func pointPriority(c card.Card) int {
	switch c.Rank {
	case card.Ten:
		return 3
	case card.King:
		return 2
	case card.Five:
		return 1
	default:
		return 0
	}
}

// disposeLowestConservation picks the n weakest cards in the hand by
// conservationValue.
func disposeLowestConservation(hand *deck.Hand, lead combo.Combo, trump card.TrumpInfo) []card.Card {
	all := hand.Cards()
	sort.Slice(all, func(i, j int) bool {
		return conservationValue(all[i], trump) < conservationValue(all[j], trump)
	})
	n := lead.Len()
	if n > len(all) {
		n = len(all)
	}
	return all[:n]
}

// followMultiCombo implements spec.md §4.8's per-component path for a
// MultiCombo lead: satisfy each component in priority order (tractors,
// then pairs, then singles — the order combo.DetectMultiCombos already
// sorted Components in), removing consumed cards from a working hand
// copy between components.
func (e *Engine) followMultiCombo(g *state.GameState, hand *deck.Hand, lead combo.Combo, ctx context.GameContext, mem *memory.Memory) ([]card.Card, error) {
	working := deck.NewWith(hand.Cards())
	var played []card.Card

	for _, component := range lead.Components {
		held := working.CardsInGroup(component.Group, g.Trump)
		var part []card.Card
		switch classifyScenario(held, component, g.Trump) {
		case scenarioMatchStructure:
			part = e.followMatchStructure(g, working, component, ctx, mem)
		case scenarioFragment:
			part = e.followFragment(g, working, component, ctx)
		case scenarioShort:
			part = e.followShort(working, component, g.Trump)
		case scenarioVoid:
			part = e.followVoid(g, working, component, ctx)
		}
		if len(part) == 0 {
			return nil, tractorerr.New(tractorerr.NoLegalPlay, "no legal play for a %d-card %s multi-combo component", component.Len(), component.Type)
		}
		played = append(played, part...)
		working.RemoveAll(part)
	}

	return played, nil
}

// currentWinningCombo and beatsIncumbent duplicate context package's
// private trick-comparison helpers: this package needs the same
// "which combo is currently winning" and "does candidate outrank
// incumbent" logic to score candidate follows, and the teacher keeps
// exactly this kind of small duplicated beats() per strategy file
// (internal/ai/rule_based/play.go) rather than share one across
// packages.
func currentWinningCombo(g *state.GameState) combo.Combo {
	tr := g.CurrentTrick
	for _, play := range tr.Plays {
		if play.Seat == tr.WinningSeat() {
			return play.Combo
		}
	}
	return combo.Combo{}
}

func beatsIncumbent(trump card.TrumpInfo, candidate, incumbent, lead combo.Combo) bool {
	candidateTrump := candidate.Group == card.NoSuit
	incumbentTrump := incumbent.Group == card.NoSuit
	switch {
	case candidateTrump && !incumbentTrump:
		return true
	case !candidateTrump && incumbentTrump:
		return false
	case candidateTrump && incumbentTrump:
		return trump.Compare(candidate.HighCard(trump), incumbent.HighCard(trump)) == card.Higher
	default:
		if candidate.Group != lead.Group {
			return false
		}
		return trump.Compare(candidate.HighCard(trump), incumbent.HighCard(trump)) == card.Higher
	}
}

// smallestValue returns the candidate with the weakest high card,
// spec.md §4.7/§4.8's general tie-break toward conserving strength.
func smallestValue(combos []combo.Combo, trump card.TrumpInfo) combo.Combo {
	best := combos[0]
	for _, c := range combos[1:] {
		if trump.Compare(c.HighCard(trump), best.HighCard(trump)) == card.Lower {
			best = c
		}
	}
	return best
}

// highestPointCombo returns the candidate containing the
// highest-priority point rank (10s, then Kings, then 5s), or nil if
// none carries points.
func highestPointCombo(combos []combo.Combo) *combo.Combo {
	for _, rank := range []card.Rank{card.Ten, card.King, card.Five} {
		for i := range combos {
			if comboHasRank(combos[i], rank) {
				return &combos[i]
			}
		}
	}
	return nil
}

func comboHasRank(c combo.Combo, rank card.Rank) bool {
	for _, cd := range c.Cards {
		if cd.Rank == rank {
			return true
		}
	}
	return false
}
