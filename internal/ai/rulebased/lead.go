package rulebased

import (
	"github.com/bran/tractor/internal/card"
	"github.com/bran/tractor/internal/combo"
	"github.com/bran/tractor/internal/context"
	"github.com/bran/tractor/internal/deck"
	"github.com/bran/tractor/internal/memory"
	"github.com/bran/tractor/internal/state"
)

// scoredCombo pairs a candidate lead with its computed score.
type scoredCombo struct {
	combo combo.Combo
	score float64
}

// chooseLead implements spec.md §4.7: enumerate every candidate lead
// (including detected multi-combos), score non-trump and trump
// candidates separately, and pick the highest non-trump score if it
// clears the floor, falling back to trump, and finally to whatever
// non-trump candidate scored highest. It generalizes the teacher's
// selectLead (internal/ai/rule_based/play.go), which only ever chose
// between "lead trump" and "lead an off-suit ace or lowest card", into
// the full weighted-scoring comparison spec.md describes.
func (e *Engine) chooseLead(g *state.GameState, seat int, ctx context.GameContext, mem *memory.Memory) ([]card.Card, error) {
	player, err := g.Seat(seat)
	if err != nil {
		return nil, err
	}
	hand := player.Hand
	candidates := combo.Detect(hand, g.Trump)
	if len(candidates) == 0 {
		return nil, nil
	}
	candidates = append(candidates, e.detectMultiCombos(g, candidates, mem)...)

	var nonTrump, trump []scoredCombo
	for _, c := range candidates {
		sc := scoredCombo{combo: c, score: e.scoreLead(g, seat, hand, ctx, mem, c)}
		if c.Group == card.NoSuit {
			trump = append(trump, sc)
		} else {
			nonTrump = append(nonTrump, sc)
		}
	}

	bestNonTrump, hasNonTrump := bestScored(nonTrump, g.Trump)
	bestTrump, hasTrump := bestScored(trump, g.Trump)

	switch {
	case hasNonTrump && bestNonTrump.score >= 20:
		return bestNonTrump.combo.Cards, nil
	case hasTrump && bestTrump.score > -10:
		return bestTrump.combo.Cards, nil
	case hasNonTrump:
		return bestNonTrump.combo.Cards, nil
	case hasTrump:
		return bestTrump.combo.Cards, nil
	default:
		return nil, nil
	}
}

// detectMultiCombos runs combo.DetectMultiCombos over every group
// (each natural suit, plus the trump group) the hand holds candidates
// in, using memory-derived "biggest remaining" as the unbeatability
// test spec.md §4.2 requires for a multi-combo lead.
func (e *Engine) detectMultiCombos(g *state.GameState, candidates []combo.Combo, mem *memory.Memory) []combo.Combo {
	isBiggest := func(c card.Card) bool {
		group := g.Trump.EffectiveSuit(c)
		return isBiggestRemaining(mem, g.Trump, combo.Combo{Type: combo.Single, Cards: []card.Card{c}, Group: group})
	}

	groups := make([]card.Suit, 0, len(card.AllSuits)+1)
	groups = append(groups, card.NoSuit)
	groups = append(groups, card.AllSuits[:]...)

	var out []combo.Combo
	for _, group := range groups {
		out = append(out, combo.DetectMultiCombos(candidates, group, isBiggest)...)
	}
	return out
}

// isBiggestRemaining approximates memory.IsBiggestRemainingInSuit for
// a combo that may belong to the trump group, which the memory query
// doesn't natively cover (it's keyed on a natural suit). A big joker
// is always biggest; a small joker is biggest once both big jokers
// have been played (one played big joker suffices for a pair).
// Trump-rank cards sit so near the top of the trump order that they
// are treated as always-biggest; trump-suit non-rank cards fall back
// to the same suit-sequence check as a natural suit.
func isBiggestRemaining(mem *memory.Memory, trump card.TrumpInfo, c combo.Combo) bool {
	hc := c.HighCard(trump)
	if c.Group != card.NoSuit {
		return mem.IsBiggestRemainingInSuit(c.Group, hc.Rank, c.Type)
	}
	if hc.IsJoker() {
		if hc.Joker == card.BigJoker {
			return true
		}
		if c.Type == combo.Pair {
			return jokersPlayed(mem, card.BigJoker) >= 1
		}
		return jokersPlayed(mem, card.BigJoker) >= 2
	}
	if hc.Rank == trump.TrumpRank {
		return true
	}
	if trump.SuitDeclared {
		return mem.IsBiggestRemainingInSuit(trump.TrumpSuit, hc.Rank, c.Type)
	}
	return false
}

func jokersPlayed(mem *memory.Memory, kind card.JokerKind) int {
	n := 0
	for _, pc := range mem.PlayedCards {
		if pc.Joker == kind {
			n++
		}
	}
	return n
}

// scoreLead implements the weighted sum spec.md §4.7 describes.
func (e *Engine) scoreLead(g *state.GameState, seat int, hand *deck.Hand, ctx context.GameContext, mem *memory.Memory, c combo.Combo) float64 {
	w := e.Config.Weights
	trump := g.Trump
	score := float64(c.Type) * w.ComboTypeBonus

	hc := c.HighCard(trump)
	if !hc.IsJoker() {
		score += float64(hc.Rank-card.Two) * w.RankBonus
	}

	if isBiggestRemaining(mem, trump, c) {
		score += w.BiggestRemaining
	}

	if points := c.PointValue(); points > 0 {
		switch ctx.PlayStyle {
		case context.Aggressive, context.Desperate:
			score -= w.PointCardPenalty
		default:
			if ctx.IsAttackingTeam {
				score += w.PointCardPenalty / 2
			}
		}
	}

	if c.Group != card.NoSuit {
		suitLen := len(hand.CardsInGroup(c.Group, trump))
		score += float64(suitLen) * w.SuitLengthBonus
		if anyOpponentVoid(g, seat, mem, c.Group) {
			score += w.VoidForcingBonus
		}
	} else {
		if containsJoker(c) {
			score -= w.JokerConservation * gamePhaseFactor(ctx)
		} else {
			score -= w.TrumpLowConservation
		}
	}

	if c.Type == combo.MultiCombo {
		score += e.scoreMultiCombo(ctx, c)
	}

	return score
}

// anyOpponentVoid reports whether any non-teammate seat is a
// confirmed void in suit, per spec.md §4.7's extra bonus for forcing a
// void opponent to trump or discard.
func anyOpponentVoid(g *state.GameState, seat int, mem *memory.Memory, suit card.Suit) bool {
	for s := 0; s < 4; s++ {
		if s == seat || g.IsTeammate(s, seat) {
			continue
		}
		if mem.Players[s].SuitVoids[suit] {
			return true
		}
	}
	return false
}

func containsJoker(c combo.Combo) bool {
	for _, cd := range c.Cards {
		if cd.IsJoker() {
			return true
		}
	}
	return false
}

// gamePhaseFactor scales joker-conservation pressure by how early the
// round is: leading a joker costs more when many tricks remain, and
// the penalty fades as the hand empties.
func gamePhaseFactor(ctx context.GameContext) float64 {
	const assumedHandSize = 25.0
	factor := float64(ctx.CardsRemaining) / assumedHandSize
	if factor > 1 {
		factor = 1
	}
	if factor < 0.2 {
		factor = 0.2
	}
	return factor
}

// scoreMultiCombo implements spec.md §4.7's multi-combo bonus keying:
// heavy penalty for spending one two tricks before the round ends,
// heavy bonus for spending it on the final trick where the kitty
// multiplier makes every point card in it worth more.
func (e *Engine) scoreMultiCombo(ctx context.GameContext, c combo.Combo) float64 {
	w := e.Config.Weights
	bonus := w.MultiComboBonus

	switch ctx.CardsRemaining {
	case 0, 1:
		bonus *= 2
	case 2:
		bonus *= 0.25
	}

	if ctx.IsAttackingTeam && ctx.CardsRemaining <= 1 {
		bonus += w.MultiComboBonus * 0.5
	}

	return bonus
}

// bestScored returns the highest-scoring candidate, breaking ties by
// preferring the one that conserves the stronger card (spec.md §4.7's
// tie-break: lower card value first).
func bestScored(list []scoredCombo, trump card.TrumpInfo) (scoredCombo, bool) {
	if len(list) == 0 {
		return scoredCombo{}, false
	}
	best := list[0]
	for _, sc := range list[1:] {
		switch {
		case sc.score > best.score:
			best = sc
		case sc.score == best.score && trump.Compare(sc.combo.HighCard(trump), best.combo.HighCard(trump)) == card.Lower:
			best = sc
		}
	}
	return best, true
}
