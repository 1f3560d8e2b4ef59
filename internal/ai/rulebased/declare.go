package rulebased

import (
	"github.com/bran/tractor/internal/card"
	"github.com/bran/tractor/internal/deck"
)

// evaluateDeclaration implements spec.md §4.10: count trump-rank cards
// and per-suit lengths, then declare the dominant suit if backed by at
// least two trump-rank copies, fall back to declaring any suit the
// hand holds at least 8 of, or abstain. It generalizes the teacher's
// EvaluateRound1/EvaluateRound2 hand-strength scoring
// (internal/ai/rule_based/bidding.go) — which banded trump count and
// bower bonuses into a 0-100 bid threshold — into Tractor's simpler
// declare-during-dealing rule, since there is no round-based bidding
// to score against.
func (e *Engine) evaluateDeclaration(hand *deck.Hand, trumpRank card.Rank) (card.Suit, bool) {
	counts := make(map[card.Suit]int)
	var trumpRankSuits []card.Suit
	for _, c := range hand.Cards() {
		if c.IsJoker() {
			continue
		}
		counts[c.Suit]++
		if c.Rank == trumpRank {
			trumpRankSuits = append(trumpRankSuits, c.Suit)
		}
	}

	dominant, dominantCount := dominantSuit(counts)

	if len(trumpRankSuits) >= 2 {
		for _, suit := range trumpRankSuits {
			if suit == dominant {
				return suit, true
			}
		}
	}

	if dominantCount >= 8 {
		return dominant, true
	}

	return card.NoSuit, false
}

func dominantSuit(counts map[card.Suit]int) (card.Suit, int) {
	best := card.NoSuit
	bestCount := 0
	for _, suit := range card.AllSuits {
		if counts[suit] > bestCount {
			best = suit
			bestCount = counts[suit]
		}
	}
	return best, bestCount
}
