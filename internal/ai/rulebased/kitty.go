package rulebased

import (
	"sort"

	"github.com/bran/tractor/internal/card"
	"github.com/bran/tractor/internal/combo"
	"github.com/bran/tractor/internal/deck"
)

// suitAnalysis summarizes one non-trump suit's held cards for the
// kitty-swap decision: its cards and a preservation score (higher
// means more valuable to keep).
type suitAnalysis struct {
	suit     card.Suit
	cards    []card.Card
	preserve int
}

// chooseKittyDiscards implements spec.md §4.9: try to empty one or two
// whole suits first, fall back to including the weakest trump cards
// when the hand holds fewer than 8 non-trump cards, and otherwise
// discard the 8 weakest non-trump cards. When exceptionalTrumpInclusion
// holds but the hand has 8 or more non-trump cards, the result is that
// same non-trump selection; no trump card is buried. It generalizes the
// teacher's BiddingEvaluator.SelectDiscard (internal/ai/rule_based/
// bidding.go), which only ever picked one weakest card for a
// single-card pickup, into an 8-card strategic selection.
func (e *Engine) chooseKittyDiscards(hand *deck.Hand, trump card.TrumpInfo) []card.Card {
	var trumpCards, nonTrump []card.Card
	for _, c := range hand.Cards() {
		if trump.IsTrump(c) {
			trumpCards = append(trumpCards, c)
		} else {
			nonTrump = append(nonTrump, c)
		}
	}

	suits := analyzeSuits(nonTrump, trump)

	if discards := suitEliminationDiscards(suits, nonTrump, trump); discards != nil {
		return discards
	}
	if len(nonTrump) < 8 || exceptionalTrumpInclusion(trumpCards, suits, trump) {
		return trumpInclusionDiscards(nonTrump, trumpCards, trump)
	}
	return conservativeDiscards(nonTrump)
}

// analyzeSuits buckets non-trump cards by suit and sorts the buckets
// ascending by preservation score, so the weakest (most eliminable)
// suit sorts first.
func analyzeSuits(nonTrump []card.Card, trump card.TrumpInfo) []suitAnalysis {
	bySuit := make(map[card.Suit][]card.Card)
	for _, c := range nonTrump {
		bySuit[c.Suit] = append(bySuit[c.Suit], c)
	}

	var out []suitAnalysis
	for _, suit := range card.AllSuits {
		cards := bySuit[suit]
		if len(cards) == 0 {
			continue
		}
		out = append(out, suitAnalysis{suit: suit, cards: cards, preserve: preservationScore(cards, trump)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].preserve < out[j].preserve })
	return out
}

// preservationScore rewards length, aces, kings, pairs, and tractors —
// the cards and shapes spec.md §4.9 says to protect from elimination.
func preservationScore(cards []card.Card, trump card.TrumpInfo) int {
	score := len(cards)
	for _, c := range cards {
		switch c.Rank {
		case card.Ace:
			score += 5
		case card.King:
			score += 3
		}
	}
	combos := combo.Detect(deck.NewWith(cards), trump)
	for _, c := range combos {
		switch c.Type {
		case combo.Pair:
			score += 4
		case combo.Tractor:
			score += 6
		}
	}
	return score
}

// suitEliminationDiscards tries to empty the weakest suit, or the
// weakest two, entirely into the kitty, topping up to 8 with the
// other suits' weakest cards when the eliminated suit(s) fall short.
// It refuses to eliminate a suit holding an Ace, since spec.md §4.9
// protects aces from elimination regardless of suit length.
func suitEliminationDiscards(suits []suitAnalysis, nonTrump []card.Card, trump card.TrumpInfo) []card.Card {
	for i := range suits {
		if len(suits[i].cards) > 8 || !worthEliminating(suits[i : i+1]) {
			continue
		}

		candidateGroups := [][]suitAnalysis{suits[i : i+1]}
		if i+1 < len(suits) {
			candidateGroups = append(candidateGroups, suits[i:i+2])
		}

		for _, group := range candidateGroups {
			total := 0
			for _, s := range group {
				total += len(s.cards)
			}
			if total > 8 || !worthEliminating(group) {
				continue
			}

			discards := make([]card.Card, 0, 8)
			for _, s := range group {
				discards = append(discards, s.cards...)
			}
			if len(discards) < 8 {
				discards = append(discards, weakestFillers(nonTrump, discards, trump, 8-len(discards))...)
			}
			return discards
		}
	}
	return nil
}

func worthEliminating(group []suitAnalysis) bool {
	for _, s := range group {
		for _, c := range s.cards {
			if c.Rank == card.Ace {
				return false
			}
		}
	}
	return true
}

func weakestFillers(nonTrump, used []card.Card, trump card.TrumpInfo, n int) []card.Card {
	usedSet := make(map[card.Card]bool, len(used))
	for _, c := range used {
		usedSet[c] = true
	}
	var rest []card.Card
	for _, c := range nonTrump {
		if !usedSet[c] {
			rest = append(rest, c)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return conservationValue(rest[i], trump) < conservationValue(rest[j], trump) })
	if n > len(rest) {
		n = len(rest)
	}
	return rest[:n]
}

// exceptionalTrumpInclusion implements spec.md §4.9's exception:
// either the trump suit itself is long and flush with pairs (so
// holding it back has more value than any non-trump shuffle could),
// or every remaining non-trump suit is too strong to safely gut.
func exceptionalTrumpInclusion(trumpCards []card.Card, suits []suitAnalysis, trump card.TrumpInfo) bool {
	if len(trumpCards) >= 10 {
		pairs := combo.ByType(combo.Detect(deck.NewWith(trumpCards), trump), combo.Pair)
		if len(pairs) >= 2 {
			return true
		}
	}

	if len(suits) == 0 {
		return false
	}
	for _, s := range suits {
		if !suitIsStrong(s, trump) {
			return false
		}
	}
	return true
}

func suitIsStrong(s suitAnalysis, trump card.TrumpInfo) bool {
	for _, c := range s.cards {
		if c.Rank == card.Ace {
			return true
		}
	}
	combos := combo.Detect(deck.NewWith(s.cards), trump)
	return len(combo.ByType(combos, combo.Pair)) > 0 || len(combo.ByType(combos, combo.Tractor)) > 0
}

// trumpInclusionDiscards discards every non-trump card plus the
// weakest trump cards needed to reach 8, never reaching for a joker
// while a weaker trump-suit card remains (conservationValue already
// orders jokers last). With 8 or more non-trump cards it returns
// conservativeDiscards and includes no trump.
func trumpInclusionDiscards(nonTrump, trumpCards []card.Card, trump card.TrumpInfo) []card.Card {
	if len(nonTrump) >= 8 {
		return conservativeDiscards(nonTrump)
	}

	discards := append([]card.Card(nil), nonTrump...)
	need := 8 - len(discards)

	sorted := append([]card.Card(nil), trumpCards...)
	sort.Slice(sorted, func(i, j int) bool { return conservationValue(sorted[i], trump) < conservationValue(sorted[j], trump) })
	if need > len(sorted) {
		need = len(sorted)
	}
	return append(discards, sorted[:need]...)
}

// conservativeDiscards picks the 8 weakest non-trump cards, ordered by
// point value ascending (never burying a point card while a pointless
// one remains) then by rank ascending.
func conservativeDiscards(nonTrump []card.Card) []card.Card {
	sorted := append([]card.Card(nil), nonTrump...)
	sort.Slice(sorted, func(i, j int) bool {
		pi, pj := sorted[i].PointValue(), sorted[j].PointValue()
		if pi != pj {
			return pi < pj
		}
		return sorted[i].Rank < sorted[j].Rank
	})
	n := 8
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
