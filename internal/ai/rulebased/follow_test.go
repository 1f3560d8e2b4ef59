package rulebased

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bran/tractor/internal/card"
	"github.com/bran/tractor/internal/combo"
)

func TestClassifyScenarioVoidWhenGroupUnheld(t *testing.T) {
	trump := card.TrumpInfo{TrumpRank: card.Two, TrumpSuit: card.Spades, SuitDeclared: true}
	lead := combo.Combo{Type: combo.Single, Cards: []card.Card{c(card.Hearts, card.Ace)}, Group: card.Hearts}
	require.Equal(t, scenarioVoid, classifyScenario(nil, lead, trump))
}

func TestClassifyScenarioShortWhenFewerHeldThanLeadLength(t *testing.T) {
	trump := card.TrumpInfo{TrumpRank: card.Two, TrumpSuit: card.Spades, SuitDeclared: true}
	lead := combo.Combo{
		Type:  combo.Pair,
		Cards: []card.Card{c(card.Hearts, card.Ace), c2(card.Hearts, card.Ace)},
		Group: card.Hearts,
	}
	held := []card.Card{c(card.Hearts, card.Three)}
	require.Equal(t, scenarioShort, classifyScenario(held, lead, trump))
}

func TestClassifyScenarioMatchStructureWhenPairHeld(t *testing.T) {
	trump := card.TrumpInfo{TrumpRank: card.Two, TrumpSuit: card.Spades, SuitDeclared: true}
	lead := combo.Combo{
		Type:  combo.Pair,
		Cards: []card.Card{c(card.Hearts, card.Ace), c2(card.Hearts, card.Ace)},
		Group: card.Hearts,
	}
	held := []card.Card{c(card.Hearts, card.Six), c2(card.Hearts, card.Six)}
	require.Equal(t, scenarioMatchStructure, classifyScenario(held, lead, trump))
}

func TestClassifyScenarioFragmentWhenPairLeadButOnlySinglesHeld(t *testing.T) {
	trump := card.TrumpInfo{TrumpRank: card.Two, TrumpSuit: card.Spades, SuitDeclared: true}
	lead := combo.Combo{
		Type:  combo.Pair,
		Cards: []card.Card{c(card.Hearts, card.Ace), c2(card.Hearts, card.Ace)},
		Group: card.Hearts,
	}
	held := []card.Card{c(card.Hearts, card.Six), c(card.Hearts, card.Seven)}
	require.Equal(t, scenarioFragment, classifyScenario(held, lead, trump))
}

func TestConservationValueRanksJokersHighestThenTrumpRankThenTrumpSuit(t *testing.T) {
	trump := card.TrumpInfo{TrumpRank: card.Two, TrumpSuit: card.Spades, SuitDeclared: true}
	bigJoker := card.NewJoker(card.BigJoker, 0)
	trumpRank := c(card.Hearts, card.Two)
	trumpSuit := c(card.Spades, card.Three)
	plain := c(card.Hearts, card.Three)

	require.Greater(t, conservationValue(bigJoker, trump), conservationValue(trumpRank, trump))
	require.Greater(t, conservationValue(trumpRank, trump), conservationValue(trumpSuit, trump))
	require.Greater(t, conservationValue(trumpSuit, trump), conservationValue(plain, trump))
}
