package deck

import (
	"testing"

	"github.com/bran/tractor/internal/card"
)

func TestHandCardsInGroupPullsTrumpOut(t *testing.T) {
	trump := card.TrumpInfo{TrumpRank: card.Two, TrumpSuit: card.Spades, SuitDeclared: true}
	h := NewWith([]card.Card{
		card.NewCard(card.Hearts, card.Ace, 0),
		card.NewCard(card.Hearts, card.Two, 0), // trump rank, pulled out of Hearts
		card.NewCard(card.Spades, card.King, 0),
	})

	heartsCards := h.CardsInGroup(card.Hearts, trump)
	if len(heartsCards) != 1 || heartsCards[0].Rank != card.Ace {
		t.Errorf("CardsInGroup(Hearts) = %v, want only the Hearts Ace", heartsCards)
	}

	trumpCards := h.CardsInGroup(card.NoSuit, trump)
	if len(trumpCards) != 2 {
		t.Errorf("CardsInGroup(NoSuit) = %v, want 2 trump cards", trumpCards)
	}
}

func TestHandRemoveAllIsAllOrNothing(t *testing.T) {
	h := NewWith([]card.Card{
		card.NewCard(card.Hearts, card.Ace, 0),
		card.NewCard(card.Hearts, card.King, 0),
	})

	missing := card.NewCard(card.Clubs, card.Nine, 0)
	if h.RemoveAll([]card.Card{card.NewCard(card.Hearts, card.Ace, 0), missing}) {
		t.Fatal("RemoveAll should fail when a card is missing")
	}
	if h.Size() != 2 {
		t.Errorf("hand size after failed RemoveAll = %d, want 2 (unmodified)", h.Size())
	}
}

func TestHandContainsAllCountsDuplicates(t *testing.T) {
	h := NewWith([]card.Card{
		card.NewCard(card.Hearts, card.Ten, 0),
		card.NewCard(card.Hearts, card.Ten, 1),
	})

	want := []card.Card{card.NewCard(card.Hearts, card.Ten, 0), card.NewCard(card.Hearts, card.Ten, 1)}
	if !h.ContainsAll(want) {
		t.Error("ContainsAll should find both physical copies of 10♥")
	}

	tooMany := []card.Card{card.NewCard(card.Hearts, card.Ten, 0), card.NewCard(card.Hearts, card.Ten, 1), card.NewCard(card.Hearts, card.Ten, 0)}
	if h.ContainsAll(tooMany) {
		t.Error("ContainsAll should not find a third copy that isn't held")
	}
}
