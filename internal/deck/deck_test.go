package deck

import (
	"math/rand"
	"testing"

	"github.com/bran/tractor/internal/card"
)

func TestNewDeckHas108Cards(t *testing.T) {
	d := New()
	if got := d.Size(); got != 108 {
		t.Errorf("New().Size() = %d, want 108", got)
	}
}

func TestNewDeckComposition(t *testing.T) {
	d := New()
	counts := make(map[card.CommonID]int)
	for _, c := range d.Cards() {
		counts[c.Common()]++
	}

	for _, suit := range card.AllSuits {
		for rank := card.Two; rank <= card.Ace; rank++ {
			id := card.NewCard(suit, rank, 0).Common()
			if counts[id] != 2 {
				t.Errorf("rank %s of %s appears %d times, want 2", rank, suit, counts[id])
			}
		}
	}

	bigJokerID := card.NewJoker(card.BigJoker, 0).Common()
	smallJokerID := card.NewJoker(card.SmallJoker, 0).Common()
	if counts[bigJokerID] != 2 {
		t.Errorf("big joker appears %d times, want 2", counts[bigJokerID])
	}
	if counts[smallJokerID] != 2 {
		t.Errorf("small joker appears %d times, want 2", counts[smallJokerID])
	}
}

func TestShufflePreservesComposition(t *testing.T) {
	d := New()
	before := d.Cards()
	d.Shuffle(rand.New(rand.NewSource(1)))
	after := d.Cards()

	beforeCounts := make(map[card.CommonID]int)
	for _, c := range before {
		beforeCounts[c.Common()]++
	}
	afterCounts := make(map[card.CommonID]int)
	for _, c := range after {
		afterCounts[c.Common()]++
	}

	for id, n := range beforeCounts {
		if afterCounts[id] != n {
			t.Errorf("shuffle changed count of %v: before %d, after %d", id, n, afterCounts[id])
		}
	}
}

func TestDealProducesEqualHandsAndKitty(t *testing.T) {
	d := New()
	d.Shuffle(rand.New(rand.NewSource(1)))

	hands, kitty := d.Deal(4, 25, 0)

	total := len(kitty)
	for i, h := range hands {
		if len(h) != 25 {
			t.Errorf("hand %d has %d cards, want 25", i, len(h))
		}
		total += len(h)
	}
	if total != 108 {
		t.Errorf("total dealt cards = %d, want 108", total)
	}
	if len(kitty) != 8 {
		t.Errorf("kitty has %d cards, want 8", len(kitty))
	}
}
