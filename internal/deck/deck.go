// Package deck builds the double 108-card Tractor deck and manages
// per-seat hands. It generalizes the teacher's single-deck Euchre
// Deck/Hand (internal/engine/deck.go) to two interleaved 52-card decks
// plus four jokers, and to trump-group membership instead of a single
// natural suit.
package deck

import (
	"math/rand"

	"github.com/bran/tractor/internal/card"
)

// Deck is an ordered stack of cards, drawn from the top (the tail of
// the slice) down.
type Deck struct {
	cards []card.Card
}

// New builds an unshuffled 108-card double deck: two standard 52-card
// decks (DeckID 0 and 1) plus a big and small joker from each deck.
func New() *Deck {
	cards := make([]card.Card, 0, 108)
	for deckID := 0; deckID < 2; deckID++ {
		for _, suit := range card.AllSuits {
			for rank := card.Two; rank <= card.Ace; rank++ {
				cards = append(cards, card.NewCard(suit, rank, deckID))
			}
		}
		cards = append(cards, card.NewJoker(card.SmallJoker, deckID))
		cards = append(cards, card.NewJoker(card.BigJoker, deckID))
	}
	return &Deck{cards: cards}
}

// Size returns the number of cards remaining in the deck.
func (d *Deck) Size() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards, in current order.
func (d *Deck) Cards() []card.Card {
	out := make([]card.Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Shuffle randomizes the deck order using Fisher-Yates over an
// injected random source, so callers control determinism (tests can
// pass a seeded source; production code a process-level source). The
// teacher's Deck.Shuffle used the math/rand global directly; spec's
// concurrency model (§5) requires the RNG be injected instead.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card. ok is false if the deck is
// empty.
func (d *Deck) Draw() (c card.Card, ok bool) {
	if len(d.cards) == 0 {
		return card.Card{}, false
	}
	c = d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return c, true
}

// DrawN removes and returns up to n cards from the top. Fewer are
// returned if the deck runs out.
func (d *Deck) DrawN(n int) []card.Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	if n <= 0 {
		return nil
	}
	start := len(d.cards) - n
	out := make([]card.Card, n)
	copy(out, d.cards[start:])
	d.cards = d.cards[:start]
	return out
}

// Deal splits the deck into numSeats equal hands of handSize cards
// each plus a kitty of the remaining cards, dealing seat by seat
// starting at startSeat, in contrast to the way the teacher's Round.Deal deals 3-then-2
// batches starting left of the dealer. Tractor deals the whole hand in
// one batch per seat rather than fixed 3/2 batches since batch size is
// not meaningful once the deck no longer determines bidding rounds.
func (d *Deck) Deal(numSeats, handSize, startSeat int) (hands [][]card.Card, kitty []card.Card) {
	hands = make([][]card.Card, numSeats)
	for i := 0; i < numSeats; i++ {
		seat := (startSeat + i) % numSeats
		hands[seat] = d.DrawN(handSize)
	}
	kitty = d.DrawN(d.Size())
	return hands, kitty
}
