package rulebased

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/bran/tractor/internal/card"
	"github.com/bran/tractor/internal/context"
	"github.com/bran/tractor/internal/memory"
	"github.com/bran/tractor/internal/state"
	"github.com/bran/tractor/internal/tractorerr"
)

// cacheKey identifies a memory snapshot by the round it belongs to and
// how much of that round's trick history produced it, per spec.md
// §4.5's caching note. The trick contents themselves are not hashed.
type cacheKey struct {
	round              uuid.UUID
	completedTricks    int
	currentTrickLength int
}

type cachedMemory struct {
	mem *memory.Memory
}

// buildMemory folds the round's trick log into a Memory, optionally
// serving a cached value keyed by (round ID, completed-trick count,
// current-trick length) when the engine was configured with
// EnableMemoryCache.
func (e *Engine) buildMemory(g *state.GameState) *memory.Memory {
	key := cacheKey{
		round:              g.RoundID,
		completedTricks:    len(g.CompletedTricks),
		currentTrickLength: currentTrickLen(g),
	}
	if e.Config.EnableMemoryCache {
		if cached, ok := e.cache[key]; ok {
			return cached.mem
		}
	}

	startingHandSize := 25
	mem := memory.Build(g.Trump, startingHandSize, e.Config.AssumedInitialTrumpCount, g.CompletedTricks, g.CurrentTrick)

	if e.Config.EnableMemoryCache {
		e.cache[key] = cachedMemory{mem: mem}
	}
	return mem
}

func currentTrickLen(g *state.GameState) int {
	if g.CurrentTrick == nil {
		return 0
	}
	return len(g.CurrentTrick.Plays)
}

// ChoosePlay implements ai.Engine.ChoosePlay.
func (e *Engine) ChoosePlay(g *state.GameState, seat int) ([]card.Card, error) {
	player, err := g.Seat(seat)
	if err != nil {
		return nil, err
	}
	if g.Phase != state.Playing {
		return nil, tractorerr.New(tractorerr.WrongPhase, "choose_play invoked during %s", g.Phase)
	}
	if player.Hand.Size() == 0 {
		e.Logger.Warn("choose_play invoked on an empty hand", "round", g.RoundID, "seat", seat)
		return nil, nil
	}

	mem := e.buildMemory(g)
	ctx := context.Build(g, seat, mem)

	if g.CurrentTrick == nil || len(g.CurrentTrick.Plays) == 0 {
		cards, err := e.chooseLead(g, seat, ctx, mem)
		if err != nil {
			return nil, err
		}
		e.Logger.Debug("chose lead", "round", g.RoundID, "seat", seat, "cards", cards)
		return cards, nil
	}

	cards, err := e.chooseFollow(g, seat, ctx, mem)
	if err != nil {
		return nil, err
	}
	e.Logger.Debug("chose follow", "round", g.RoundID, "seat", seat, "cards", cards)
	return cards, nil
}

// ChooseKittySwap implements ai.Engine.ChooseKittySwap.
func (e *Engine) ChooseKittySwap(g *state.GameState, seat int) ([]card.Card, error) {
	player, err := g.Seat(seat)
	if err != nil {
		return nil, err
	}
	if g.Phase != state.KittySwap {
		return nil, tractorerr.New(tractorerr.WrongPhase, "choose_kitty_swap invoked during %s", g.Phase)
	}
	if player.Hand.Size() != 33 {
		return nil, tractorerr.New(tractorerr.WrongHandSize, "seat %d holds %d cards, want 33", seat, player.Hand.Size())
	}

	discards := e.chooseKittyDiscards(player.Hand, g.Trump)

	if len(discards) != 8 {
		return nil, tractorerr.New(tractorerr.SelectionSizeMismatch, "selected %d cards, want 8", len(discards))
	}
	if !player.Hand.ContainsAll(discards) {
		return nil, tractorerr.New(tractorerr.SelectionNotInHand, "selection includes a card seat %d doesn't hold", seat)
	}
	if player.Hand.Size()-len(discards) != 25 {
		return nil, tractorerr.New(tractorerr.InvalidState, "post-swap hand would hold %d cards, want 25", player.Hand.Size()-len(discards))
	}

	e.Logger.Debug("chose kitty swap", "round", g.RoundID, "seat", seat, "cards", discards)
	return discards, nil
}

// EvaluateDeclaration implements ai.Engine.EvaluateDeclaration.
func (e *Engine) EvaluateDeclaration(g *state.GameState, seat int) (card.Suit, bool, error) {
	player, err := g.Seat(seat)
	if err != nil {
		return card.NoSuit, false, err
	}
	suit, ok := e.evaluateDeclaration(player.Hand, g.Trump.TrumpRank)
	e.Logger.Debug("evaluated declaration", "round", g.RoundID, "seat", seat, "suit", fmt.Sprint(suit), "declare", ok)
	return suit, ok, nil
}
